package isolation

import (
	"fmt"
	"sort"
)

// An OS image the build container can be created from, with the commands
// that prepare a freshly created container for building recipes.
type Image struct {
	Name  string   // Image reference passed to the container engine.
	Setup []string // Commands run inside the container once, after creation.
}

// Default image used when none is selected.
const DefaultImage = "debian"

var catalog = map[string]Image{
	"debian": {
		Name: "debian",
		Setup: []string{
			"apt-get update",
			"apt-get install -y ninja-build build-essential git curl",
		},
	},
}

// Resolves an image by catalog name.
//
// Returns [ErrUnknownImage] listing the available options when the name is
// not in the catalog.
func LookupImage(name string) (Image, error) {
	img, ok := catalog[name]
	if !ok {
		return Image{}, fmt.Errorf("%w: %q, available options are %v", ErrUnknownImage, name, ImageNames())
	}
	return img, nil
}

// Lists the catalog image names, sorted.
func ImageNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
