package recipe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source method for tarballs downloaded over HTTP(S). The only method
// currently implemented.
const MethodTarball = "tarball"

// Describes where a recipe's sources come from.
type Source struct {
	URL      string `json:"url"`                // Download location for the source artifact.
	Method   string `json:"method"`             // Acquisition method (see [MethodTarball]).
	Checksum string `json:"checksum,omitempty"` // Optional "algorithm:hexdigest" pair.
}

// Ordered shell command lists for the build and package phases.
type Steps struct {
	Build   []string `json:"build"`
	Package []string `json:"package"`
}

// A declarative description of how to fetch, build, and package one piece
// of third-party software.
type Recipe struct {
	ID     string `json:"id"` // Unique identifier, used as the cache key and directory name.
	Source Source `json:"source"`
	Steps  Steps  `json:"steps"`
}

// Reads the recipe file for the given id from the recipes directory.
//
// Returns [ErrNoSuchRecipe] when no file named <id>.json exists. The embedded
// id must match the file's base name; a mismatch or any missing required
// field is reported as [ErrInvalidRecipe].
func Load(dir, id string) (*Recipe, error) {
	path := filepath.Join(dir, id+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoSuchRecipe, id)
		}
		return nil, err
	}

	var r Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRecipe, id, err)
	}

	if err := r.validate(id); err != nil {
		return nil, err
	}

	return &r, nil
}

// Lists recipe ids in the recipes directory, sorted by name.
//
// Ids are derived from the file name stem of every .json file. Returns
// [ErrNoRecipes] when the directory does not exist.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRecipes, dir)
		}
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}

	sort.Strings(ids)
	return ids, nil
}

// Checks that all required fields are present and the id matches the file
// name stem.
func (r *Recipe) validate(stem string) error {
	switch {
	case r.ID == "":
		return fmt.Errorf("%w: %s: missing id", ErrInvalidRecipe, stem)
	case r.ID != stem:
		return fmt.Errorf("%w: id %q does not match file name %q", ErrInvalidRecipe, r.ID, stem)
	case r.Source.URL == "":
		return fmt.Errorf("%w: %s: missing source.url", ErrInvalidRecipe, stem)
	case r.Source.Method == "":
		return fmt.Errorf("%w: %s: missing source.method", ErrInvalidRecipe, stem)
	}
	return nil
}
