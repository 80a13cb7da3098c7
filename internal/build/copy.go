package build

import (
	"fmt"

	"github.com/hearthbuild/hearth/internal/cache"
	"github.com/hearthbuild/hearth/internal/fsutil"
)

// Copies the pristine source tree into the build working directory.
//
// The recipe must have been fetched; a missing source tree is reported as
// [ErrNotFetched] rather than a bare copy failure.
func copySources(st *cache.Store, id string) error {
	if !st.IsFetched(id) {
		return fmt.Errorf("%w: %s", ErrNotFetched, id)
	}
	return fsutil.CopyTree(st.SourceDir(id), st.BuildDir(id))
}
