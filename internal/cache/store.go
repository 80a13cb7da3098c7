package cache

import (
	"os"
	"path/filepath"

	"github.com/google/renameio"
	"github.com/hearthbuild/hearth/internal/paths"
)

// Suffix of the immutable reference snapshot next to each source tree.
const cleanSuffix = "-clean"

// Suffix of the per-recipe build completion marker.
const builtSuffix = ".built"

// Tracks per-recipe fetch and build state on disk.
//
// The store owns two namespaces: sources (pristine trees plus clean
// snapshots) and builds (ephemeral working trees plus completion markers).
// Directory existence is the fetch signal; the marker file is the sole
// source of truth for build completion. No locking is applied; a single
// invoking process at a time is assumed.
type Store struct {
	sources string // Root of the sources namespace.
	builds  string // Root of the builds namespace.
}

// Creates a store over explicit namespace roots.
func New(sourcesDir, buildsDir string) *Store {
	return &Store{sources: sourcesDir, builds: buildsDir}
}

// Creates a store over the process-wide cache directory.
func Default() *Store {
	return New(paths.Sources(), paths.Builds())
}

// Path of the pristine extracted source tree for a recipe.
func (s *Store) SourceDir(id string) string {
	return filepath.Join(s.sources, id)
}

// Path of the immutable clean snapshot for a recipe.
func (s *Store) CleanDir(id string) string {
	return filepath.Join(s.sources, id+cleanSuffix)
}

// Path of the ephemeral build working tree for a recipe.
func (s *Store) BuildDir(id string) string {
	return filepath.Join(s.builds, id)
}

// Root of the sources namespace.
func (s *Store) SourcesDir() string {
	return s.sources
}

// Whether the recipe's source tree has been fetched.
func (s *Store) IsFetched(id string) bool {
	return exists(s.SourceDir(id))
}

// Whether the recipe's clean snapshot exists.
func (s *Store) HasClean(id string) bool {
	return exists(s.CleanDir(id))
}

// Whether the recipe's build phase has completed.
func (s *Store) IsBuilt(id string) bool {
	return exists(s.markerPath(id))
}

// Records build completion for a recipe.
//
// The zero-byte marker is written atomically (temp file plus rename) so a
// crash mid-write can never leave a marker that lies about completion.
func (s *Store) MarkBuilt(id string) error {
	if err := os.MkdirAll(s.builds, paths.DefaultDirMode); err != nil {
		return err
	}
	return renameio.WriteFile(s.markerPath(id), nil, paths.DefaultFileMode)
}

// Removes the build completion marker for a recipe.
//
// Clearing an absent marker is not an error.
func (s *Store) ClearBuilt(id string) error {
	err := os.Remove(s.markerPath(id))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) markerPath(id string) string {
	return filepath.Join(s.builds, id+builtSuffix)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
