package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "hearth"

	// Environment variable overriding the cache root.
	cacheEnv = "HEARTH_CACHE_DIR"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the root of the recipe cache.
//
//	Linux:   $XDG_CACHE_HOME/hearth or ~/.cache/hearth
//	macOS:   ~/Library/Caches/hearth
//
// HEARTH_CACHE_DIR overrides the computed path when set.
func CacheHome() string {
	if dir := os.Getenv(cacheEnv); dir != "" {
		return dir
	}
	return filepath.Join(xdg.CacheHome, toolName)
}

// Path to the sources namespace, holding pristine extracted trees and their
// "-clean" reference snapshots.
func Sources() string {
	return filepath.Join(CacheHome(), "sources")
}

// Path to the builds namespace, holding ephemeral build trees and completion
// markers.
func Builds() string {
	return filepath.Join(CacheHome(), "builds")
}
