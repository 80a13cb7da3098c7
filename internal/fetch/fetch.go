package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hearthbuild/hearth/internal/cache"
	"github.com/hearthbuild/hearth/internal/fsutil"
	"github.com/hearthbuild/hearth/internal/integrity"
	"github.com/hearthbuild/hearth/internal/paths"
	"github.com/hearthbuild/hearth/internal/recipe"
	"github.com/hearthbuild/hearth/internal/ui"
)

// Resolves a recipe's source into a populated source cache entry.
//
// Returns immediately when the source tree already exists, which makes Fetch
// cheap to call unconditionally before every build. Otherwise the tarball is
// downloaded, verified, extracted into a temporary directory, flattened into
// sources/<id>, and snapshotted to sources/<id>-clean for later diffing.
//
// Failures abort the fetch without rolling back partial state; a failure
// before sources/<id> is created leaves the recipe re-fetchable from scratch.
func Fetch(ctx context.Context, st *cache.Store, rec *recipe.Recipe) error {
	if st.IsFetched(rec.ID) {
		slog.Debug("source already fetched", "id", rec.ID)
		return nil
	}

	if rec.Source.Method != recipe.MethodTarball {
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, rec.Source.Method)
	}

	ui.Progress("Fetching recipe '%s'", rec.ID)

	archive, err := download(ctx, rec.Source.URL)
	if err != nil {
		return err
	}
	defer os.Remove(archive)

	if err := verifyFile(archive, rec.Source.Checksum); err != nil {
		return err
	}

	if err := os.MkdirAll(st.SourcesDir(), paths.DefaultDirMode); err != nil {
		return err
	}

	tmpdir, err := os.MkdirTemp(st.SourcesDir(), ".extract-")
	if err != nil {
		return err
	}

	if err := extractTar(archive, tmpdir); err != nil {
		return err
	}

	if err := flatten(tmpdir, st.SourceDir(rec.ID)); err != nil {
		return err
	}

	if err := os.Remove(tmpdir); err != nil {
		return err
	}

	if err := fsutil.CopyTree(st.SourceDir(rec.ID), st.CleanDir(rec.ID)); err != nil {
		return err
	}

	ui.Done()
	return nil
}

// Runs the integrity verifier over a downloaded archive.
//
// Must run before the archive is extracted or trusted in any way.
func verifyFile(path, checksum string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return integrity.Verify(f, checksum)
}

// Downloads a single file over HTTP(S) to a temporary path.
//
// The caller removes the file when done.
func download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp("", "hearth-download-")
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("downloading %s: %w", url, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}

// Moves every top-level entry of tmpdir into dest.
//
// A single top-level directory becomes dest itself, flattening the one level
// of nesting tarballs commonly introduce (e.g. "hello-2.1/"). Any other
// layout is moved entry by entry into a fresh dest.
func flatten(tmpdir, dest string) error {
	entries, err := os.ReadDir(tmpdir)
	if err != nil {
		return err
	}

	if len(entries) == 1 && entries[0].IsDir() {
		return fsutil.MoveEntry(filepath.Join(tmpdir, entries[0].Name()), dest)
	}

	if err := os.MkdirAll(dest, paths.DefaultDirMode); err != nil {
		return err
	}
	for _, entry := range entries {
		src := filepath.Join(tmpdir, entry.Name())
		if err := fsutil.MoveEntry(src, filepath.Join(dest, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
