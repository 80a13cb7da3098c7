package patch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hearthbuild/hearth/internal/cache"
	"github.com/hearthbuild/hearth/internal/fsutil"
	"github.com/hearthbuild/hearth/internal/paths"
	"github.com/hearthbuild/hearth/internal/shell"
	"github.com/hearthbuild/hearth/internal/ui"
)

// Returns the name of a recipe's mutable working copy in the current
// directory. Its presence is the whole contract between [Make] and [Save].
func Workdir(id string) string {
	return id + "-workdir"
}

// Seeds a mutable working copy of a recipe's clean source snapshot.
//
// The clean snapshot must already exist; [ErrNotFetched] is returned
// otherwise. The copy is created as <id>-workdir in the current directory,
// ready for manual edits.
func Make(st *cache.Store, id string) (string, error) {
	if !st.HasClean(id) {
		return "", fmt.Errorf("%w: %s", ErrNotFetched, id)
	}

	workdir := Workdir(id)
	if err := fsutil.CopyTree(st.CleanDir(id), workdir); err != nil {
		return "", err
	}

	return workdir, nil
}

// Captures the edits made to a recipe's working copy as a patch file.
//
// Computes a unified diff between the clean snapshot and the workdir with
// prefixes stripped, so the patch applies relative to the source root.
// Unrelated trees still diff ("no common ancestor" is fine). The diff bytes
// are written verbatim to <id>.patch, then the user is offered to delete
// the workdir (default: yes), reading the answer from in.
func Save(ctx context.Context, runner shell.Runner, st *cache.Store, id string, in io.Reader, out io.Writer) (string, error) {
	workdir := Workdir(id)
	if _, err := os.Stat(workdir); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s, run make-patch first", ErrNoWorkdir, workdir)
		}
		return "", err
	}

	diff, err := runner.Output(ctx, "git", "diff", "--no-index", "--no-prefix", st.CleanDir(id), workdir)
	if err != nil && !isDifferencesExit(err) {
		return "", fmt.Errorf("computing diff: %w", err)
	}

	patchFile := id + ".patch"
	if err := os.WriteFile(patchFile, diff, paths.DefaultFileMode); err != nil {
		return "", err
	}

	fmt.Fprintf(out, "Saved patch to %s\n", patchFile)

	if ui.Ask(in, out, "Remove workdir directory?", true) {
		if err := os.RemoveAll(workdir); err != nil {
			return "", err
		}
	}

	return patchFile, nil
}

// Whether the error is the diff tool's exit status 1, which signals
// "differences found" rather than failure.
func isDifferencesExit(err error) bool {
	var exitErr *shell.ExitError
	return errors.As(err, &exitErr) && exitErr.Code == 1
}
