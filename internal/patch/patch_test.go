package patch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthbuild/hearth/internal/cache"
	"github.com/hearthbuild/hearth/internal/shell"
)

// Changes into dir for the duration of the test, restoring the previous
// working directory afterwards (stand-in for t.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// Returns scripted diff output for the git invocation and records argv.
type fakeRunner struct {
	calls [][]string
	diff  []byte
	err   error
}

func (f *fakeRunner) Run(ctx context.Context, opts shell.Options, argv ...string) error {
	f.calls = append(f.calls, argv)
	return f.err
}

func (f *fakeRunner) Output(ctx context.Context, argv ...string) ([]byte, error) {
	f.calls = append(f.calls, argv)
	return f.diff, f.err
}

func newTestStore(t *testing.T) *cache.Store {
	t.Helper()
	root := t.TempDir()
	return cache.New(filepath.Join(root, "sources"), filepath.Join(root, "builds"))
}

func seedClean(t *testing.T, st *cache.Store, id string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(st.CleanDir(id), name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestMakeCopiesCleanSnapshot(t *testing.T) {
	chdir(t, t.TempDir())
	st := newTestStore(t)
	seedClean(t, st, "hello", map[string]string{"a.txt": "A", "b.txt": "B"})

	workdir, err := Make(st, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello-workdir", workdir)

	for name, want := range map[string]string{"a.txt": "A", "b.txt": "B"} {
		data, err := os.ReadFile(filepath.Join(workdir, name))
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}

	// The snapshot itself stays untouched.
	data, err := os.ReadFile(filepath.Join(st.CleanDir("hello"), "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "A", string(data))
}

func TestMakeRequiresCleanSnapshot(t *testing.T) {
	chdir(t, t.TempDir())
	st := newTestStore(t)

	_, err := Make(st, "unfetched")
	require.ErrorIs(t, err, ErrNotFetched)
}

func TestSaveWritesPatchAndRemovesWorkdir(t *testing.T) {
	chdir(t, t.TempDir())
	st := newTestStore(t)
	seedClean(t, st, "hello", map[string]string{"a.txt": "A"})

	workdir, err := Make(st, "hello")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(workdir, "a.txt"), []byte("edited"), 0644))

	diff := []byte("--- a.txt\n+++ a.txt\n@@ -1 +1 @@\n-A\n+edited\n")
	runner := &fakeRunner{diff: diff, err: &shell.ExitError{Cmd: "git", Code: 1}}

	var out strings.Builder
	patchFile, err := Save(context.Background(), runner, st, "hello", strings.NewReader("\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "hello.patch", patchFile)

	// Diff bytes are written verbatim; exit status 1 means "differences",
	// not failure.
	written, err := os.ReadFile(patchFile)
	require.NoError(t, err)
	assert.Equal(t, diff, written)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{
		"git", "diff", "--no-index", "--no-prefix", st.CleanDir("hello"), "hello-workdir",
	}, runner.calls[0])

	// Default answer removes the workdir.
	_, statErr := os.Stat(workdir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveKeepsWorkdirOnNo(t *testing.T) {
	chdir(t, t.TempDir())
	st := newTestStore(t)
	seedClean(t, st, "hello", map[string]string{"a.txt": "A"})

	workdir, err := Make(st, "hello")
	require.NoError(t, err)

	runner := &fakeRunner{diff: []byte{}}
	var out strings.Builder
	_, err = Save(context.Background(), runner, st, "hello", strings.NewReader("n\n"), &out)
	require.NoError(t, err)

	_, statErr := os.Stat(workdir)
	assert.NoError(t, statErr, "workdir must survive an explicit no")
}

func TestSaveRequiresWorkdir(t *testing.T) {
	chdir(t, t.TempDir())
	st := newTestStore(t)
	seedClean(t, st, "hello", map[string]string{"a.txt": "A"})

	_, err := Save(context.Background(), &fakeRunner{}, st, "hello", strings.NewReader(""), &strings.Builder{})
	require.ErrorIs(t, err, ErrNoWorkdir)
}

func TestSaveDiffFailure(t *testing.T) {
	chdir(t, t.TempDir())
	st := newTestStore(t)
	seedClean(t, st, "hello", map[string]string{"a.txt": "A"})

	_, err := Make(st, "hello")
	require.NoError(t, err)

	runner := &fakeRunner{err: &shell.ExitError{Cmd: "git", Code: 128}}
	_, err = Save(context.Background(), runner, st, "hello", strings.NewReader(""), &strings.Builder{})
	require.Error(t, err)

	_, statErr := os.Stat("hello.patch")
	assert.True(t, os.IsNotExist(statErr), "failed diff must not write a patch file")
}
