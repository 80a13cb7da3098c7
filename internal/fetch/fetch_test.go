package fetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthbuild/hearth/internal/cache"
	"github.com/hearthbuild/hearth/internal/recipe"
)

// Serves the given tarball bytes and counts requests.
type tarballServer struct {
	*httptest.Server
	hits atomic.Int64
}

func serveTarball(t *testing.T, data []byte) *tarballServer {
	t.Helper()
	ts := &tarballServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.hits.Add(1)
		w.Write(data)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func gzipTarball(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(buildTar(t, files))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func newTestStore(t *testing.T) *cache.Store {
	t.Helper()
	root := t.TempDir()
	return cache.New(filepath.Join(root, "sources"), filepath.Join(root, "builds"))
}

func testRecipe(url, checksum string) *recipe.Recipe {
	return &recipe.Recipe{
		ID: "hello",
		Source: recipe.Source{
			URL:      url,
			Method:   recipe.MethodTarball,
			Checksum: checksum,
		},
	}
}

func TestFetchFlattensSingleRoot(t *testing.T) {
	data := gzipTarball(t, map[string]string{
		"hello-2.1/":          "",
		"hello-2.1/main.c":    "int main() {}",
		"hello-2.1/src/":      "",
		"hello-2.1/src/lib.c": "void lib() {}",
	})
	ts := serveTarball(t, data)
	st := newTestStore(t)

	require.NoError(t, Fetch(context.Background(), st, testRecipe(ts.URL, "")))

	// No extra nesting level: hello-2.1/ was collapsed into sources/hello.
	content, err := os.ReadFile(filepath.Join(st.SourceDir("hello"), "main.c"))
	require.NoError(t, err)
	assert.Equal(t, "int main() {}", string(content))

	content, err = os.ReadFile(filepath.Join(st.SourceDir("hello"), "src", "lib.c"))
	require.NoError(t, err)
	assert.Equal(t, "void lib() {}", string(content))

	// Clean snapshot mirrors the pristine tree.
	content, err = os.ReadFile(filepath.Join(st.CleanDir("hello"), "main.c"))
	require.NoError(t, err)
	assert.Equal(t, "int main() {}", string(content))
}

func TestFetchMultipleTopLevelEntries(t *testing.T) {
	data := gzipTarball(t, map[string]string{
		"a.txt": "a",
		"d/":    "",
		"d/b":   "b",
	})
	ts := serveTarball(t, data)
	st := newTestStore(t)

	require.NoError(t, Fetch(context.Background(), st, testRecipe(ts.URL, "")))

	content, err := os.ReadFile(filepath.Join(st.SourceDir("hello"), "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(content))

	content, err = os.ReadFile(filepath.Join(st.SourceDir("hello"), "d", "b"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(content))
}

func TestFetchIdempotent(t *testing.T) {
	data := gzipTarball(t, map[string]string{"f": "content"})
	ts := serveTarball(t, data)
	st := newTestStore(t)
	rec := testRecipe(ts.URL, "")

	require.NoError(t, Fetch(context.Background(), st, rec))
	require.NoError(t, Fetch(context.Background(), st, rec))

	assert.EqualValues(t, 1, ts.hits.Load(), "second fetch must not download")
}

func TestFetchChecksumMatch(t *testing.T) {
	data := gzipTarball(t, map[string]string{"f": "content"})
	ts := serveTarball(t, data)
	st := newTestStore(t)

	checksum := digest.FromBytes(data).String()
	require.NoError(t, Fetch(context.Background(), st, testRecipe(ts.URL, checksum)))
	assert.True(t, st.IsFetched("hello"))
}

func TestFetchChecksumMismatch(t *testing.T) {
	data := gzipTarball(t, map[string]string{"f": "content"})
	ts := serveTarball(t, data)
	st := newTestStore(t)

	wrong := digest.FromString("not the tarball").String()
	err := Fetch(context.Background(), st, testRecipe(ts.URL, wrong))
	require.Error(t, err)

	// A failed verification must not populate the source cache entry.
	assert.False(t, st.IsFetched("hello"))
	assert.False(t, st.HasClean("hello"))
}

func TestFetchUnsupportedMethod(t *testing.T) {
	st := newTestStore(t)
	rec := testRecipe("https://example.invalid/src.tar.gz", "")
	rec.Source.Method = "git"

	err := Fetch(context.Background(), st, rec)
	require.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestFetchDownloadFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(ts.Close)
	st := newTestStore(t)

	err := Fetch(context.Background(), st, testRecipe(ts.URL, ""))
	require.Error(t, err)
	assert.False(t, st.IsFetched("hello"))
}
