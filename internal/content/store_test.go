package content_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/content-gateway/internal/content"
)

func newStore(t *testing.T) content.Store {
	t.Helper()
	dir := t.TempDir()

	for _, sub := range []string{"assets", "premium/preview", "premium/full"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}
	files := map[string]string{
		"assets/bg2.html":                "<html>bg2</html>",
		"assets/bg1.html":                "<html>bg1</html>",
		"assets/readme.txt":              "not listed",
		"premium/preview/portfolio.html": "<html>preview</html>",
		"premium/full/portfolio.html":    "<html>full</html>",
	}
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
	}

	root, err := os.OpenRoot(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })

	return content.NewFSStore(root)
}

func TestFetch(t *testing.T) {
	store := newStore(t)

	file, err := store.Fetch(context.Background(), content.ClassFreePreview, "portfolio.html")
	require.NoError(t, err)
	assert.Equal(t, []byte("<html>preview</html>"), file.Data)
	assert.Contains(t, file.ContentType, "text/html")
}

func TestFetchPerClassDirectory(t *testing.T) {
	store := newStore(t)

	full, err := store.Fetch(context.Background(), content.ClassGatedFull, "portfolio.html")
	require.NoError(t, err)
	assert.Equal(t, []byte("<html>full</html>"), full.Data)

	preview, err := store.Fetch(context.Background(), content.ClassGatedPreview, "portfolio.html")
	require.NoError(t, err)
	assert.Equal(t, []byte("<html>preview</html>"), preview.Data)
}

func TestFetchNotFound(t *testing.T) {
	store := newStore(t)

	_, err := store.Fetch(context.Background(), content.ClassPublicAsset, "missing.html")
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestList(t *testing.T) {
	store := newStore(t)

	names, err := store.List(context.Background(), content.ClassPublicAsset)
	require.NoError(t, err)
	assert.Equal(t, []string{"bg1.html", "bg2.html"}, names)
}

func TestListMissingDirectory(t *testing.T) {
	root, err := os.OpenRoot(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })
	store := content.NewFSStore(root)

	_, err = store.List(context.Background(), content.ClassPublicAsset)
	assert.ErrorIs(t, err, content.ErrNotFound)
}
