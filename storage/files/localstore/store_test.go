package localstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bouncebacklearning/backend/core"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := New(dir)
	require.NoError(t, err)

	sf, err := store.Save(ctx, "maths 2023.pdf", strings.NewReader("%PDF-1.4 content"))
	require.NoError(t, err)
	assert.Equal(t, "maths 2023.pdf", sf.Name)
	assert.True(t, strings.HasPrefix(sf.Path, URLPrefix))
	assert.True(t, strings.HasSuffix(sf.Path, "-maths_2023.pdf"))

	onDisk, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(sf.Path, URLPrefix)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 content", string(onDisk))

	rc, err := store.Open(ctx, sf.Path)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.4 content", string(content))

	require.NoError(t, store.Remove(ctx, sf.Path))
	_, err = store.Open(ctx, sf.Path)
	assert.ErrorIs(t, err, core.ErrFileNotFound)
	assert.ErrorIs(t, store.Remove(ctx, sf.Path), core.ErrFileNotFound)
}

func TestStore_RejectsPathsOutsideDir(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	require.NoError(t, err)

	for _, path := range []string{
		"/etc/passwd",
		"/uploads/../secret.pdf",
		"/uploads/",
		"s3://bucket/key.pdf",
	} {
		_, err := store.Open(ctx, path)
		assert.ErrorIs(t, err, core.ErrFileNotFound, path)
	}
}
