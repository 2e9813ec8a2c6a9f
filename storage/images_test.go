package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai_content_generator/schema"
)

func TestImageStoreSave(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save(schema.PlatformMedium, []byte{1, 2, 3})
	require.NoError(t, err)

	name := filepath.Base(path)
	assert.True(t, strings.HasPrefix(name, "medium_"), "name %q", name)
	assert.True(t, strings.HasSuffix(name, ".png"), "name %q", name)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestImageStoreUniqueNames(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		path, err := store.Save(schema.PlatformTwitter, []byte("png"))
		require.NoError(t, err)
		assert.False(t, seen[path], "duplicate path %q", path)
		seen[path] = true
	}
}

func TestImageStoreRejectsEmpty(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(schema.PlatformTwitter, nil)
	assert.Error(t, err)
}

func TestNewImageStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	_, err := NewImageStore(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestNewImageStoreEmptyDir(t *testing.T) {
	_, err := NewImageStore("")
	assert.Error(t, err)
}
