package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestSaveDataURI(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "/media")
	require.NoError(t, err)

	url, err := store.Save("data:image/png;base64," + tinyPNG)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/recipes/images/"), "unexpected url %q", url)
	assert.True(t, strings.HasSuffix(url, ".png"))

	rel := strings.TrimPrefix(url, "/media/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestSaveBarePayload(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "/media")
	require.NoError(t, err)

	url, err := store.Save(tinyPNG)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"))
}

func TestSaveRejectsBadInput(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "/media")
	require.NoError(t, err)

	_, err = store.Save("data:image/png;notbase64")
	assert.Error(t, err)

	_, err = store.Save("!!! not base64 !!!")
	assert.Error(t, err)

	_, err = store.Save("")
	assert.Error(t, err)
}

func TestSaveUniqueNames(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "/media")
	require.NoError(t, err)

	first, err := store.Save(tinyPNG)
	require.NoError(t, err)
	second, err := store.Save(tinyPNG)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
