package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangedThemeFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "layout"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "layout", "theme.liquid"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{}"), 0o644))

	files, err := changedThemeFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"layout/theme.liquid", "settings.json"}, files)
}

func TestChangedThemeFilesNotARepo(t *testing.T) {
	_, err := changedThemeFiles(t.TempDir())
	require.Error(t, err)
}
