package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotenv(t *testing.T) {
	clearSlateEnv(t)
	os.Unsetenv(EnvStore)
	os.Unsetenv(EnvPassword)

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := EnvStore + "=example.myshopify.com\n" + EnvPassword + "=shppa_dotenv\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	require.NoError(t, LoadDotenv(path))

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "example.myshopify.com", cfg.Store)
	assert.Equal(t, "shppa_dotenv", cfg.Password.Reveal())
}

func TestLoadDotenvMissingFileIsFine(t *testing.T) {
	require.NoError(t, LoadDotenv(filepath.Join(t.TempDir(), ".env")))
}

func TestFromThemeKitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `development:
  password: shppa_yaml
  theme_id: "123456"
  store: example.myshopify.com
  timeout: 90s
  ignore_files:
    - config/settings_data.json
production:
  password: shppa_prod
  theme_id: "654321"
  store: example.myshopify.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := FromThemeKitFile(path, "development")
	require.NoError(t, err)
	assert.Equal(t, "example.myshopify.com", cfg.Store)
	assert.Equal(t, "shppa_yaml", cfg.Password.Reveal())
	assert.Equal(t, "123456", cfg.ThemeID)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"config/settings_data.json"}, cfg.IgnoreFiles)

	_, err = FromThemeKitFile(path, "staging")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "staging")
}

func TestFillFrom(t *testing.T) {
	cfg := &Config{
		Store:       "fromenv.myshopify.com",
		Environment: "development",
	}
	cfg.FillFrom(&Config{
		Store:       "fromfile.myshopify.com",
		Password:    "shppa_file",
		ThemeID:     "123456",
		Timeout:     time.Minute,
		IgnoreFiles: []string{"config/settings_data.json"},
	})

	assert.Equal(t, "fromenv.myshopify.com", cfg.Store, "environment wins over file defaults")
	assert.Equal(t, "shppa_file", cfg.Password.Reveal())
	assert.Equal(t, "123456", cfg.ThemeID)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.Equal(t, []string{"config/settings_data.json"}, cfg.IgnoreFiles)
}
