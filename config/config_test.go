package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mhpenta/bananagen"
	"github.com/mhpenta/bananagen/provider/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetAPIKey clears the key for the test and restores it afterwards.
func unsetAPIKey(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAPIKey, "")
	require.NoError(t, os.Unsetenv(EnvAPIKey))
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	unsetAPIKey(t)

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, bananagen.DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, gemini.DefaultImageModel, cfg.ImageModel)
}

func TestLoad_DefaultFileOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvAPIKey, "from-env")

	yaml := "image_model: nano-banana-1\noutput_dir: renders\nrequests_per_minute: 10\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(yaml), 0o644))

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "nano-banana-1", cfg.ImageModel)
	assert.Equal(t, gemini.DefaultTextModel, cfg.TextModel)
	assert.Equal(t, "renders", cfg.OutputDir)
	assert.Equal(t, 10, cfg.RequestsPerMinute)
	assert.Equal(t, "from-env", cfg.APIKey)

	g := cfg.GeminiConfig()
	assert.Equal(t, "from-env", g.APIKey)
	assert.Equal(t, 10, g.RequestsPerMinute)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	unsetAPIKey(t)
	// godotenv sets the variable process-wide.
	t.Cleanup(func() { os.Unsetenv(EnvAPIKey) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvAPIKey+"=from-dotenv\n"), 0o644))

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.APIKey)
}

func TestLoad_EnvironmentWinsOverEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvAPIKey, "from-env")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvAPIKey+"=from-dotenv\n"), 0o644))

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := Load(filepath.Join(dir, "missing.yaml"), "")
	assert.Error(t, err, "an explicit config path must exist")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("image_model: [unclosed"), 0o644))
	_, err = Load(bad, "")
	assert.Error(t, err)
}
