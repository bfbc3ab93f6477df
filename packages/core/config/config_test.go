package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "dev", cfg.DefaultEnvironment)
	assert.Equal(t, "environments", cfg.EnvironmentsDir)
	assert.Equal(t, "requests", cfg.RequestsDir)
	assert.False(t, cfg.GetMultiline())
	assert.True(t, cfg.IsDefault())
}

func TestFindAndLoadConfig_NoFile(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.IsDefault())
}

func TestFindAndLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	content := `defaultEnvironment: staging
requestsDir: api
historyFile: .curlspec/history.db
multiline: true
maskSecrets: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".curlspec.yaml"), []byte(content), 0644))

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.DefaultEnvironment)
	assert.Equal(t, "api", cfg.RequestsDir)
	assert.Equal(t, "environments", cfg.EnvironmentsDir)
	assert.Equal(t, ".curlspec/history.db", cfg.HistoryFile)
	assert.True(t, cfg.GetMultiline())
	assert.True(t, cfg.GetMaskSecrets())
	assert.False(t, cfg.GetCopy())
	assert.False(t, cfg.IsDefault())
}

func TestLoadConfig_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"defaultEnvironment": "prod", "noColor": true}`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.DefaultEnvironment)
	assert.True(t, cfg.GetNoColor())
}

func TestLoadConfig_RCFileIsYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".curlspecrc"), []byte("envPrefix: API_\n"), 0644))

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "API_", cfg.EnvPrefix)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("CURLSPEC_DEFAULTENVIRONMENT", "qa")
	t.Setenv("CURLSPEC_COPY", "true")

	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "qa", cfg.DefaultEnvironment)
	assert.True(t, cfg.GetCopy())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	merged := base.Merge(&Config{
		DefaultEnvironment: "prod",
		Multiline:          BoolPtr(true),
	})

	assert.Equal(t, "prod", merged.DefaultEnvironment)
	assert.Equal(t, "requests", merged.RequestsDir)
	assert.True(t, merged.GetMultiline())
	assert.False(t, merged.GetNoColor())

	assert.Equal(t, "dev", base.DefaultEnvironment, "merge must not modify receiver")
	assert.Same(t, base, base.Merge(nil))
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".curlspec.yaml")

	cfg := DefaultConfig()
	cfg.DefaultEnvironment = "local"
	cfg.MaskSecrets = BoolPtr(true)
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "local", loaded.DefaultEnvironment)
	assert.True(t, loaded.GetMaskSecrets())
}
