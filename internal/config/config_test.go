package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, 200, c.Analysis.MaxFiles)
	assert.Equal(t, int64(1<<20), c.Limits().MaxFileBytes)
	assert.Equal(t, "memory", c.Store.Backend)
	assert.False(t, c.S3Enabled())
	assert.Equal(t, "127.0.0.1:8000", c.Server.Addr)
	assert.Empty(t, c.Server.Root)
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
analysis:
  max_files: 50
  workers: 4
output:
  format: json
custom_signatures:
  - name: Gin
    kind: Framework
    patterns: ["gin-gonic/gin"]
`), 0o644))
	t.Chdir(dir)

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 50, c.Analysis.MaxFiles)
	assert.Equal(t, int64(10<<20), c.Analysis.MaxTotalBytes)
	assert.Equal(t, 4, c.Analysis.Workers)
	assert.Equal(t, "json", c.Output.Format)

	cat, err := c.Catalog()
	require.NoError(t, err)
	names := []string{}
	for _, s := range cat.Frameworks() {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Gin")
}

func TestLoadConfig_JSONAccepted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output": {"format": "yaml"}}`), 0o644))
	t.Chdir(dir)

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", c.Output.Format)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	c, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "text", c.Output.Format)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: xml\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("output: [unterminated"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	// godotenv never overrides variables that are already set
	t.Setenv("TECHPROFILE_ADDR", "")
	require.NoError(t, os.Unsetenv("TECHPROFILE_ADDR"))
	require.NoError(t, os.WriteFile(".env", []byte("TECHPROFILE_ADDR=:9999\n"), 0o644))

	c, err := LoadConfig(filepath.Join(dir, "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":9999", c.Server.Addr)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TECHPROFILE_DATABASE_URL":  "postgres://u:p@localhost/db",
		"GOOGLE_API_KEY":            "g-key",
		"TECHPROFILE_S3_ENDPOINT":   "localhost:9000",
		"TECHPROFILE_S3_BUCKET":     "profiles",
		"TECHPROFILE_S3_ACCESS_KEY": "a",
		"TECHPROFILE_S3_SECRET_KEY": "s",
		"TECHPROFILE_S3_USE_SSL":    "true",
		"TECHPROFILE_LOG_LEVEL":     "debug",
		"TECHPROFILE_SERVER_ROOT":   "/srv/projects",
	}
	c := DefaultConfig()
	c.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "postgres", c.Store.Backend)
	assert.Equal(t, "postgres://u:p@localhost/db", c.Store.DSN)
	assert.Equal(t, "g-key", c.Assistant.APIKey)
	assert.True(t, c.S3Enabled())
	assert.True(t, c.Artifacts.UseSSL)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "/srv/projects", c.Server.Root)
	require.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	c := DefaultConfig()
	c.Store.Backend = "postgres"
	assert.Error(t, c.Validate())

	c = DefaultConfig()
	c.Assistant.Provider = "openai"
	assert.Error(t, c.Validate())

	c = DefaultConfig()
	c.Cache.Size = -1
	assert.Error(t, c.Validate())
}

func TestCatalog_InvalidSignature(t *testing.T) {
	c := DefaultConfig()
	c.CustomSignatures = []SignatureConfig{{Name: "X", Kind: "queue", Patterns: []string{"x"}}}
	_, err := c.Catalog()
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "nested", fileName)
	c := DefaultConfig()
	c.Cache.Size = 8
	c.Artifacts.SecretKey = "never-written"
	require.NoError(t, SaveConfig(c, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "never-written")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.Cache.Size)
}

func TestGetConfigPath(t *testing.T) {
	assert.Equal(t, "/tmp/x.yaml", GetConfigPath("/tmp/x.yaml"))
}
