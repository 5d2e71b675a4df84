package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/getlawrence/techprofile/internal/catalog"
	"github.com/getlawrence/techprofile/internal/source"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const fileName = ".techprofile.yaml"

// Config represents the techprofile configuration
type Config struct {
	// Source loading and classification settings
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`

	// Output settings
	Output OutputConfig `json:"output" yaml:"output"`

	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Result cache
	Cache CacheConfig `json:"cache" yaml:"cache"`

	// Retrieval record store
	Store StoreConfig `json:"store" yaml:"store"`

	Assistant AssistantConfig `json:"assistant" yaml:"assistant"`

	// Export destination for analyze --export
	Artifacts ArtifactsConfig `json:"artifacts" yaml:"artifacts"`

	Server ServerConfig `json:"server" yaml:"server"`

	// Extra framework/database signatures appended to the built-in catalog
	CustomSignatures []SignatureConfig `json:"custom_signatures" yaml:"custom_signatures"`
}

// AnalysisConfig contains analysis-specific settings
type AnalysisConfig struct {
	MaxFiles      int   `json:"max_files" yaml:"max_files"`
	MaxFileBytes  int64 `json:"max_file_bytes" yaml:"max_file_bytes"`
	MaxTotalBytes int64 `json:"max_total_bytes" yaml:"max_total_bytes"`

	// Parallelism for per-file classification; 0 means GOMAXPROCS
	Workers int `json:"workers" yaml:"workers"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	// Default output format: text, json or yaml
	Format string `json:"format" yaml:"format"`

	// Whether to show the per-aspect breakdown by default
	Detailed bool `json:"detailed" yaml:"detailed"`

	Color bool `json:"color" yaml:"color"`
}

type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

type CacheConfig struct {
	Size int `json:"size" yaml:"size"`
}

// StoreConfig selects the retrieval record backend
type StoreConfig struct {
	Backend string `json:"backend" yaml:"backend"` // memory or postgres
	DSN     string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

type AssistantConfig struct {
	Provider string `json:"provider" yaml:"provider"` // gemini or none
	Model    string `json:"model" yaml:"model"`
	APIKey   string `json:"-" yaml:"-"`
	// Request timeout in seconds
	Timeout int `json:"timeout" yaml:"timeout"`
}

// ArtifactsConfig chooses between an S3 bucket and a local directory
type ArtifactsConfig struct {
	Dir       string `json:"dir" yaml:"dir"`
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Region    string `json:"region,omitempty" yaml:"region,omitempty"`
	Bucket    string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	AccessKey string `json:"-" yaml:"-"`
	SecretKey string `json:"-" yaml:"-"`
	UseSSL    bool   `json:"use_ssl" yaml:"use_ssl"`
}

type ServerConfig struct {
	Addr          string `json:"addr" yaml:"addr"`
	AllowedOrigin string `json:"allowed_origin" yaml:"allowed_origin"`

	// Directory that /api/analyze-path requests must stay inside; empty means
	// the working directory
	Root string `json:"root,omitempty" yaml:"root,omitempty"`
}

// SignatureConfig defines a custom technology signature
type SignatureConfig struct {
	Name string `json:"name" yaml:"name"`

	// framework or database
	Kind string `json:"kind" yaml:"kind"`

	// Regular expressions, matched case-insensitively
	Patterns []string `json:"patterns" yaml:"patterns"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	limits := source.DefaultLimits()
	return &Config{
		Analysis: AnalysisConfig{
			MaxFiles:      limits.MaxFiles,
			MaxFileBytes:  limits.MaxFileBytes,
			MaxTotalBytes: limits.MaxTotalBytes,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Cache: CacheConfig{Size: 64},
		Store: StoreConfig{Backend: "memory"},
		Assistant: AssistantConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash",
			Timeout:  30,
		},
		Artifacts: ArtifactsConfig{Dir: "techprofile-artifacts"},
		Server: ServerConfig{
			Addr:          "127.0.0.1:8000",
			AllowedOrigin: "http://localhost:3000",
		},
		CustomSignatures: []SignatureConfig{},
	}
}

// Limits converts the analysis settings for the source loader.
func (c *Config) Limits() source.Limits {
	return source.Limits{
		MaxFiles:      c.Analysis.MaxFiles,
		MaxFileBytes:  c.Analysis.MaxFileBytes,
		MaxTotalBytes: c.Analysis.MaxTotalBytes,
	}
}

// Catalog compiles the built-in signatures plus any custom ones.
func (c *Config) Catalog() (*catalog.Catalog, error) {
	if len(c.CustomSignatures) == 0 {
		return catalog.Default(), nil
	}
	extra := make([]catalog.Signature, 0, len(c.CustomSignatures))
	for _, s := range c.CustomSignatures {
		extra = append(extra, catalog.Signature{
			Name:     s.Name,
			Kind:     catalog.Kind(strings.ToLower(s.Kind)),
			Patterns: s.Patterns,
		})
	}
	cat, err := catalog.New(extra...)
	if err != nil {
		return nil, fmt.Errorf("custom signatures: %w", err)
	}
	return cat, nil
}

// S3Enabled reports whether exports should go to a bucket.
func (c *Config) S3Enabled() bool {
	return c.Artifacts.Endpoint != "" && c.Artifacts.Bucket != ""
}

// LoadConfig loads configuration from a file, then applies .env and
// environment overrides
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			// JSON is valid YAML, so one decoder covers both
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	config.ApplyEnv(os.Getenv)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	if dsn := get("TECHPROFILE_DATABASE_URL"); dsn != "" {
		c.Store.Backend = "postgres"
		c.Store.DSN = dsn
	}
	for _, key := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if v := get(key); v != "" {
			c.Assistant.APIKey = v
			break
		}
	}
	if v := get("TECHPROFILE_MODEL"); v != "" {
		c.Assistant.Model = v
	}
	if v := get("TECHPROFILE_S3_ENDPOINT"); v != "" {
		c.Artifacts.Endpoint = v
	}
	if v := get("TECHPROFILE_S3_BUCKET"); v != "" {
		c.Artifacts.Bucket = v
	}
	if v := get("TECHPROFILE_S3_REGION"); v != "" {
		c.Artifacts.Region = v
	}
	if v := get("TECHPROFILE_S3_ACCESS_KEY"); v != "" {
		c.Artifacts.AccessKey = v
	}
	if v := get("TECHPROFILE_S3_SECRET_KEY"); v != "" {
		c.Artifacts.SecretKey = v
	}
	if v, err := strconv.ParseBool(get("TECHPROFILE_S3_USE_SSL")); err == nil {
		c.Artifacts.UseSSL = v
	}
	if v := get("TECHPROFILE_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := get("TECHPROFILE_ALLOWED_ORIGIN"); v != "" {
		c.Server.AllowedOrigin = v
	}
	if v := get("TECHPROFILE_SERVER_ROOT"); v != "" {
		c.Server.Root = v
	}
	if v := get("TECHPROFILE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate rejects settings no component can work with.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q", c.Output.Format)
	}
	switch c.Store.Backend {
	case "memory":
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store backend postgres requires a dsn")
		}
	default:
		return fmt.Errorf("invalid store backend %q", c.Store.Backend)
	}
	switch c.Assistant.Provider {
	case "gemini", "none":
	default:
		return fmt.Errorf("invalid assistant provider %q", c.Assistant.Provider)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache size must not be negative")
	}
	return nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	if _, err := os.Stat(fileName); err == nil {
		return fileName
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		candidate := filepath.Join(homeDir, fileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// GetConfigPath returns the config file path to use
func GetConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	found := findConfigFile()
	if found != "" {
		return found
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(homeDir, fileName)
	}

	return fileName
}
