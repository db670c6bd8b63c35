// Package config handles application configuration
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tasklist/backend"
	"tasklist/internal/store"
	"tasklist/internal/utils"
)

//go:embed config.sample.yaml
var sampleConfig string

// GetSampleConfig returns the embedded sample configuration content
func GetSampleConfig() string {
	return sampleConfig
}

const (
	// DefaultStorageBackend is used when storage.backend is not set
	DefaultStorageBackend = "file"
	// DefaultTransitionMs is the row fade duration when ui.transition_ms is not set
	DefaultTransitionMs = 300
)

// StorageBackends lists the accepted values for storage.backend
var StorageBackends = []string{"file", "memory", "sqlite"}

// OutputFormats lists the accepted values for output_format
var OutputFormats = []string{"text", "json"}

// StorageConfig selects where the task collection is persisted
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"` // Data directory, default XDG data dir
	Key     string `yaml:"key"`
}

// UIConfig holds user interface settings
type UIConfig struct {
	DefaultFilter string `yaml:"default_filter"`
	TransitionMs  *int   `yaml:"transition_ms"` // nil means DefaultTransitionMs, 0 disables fades
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	BackgroundEnabled *bool `yaml:"background_enabled"` // Controls background log file creation (default: true)
}

// Config represents the application configuration
type Config struct {
	Storage      StorageConfig `yaml:"storage"`
	UI           UIConfig      `yaml:"ui"`
	Logging      LoggingConfig `yaml:"logging"`
	NoPrompt     bool          `yaml:"no_prompt"`
	OutputFormat string        `yaml:"output_format"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	transition := DefaultTransitionMs
	return &Config{
		Storage: StorageConfig{
			Backend: DefaultStorageBackend,
			Key:     backend.DefaultKey,
		},
		UI: UIConfig{
			DefaultFilter: string(store.FilterAll),
			TransitionMs:  &transition,
		},
		NoPrompt:     false,
		OutputFormat: "text",
	}
}

// Load loads configuration from the specified path, or the default XDG path if empty.
// If the config file doesn't exist, it is created from the embedded sample.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = filepath.Join(GetConfigDir(), "config.yaml")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration and fills in defaults for unset fields.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in config file: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = DefaultStorageBackend
	}
	if c.Storage.Key == "" {
		c.Storage.Key = backend.DefaultKey
	}
	if c.Storage.Path != "" {
		c.Storage.Path = ExpandPath(c.Storage.Path)
	}
	if c.UI.DefaultFilter == "" {
		c.UI.DefaultFilter = string(store.FilterAll)
	}
	if c.OutputFormat == "" {
		c.OutputFormat = "text"
	}
}

// save writes the embedded sample configuration to path
func (c *Config) save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output_format: %q (must be 'text' or 'json')", c.OutputFormat)
	}

	if !contains(StorageBackends, c.Storage.Backend) {
		return utils.ErrUnknownStorage(c.Storage.Backend, StorageBackends)
	}

	if _, ok := store.ParseFilter(c.UI.DefaultFilter); !ok {
		return utils.ErrInvalidFilter(c.UI.DefaultFilter, filterNames())
	}

	if c.UI.TransitionMs != nil && *c.UI.TransitionMs < 0 {
		return fmt.Errorf("ui.transition_ms must not be negative, got %d", *c.UI.TransitionMs)
	}

	return nil
}

// ApplyFlags applies CLI flag overrides to the configuration
func (c *Config) ApplyFlags(noPrompt bool, outputFormat, storageBackend, dataDir string) {
	if noPrompt {
		c.NoPrompt = true
	}
	if outputFormat != "" {
		c.OutputFormat = outputFormat
	}
	if storageBackend != "" {
		c.Storage.Backend = storageBackend
	}
	if dataDir != "" {
		c.Storage.Path = ExpandPath(dataDir)
	}
}

// GetDataDir returns the storage directory, falling back to the XDG data dir
func (c *Config) GetDataDir() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return GetDataDir()
}

// GetStorageKey returns the key the collection is stored under
func (c *Config) GetStorageKey() string {
	if c.Storage.Key == "" {
		return backend.DefaultKey
	}
	return c.Storage.Key
}

// GetDefaultFilter returns the configured starting filter.
// Returns store.FilterAll if unset or invalid.
func (c *Config) GetDefaultFilter() store.Filter {
	if f, ok := store.ParseFilter(c.UI.DefaultFilter); ok {
		return f
	}
	return store.FilterAll
}

// GetTransitionDuration returns how long removed rows stay visible in the TUI.
func (c *Config) GetTransitionDuration() time.Duration {
	ms := DefaultTransitionMs
	if c.UI.TransitionMs != nil && *c.UI.TransitionMs >= 0 {
		ms = *c.UI.TransitionMs
	}
	return time.Duration(ms) * time.Millisecond
}

// IsBackgroundLoggingEnabled returns true if background logging is enabled.
// Returns true (default) if not configured.
func (c *Config) IsBackgroundLoggingEnabled() bool {
	if c.Logging.BackgroundEnabled == nil {
		return true
	}
	return *c.Logging.BackgroundEnabled
}

// IsJSON returns true when command output should be JSON
func (c *Config) IsJSON() bool {
	return c.OutputFormat == "json"
}

// LoadFromPath loads configuration from a specific path without creating defaults
func LoadFromPath(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config path is required")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // File doesn't exist, return nil config
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func filterNames() []string {
	names := make([]string, len(store.Filters))
	for i, f := range store.Filters {
		names[i] = string(f)
	}
	return names
}

// getXDGDir returns a directory path following the XDG base directory layout.
// envVar is the XDG environment variable (e.g., "XDG_CONFIG_HOME").
// fallbackPath is the relative path from home (e.g., ".config").
func getXDGDir(envVar, fallbackPath string) string {
	if xdgDir := os.Getenv(envVar); xdgDir != "" {
		return filepath.Join(xdgDir, "tasklist")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", fallbackPath, "tasklist")
	}
	return filepath.Join(home, fallbackPath, "tasklist")
}

// GetConfigDir returns the configuration directory following the XDG base directory layout
func GetConfigDir() string {
	return getXDGDir("XDG_CONFIG_HOME", ".config")
}

// GetDataDir returns the data directory following the XDG base directory layout
func GetDataDir() string {
	return getXDGDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
