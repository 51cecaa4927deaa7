package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for unitoken.
type Config struct {
	Tokenize TokenizeConfig `yaml:"tokenize"`
	Batch    BatchConfig    `yaml:"batch"`
	Detector DetectorConfig `yaml:"detector"`
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TokenizeConfig holds single-item tokenization configuration.
type TokenizeConfig struct {
	ScoreThreshold   float64 `yaml:"score_threshold"`
	FallbackLanguage string  `yaml:"fallback_language"` // Reported when the detector cannot decide
}

// BatchConfig holds batch tokenization configuration.
type BatchConfig struct {
	Size           int      `yaml:"size"`
	ScoreThreshold float64  `yaml:"score_threshold"` // Items below are marked invalid (0 = disabled)
	Includes       []string `yaml:"includes"`
	Excludes       []string `yaml:"excludes"`
}

// DetectorConfig holds language detector configuration.
type DetectorConfig struct {
	Languages           []string `yaml:"languages"` // ISO 639-1 codes, empty = all supported
	Preload             bool     `yaml:"preload"`
	LowAccuracy         bool     `yaml:"low_accuracy"`
	MinRelativeDistance float64  `yaml:"min_relative_distance"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // gin mode: "debug", "release", "test"
}

// StoreConfig holds run store configuration.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // Empty = .unitoken/runs.db under the root dir
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Tokenize: TokenizeConfig{
			ScoreThreshold:   0.9,
			FallbackLanguage: "en",
		},
		Batch: BatchConfig{
			Size:           256,
			ScoreThreshold: 0,
			Includes:       []string{"**/*.txt", "**/*.md"},
			Excludes:       []string{"**/.git/**", "**/node_modules/**", "**/vendor/**", "**/.unitoken/**"},
		},
		Detector: DetectorConfig{
			Preload:     false,
			LowAccuracy: false,
		},
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "release",
		},
		Store: StoreConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for unitoken.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "unitoken.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".unitoken", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// StoreDBPath returns the run store path for a root directory.
func (c *Config) StoreDBPath(dir string) string {
	if c.Store.Path != "" {
		if filepath.IsAbs(c.Store.Path) {
			return c.Store.Path
		}
		return filepath.Join(dir, c.Store.Path)
	}
	return filepath.Join(dir, ".unitoken", "runs.db")
}

// EnsureDataDir ensures the directory holding the run store exists.
func (c *Config) EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Dir(c.StoreDBPath(dir)), 0755)
}
