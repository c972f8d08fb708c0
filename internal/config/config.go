package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/asset-packager/internal/archive"
	"github.com/oshokin/asset-packager/internal/logger"
)

// Config holds optional tuning shared by the packager commands.
type Config struct {
	// LogLevel is the minimum level of printed messages (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// CompressionLevel is the deflate level for archive entries, from -2 (Huffman only) to 9.
	CompressionLevel int `yaml:"compression_level"`
}

const (
	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultCompressionLevel lets the compressor pick its balanced level.
	DefaultCompressionLevel = -1

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownLogLevel is returned for a log level zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:         DefaultLogLevel,
		CompressionLevel: DefaultCompressionLevel,
	}
}

// Load reads configuration from path. Keys absent from the file keep their defaults.
// An empty path yields the defaults without touching the filesystem.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills an empty log level with the default.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	if err := archive.ValidateLevel(cfg.CompressionLevel); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	return nil
}
