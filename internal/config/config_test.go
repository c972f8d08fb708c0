package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidate checks log level and compression level validation.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Empty level falls back to the default.
	settings := &Config{CompressionLevel: 9}
	require.NoError(t, Validate(settings))
	require.Equal(t, DefaultLogLevel, settings.LogLevel)

	// Unknown level.
	settings = &Config{LogLevel: "loud"}
	require.Error(t, Validate(settings))

	// Level out of deflate range.
	settings = &Config{LogLevel: "debug", CompressionLevel: 10}
	require.Error(t, Validate(settings))

	settings = &Config{LogLevel: "warn", CompressionLevel: -2}
	require.NoError(t, Validate(settings))
}

// TestLoad_Defaults returns defaults for an empty path and keeps defaults for absent keys.
func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o600))

	cfg, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, DefaultCompressionLevel, cfg.CompressionLevel)
}

// TestLoad_Missing fails when the given file does not exist.
func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	settings := &Config{
		LogLevel:         "warn",
		CompressionLevel: 0,
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	require.Error(t, Save(path, nil))
}
