package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useHome(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	SetConfigFile("")
	t.Cleanup(func() {
		SetConfigFile("")
		cfg = nil
		viper.Reset()
	})
	return tempDir
}

func TestConfigDefaults(t *testing.T) {
	home := useHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Test default values
	assert.Equal(t, filepath.Join(home, ".config", "splash-screen", "splash.json"), cfg.Document)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(home, ".cache", "splash-screen", "splash.log"), cfg.LogFile)
	assert.False(t, cfg.StartOpen)
	assert.True(t, cfg.Mouse)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  &Config{Document: "splash.json", LogLevel: "debug", LogFile: "splash.log"},
			wantErr: false,
		},
		{
			name:    "missing document",
			config:  &Config{LogLevel: "info", LogFile: "splash.log"},
			wantErr: true,
			errMsg:  "document location is required",
		},
		{
			name:    "bad log level",
			config:  &Config{Document: "splash.json", LogLevel: "loud", LogFile: "splash.log"},
			wantErr: true,
			errMsg:  "invalid log level",
		},
		{
			name:    "missing log file",
			config:  &Config{Document: "splash.json", LogLevel: "info"},
			wantErr: true,
			errMsg:  "log file is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigUpdate(t *testing.T) {
	home := useHome(t)

	// Load initial config
	_, err := Load()
	require.NoError(t, err)

	// Update a value
	err = Update("document", "https://example.com/splash.json")
	assert.NoError(t, err)

	// Verify the update
	assert.Equal(t, "https://example.com/splash.json", Get().Document)
	_, err = os.Stat(filepath.Join(home, ".config", "splash-screen", "splash-screen.yaml"))
	assert.NoError(t, err)

	// and it survives a reload
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/splash.json", cfg.Document)
}

func TestConfigUpdateRejects(t *testing.T) {
	useHome(t)
	_, err := Load()
	require.NoError(t, err)

	assert.Error(t, Update("gcp.project_id", "x"))
	assert.Error(t, Update("log_level", "loud"))
}

func TestConfigGet(t *testing.T) {
	useHome(t)

	cfg := Get()
	assert.NotNil(t, cfg)

	// Should return same instance on subsequent calls
	cfg2 := Get()
	assert.Equal(t, cfg, cfg2)
}

func TestConfigFileAndEnvironment(t *testing.T) {
	dir := useHome(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("document: /srv/splash.json\nstart_open: true\n"), 0o644))
	t.Setenv("SPLASH_LOG_LEVEL", "debug")

	SetConfigFile(path)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/splash.json", cfg.Document)
	assert.True(t, cfg.StartOpen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, path, File())
}

func TestBindFlags(t *testing.T) {
	home := useHome(t)

	newFlags := func() *pflag.FlagSet {
		fs := pflag.NewFlagSet("splash", pflag.ContinueOnError)
		fs.String("document", "", "")
		fs.String("log-file", "", "")
		fs.Bool("debug", false, "")
		fs.Bool("start-open", false, "")
		return fs
	}

	t.Run("unset flags keep defaults", func(t *testing.T) {
		_, err := Load()
		require.NoError(t, err)
		cfg, err := BindFlags(newFlags())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "splash-screen", "splash.json"), cfg.Document)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.StartOpen)
	})

	t.Run("set flags override", func(t *testing.T) {
		_, err := Load()
		require.NoError(t, err)
		fs := newFlags()
		require.NoError(t, fs.Parse([]string{"--document", "/srv/lock.yaml", "--debug", "--start-open"}))
		cfg, err := BindFlags(fs)
		require.NoError(t, err)
		assert.Equal(t, "/srv/lock.yaml", cfg.Document)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.StartOpen)
		assert.Same(t, cfg, Get())
	})
}
