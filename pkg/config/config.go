package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config holds the application settings. The splash document itself lives
// in the file Document points at.
type Config struct {
	Document  string `mapstructure:"document"`
	LogLevel  string `mapstructure:"log_level"`
	LogFile   string `mapstructure:"log_file"`
	StartOpen bool   `mapstructure:"start_open"`
	Mouse     bool   `mapstructure:"mouse"`
}

// Keys lists the settings config set accepts.
var Keys = []string{"document", "log_level", "log_file", "start_open", "mouse"}

var (
	cfg *Config
	// configFile overrides the search path when set with SetConfigFile.
	configFile string
)

// SetConfigFile makes Load read path instead of searching for the config.
func SetConfigFile(path string) {
	configFile = path
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	// Reset viper to ensure fresh load
	viper.Reset()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("splash-screen")
		viper.SetConfigType("yaml")

		// Add config paths
		viper.AddConfigPath(".")
		if dir := Dir(); dir != "" {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath("/etc/splash-screen")
	}

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.SetEnvPrefix("SPLASH")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is ok, we'll create one during init
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return cfg, nil
}

// flagKeys maps command-line flags to the settings they override.
var flagKeys = map[string]string{
	"document":   "document",
	"log-file":   "log_file",
	"start-open": "start_open",
}

// BindFlags layers flags over the loaded settings. Flags the user did not set
// leave the file, environment and default values alone. A set --debug flag
// lowers the log level to debug.
func BindFlags(flags *pflag.FlagSet) (*Config, error) {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("error binding flag %s: %w", name, err)
		}
	}
	if debug, err := flags.GetBool("debug"); err == nil && debug {
		viper.Set("log_level", "debug")
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		cfg, _ = Load()
	}
	return cfg
}

// Dir returns the per-user settings directory.
func Dir() string {
	home := os.Getenv("HOME")
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "splash-screen")
}

// File returns the settings file Save writes to.
func File() string {
	if configFile != "" {
		return configFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(Dir(), "splash-screen.yaml")
}

// Save saves the current configuration to file
func Save() error {
	if cfg == nil {
		return fmt.Errorf("no configuration to save")
	}

	file := File()
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	return viper.WriteConfigAs(file)
}

// setDefaults sets default configuration values
func setDefaults() {
	home := os.Getenv("HOME")
	viper.SetDefault("document", filepath.Join(home, ".config", "splash-screen", "splash.json"))
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_file", filepath.Join(home, ".cache", "splash-screen", "splash.log"))
	viper.SetDefault("start_open", false)
	viper.SetDefault("mouse", true)
}

// Update updates a configuration value
func Update(key string, value interface{}) error {
	if !validKey(key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	viper.Set(key, value)

	// Reload config
	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("error unmarshaling updated config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return Save()
}

func validKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Validate validates the current configuration
func (c *Config) Validate() error {
	if c.Document == "" {
		return fmt.Errorf("document location is required")
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	if c.LogFile == "" {
		return fmt.Errorf("log file is required")
	}

	return nil
}
