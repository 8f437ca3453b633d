package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	xdgAppName = "focusflow"
	configFile = "config.json"
	envPrefix  = "FOCUSFLOW"
)

// Config is the complete FocusFlow configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" json:"storage"`
	Suggest SuggestConfig `mapstructure:"suggest" json:"suggest"`
	UI      UIConfig      `mapstructure:"ui" json:"ui"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
}

// StorageConfig selects where the task list is kept.
type StorageConfig struct {
	// Backend is "file" (one JSON file per key) or "bolt" (a bbolt database).
	Backend string `mapstructure:"backend" json:"backend"`
	// Dir holds the storage files. Empty means ConfigDir().
	Dir string `mapstructure:"dir" json:"dir,omitempty"`
}

// SuggestConfig controls the Gemini suggestion service.
type SuggestConfig struct {
	Model string `mapstructure:"model" json:"model"`
	// APIKey is optional; GEMINI_API_KEY, credentials.toml and default
	// Google credentials are tried when it is empty.
	APIKey        string `mapstructure:"api_key" json:"api_key,omitempty"`
	DefaultIntent string `mapstructure:"default_intent" json:"default_intent"`
}

// UIConfig controls the terminal UI.
type UIConfig struct {
	// Mode is "app" or "widget".
	Mode string `mapstructure:"mode" json:"mode"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" json:"level"`
	// Dir receives focusflow.log. Empty logs to stderr.
	Dir string `mapstructure:"dir" json:"dir,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Backend: "file"},
		Suggest: SuggestConfig{
			Model:         "gemini-3-flash-preview",
			DefaultIntent: "productive day",
		},
		UI:      UIConfig{Mode: ModeApp},
		Logging: LoggingConfig{Level: "WARN"},
	}
}

// SetDefaults registers Default() with viper.
func SetDefaults() {
	d := Default()
	viper.SetDefault("storage.backend", d.Storage.Backend)
	viper.SetDefault("storage.dir", d.Storage.Dir)
	viper.SetDefault("suggest.model", d.Suggest.Model)
	viper.SetDefault("suggest.api_key", d.Suggest.APIKey)
	viper.SetDefault("suggest.default_intent", d.Suggest.DefaultIntent)
	viper.SetDefault("ui.mode", d.UI.Mode)
	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.dir", d.Logging.Dir)
}

// Init wires viper to the config file and FOCUSFLOW_* environment variables.
// An explicit cfgFile overrides the default location. A missing file is not an error.
func Init(cfgFile string) error {
	SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("json")
		viper.AddConfigPath(ConfigDir())
	}

	viper.SetEnvPrefix(envPrefix)
	// FOCUSFLOW_STORAGE_BACKEND for storage.backend
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load reads the configuration from viper and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// StorageDir returns the configured storage directory or ConfigDir().
func (c *Config) StorageDir() string {
	if c.Storage.Dir != "" {
		return c.Storage.Dir
	}
	return ConfigDir()
}

// ConfigDir returns $XDG_CONFIG_HOME/focusflow, or ~/.config/focusflow.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, xdgAppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + xdgAppName
	}
	return filepath.Join(home, ".config", xdgAppName)
}

// ConfigFile returns the path of the config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), configFile)
}

// Save writes cfg to path as indented JSON.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
