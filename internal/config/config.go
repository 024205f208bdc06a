// Package config provides configuration management for gitprompt.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/xvierd/gitprompt/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. GITPROMPT_COLOR.
const EnvPrefix = "GITPROMPT"

// Config holds all configuration for gitprompt.
type Config struct {
	Color string    `mapstructure:"color"`
	Log   LogConfig `mapstructure:"log"`
}

// LogConfig holds debug logging settings.
type LogConfig struct {
	Debug    bool   `mapstructure:"debug"`
	File     string `mapstructure:"file"`
	MaxFiles int    `mapstructure:"max_files"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Color: string(domain.ColorAlways),
		Log: LogConfig{
			Debug:    false,
			File:     "",
			MaxFiles: 20,
		},
	}
}

// ColorMode returns the validated color mode. NO_COLOR wins over the config.
func (c *Config) ColorMode() (domain.ColorMode, error) {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return domain.ColorNever, nil
	}
	return domain.ValidateColorMode(c.Color)
}

// Load reads the config file at path, applying GITPROMPT_* environment
// overrides. A missing file is not an error; it is never created.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, "gitprompt", "config.toml"), nil
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("color", defaults.Color)
	v.SetDefault("log.debug", defaults.Log.Debug)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.max_files", defaults.Log.MaxFiles)
}
