// Package config resolves application configuration from flags, the
// environment, an optional YAML file and defaults, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable (ALGOQUIZ_DB, ALGOQUIZ_BANK, ...).
const EnvPrefix = "ALGOQUIZ"

// Keys.
const (
	KeyDB        = "db"
	KeyBank      = "bank"
	KeyExportDir = "export_dir"
)

// Config holds all application configuration.
type Config struct {
	// DB is the SQLite database path. Empty means the default data path.
	DB string `mapstructure:"db"`

	// Bank is a YAML or JSON question bank file. Empty means the built-in bank.
	Bank string `mapstructure:"bank"`

	// ExportDir is where history exports are written.
	ExportDir string `mapstructure:"export_dir"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// New returns a viper instance with defaults and environment binding set up.
// Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyBank, "")
	v.SetDefault(KeyExportDir, ".")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads the config file and decodes the merged configuration. When
// file is empty, config.yaml in DefaultDir is read if it exists.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	return &cfg, nil
}

// DefaultDir resolves the config directory:
// 1. $XDG_CONFIG_HOME/algoquiz
// 2. ~/.config/algoquiz
func DefaultDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "algoquiz"), nil
}
