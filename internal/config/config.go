// Package config loads runtime settings from config.toml, ARCHVERSIONS_*
// environment variables and command line flags through viper.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/git-pkgs/archversions"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "ARCHVERSIONS"

// Config holds all runtime configuration.
type Config struct {
	CatalogURL       string        `mapstructure:"catalog_url"`
	Source           string        `mapstructure:"source"`
	UserAgent        string        `mapstructure:"user_agent"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRetries       int           `mapstructure:"max_retries"`
	BreakerThreshold int           `mapstructure:"breaker_threshold"`
	SkipMalformed    bool          `mapstructure:"skip_malformed"`
	FallbackToStable bool          `mapstructure:"fallback_to_stable"`
	Verbose          bool          `mapstructure:"verbose"`
}

// Dir returns the per-user configuration directory.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, "archversions")
}

// Init points viper at the config file. An explicit cfgFile must exist;
// otherwise config.toml is searched in the working directory and in Dir,
// and a missing file is not an error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(Dir())
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("catalog_url", archversions.DefaultCatalogURL)
	viper.SetDefault("source", "maven")
	viper.SetDefault("user_agent", "archversions")
	viper.SetDefault("timeout", 30*time.Second)
	viper.SetDefault("max_retries", 3)
	viper.SetDefault("breaker_threshold", 5)
	viper.SetDefault("skip_malformed", false)
	viper.SetDefault("fallback_to_stable", true)
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.CatalogURL == "":
		return errors.New("config: catalog_url must not be empty")
	case c.Source == "":
		return errors.New("config: source must not be empty")
	case c.Timeout <= 0:
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	case c.MaxRetries < 0:
		return fmt.Errorf("config: max_retries must not be negative, got %d", c.MaxRetries)
	case c.BreakerThreshold < 1:
		return fmt.Errorf("config: breaker_threshold must be at least 1, got %d", c.BreakerThreshold)
	}
	return nil
}
