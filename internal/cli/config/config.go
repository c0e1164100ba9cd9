package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the fluxline-inspect configuration.
type Config struct {
	// Registry is the path to a registry cache file. Empty means the
	// builtin snapshot embedded in the binary.
	Registry string `mapstructure:"registry"`
	NoColor  bool   `mapstructure:"no_color"`
	Verbose  bool   `mapstructure:"verbose"`
}

// Load loads the configuration from fluxline.yml or fluxline.yaml in the
// working directory, overlaid with FLUXLINE_* environment variables.
// A missing config file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("registry", "")
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", false)

	v.SetConfigName("fluxline")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FLUXLINE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
