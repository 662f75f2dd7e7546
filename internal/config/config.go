// Package config loads console configuration: defaults, an optional
// config.yaml, and URM_-prefixed environment overrides, in that precedence
// order (lowest to highest).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyAPIBaseURL = "api_base_url"
	KeyListen     = "listen"
)

// Defaults.
const (
	DefaultAPIBaseURL = "http://localhost:3001"
	DefaultListen     = ":8080"
)

// Config holds the resolved console settings.
type Config struct {
	APIBaseURL string
	Listen     string
}

// Load reads configuration. configDir may be empty to skip file loading;
// a missing config.yaml in a given directory is not an error.
func Load(configDir string) (Config, error) {
	v := viper.New()
	v.SetDefault(KeyAPIBaseURL, DefaultAPIBaseURL)
	v.SetDefault(KeyListen, DefaultListen)

	v.SetEnvPrefix("URM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return Config{
		APIBaseURL: v.GetString(KeyAPIBaseURL),
		Listen:     v.GetString(KeyListen),
	}, nil
}
