// Package config loads runtime configuration for a magnetar invocation from
// .magnetar.yaml, MAGNETAR_* env vars, and CLI flags (via viper).
package config

import "github.com/spf13/viper"

// Config holds all runtime configuration for a magnetar run.
type Config struct {
	Damping        float64 `mapstructure:"damping"`
	Samples        int     `mapstructure:"samples"`
	Epsilon        float64 `mapstructure:"epsilon"`
	MaxIterations  int     `mapstructure:"max_iterations"`
	HistoryDB      string  `mapstructure:"history_db"`
	HistoryEnabled bool    `mapstructure:"history_enabled"`
	TelemetryDir   string  `mapstructure:"telemetry_dir"`
	CatalogPath    string  `mapstructure:"catalog_path"`
	Verbose        bool    `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("damping", 0.85)
	viper.SetDefault("samples", 10000)
	viper.SetDefault("epsilon", 1e-6)
	viper.SetDefault("max_iterations", 100)
	viper.SetDefault("history_db", ".magnetar/history.db")
	viper.SetDefault("history_enabled", true)
	viper.SetDefault("telemetry_dir", ".magnetar/telemetry")
	viper.SetDefault("catalog_path", ".magnetar/corpora.toml")
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
