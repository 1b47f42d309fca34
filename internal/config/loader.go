// Package config loads server settings from config.yaml with environment
// overrides.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server binary needs at startup.
type Config struct {
	ListenAddr     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadBytes int64
	AllowedOrigins []string

	CacheCapacity int
	CacheTTL      time.Duration

	MaxRowsAnalyze int
	TaxRate        float64

	Debug bool
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		ListenAddr:     ":8080",
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxUploadBytes: 20 << 20, // 20 MiB
		AllowedOrigins: []string{"*"},
		CacheCapacity:  256,
		CacheTTL:       30 * time.Minute,
		MaxRowsAnalyze: 10000,
		TaxRate:        0.11,
	}
}

// Load reads config.yaml from the given path, falling back to defaults and
// RAPIH_-prefixed environment variables when the file is absent.
func Load(configPath string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("RAPIH")

	v.BindEnv("server.listen_addr")
	v.BindEnv("server.read_timeout")
	v.BindEnv("server.write_timeout")
	v.BindEnv("server.max_upload_bytes")
	v.BindEnv("server.allowed_origins")
	v.BindEnv("cache.capacity")
	v.BindEnv("cache.ttl")
	v.BindEnv("analysis.max_rows")
	v.BindEnv("analysis.tax_rate")
	v.BindEnv("debug")

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("server.listen_addr") {
		cfg.ListenAddr = v.GetString("server.listen_addr")
	}
	if v.IsSet("server.read_timeout") {
		cfg.ReadTimeout = v.GetDuration("server.read_timeout")
	}
	if v.IsSet("server.write_timeout") {
		cfg.WriteTimeout = v.GetDuration("server.write_timeout")
	}
	if v.IsSet("server.max_upload_bytes") {
		cfg.MaxUploadBytes = v.GetInt64("server.max_upload_bytes")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}
	if v.IsSet("cache.capacity") {
		cfg.CacheCapacity = v.GetInt("cache.capacity")
	}
	if v.IsSet("cache.ttl") {
		cfg.CacheTTL = v.GetDuration("cache.ttl")
	}
	if v.IsSet("analysis.max_rows") {
		cfg.MaxRowsAnalyze = v.GetInt("analysis.max_rows")
	}
	if v.IsSet("analysis.tax_rate") {
		cfg.TaxRate = v.GetFloat64("analysis.tax_rate")
	}
	if v.IsSet("debug") {
		cfg.Debug = v.GetBool("debug")
	}

	return cfg, nil
}
