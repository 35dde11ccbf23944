package config

import (
	"time"

	"github.com/olusolaa/cloud-resource-api/internal/log"
)

const (
	PlatformAWS    = "aws"
	PlatformMemory = "memory"
)

type Config struct {
	Settings    SettingsConfig    `mapstructure:"settings"`
	Server      ServerConfig      `mapstructure:"server"`
	Platform    PlatformConfig    `mapstructure:"platform"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Permissions PermissionsConfig `mapstructure:"permissions"`
}

type SettingsConfig struct {
	LogLevel  log.Level  `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat log.Format `mapstructure:"log_format" validate:"oneof=text json"`
}

type ServerConfig struct {
	Address  string `mapstructure:"address" validate:"required,hostname_port"`
	BasePath string `mapstructure:"base_path" validate:"omitempty,startswith=/"`
	// TrailingSlash makes generated routes end in "/".
	TrailingSlash   bool          `mapstructure:"trailing_slash"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	// MetricsPath serves Prometheus metrics; empty disables it.
	MetricsPath string `mapstructure:"metrics_path" validate:"omitempty,startswith=/"`
}

type PlatformConfig struct {
	Type   string               `mapstructure:"type" validate:"oneof=aws memory"`
	AWS    AWSPlatformConfig    `mapstructure:"aws"`
	Memory MemoryPlatformConfig `mapstructure:"memory"`
}

type AWSPlatformConfig struct {
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
	// RPS is the provider API request budget shared by all requests.
	RPS int `mapstructure:"rps" validate:"gte=0"`
}

type MemoryPlatformConfig struct {
	DefaultRegion string `mapstructure:"default_region"`
	// AccessKeys restricts accepted static credentials. Entries are
	// "ACCESS_KEY:SECRET"; a list keeps viper from lowercasing the keys.
	AccessKeys []string `mapstructure:"access_keys" validate:"dive,contains=:"`
}

type DatabaseConfig struct {
	// URL selects the application store, e.g. "sqlite:./cloud-api.db".
	// Empty keeps applications in memory.
	URL string `mapstructure:"url"`
}

type PermissionsConfig struct {
	// ProtectedTag restricts writes to provider objects carrying this tag.
	ProtectedTagKey   string `mapstructure:"protected_tag_key"`
	ProtectedTagValue string `mapstructure:"protected_tag_value" validate:"excluded_without=ProtectedTagKey"`
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:  log.LevelInfo,
			LogFormat: log.FormatText,
		},
		Server: ServerConfig{
			Address:         ":8000",
			BasePath:        "/api/v1",
			TrailingSlash:   true,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MetricsPath:     "/metrics",
		},
		Platform: PlatformConfig{
			Type: PlatformAWS,
			Memory: MemoryPlatformConfig{
				DefaultRegion: "us-east-1",
			},
		},
	}
}
