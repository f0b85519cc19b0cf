// Package config loads the service configuration and decodes gauge card
// definitions.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete service configuration.
type Config struct {
	Port          string           `mapstructure:"port"`
	LogLevel      string           `mapstructure:"log_level"`
	LogFormat     string           `mapstructure:"log_format"`
	FrameInterval time.Duration    `mapstructure:"frame_interval"`
	Server        ServerConfig     `mapstructure:"server"`
	Auth          AuthConfig       `mapstructure:"auth"`
	Simulator     SimulatorConfig  `mapstructure:"simulator"`
	Cards         []map[string]any `mapstructure:"cards"` // decoded by ParseCards
}

// ServerConfig tunes the HTTP listener.
type ServerConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

// AuthConfig protects the write endpoints.
type AuthConfig struct {
	SigningKey   string        `mapstructure:"signing_key"`
	ClientSecret string        `mapstructure:"client_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

// SimulatorConfig drives the demo state source.
type SimulatorConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Tick     time.Duration     `mapstructure:"tick"`
	Entities []SimulatedEntity `mapstructure:"entities"`
}

// SimulatedEntity is a sensor that heats up to High, then cools to Low, forever.
type SimulatedEntity struct {
	Entity       string  `mapstructure:"entity"`
	FriendlyName string  `mapstructure:"friendly_name"`
	Unit         string  `mapstructure:"unit"`
	Low          float64 `mapstructure:"low"`
	High         float64 `mapstructure:"high"`
	RisePerSec   float64 `mapstructure:"rise_per_sec"`
	FallPerSec   float64 `mapstructure:"fall_per_sec"`
}

const envPrefix = "GAUGE"

// Load reads configs/config.yml, or the file at path when it is set.
// Environment variables override file values, e.g. GAUGE_AUTH_SIGNING_KEY.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("configs")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("frame_interval", 16*time.Millisecond)

	v.SetDefault("auth.token_ttl", time.Hour)

	v.SetDefault("simulator.enabled", false)
	v.SetDefault("simulator.tick", time.Second)

	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}
