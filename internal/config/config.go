package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	Secret     string        `mapstructure:"secret"`
	LogLevel   string        `mapstructure:"log_level"`

	// SendBuffer is the outbound frame queue of one connection.
	SendBuffer int `mapstructure:"send_buffer"`
	// Backpressure is what happens when that queue is full: disconnect or drop.
	Backpressure string `mapstructure:"backpressure"`
	// Tick is the period of the game timer broadcast.
	Tick time.Duration `mapstructure:"tick"`
	// CheckInterval is the period of the empty room sweep.
	CheckInterval   time.Duration `mapstructure:"check_interval"`
	MaxFailedChecks int           `mapstructure:"max_failed_checks"`

	// RateLimit is the sustained number of commands per second one
	// client may send; RateBurst bounds short spikes.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// Load reads config/config.<CONFIG_ENV>.yaml, dev by default.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

// LoadFile reads fileName over the defaults. A missing file is not an
// error. PARTY_* environment variables override both.
func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	v.SetEnvPrefix("party")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("secret", "party-dev-secret")
	v.SetDefault("log_level", "info")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("backpressure", "disconnect")
	v.SetDefault("tick", "1s")
	v.SetDefault("check_interval", "1m")
	v.SetDefault("max_failed_checks", 3)
	v.SetDefault("rate_limit", 10)
	v.SetDefault("rate_burst", 20)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Str("static", cfg.StaticPath).Msg("config ready")
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("invalid port %d", c.Port)
	case c.Tick <= 0:
		return fmt.Errorf("tick must be positive, got %s", c.Tick)
	case c.CheckInterval <= 0:
		return fmt.Errorf("check_interval must be positive, got %s", c.CheckInterval)
	case c.MaxFailedChecks < 1:
		return fmt.Errorf("max_failed_checks must be at least 1, got %d", c.MaxFailedChecks)
	case c.SendBuffer < 1:
		return fmt.Errorf("send_buffer must be at least 1, got %d", c.SendBuffer)
	}
	return nil
}
