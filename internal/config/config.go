package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SATRELAY_SATELLITE_BASE_URL.
const EnvPrefix = "SATRELAY"

// Config is the full relay configuration.
type Config struct {
	Port      string          `mapstructure:"port"`
	Log       LogConfig       `mapstructure:"log"`
	Satellite SatelliteConfig `mapstructure:"satellite"`
	Retry     RetryConfig     `mapstructure:"retry"`
	Poll      PollConfig      `mapstructure:"poll"`
	DB        DBConfig        `mapstructure:"db"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type SatelliteConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// RetryConfig bounds each retry-until-OK loop. Limit 0 retries until success.
type RetryConfig struct {
	Limit    int           `mapstructure:"limit"`
	Deadline time.Duration `mapstructure:"deadline"`
}

// PollConfig controls refresh cycles. Interval 0 disables background polling.
type PollConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	OnStartup    bool          `mapstructure:"on_startup"`
	CycleTimeout time.Duration `mapstructure:"cycle_timeout"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

// Defaults.
const (
	DefaultPort           = "8080"
	DefaultBaseURL        = "http://localhost:3000"
	DefaultRequestTimeout = 1 * time.Second
	DefaultDBPath         = ":memory:"
)

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", DefaultPort)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("satellite.base_url", DefaultBaseURL)
	v.SetDefault("satellite.request_timeout", DefaultRequestTimeout)
	v.SetDefault("retry.limit", 0)
	v.SetDefault("retry.deadline", time.Duration(0))
	v.SetDefault("poll.interval", time.Duration(0))
	v.SetDefault("poll.on_startup", true)
	v.SetDefault("poll.cycle_timeout", time.Duration(0))
	v.SetDefault("db.path", DefaultDBPath)
}

// New returns a viper instance with defaults, env overrides and the config
// search path (configs/config.yml) registered. file overrides the search path.
func New(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	return v
}

// Load reads the config file (optional unless file is set explicitly),
// applies env overrides and validates the result.
func Load(v *viper.Viper, fileRequired bool) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if fileRequired || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks invariants that viper cannot express.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Satellite.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("satellite.base_url %q must be an absolute URL", c.Satellite.BaseURL)
	}
	if c.Satellite.RequestTimeout <= 0 {
		return errors.New("satellite.request_timeout must be > 0")
	}
	if c.Retry.Limit < 0 {
		return errors.New("retry.limit must be >= 0 (0 retries until success)")
	}
	if c.Retry.Deadline < 0 || c.Poll.Interval < 0 || c.Poll.CycleTimeout < 0 {
		return errors.New("durations must not be negative")
	}
	c.Satellite.BaseURL = strings.TrimRight(c.Satellite.BaseURL, "/")
	return nil
}
