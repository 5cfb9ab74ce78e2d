package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the runtime configuration for the API server and tools. It is
// read from the prober's monitor_config.ini so one file drives the whole
// installation; every key can also be set via CONNWATCH_* env vars
// (CONNWATCH_SERVER_ADDR overrides server.addr, and so on).
type Config struct {
	Monitor MonitorConfig `mapstructure:"monitor"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// MonitorConfig mirrors the [monitor] section the prober reads too.
type MonitorConfig struct {
	LocationName string `mapstructure:"location_name"`
	Timezone     string `mapstructure:"timezone"`
	LogDir       string `mapstructure:"log_dir"`
}

// ServerConfig is the [server] section, only read by this program.
// DatabaseURL empty means records come straight from the CSV logs.
// APIKeys empty leaves the API open, which is fine on a LAN.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	DatabaseURL    string        `mapstructure:"database_url"`
	APIKeys        []string      `mapstructure:"api_keys"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RateLimitRPM   int           `mapstructure:"rate_limit_rpm"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
	PushInterval   time.Duration `mapstructure:"push_interval"`
	SlackWebhook   string        `mapstructure:"slack_webhook"`
	NotifyPoll     time.Duration `mapstructure:"notify_poll"`
	NotifyCooldown time.Duration `mapstructure:"notify_cooldown"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from path, or searches the working directory
// for monitor_config.ini when path is empty. A missing file in search
// mode is fine (defaults plus env apply); an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CONNWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("monitor_config")
		v.SetConfigType("ini")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("monitor.location_name", "Home Network")
	v.SetDefault("monitor.timezone", "UTC")
	v.SetDefault("monitor.log_dir", "internet_logs")

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.database_url", "")
	v.SetDefault("server.api_keys", []string{})
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.rate_limit_rpm", 240)
	v.SetDefault("server.rate_limit_burst", 60)
	v.SetDefault("server.push_interval", "30s")
	v.SetDefault("server.slack_webhook", "")
	v.SetDefault("server.notify_poll", "1m")
	v.SetDefault("server.notify_cooldown", "10m")

	v.SetDefault("logging.level", "info")
}

func (c *Config) Validate() error {
	if c.Monitor.LogDir == "" {
		return errors.New("monitor.log_dir must not be empty")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Server.PushInterval <= 0 {
		return fmt.Errorf("server.push_interval must be positive, got %s", c.Server.PushInterval)
	}
	if c.Server.NotifyPoll <= 0 {
		return fmt.Errorf("server.notify_poll must be positive, got %s", c.Server.NotifyPoll)
	}
	if c.Server.NotifyCooldown < 0 {
		return fmt.Errorf("server.notify_cooldown must not be negative, got %s", c.Server.NotifyCooldown)
	}
	if c.Server.RateLimitRPM < 0 {
		return fmt.Errorf("server.rate_limit_rpm must not be negative, got %d", c.Server.RateLimitRPM)
	}
	return nil
}
