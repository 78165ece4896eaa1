package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SyncConfig holds the reconciliation settings.
type SyncConfig struct {
	UpdateInterval time.Duration `mapstructure:"update_interval"`
	DomainSuffix   string        `mapstructure:"domain_suffix"`
	HostsPath      string        `mapstructure:"hosts_path"`
}

// DockerConfig holds runtime query settings.
type DockerConfig struct {
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// MetricsConfig holds the optional Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ListenAddr string `mapstructure:"listen_addr"`
	Path       string `mapstructure:"path"`
}

// LoggingConfig holds the logging-related configuration.
type LoggingConfig struct {
	Level string `mapstructure:"log_level"`
}

// Config is the top-level configuration struct.
type Config struct {
	Sync    SyncConfig    `mapstructure:"sync"`
	Docker  DockerConfig  `mapstructure:"docker"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"log"`
}

// InitConfig sets defaults, reads the optional config file, and enables
// environment variable binding. Precedence ends up flag > env > file >
// default, which is what viper gives when flags are bound by the command.
// configFile overrides the default config.yaml lookup when non-empty.
func InitConfig(configFile string) error {
	viper.SetDefault("sync.update_interval", "60s")
	viper.SetDefault("sync.domain_suffix", "base.domain")
	viper.SetDefault("sync.hosts_path", "/etc/hosts")
	viper.SetDefault("docker.query_timeout", "10s")
	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.listen_addr", ":9464")
	viper.SetDefault("metrics.path", "/metrics")
	viper.SetDefault("log.log_level", "INFO")

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config") // Looks for config.yaml
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Missing file is fine; defaults and env vars apply.
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return nil
}

// Load unmarshals and validates the configuration.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the daemon cannot run with.
func (c *Config) Validate() error {
	if c.Sync.UpdateInterval < time.Second {
		return fmt.Errorf("sync.update_interval must be at least 1s, got %s", c.Sync.UpdateInterval)
	}
	if strings.TrimSpace(c.Sync.DomainSuffix) == "" {
		return fmt.Errorf("sync.domain_suffix must not be empty")
	}
	if strings.TrimSpace(c.Sync.HostsPath) == "" {
		return fmt.Errorf("sync.hosts_path must not be empty")
	}
	if c.Docker.QueryTimeout <= 0 {
		return fmt.Errorf("docker.query_timeout must be positive, got %s", c.Docker.QueryTimeout)
	}
	return nil
}
