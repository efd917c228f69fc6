package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Feed     FeedConfig     `mapstructure:"feed"`
	Labels   LabelsConfig   `mapstructure:"labels"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
}

// FeedConfig describes where the catalog feed lives and how to fetch it
type FeedConfig struct {
	RootURL              string   `mapstructure:"root_url"`
	CategoryItemsURL     string   `mapstructure:"category_items_url"`
	Timeout              int      `mapstructure:"timeout"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	UserAgent            string   `mapstructure:"user_agent"`
	Proxies              []string `mapstructure:"proxies"`
}

// LabelsConfig holds the price and action labels attached to every record
type LabelsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Buy          string `mapstructure:"buy"`
	Rent         string `mapstructure:"rent"`
	GlobalSearch string `mapstructure:"global_search"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// DSN returns the pgx connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	Database      int    `mapstructure:"database"`
	ConsumerGroup string `mapstructure:"consumer_group"`
}

// Addr returns host:port
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads config.yaml from the current directory
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom loads configuration from config.yaml in dir with environment
// variable overrides. A missing file is not an error: defaults and
// environment still apply.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings every run needs
func (c *Config) Validate() error {
	if c.Feed.RootURL == "" {
		return fmt.Errorf("feed.root_url is required")
	}
	if c.Feed.CategoryItemsURL == "" {
		return fmt.Errorf("feed.category_items_url is required")
	}
	if c.Feed.MaxRequestsPerSecond <= 0 {
		return fmt.Errorf("feed.max_requests_per_second must be positive, got %d", c.Feed.MaxRequestsPerSecond)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("feed.root_url", "")
	v.SetDefault("feed.category_items_url", "")
	v.SetDefault("feed.timeout", 30)
	v.SetDefault("feed.max_requests_per_second", 10)
	v.SetDefault("feed.user_agent", "videofeed-ingest/1.0")
	v.SetDefault("feed.proxies", []string{})

	v.SetDefault("labels.enabled", true)
	v.SetDefault("labels.buy", "Buy and Own for $9.99")
	v.SetDefault("labels.rent", "Rent for $4.99")
	v.SetDefault("labels.global_search", "GLOBALSEARCH")

	v.SetDefault("database.enabled", true)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "videofeed")
	v.SetDefault("database.user", "videofeed_user")
	v.SetDefault("database.password", "videofeed_pass")

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.consumer_group", "videofeed_consumer")

	v.SetDefault("log.level", "info")
}
