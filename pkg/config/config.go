package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system. It should be called once at
// application startup; later calls return the first result.
func Init() error {
	once.Do(func() {
		setDefaults()

		// Environment variable overrides: PODSEEK_SERVER_PORT etc.
		viper.SetEnvPrefix("PODSEEK")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// A missing config file is fine: defaults plus env vars apply.
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// Config is the typed view of the configuration tree.
type Config struct {
	Environment string `mapstructure:"environment"`

	Server struct {
		Host            string        `mapstructure:"host"`
		Port            int           `mapstructure:"port"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
		MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	} `mapstructure:"server"`

	Database struct {
		Path    string `mapstructure:"path"`
		Verbose bool   `mapstructure:"verbose"`
	} `mapstructure:"database"`

	PodcastIndex struct {
		APIKey    string        `mapstructure:"api_key"`
		APISecret string        `mapstructure:"api_secret"`
		BaseURL   string        `mapstructure:"base_url"`
		UserAgent string        `mapstructure:"user_agent"`
		Timeout   time.Duration `mapstructure:"timeout"`
		RateLimit int           `mapstructure:"rate_limit"`
	} `mapstructure:"podcast_index"`

	Search struct {
		QueryDebounce        time.Duration `mapstructure:"query_debounce"`
		FilterDebounce       time.Duration `mapstructure:"filter_debounce"`
		MinQueryLength       int           `mapstructure:"min_query_length"`
		ResultLimit          int           `mapstructure:"result_limit"`
		EpisodeFallbackFeeds int           `mapstructure:"episode_fallback_feeds"`
	} `mapstructure:"search"`
}

// GetConfig returns the current configuration as a struct. Init must have
// been called first.
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value.
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate checks the loaded values and auto-corrects the search tunables
// back to their defaults when they are non-positive.
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if err := validateAPIKeys(); err != nil {
		return err
	}

	if viper.GetDuration("search.query_debounce") <= 0 {
		viper.Set("search.query_debounce", 300*time.Millisecond)
	}
	if viper.GetDuration("search.filter_debounce") <= 0 {
		viper.Set("search.filter_debounce", 200*time.Millisecond)
	}
	if viper.GetInt("search.min_query_length") <= 0 {
		viper.Set("search.min_query_length", 2)
	}
	if viper.GetInt("search.result_limit") <= 0 {
		viper.Set("search.result_limit", 25)
	}
	if viper.GetInt("search.episode_fallback_feeds") <= 0 {
		viper.Set("search.episode_fallback_feeds", 3)
	}

	return nil
}

// validateAPIKeys rejects placeholder Podcast Index credentials in
// production and warns elsewhere. Missing credentials are allowed: the
// search core falls back to the local library.
func validateAPIKeys() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_SECRET_HERE",
		"YOUR_API_KEY",
		"YOUR_API_SECRET",
		"changeme",
		"CHANGEME",
	}

	apiKey := viper.GetString("podcast_index.api_key")
	apiSecret := viper.GetString("podcast_index.api_secret")

	for _, placeholder := range placeholders {
		if apiKey == placeholder || apiSecret == placeholder {
			if isProduction {
				return fmt.Errorf("invalid Podcast Index API credentials: cannot use placeholder values in production")
			}
			fmt.Println("Warning: Podcast Index API credentials are using placeholder values")
			break
		}
	}

	return nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("environment", "development")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	viper.SetDefault("database.path", "./data/library.db")
	viper.SetDefault("database.verbose", false)

	viper.SetDefault("podcast_index.base_url", "https://api.podcastindex.org/api/1.0")
	viper.SetDefault("podcast_index.timeout", 10*time.Second)
	viper.SetDefault("podcast_index.rate_limit", 10)
	viper.SetDefault("podcast_index.user_agent", "PodSeekSearchAPI/1.0")

	viper.SetDefault("search.query_debounce", 300*time.Millisecond)
	viper.SetDefault("search.filter_debounce", 200*time.Millisecond)
	viper.SetDefault("search.min_query_length", 2)
	viper.SetDefault("search.result_limit", 25)
	viper.SetDefault("search.episode_fallback_feeds", 3)
}
