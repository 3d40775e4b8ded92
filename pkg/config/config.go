package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	YouTube   YouTubeConfig
	Cache     CacheConfig
	Providers ProvidersConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// YouTubeConfig holds upstream YouTube Data API configuration
type YouTubeConfig struct {
	APIKey           string
	PageSize         int64
	MaxPages         int
	PageThrottle     time.Duration
	ChannelBatchSize int
}

// CacheConfig holds the scored-result cache configuration
type CacheConfig struct {
	Enabled    bool
	MaxEntries int
	TTL        time.Duration
}

// ProvidersConfig holds sentiment provider configuration
type ProvidersConfig struct {
	DefaultModel  string
	BatchSize     int
	OllamaURL     string
	OllamaModel   string
	OllamaTimeout time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled           bool
	JaegerURL         string
	PrometheusEnabled bool
	PrometheusPort    int
	ServiceName       string
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix("SENTITUBE")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.sentitube")
	viper.AddConfigPath("/etc/sentitube")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; this is OK if we have env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getString("http_server_host", "0.0.0.0"),
			Port:           getInt("http_server_port", 8080),
			AllowedOrigins: splitList(getString("allowed_origins", "*")),
		},
		YouTube: YouTubeConfig{
			APIKey:           getString("youtube_api_key", ""),
			PageSize:         int64(getInt("fetch_page_size", 100)),
			MaxPages:         getInt("fetch_max_pages", 20),
			PageThrottle:     time.Duration(getInt("fetch_throttle_ms", 200)) * time.Millisecond,
			ChannelBatchSize: getInt("channel_batch_size", 50),
		},
		Cache: CacheConfig{
			Enabled:    getBool("cache_enabled", false),
			MaxEntries: getInt("cache_max_entries", 50),
			TTL:        time.Duration(getInt("cache_ttl_ms", 900000)) * time.Millisecond,
		},
		Providers: ProvidersConfig{
			DefaultModel:  getString("default_model", "vader"),
			BatchSize:     getInt("scoring_batch_size", 25),
			OllamaURL:     getString("ollama_url", "http://localhost:11434"),
			OllamaModel:   getString("ollama_model", "llama3"),
			OllamaTimeout: time.Duration(getInt("ollama_timeout_ms", 20000)) * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  getString("log_level", "INFO"),
			Format: getString("log_format", "json"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           getBool("telemetry_enabled", false),
			JaegerURL:         getString("jaeger_url", ""),
			PrometheusEnabled: getBool("prometheus_enabled", false),
			PrometheusPort:    getInt("prometheus_port", 9090),
			ServiceName:       getString("service_name", "sentitube"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("http_server_host", "0.0.0.0")
	viper.SetDefault("http_server_port", 8080)
	viper.SetDefault("allowed_origins", "*")
	viper.SetDefault("fetch_page_size", 100)
	viper.SetDefault("fetch_max_pages", 20)
	viper.SetDefault("fetch_throttle_ms", 200)
	viper.SetDefault("channel_batch_size", 50)
	viper.SetDefault("cache_enabled", false)
	viper.SetDefault("cache_max_entries", 50)
	viper.SetDefault("cache_ttl_ms", 900000)
	viper.SetDefault("default_model", "vader")
	viper.SetDefault("scoring_batch_size", 25)
	viper.SetDefault("ollama_url", "http://localhost:11434")
	viper.SetDefault("ollama_model", "llama3")
	viper.SetDefault("ollama_timeout_ms", 20000)
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("log_format", "json")
	viper.SetDefault("telemetry_enabled", false)
	viper.SetDefault("prometheus_enabled", false)
	viper.SetDefault("prometheus_port", 9090)
	viper.SetDefault("service_name", "sentitube")
}

func getString(key, defaultValue string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	// Also check environment variable directly
	if val := os.Getenv("SENTITUBE_" + toEnvKey(key)); val != "" {
		return val
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	if val := os.Getenv("SENTITUBE_" + toEnvKey(key)); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	if val := os.Getenv("SENTITUBE_" + toEnvKey(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultValue
}

func toEnvKey(key string) string {
	return strings.ToUpper(key)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("http_server_port must be between 1 and 65535")
	}
	if c.YouTube.PageSize < 1 || c.YouTube.PageSize > 100 {
		return fmt.Errorf("fetch_page_size must be between 1 and 100")
	}
	if c.YouTube.MaxPages < 1 {
		return fmt.Errorf("fetch_max_pages must be at least 1")
	}
	if c.YouTube.ChannelBatchSize < 1 || c.YouTube.ChannelBatchSize > 50 {
		return fmt.Errorf("channel_batch_size must be between 1 and 50")
	}
	if c.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache_max_entries must be at least 1")
	}
	if c.Providers.BatchSize < 1 {
		return fmt.Errorf("scoring_batch_size must be at least 1")
	}
	return nil
}
