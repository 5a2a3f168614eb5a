// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	AI          AIConfig
	Collect     CollectConfig
	Cache       CacheConfig
	Database    DatabaseConfig
	NATS        NATSConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// AIConfig holds configuration for the text-generation endpoint
type AIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// CollectConfig holds data collection configuration
type CollectConfig struct {
	TrendsLimit        int
	RedditUserAgent    string
	RedditTimeout      time.Duration
	SearchTimeout      time.Duration
	NewsTimeout        time.Duration
	NewsFeeds          []string
	TrendsRegion       string
	TwitterBearerToken string
}

// CacheConfig holds snapshot cache configuration
type CacheConfig struct {
	TTL time.Duration
}

// DatabaseConfig holds the optional snapshot archive configuration.
// Archiving is disabled when URL is empty.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// NATSConfig holds the optional event bus configuration.
// Publishing is disabled when URL is empty.
type NATSConfig struct {
	URL            string
	EventsTopic    string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

var defaultNewsFeeds = []string{
	"https://feeds.bbci.co.uk/news/rss.xml",
	"https://rss.cnn.com/rss/edition.rss",
	"https://feeds.reuters.com/reuters/topNews",
	"https://feeds.npr.org/1001/rss.xml",
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8000),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),
		},
		AI: AIConfig{
			APIKey:      getEnv("GROQ_API_KEY", ""),
			BaseURL:     getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:       getEnv("AI_MODEL", "llama3-8b-8192"),
			MaxTokens:   getEnvAsInt("MAX_TOKENS", 1500),
			Temperature: getEnvAsFloat("AI_TEMPERATURE", 0.7),
			Timeout:     getEnvAsDuration("AI_TIMEOUT", 30*time.Second),
		},
		Collect: CollectConfig{
			TrendsLimit:        getEnvAsInt("TRENDS_LIMIT", 10),
			RedditUserAgent:    getEnv("REDDIT_USER_AGENT", "AIContentEngine/1.0"),
			RedditTimeout:      getEnvAsDuration("REDDIT_TIMEOUT", 10*time.Second),
			SearchTimeout:      getEnvAsDuration("SEARCH_TIMEOUT", 15*time.Second),
			NewsTimeout:        getEnvAsDuration("NEWS_TIMEOUT", 10*time.Second),
			NewsFeeds:          getEnvAsSlice("NEWS_FEEDS", defaultNewsFeeds),
			TrendsRegion:       getEnv("TRENDS_REGION", "IN"),
			TwitterBearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
		},
		Cache: CacheConfig{
			TTL: getEnvAsDuration("CACHE_TTL", 15*time.Minute),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", ""),
			EventsTopic:    getEnv("NATS_EVENTS_TOPIC", "trending"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.AI.APIKey == "" && config.Environment != "development" {
		return fmt.Errorf("GROQ_API_KEY must be set in non-development environments")
	}
	if config.Collect.TrendsLimit <= 0 {
		return fmt.Errorf("TRENDS_LIMIT must be positive")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
