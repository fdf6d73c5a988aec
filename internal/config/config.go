package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	PhotoFetchTimeout  time.Duration
	MaxRequestBodySize int64

	// Photo source: "http" or "azure"
	PhotoSource      string
	AzureAccountName string
	AzureAccountKey  string

	// Face detection cascade (pigo binary cascade file)
	CascadePath string

	// Largest dimension analyzed; bigger photos are downscaled first
	MaxImageDimension int

	// Persistence; empty MongoURI selects the in-memory repository
	MongoURI      string
	MongoDatabase string

	// Prompt critique; empty OllamaURL disables the feature
	OllamaURL     string
	CritiqueModel string
}

func (c *Config) ServerAddress() string {
	return net.JoinHostPort(strings.TrimSpace(c.Host), strings.TrimSpace(c.Port))
}

func LoadFromEnv() (*Config, error) {
	// .env is optional; real deployments use process environment
	_ = godotenv.Load()

	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		PhotoFetchTimeout:  parseDurationOrDefault("PHOTO_FETCH_TIMEOUT", 15*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB
		PhotoSource:        getEnvOrDefault("PHOTO_SOURCE", "http"),
		AzureAccountName:   os.Getenv("AZURE_ACCOUNT_NAME"),
		AzureAccountKey:    os.Getenv("AZURE_ACCOUNT_KEY"),
		CascadePath:        getEnvOrDefault("CASCADE_PATH", "assets/facefinder"),
		MaxImageDimension:  int(parseIntOrDefault("MAX_IMAGE_DIMENSION", 1600)),
		MongoURI:           os.Getenv("MONGO_URI"),
		MongoDatabase:      getEnvOrDefault("MONGO_DATABASE", "photo_feedback"),
		OllamaURL:          os.Getenv("OLLAMA_URL"),
		CritiqueModel:      getEnvOrDefault("CRITIQUE_MODEL", "llama3.1"),
	}

	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.PhotoFetchTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s)",
			cfg.RequestTimeout, cfg.PhotoFetchTimeout)
	}
	if cfg.MaxImageDimension <= 0 {
		return nil, fmt.Errorf("MAX_IMAGE_DIMENSION must be > 0 (got %d)", cfg.MaxImageDimension)
	}
	switch cfg.PhotoSource {
	case "http":
	case "azure":
		if cfg.AzureAccountName == "" || cfg.AzureAccountKey == "" {
			return nil, fmt.Errorf("azure photo source requires AZURE_ACCOUNT_NAME and AZURE_ACCOUNT_KEY")
		}
	default:
		return nil, fmt.Errorf("unsupported PHOTO_SOURCE: %q", cfg.PhotoSource)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
