package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	OCR          OCRConfig          `mapstructure:"ocr"`
	Cache        CacheConfig        `mapstructure:"cache"`
	RateLimit    RateLimitConfig    `mapstructure:"ratelimit"`
	Extraction   ExtractionConfig   `mapstructure:"extraction"`
	Verification VerificationConfig `mapstructure:"verification"`
	Log          LogConfig          `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxUploadMB    int      `mapstructure:"max_upload_mb"`
}

// OCRConfig selects and configures the OCR engine
type OCRConfig struct {
	Engine     string        `mapstructure:"engine"` // "http" or "tesseract"
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RateLimit  float64       `mapstructure:"rate_limit"` // requests per second
	Burst      int           `mapstructure:"burst"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory", "redis" or "none"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// ExtractionConfig holds field extraction settings
type ExtractionConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
}

// VerificationConfig holds verification thresholds
type VerificationConfig struct {
	MatchThreshold         float64 `mapstructure:"match_threshold"`
	PartialThreshold       float64 `mapstructure:"partial_threshold"`
	KeySimilarityThreshold float64 `mapstructure:"key_similarity_threshold"`
	QuickVerifyMinRate     float64 `mapstructure:"quick_verify_min_rate"`
	CriticalSimilarity     float64 `mapstructure:"critical_similarity"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "pretty"
}

// MaxUploadBytes returns the upload limit in bytes
func (c ServerConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/mosipdecode/")

	// MOSIPDECODE_OCR_BASE_URL -> ocr.base_url
	v.SetEnvPrefix("MOSIPDECODE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env into the process environment if present.
// Variables already set are not overridden.
func loadEnvFile() error {
	err := godotenv.Load(".env")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values.
// Every key gets a default so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.max_upload_mb", 20)

	v.SetDefault("ocr.engine", "http")
	v.SetDefault("ocr.base_url", "")
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.timeout", "60s")
	v.SetDefault("ocr.rate_limit", 5.0)
	v.SetDefault("ocr.burst", 10)
	v.SetDefault("ocr.max_retries", 3)

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "1h")

	v.SetDefault("ratelimit.per_ip", 100)

	v.SetDefault("extraction.default_language", "en")

	v.SetDefault("verification.match_threshold", 0.8)
	v.SetDefault("verification.partial_threshold", 0.5)
	v.SetDefault("verification.key_similarity_threshold", 0.6)
	v.SetDefault("verification.quick_verify_min_rate", 0.7)
	v.SetDefault("verification.critical_similarity", 0.5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.OCR.Engine {
	case "http":
		if config.OCR.BaseURL == "" {
			return fmt.Errorf("OCR base URL is required for the http engine (set MOSIPDECODE_OCR_BASE_URL)")
		}
	case "tesseract":
	default:
		return fmt.Errorf("ocr engine must be 'http' or 'tesseract', got: %s", config.OCR.Engine)
	}

	switch config.Cache.Type {
	case "memory", "none":
	case "redis":
		if config.Cache.RedisURL == "" {
			return fmt.Errorf("Redis URL is required when cache type is 'redis'")
		}
	default:
		return fmt.Errorf("cache type must be 'memory', 'redis' or 'none', got: %s", config.Cache.Type)
	}

	if config.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server max_upload_mb must be positive, got: %d", config.Server.MaxUploadMB)
	}

	if config.Log.Format != "json" && config.Log.Format != "pretty" {
		return fmt.Errorf("log format must be 'json' or 'pretty', got: %s", config.Log.Format)
	}

	vc := config.Verification
	thresholds := map[string]float64{
		"match_threshold":          vc.MatchThreshold,
		"partial_threshold":        vc.PartialThreshold,
		"key_similarity_threshold": vc.KeySimilarityThreshold,
		"quick_verify_min_rate":    vc.QuickVerifyMinRate,
		"critical_similarity":      vc.CriticalSimilarity,
	}
	for name, value := range thresholds {
		if value <= 0 || value > 1 {
			return fmt.Errorf("verification %s must be within (0, 1], got: %v", name, value)
		}
	}
	if vc.PartialThreshold > vc.MatchThreshold {
		return fmt.Errorf("verification partial_threshold (%v) must not exceed match_threshold (%v)",
			vc.PartialThreshold, vc.MatchThreshold)
	}

	return nil
}
