package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Redis (optional; answer cache is skipped when unreachable)
	RedisURL string `mapstructure:"REDIS_URL"`

	// Completion service
	GroqAPIKey  string `mapstructure:"GROQ_API_KEY"`
	GroqModel   string `mapstructure:"GROQ_MODEL"`
	GroqBaseURL string `mapstructure:"GROQ_BASE_URL"`

	// Datasets
	DatasetPath    string        `mapstructure:"DATASET_PATH"`
	MaxUploadBytes int64         `mapstructure:"MAX_UPLOAD_BYTES"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`

	// Caching
	AnswerCacheExpiration int `mapstructure:"ANSWER_CACHE_EXPIRATION"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("GROQ_API_KEY", "")
	viper.SetDefault("GROQ_MODEL", "llama3-70b-8192")
	viper.SetDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	viper.SetDefault("DATASET_PATH", "")
	viper.SetDefault("MAX_UPLOAD_BYTES", 10<<20) // 10 MiB
	viper.SetDefault("SESSION_TTL", "2h")
	viper.SetDefault("ANSWER_CACHE_EXPIRATION", 3600) // 1 hour in seconds

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
