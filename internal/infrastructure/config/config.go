package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// UseMemoryStore switches the whole persistence layer to the seeded
	// in-memory backend. Intended for demos and local development.
	UseMemoryStore bool `env:"USE_MEMORY_STORE, default=false"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Gemini GeminiConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=eparcel"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type GeminiConfig struct {
	// APIKey may be empty; AI features then degrade to static fallbacks.
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL, default=gemini-1.5-flash"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
