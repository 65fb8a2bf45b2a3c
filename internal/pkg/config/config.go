package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

// Token store backends.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
	StoreMongo = "mongo"
)

type Config struct {
	Addr      string `env:"UI_ADDR,    default=127.0.0.1:8080" validate:"required,hostname_port"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	API    APIConfig
	Tokens TokenConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type APIConfig struct {
	BaseURL string `env:"TRACKER_API_URL, default=http://127.0.0.1:5000" validate:"required,url"`
	// Timeout of every backend request. Zero disables it.
	Timeout      time.Duration `env:"TRACKER_API_TIMEOUT,   default=0s" validate:"gte=0"`
	UpdateStatus string        `env:"TRACKER_UPDATE_STATUS, default=Interview" validate:"required"`
}

type TokenConfig struct {
	Backend string `env:"TOKEN_STORE,   default=file" validate:"oneof=file redis mongo"`
	Profile string `env:"TOKEN_PROFILE, default=default" validate:"required"`
	// File is used by the file backend. Empty means the user config dir.
	File string `env:"TOKEN_FILE"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=jobtracker"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0" validate:"gte=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags plus the per-backend requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config: %w", err)
	}

	switch c.Tokens.Backend {
	case StoreRedis:
		if c.Redis.Addr == "" {
			return errors.New("config: REDIS_ADDR is required for the redis token store")
		}
	case StoreMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("config: MONGO_URI and MONGO_DB are required for the mongo token store")
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
