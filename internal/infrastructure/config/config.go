package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type JWTConfig struct {
	Secret        string        `env:"JWT_SECRET, required"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`
	RotateRefresh bool          `env:"ROTATE_REFRESH_TOKENS, default=true"`
}

type AuthConfig struct {
	// Roles is the closed role set; the first entry is the super admin.
	Roles              []string `env:"ROLES, default=Super Admin,User"`
	DefaultRole        string   `env:"DEFAULT_ROLE, default=User"`
	SuperAdminEmail    string   `env:"SUPER_ADMIN_EMAIL"`
	SuperAdminPassword string   `env:"SUPER_ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_service"`
}

type RedisConfig struct {
	// Addr left empty disables the refresh-token denylist.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
