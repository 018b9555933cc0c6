package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/rpdbs/research-databank/internal/core/domain"
	"github.com/rpdbs/research-databank/internal/core/service"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"

	envProduction = "production"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	StoreDriver string `env:"STORE_DRIVER, default=sqlite"`

	Mongo  MongoConfig
	SQLite SQLiteConfig
	Redis  RedisConfig
	Auth   AuthConfig
	Seed   SeedConfig
	Audit  AuditConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=research_databank"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=research_projects.db"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AuthConfig struct {
	// AllowPublicView enables anonymous viewer sessions.
	AllowPublicView bool `env:"AUTH_ALLOW_PUBLIC_VIEW, default=false"`
}

// SeedConfig names the accounts created by the seed step. Empty passwords are
// generated at seed time.
type SeedConfig struct {
	AdminUsername  string `env:"SEED_ADMIN_USERNAME,  default=admin"`
	AdminPassword  string `env:"SEED_ADMIN_PASSWORD"`
	ViewerUsername string `env:"SEED_VIEWER_USERNAME, default=viewer"`
	ViewerPassword string `env:"SEED_VIEWER_PASSWORD"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=2"`
	Buffer  int `env:"AUDIT_BUFFER,  default=256"`
}

// Load reads configuration from environment variables using go-envconfig and
// validates it.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case DriverMongo, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if c.IsProduction() && c.JWTSecret == "" {
		errs = append(errs, errors.New("config: JWT_SECRET is required in production"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("config: TOKEN_TTL must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, envProduction)
}

// SeedAccounts returns the accounts to seed, skipping any with an empty
// username.
func (c *Config) SeedAccounts() []service.SeedAccount {
	seeds := make([]service.SeedAccount, 0, 2)
	if c.Seed.AdminUsername != "" {
		seeds = append(seeds, service.SeedAccount{Username: c.Seed.AdminUsername, Password: c.Seed.AdminPassword, Role: domain.RoleAdmin})
	}
	if c.Seed.ViewerUsername != "" {
		seeds = append(seeds, service.SeedAccount{Username: c.Seed.ViewerUsername, Password: c.Seed.ViewerPassword, Role: domain.RoleViewer})
	}
	return seeds
}
