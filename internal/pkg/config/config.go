package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorageMongo  = "mongo"
	StorageSQLite = "sqlite"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=1h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	StorageDriver string `env:"STORAGE_DRIVER, default=mongo"`

	Mongo      MongoConfig
	SQLite     SQLiteConfig
	Redis      RedisConfig
	Cloudinary CloudinaryConfig
	Scraper    ScraperConfig

	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES, default=5242880"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=taskboard"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=data/taskboard.db"`
}

// RedisConfig points at the idempotency-key store. An empty Addr disables
// Idempotency-Key support.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type CloudinaryConfig struct {
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
	Folder    string `env:"CLOUDINARY_FOLDER, default=profile_images"`
}

type ScraperConfig struct {
	Timeout time.Duration `env:"SCRAPE_TIMEOUT, default=45s"`
}

// IsDevelopment reports whether the service runs with developer defaults
// such as pretty console logs.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom resolves configuration through an arbitrary lookuper, which lets
// tests supply a map instead of the process environment.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageMongo, StorageSQLite:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMongo, StorageSQLite, c.StorageDriver)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}
