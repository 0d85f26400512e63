package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port             int                 `json:"port" env:"PORT"`
	JWTSecret        string              `json:"jwt_secret" env:"JWT_SECRET"`
	JWTTTLHours      int                 `json:"jwt_ttl_hours" env:"JWT_TTL_HOURS"`
	Database         DatabaseConfig      `json:"database"`
	LogConfig        logger.LogConfig    `json:"log_config"`
	CORSOrigins      []string            `json:"cors_origins"`
	RateLimitSeconds int                 `json:"rate_limit_seconds" env:"RATE_LIMIT_SECONDS"`
	HealthCheckCron  string              `json:"health_check_cron" env:"HEALTH_CHECK_CRON"`
	CatalogCache     CatalogCacheConfig  `json:"catalog_cache"`
	CatalogSource    CatalogSourceConfig `json:"catalog_source"`
	About            AboutConfig         `json:"about"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn" env:"DATABASE_URL"`
	Host     string `json:"host" env:"DB_HOST"`
	Port     int    `json:"port" env:"DB_PORT"`
	User     string `json:"user" env:"DB_USER"`
	Password string `json:"password" env:"DB_PASSWORD"`
	DBName   string `json:"dbname" env:"DB_NAME"`
	SSLMode  string `json:"sslmode" env:"DB_SSLMODE"`
}

type CatalogCacheConfig struct {
	Size       int `json:"size" env:"CATALOG_CACHE_SIZE"`
	TTLSeconds int `json:"ttl_seconds" env:"CATALOG_CACHE_TTL_SECONDS"`
}

type CatalogSourceConfig struct {
	Type string      `json:"type"`
	Dir  string      `json:"dir"`
	S3   S3Config    `json:"s3"`
	Data interface{} `json:"-"`
}

type S3Config struct {
	Endpoint  string `json:"endpoint"`
	SecretID  string `json:"secret_id"`
	SecretKey string `json:"secret_key"`
	Bucket    string `json:"bucket"`
	Region    string `json:"region"`
	Prefix    string `json:"prefix"`
	UseSSL    bool   `json:"use_ssl"`
}

type AboutConfig struct {
	Name          string `json:"name"`
	StudentNumber string `json:"student_number"`
}

// Load reads the optional JSON file at path, then lets a .env file and the
// process environment override it.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if c.Database.DSN == "" && c.Database.Host == "" {
		return fmt.Errorf("database.dsn or database.host is required")
	}
	if c.Port == 0 {
		c.Port = 3000
	}
	if c.JWTTTLHours == 0 {
		c.JWTTTLHours = 24
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.LogConfig.Level == "" {
		c.LogConfig.Level = "info"
	}
	if c.HealthCheckCron == "" {
		c.HealthCheckCron = "*/5 * * * *"
	}
	if c.CatalogSource.Type == "" {
		c.CatalogSource.Type = "local"
	}
	switch c.CatalogSource.Type {
	case "local":
		if c.CatalogSource.Dir == "" {
			c.CatalogSource.Dir = "."
		}
		c.CatalogSource.Data = map[string]interface{}{"dir": c.CatalogSource.Dir}
	case "s3":
		s3 := c.CatalogSource.S3
		if s3.Endpoint == "" || s3.Bucket == "" || s3.SecretID == "" || s3.SecretKey == "" {
			return fmt.Errorf("catalog_source.s3 endpoint/bucket/secret_id/secret_key are required for s3 source")
		}
		if s3.Region == "" {
			c.CatalogSource.S3.Region = "us-east-1"
		}
		c.CatalogSource.Data = c.CatalogSource.S3
	default:
		return fmt.Errorf("catalog_source.type must be local or s3")
	}
	return nil
}
