package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported importer sources
const (
	SourceDir = "dir"
	SourceS3  = "s3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		SQLitePath      string `yaml:"sqlite_path" env:"DB_SQLITE_PATH"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Auth struct {
		Secret   string `yaml:"secret" env:"AUTH_SECRET"`
		Issuer   string `yaml:"issuer" env:"AUTH_ISSUER"`
		TokenTTL string `yaml:"token_ttl" env:"AUTH_TOKEN_TTL"`
	} `yaml:"auth"`

	Catalog struct {
		PageSize           int `yaml:"page_size" env:"CATALOG_PAGE_SIZE"`
		CascadeConcurrency int `yaml:"cascade_concurrency" env:"CATALOG_CASCADE_CONCURRENCY"`
	} `yaml:"catalog"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Metrics struct {
		Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
		Path    string `yaml:"path" env:"METRICS_PATH"`
	} `yaml:"metrics"`

	Importer struct {
		Source string `yaml:"source" env:"IMPORT_SOURCE"`
		Dir    string `yaml:"dir" env:"IMPORT_DIR"`
		S3     struct {
			Bucket    string `yaml:"bucket" env:"IMPORT_S3_BUCKET"`
			Prefix    string `yaml:"prefix" env:"IMPORT_S3_PREFIX"`
			Region    string `yaml:"region" env:"IMPORT_S3_REGION"`
			Endpoint  string `yaml:"endpoint" env:"IMPORT_S3_ENDPOINT"`
			PathStyle bool   `yaml:"path_style" env:"IMPORT_S3_PATH_STYLE"`

			// Optional static credentials; the default AWS chain is used otherwise
			AccessKeyID     string `yaml:"access_key_id" env:"IMPORT_S3_ACCESS_KEY_ID"`
			SecretAccessKey string `yaml:"secret_access_key" env:"IMPORT_S3_SECRET_ACCESS_KEY"`
		} `yaml:"s3"`
	} `yaml:"importer"`
}

// LoadConfig loads configuration from defaults, an optional YAML file,
// an optional .env file and the process environment, in that order.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env values never override variables already present in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Driver = DriverPostgres
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "unicatalog"
	config.Database.SSLMode = "disable"
	config.Database.SQLitePath = "unicatalog.db"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Auth.Issuer = "unicatalog"
	config.Auth.TokenTTL = "24h"

	config.Catalog.PageSize = 20
	config.Catalog.CascadeConcurrency = 8

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Metrics.Enabled = true
	config.Metrics.Path = "/metrics"

	config.Importer.Source = SourceDir
	config.Importer.Dir = "data"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
	case DriverSQLite:
		if config.Database.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.Auth.Secret == "" {
		return fmt.Errorf("auth secret is required")
	}

	if _, err := time.ParseDuration(config.Auth.TokenTTL); err != nil {
		return fmt.Errorf("invalid auth token ttl format: %w", err)
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection lifetime format: %w", err)
	}

	if config.Catalog.PageSize <= 0 {
		return fmt.Errorf("page size must be positive")
	}

	if config.Catalog.CascadeConcurrency <= 0 {
		return fmt.Errorf("cascade concurrency must be positive")
	}

	switch config.Importer.Source {
	case SourceDir:
	case SourceS3:
		if config.Importer.S3.Bucket == "" {
			return fmt.Errorf("importer s3 bucket is required")
		}
	default:
		return fmt.Errorf("unsupported importer source %q", config.Importer.Source)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// ConnMaxLifetime returns the parsed connection lifetime. validateConfig
// guarantees the value parses.
func (c *Config) ConnMaxLifetime() time.Duration {
	d, _ := time.ParseDuration(c.Database.ConnMaxLifetime)
	return d
}

// TokenTTL returns the parsed capability token lifetime.
func (c *Config) TokenTTL() time.Duration {
	d, _ := time.ParseDuration(c.Auth.TokenTTL)
	return d
}

// PrettyLogs reports whether console logging was requested.
func (c *Config) PrettyLogs() bool {
	return strings.EqualFold(c.Logging.Format, "console") || strings.EqualFold(c.Logging.Format, "pretty")
}
