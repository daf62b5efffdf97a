package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Addr       string         `yaml:"addr"`
	Env        string         `yaml:"env"`
	APITimeout time.Duration  `yaml:"timeout"`
	PublicDir  string         `yaml:"public_dir"`
	Database   DatabaseConfig `yaml:"database"`
}

// DatabaseConfig mirrors the DB_* environment variables. Server is the host
// for postgres and the database file (or DSN) for sqlite.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	Server          string        `yaml:"server"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// LoadConfig builds the configuration from defaults, the process environment
// (after loading envFile entries, if any) and an optional YAML file.
func LoadConfig(path string) (*Config, error) {
	return LoadConfigWithEnvFile(path, ".env")
}

func LoadConfigWithEnvFile(path, envFile string) (*Config, error) {
	if envFile != "" {
		// godotenv never overrides variables already set in the environment
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Addr:       addrFromEnv(),
		Env:        getEnv("APP_ENV", "development"),
		APITimeout: 15 * time.Second,
		PublicDir:  getEnv("PUBLIC_DIR", "public"),
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverSQLite),
			Server:          os.Getenv("DB_SERVER"),
			Port:            os.Getenv("DB_PORT"),
			User:            os.Getenv("DB_USER"),
			Password:        os.Getenv("DB_PASSWORD"),
			Name:            os.Getenv("DB_NAME"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    10,
			ConnMaxIdleTime: 5 * time.Minute,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks settings that are fatal at startup. A missing database
// server is not one of them: it surfaces as a configuration error on connect.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.APITimeout)
	}
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func addrFromEnv() string {
	if v := os.Getenv("PORTFOLIO_ADDR"); v != "" {
		return v
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}

	return ":3000"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
