package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type DatabaseConfig struct {
	Host       string `toml:"host" yaml:"host"`
	Port       string `toml:"port" yaml:"port"`
	User       string `toml:"user" yaml:"user"`
	Password   string `toml:"password" yaml:"password"`
	Name       string `toml:"name" yaml:"name"`
	SQLitePath string `toml:"sqlite_path" yaml:"sqlite_path"`
}

type Config struct {
	Port            string         `toml:"port" yaml:"port"`
	GinMode         string         `toml:"gin_mode" yaml:"gin_mode"`
	LogLevel        string         `toml:"log_level" yaml:"log_level"`
	LogFormat       string         `toml:"log_format" yaml:"log_format"`
	StorageDriver   string         `toml:"storage_driver" yaml:"storage_driver"`
	DataDir         string         `toml:"data_dir" yaml:"data_dir"`
	CORSAllowOrigin string         `toml:"cors_allow_origin" yaml:"cors_allow_origin"`
	FrontendDir     string         `toml:"frontend_dir" yaml:"frontend_dir"`
	DB              DatabaseConfig `toml:"database" yaml:"database"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:            "3000",
		GinMode:         "debug",
		LogLevel:        "info",
		LogFormat:       "json",
		StorageDriver:   DriverFile,
		DataDir:         "data",
		CORSAllowOrigin: "*",
		DB: DatabaseConfig{
			Host:       "localhost",
			Port:       "5432",
			User:       "kanban",
			Password:   "kanban",
			Name:       "kanban",
			SQLitePath: "data/kanban.db",
		},
	}
}

// Load builds the configuration from defaults, an optional CONFIG_FILE
// (TOML or YAML) and environment variables, in increasing precedence.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.StorageDriver = getEnv("STORAGE_DRIVER", c.StorageDriver)
	c.DataDir = getEnv("DATA_DIR", c.DataDir)
	c.CORSAllowOrigin = getEnv("CORS_ALLOW_ORIGIN", c.CORSAllowOrigin)
	c.FrontendDir = getEnv("FRONTEND_DIR", c.FrontendDir)
	c.DB.Host = getEnv("DB_HOST", c.DB.Host)
	c.DB.Port = getEnv("DB_PORT", c.DB.Port)
	c.DB.User = getEnv("DB_USER", c.DB.User)
	c.DB.Password = getEnv("DB_PASSWORD", c.DB.Password)
	c.DB.Name = getEnv("DB_NAME", c.DB.Name)
	c.DB.SQLitePath = getEnv("SQLITE_PATH", c.DB.SQLitePath)
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverFile, DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.StorageDriver)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}
	if c.CORSAllowOrigin != "*" && !strings.HasPrefix(c.CORSAllowOrigin, "http://") && !strings.HasPrefix(c.CORSAllowOrigin, "https://") {
		return fmt.Errorf("cors allow origin must be * or an http(s) origin, got %q", c.CORSAllowOrigin)
	}
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// DSN returns the connection string for the configured database driver.
func (db *DatabaseConfig) DSN(driver string) string {
	switch driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			db.Host, db.Port, db.User, db.Password, db.Name)
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			db.User, db.Password, db.Host, db.Port, db.Name)
	case DriverSQLite:
		return db.SQLitePath
	default:
		return ""
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
