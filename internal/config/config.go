package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	Port        string
	Environment string
	Storage     StorageConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Catalog     CatalogConfig
	Reviews     ReviewsConfig
	Admin       AdminConfig
	LogLevel    string
}

type StorageConfig struct {
	Driver     string
	Namespace  string
	SQLitePath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CatalogConfig struct {
	SeedFile string
}

type ReviewsConfig struct {
	SubmitDelay time.Duration
}

type AdminConfig struct {
	PasscodeHash string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("STORAGE_DRIVER", DriverSQLite)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	submitDelay, err := time.ParseDuration(getEnvOrViper("REVIEW_SUBMIT_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("REVIEW_SUBMIT_DELAY is not a duration: %w", err)
	}
	if submitDelay < 0 {
		return nil, fmt.Errorf("REVIEW_SUBMIT_DELAY must not be negative")
	}

	redisDB, err := strconv.Atoi(getEnvOrViper("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB is not a number: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Storage: StorageConfig{
			Driver:     getEnvOrViper("STORAGE_DRIVER", DriverSQLite),
			Namespace:  getEnvOrViper("STORAGE_NAMESPACE", "default"),
			SQLitePath: getEnvOrViper("SQLITE_PATH", "dealmarket.db"),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "dealmarket"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", ""),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Catalog: CatalogConfig{
			SeedFile: getEnvOrViper("SEED_FILE", ""),
		},
		Reviews: ReviewsConfig{
			SubmitDelay: submitDelay,
		},
		Admin: AdminConfig{
			PasscodeHash: getEnvOrViper("ADMIN_PASSCODE_HASH", ""),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate driver-specific settings
	switch cfg.Storage.Driver {
	case DriverMemory, DriverPostgres:
	case DriverSQLite:
		if cfg.Storage.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverRedis:
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required for the redis driver")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
