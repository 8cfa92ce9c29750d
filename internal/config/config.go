// Package config reads settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config is the client configuration.
type Config struct {
	APIURL      string
	APITimeout  time.Duration
	DataDir     string
	Store       string
	RedisURL    string
	RedisAddr   string
	RedisPass   string
	RedisPrefix string
	Locale      string
	Theme       string
	LogFile     string
	LogLevel    string
}

// ServerConfig is the development API configuration.
type ServerConfig struct {
	AppEnv    string
	Port      string
	JWTSecret string
	JWTExpiry time.Duration
	Origins   []string
}

// LoadEnv reads envFile into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnv(envFile string) error {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	return nil
}

func Load() (Config, error) {
	dataDir := getEnv("SHOP_DATA_DIR", "")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("home: %w", err)
		}
		dataDir = filepath.Join(home, ".shopfront")
	}

	timeout, err := time.ParseDuration(getEnv("SHOP_API_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("SHOP_API_TIMEOUT: %w", err)
	}

	cfg := Config{
		APIURL:      getEnv("SHOP_API_URL", "http://localhost:8082"),
		APITimeout:  timeout,
		DataDir:     dataDir,
		Store:       strings.ToLower(getEnv("SHOP_STORE", StoreFile)),
		RedisURL:    getEnv("REDIS_URL", ""),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   getEnv("REDIS_PASSWORD", ""),
		RedisPrefix: getEnv("SHOP_REDIS_PREFIX", "shopfront:"),
		Locale:      getEnv("SHOP_LOCALE", "vi"),
		Theme:       getEnv("SHOP_THEME", "auto"),
		LogFile:     getEnv("SHOP_LOG_FILE", filepath.Join(dataDir, "shop.log")),
		LogLevel:    getEnv("SHOP_LOG_LEVEL", "info"),
	}
	switch cfg.Store {
	case StoreFile, StoreRedis, StoreMemory:
	default:
		return Config{}, fmt.Errorf("SHOP_STORE: unknown backend %q", cfg.Store)
	}
	return cfg, nil
}

func LoadServer() (ServerConfig, error) {
	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "24h"))
	if err != nil {
		return ServerConfig{}, fmt.Errorf("JWT_EXPIRY: %w", err)
	}
	cfg := ServerConfig{
		AppEnv:    getEnv("APP_ENV", "development"),
		Port:      getEnv("SHOPAPI_PORT", getEnv("PORT", "8082")),
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: expiry,
		Origins:   splitList(getEnv("ORIGIN_URL", "")),
	}
	if cfg.JWTSecret == "" {
		if cfg.AppEnv == "production" {
			return ServerConfig{}, errors.New("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret"
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
