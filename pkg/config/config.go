package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name              string
	Version           string
	Environment       string
	StoreTokenKey     string
	DemoStoreID       uint
	RecommendationCap int
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	Enabled       bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTLSec   int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	cacheTTL, _ := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "300"))
	demoStoreID, _ := strconv.Atoi(getEnv("DEMO_STORE_ID", "1"))
	recCap, _ := strconv.Atoi(getEnv("RECOMMENDATION_CAP", "0"))

	cfg := &Config{
		App: AppConfig{
			Name:              getEnv("APP_NAME", "ShopifyPulse API"),
			Version:           getEnv("APP_VERSION", "1.0.0"),
			Environment:       getEnv("APP_ENV", "development"),
			StoreTokenKey:     getEnv("STORE_TOKEN_KEY", ""),
			DemoStoreID:       uint(demoStoreID),
			RecommendationCap: recCap,
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "shopifypulse"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			Enabled:       getEnv("REDIS_ENABLED", "false") == "true",
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			CacheTTLSec:   cacheTTL,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.App.StoreTokenKey == "" {
		return nil, errors.New("missing store token key")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
