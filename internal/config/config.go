package config

import (
	"os"
	"strconv"
	"time"
)

type LivestockServiceConfig struct {
	Port          string
	JWTSecret     string
	SweepInterval time.Duration
	PostgresCfg   PostgresConfig
	RedisCfg      RedisConfig
	RabbitMQCfg   RabbitMQConfig
	MinioCfg      MinioConfig
	LineCfg       LineConfig
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Host     string
	Username string
	Password string
	Port     string
}

type MinioConfig struct {
	MinioURL         string
	MinioAccessKey   string
	MinioSecretKey   string
	MinioLocation    string
	MinioSecure      string
	MinioResourceURL string
}

// LineConfig holds the LINE Login verification endpoint. Token verification
// is delegated entirely to LINE; we never parse the token ourselves.
type LineConfig struct {
	VerifyURL  string
	ProfileURL string
}

func New() *LivestockServiceConfig {
	return &LivestockServiceConfig{
		Port:          getEnvOrDefault("LIVESTOCK_SERVICE_PORT", "8090"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "dev-secret-change-me"),
		SweepInterval: getEnvDurationOrDefault("OVERDUE_SWEEP_INTERVAL", 5*time.Minute),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "livestock_service"),
			Username: getEnvOrDefault("POSTGRES_USER", "user"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "password"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
		},
		RabbitMQCfg: RabbitMQConfig{
			Host:     getEnvOrDefault("RABBITMQ_HOST", "rabbitmq"),
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		MinioCfg: MinioConfig{
			MinioURL:         getEnvOrDefault("MINIO_ENDPOINT", "http://localhost:9407"),
			MinioAccessKey:   getEnvOrDefault("MINIO_ACCESS_KEY", "minio"),
			MinioSecretKey:   getEnvOrDefault("MINIO_SECRET_KEY", "minio123"),
			MinioLocation:    getEnvOrDefault("MINIO_LOCATION", "us-east-1"),
			MinioSecure:      getEnvOrDefault("MINIO_SECURE", "false"),
			MinioResourceURL: getEnvOrDefault("MINIO_RESOURCE_URL", "http://localhost:9407/"),
		},
		LineCfg: LineConfig{
			VerifyURL:  getEnvOrDefault("LINE_VERIFY_URL", "https://api.line.me/oauth2/v2.1/verify"),
			ProfileURL: getEnvOrDefault("LINE_PROFILE_URL", "https://api.line.me/v2/profile"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
