package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
// ConnectAttempts bounds the startup pings, spaced attempt*ConnectRetryDelayMs apart.
type DatabaseConfig struct {
	Host                string
	Port                string
	User                string
	Password            string
	Name                string
	SSLMode             string
	MaxOpenConns        int
	MaxIdleConns        int
	ConnMaxLifetimeSec  int
	ConnectAttempts     int
	ConnectRetryDelayMs int
}

// MinIOConfig holds object storage settings for raw uploads.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RabbitMQConfig holds the adjudication hand-off queue settings.
// An empty URL disables publishing.
type RabbitMQConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
	Queue      string
}

// LogConfig controls the root zerolog logger.
type LogConfig struct {
	Level  string
	Pretty bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
// Preprocessing limits (extensions, size ceiling, balance thresholds) are
// constants of the preprocess, sequence and validation packages and are not configurable.
type AppConfig struct {
	AppHost     string
	Port        string
	BodyLimitMB int
	Log         LogConfig
	Database    DatabaseConfig
	MinIO       MinIOConfig
	RabbitMQ    RabbitMQConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		BodyLimitMB: getEnvInt("UPLOAD_BODY_LIMIT_MB", 64),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Database: DatabaseConfig{
			Host:                getEnv("DB_HOST", ""),
			Port:                getEnv("DB_PORT", "5432"),
			User:                getEnv("DB_USER", ""),
			Password:            getEnv("DB_PASSWORD", ""),
			Name:                getEnv("DB_NAME", ""),
			SSLMode:             getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:        getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:        getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec:  getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ConnectAttempts:     getEnvInt("DB_CONNECT_ATTEMPTS", 5),
			ConnectRetryDelayMs: getEnvInt("DB_CONNECT_RETRY_DELAY_MS", 1000),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		RabbitMQ: RabbitMQConfig{
			URL:        getEnv("RABBITMQ_URL", ""),
			Exchange:   getEnv("RABBITMQ_EXCHANGE", "adjudication"),
			RoutingKey: getEnv("RABBITMQ_ROUTING_KEY", "case.ready"),
			Queue:      getEnv("RABBITMQ_QUEUE", "adjudication.requests"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
