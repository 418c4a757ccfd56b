package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DB       *DBconfig
	RabbitMq *RabbitMqconfig
	Srv      *Serviceconfig
	Cache    *Cacheconfig
	App      *Appconfig
	Log      *Loggerconfig
}

type DBconfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type RabbitMqconfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type Serviceconfig struct {
	AuthServicePort  string
	AdminServicePort string
}

// Cacheconfig points at the downstream quote-cache refresh endpoint. The
// signal is fire-and-forget, so the timeout only bounds how long we wait.
type Cacheconfig struct {
	RefreshURL string
	Timeout    time.Duration
}

type Appconfig struct {
	JwtSecret string
}

type Loggerconfig struct {
	Level string
}

func New() (*Config, error) {
	cnf := &Config{
		DB: &DBconfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "transfer_user"),
			Password: getEnv("DB_PASSWORD", "transfer_pass"),
			Database: getEnv("DB_NAME", "transfer_db"),
		},
		RabbitMq: &RabbitMqconfig{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnvInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			VHost:    getEnv("RABBITMQ_VHOST", ""),
		},
		Srv: &Serviceconfig{
			AuthServicePort:  getEnv("AUTH_SERVICE_PORT", "8081"),
			AdminServicePort: getEnv("ADMIN_SERVICE_PORT", "8082"),
		},
		Cache: &Cacheconfig{
			RefreshURL: getEnv("PRICE_CACHE_REFRESH_URL", ""),
			Timeout:    time.Duration(getEnvInt("PRICE_CACHE_REFRESH_TIMEOUT_SEC", 5)) * time.Second,
		},
		App: &Appconfig{
			JwtSecret: getEnv("JWT_SECRET", "dev-secret"),
		},
		Log: &Loggerconfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
	}

	return cnf, nil
}

func getEnv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func getEnvInt(key string, def int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return def
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		fmt.Printf("invalid value for %v, using default %v\n", key, def)
		return def
	}
	return val
}
