package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvProduction = "production"

	defaultHTTPPort     = "5001"
	defaultDBSslMode    = "disable"
	defaultAMQPExchange = "work_orders"
	defaultLogLevel     = "info"
	defaultLogFormat    = "json"
)

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	AppEnv            string
	AMQPURL           string
	AMQPExchange      string
	KeepAliveURL      string
	KeepAliveSchedule string
	LogLevel          string
	LogFormat         string
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() Config {
	_ = godotenv.Load(".env")

	return Config{
		HTTPPort:          getEnv("HTTP_PORT", defaultHTTPPort),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            getEnv("DB_NAME", "workorders"),
		DBSslMode:         getEnv("DB_SSLMODE", defaultDBSslMode),
		AppEnv:            os.Getenv("APP_ENV"),
		AMQPURL:           os.Getenv("AMQP_URL"),
		AMQPExchange:      getEnv("AMQP_EXCHANGE", defaultAMQPExchange),
		KeepAliveURL:      os.Getenv("KEEPALIVE_URL"),
		KeepAliveSchedule: os.Getenv("KEEPALIVE_SCHEDULE"),
		LogLevel:          getEnv("LOG_LEVEL", defaultLogLevel),
		LogFormat:         getEnv("LOG_FORMAT", defaultLogFormat),
	}
}

// DSN is the PostgreSQL connection string for the gorm driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
