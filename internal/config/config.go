package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Config holds the settings shared by the sales and metrics services.
type Config struct {
	ServiceName string
	HTTPPort    string
	Timezone    string

	DB DBConfig

	LogLevel string
	LogFile  string

	RedisAddr    string
	KafkaBrokers []string
	KafkaTopic   string

	RateLimit         float64
	RateBurst         int
	PrometheusEnabled bool
}

// DBConfig describes the MySQL connection.
type DBConfig struct {
	Host           string
	Port           string
	User           string
	Pass           string
	Name           string
	ConnectRetries int
}

// Load reads configuration from environment variables with defaults.
func Load(serviceName, defaultPort string) Config {
	return Config{
		ServiceName: serviceName,
		HTTPPort:    getEnv("HTTP_PORT", defaultPort),
		Timezone:    getEnv("TPV_TIMEZONE", "Europe/Madrid"),
		DB: DBConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "3306"),
			User:           getEnv("DB_USER", "root"),
			Pass:           getEnv("DB_PASS", "root"),
			Name:           getEnv("DB_NAME", "tpv_relacional"),
			ConnectRetries: cast.ToInt(getEnv("DB_CONNECT_RETRIES", "10")),
		},
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           os.Getenv("LOG_FILE"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "venta-topic"),
		RateLimit:         cast.ToFloat64(getEnv("RATE_LIMIT", "0")),
		RateBurst:         cast.ToInt(getEnv("RATE_BURST", "3")),
		PrometheusEnabled: cast.ToBool(getEnv("PROMETHEUS_ENABLED", "false")),
	}
}

// Location resolves the authoritative time zone for fecha/hora stamps.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
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
