package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tair/confusion-server/pkg/database"
)

// Config holds the service configuration
type Config struct {
	ServiceName   string
	Environment   string
	LogLevel      string
	HTTPPort      string
	GRPCPort      string
	StoreDriver   string
	Postgres      database.Config
	Mongo         database.MongoConfig
	JWTSecret     string
	JWTTTL        time.Duration
	RedisAddr     string
	RedisPassword string
	KafkaBrokers  []string
	KafkaGroupID  string
	MetricsPort   string
	JaegerURL     string
	CORSOrigins   []string
	RateLimit     int

	// TrustedProxies are the CIDRs allowed to set X-Forwarded-For
	TrustedProxies []string
}

// IsDevelopment reports whether pretty console logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads the configuration from the environment. A .env file in the
// working directory, when present, fills in unset variables.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceName: getEnv("OTEL_SERVICE_NAME", "confusion-server"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnv("HTTP_PORT", "3000"),
		GRPCPort:    getEnv("GRPC_PORT", "9090"),
		StoreDriver: getEnv("STORE_DRIVER", database.DriverPostgres),
		Postgres: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "confusion"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Mongo: database.MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "conFusion"),
			Timeout:  getDuration("MONGO_TIMEOUT", 10*time.Second),
		},
		JWTSecret:     getEnv("JWT_SECRET", "confusion-dev-secret"),
		JWTTTL:        getDuration("JWT_TTL", time.Hour),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:  getList("KAFKA_BROKERS"),
		KafkaGroupID:  getEnv("KAFKA_GROUP_ID", "confusion-eventlog"),
		MetricsPort:   getEnv("METRICS_PORT", "9100"),
		JaegerURL:     getEnv("JAEGER_ENDPOINT", ""),
		CORSOrigins:   strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),
		RateLimit:     getInt("RATE_LIMIT_PER_MINUTE", 100),

		TrustedProxies: getList("TRUSTED_PROXIES"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
