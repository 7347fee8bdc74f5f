package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	CartStoreMemory   = "memory"
	CartStoreRedis    = "redis"
	CartStoreSQLite   = "sqlite"
	CartStorePostgres = "postgres"
)

type Config struct {
	ServiceName      string
	ServicePort      string
	MetricsPort      string
	LogLevel         string
	CatalogConfig    CatalogConfig
	CartStoreConfig  CartStoreConfig
	RedisConfig      RedisConfig
	PostgreSQLConfig PostgreSQLConfig
	SQLiteConfig     SQLiteConfig
	KafkaConfig      KafkaConfig
	TracingConfig    TracingConfig
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServiceName: getEnv("SERVICE_NAME", "storefront-service"),
		ServicePort: getEnv("SERVICE_PORT", "8080"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CatalogConfig: CatalogConfig{
			BaseURL:         getEnv("CATALOG_BASE_URL", "https://dummyjson.com"),
			PageLimit:       getEnvInt("CATALOG_PAGE_LIMIT", 100),
			Timeout:         getEnvDuration("CATALOG_TIMEOUT", 10*time.Second),
			CacheTTL:        getEnvDuration("CATALOG_CACHE_TTL", 0),
			RefreshInterval: getEnvDuration("CATALOG_REFRESH_INTERVAL", 0),
		},
		CartStoreConfig: CartStoreConfig{
			Driver: getEnv("CART_STORE_DRIVER", CartStoreMemory),
			TTL:    getEnvDuration("CART_TTL", 0),
		},
		RedisConfig: RedisConfig{
			Address:  os.Getenv("REDIS_ADDRESS"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		SQLiteConfig: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "storefront.db"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress:   os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:     os.Getenv("BROKER_TOPIC"),
			BrokerPartition: getEnvInt("BROKER_PARTITION", 0),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
