package config

import "time"

type CatalogConfig struct {
	BaseURL         string
	PageLimit       int
	Timeout         time.Duration
	CacheTTL        time.Duration
	RefreshInterval time.Duration
}

type CartStoreConfig struct {
	Driver string
	// TTL applies to the redis driver only; zero keeps carts forever.
	TTL time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type PostgreSQLConfig struct {
	DBHost     string
	DBName     string
	DBPort     string
	DBUsername string
	DBPassword string
}

type SQLiteConfig struct {
	Path string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type TracingConfig struct {
	CollectorHost string
}
