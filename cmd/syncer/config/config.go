package config

import "time"

// Config holds application configuration.
type Config struct {
	DatabaseURL string        `env:"DATABASE_URL"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	UserAgent   string        `env:"USER_AGENT" envDefault:"listing-sync/0.1.0"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	SourcesFile string        `env:"SOURCES_FILE" envDefault:"sources.yaml"`
	RunOnce     bool          `env:"RUN_ONCE" envDefault:"false"`
	SyncSecret  string        `env:"SYNC_SECRET"`

	RabbitMQ RabbitMQ
	S3       S3
	Redis    Redis
	Chrome   Chrome
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"listing-sync-ex"`
	Queue      string `env:"RABBITMQ_QUEUE" envDefault:"listing-sync.commands"`
	RoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"listing-sync.cmd.sync"`
}

// S3 holds image bucket configuration.
type S3 struct {
	Region        string `env:"S3_REGION" envDefault:"us-east-1"`
	Bucket        string `env:"S3_BUCKET"`
	Endpoint      string `env:"S3_ENDPOINT"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
	Prefix        string `env:"S3_PREFIX" envDefault:"listings"`
}

// Redis holds run lock configuration.
type Redis struct {
	Addr    string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	LockKey string        `env:"REDIS_LOCK_KEY" envDefault:"listing-sync:lock"`
	LockTTL time.Duration `env:"REDIS_LOCK_TTL" envDefault:"4h"`
}

// Chrome holds headless browser configuration.
type Chrome struct {
	Enabled  bool   `env:"CHROME_ENABLED" envDefault:"false"`
	ExecPath string `env:"CHROME_EXEC_PATH"`
}
