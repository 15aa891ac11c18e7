package config

// Config holds scheduler configuration.
type Config struct {
	Schedule   string `env:"SCHEDULE" envDefault:"0 */6 * * *"`
	SyncSecret string `env:"SYNC_SECRET,notEmpty"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	RabbitMQ RabbitMQ
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"listing-sync-ex"`
	RoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"listing-sync.cmd.sync"`
}
