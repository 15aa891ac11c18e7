package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/autolistings/listing-sync/cmd/scheduler/config"
	"github.com/autolistings/listing-sync/internal/platform/rabbitmq"
	"github.com/autolistings/listing-sync/internal/scheduler"
	"github.com/autolistings/listing-sync/pkg/v1/commander"
	"github.com/caarlos0/env/v6"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse log level")
	}
	logger = logger.Level(level)

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	cmndr := commander.NewSyncCommander(commander.NewRabbitMQSender(conn, cfg.RabbitMQ.RoutingKey, cfg.SyncSecret))

	sch := scheduler.NewScheduler(cmndr, &logger)
	if err := sch.Start(cfg.Schedule); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start scheduler")
	}

	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	<-termChan

	logger.Info().Msg("graceful shutdown start")

	sch.Stop()

	if err := amqpConnection.Close(); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't close RabbitMQ connection")
	}

	logger.Info().Msg("graceful shutdown successful")
}
