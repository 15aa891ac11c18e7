package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/autolistings/listing-sync/cmd/syncer/config"
	"github.com/autolistings/listing-sync/internal/adapter"
	"github.com/autolistings/listing-sync/internal/fetcher"
	"github.com/autolistings/listing-sync/internal/handler"
	"github.com/autolistings/listing-sync/internal/offloader"
	"github.com/autolistings/listing-sync/internal/orchestrator"
	"github.com/autolistings/listing-sync/internal/platform/lock"
	"github.com/autolistings/listing-sync/internal/platform/objectstore"
	"github.com/autolistings/listing-sync/internal/platform/rabbitmq"
	"github.com/autolistings/listing-sync/internal/platform/sources"
	"github.com/autolistings/listing-sync/internal/platform/storage"
	"github.com/autolistings/listing-sync/internal/reconciler"
	"github.com/caarlos0/env/v6"
	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

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

	srcs, err := sources.Load(cfg.SourcesFile)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("path", cfg.SourcesFile).
			Msg("can't load sources")
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}

	bucket, err := objectstore.NewS3(objectstore.Config{
		Region:        cfg.S3.Region,
		Bucket:        cfg.S3.Bucket,
		Endpoint:      cfg.S3.Endpoint,
		PublicBaseURL: cfg.S3.PublicBaseURL,
	})
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't create S3 client")
	}

	httpFetcher := fetcher.NewFetcher(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.UserAgent)

	// browser stays nil interface when disabled
	var browser adapter.PageFetcher
	closeBrowser := func() {}
	if cfg.Chrome.Enabled {
		renderer := fetcher.NewRenderer(cfg.UserAgent, cfg.Chrome.ExecPath)
		browser = renderer
		closeBrowser = renderer.Close
	}

	registry := adapter.NewRegistry(httpFetcher, browser, &logger)
	if err := registry.Validate(srcs); err != nil {
		logger.Fatal().
			Err(err).
			Str("path", cfg.SourcesFile).
			Msg("can't build source adapters")
	}

	store := storage.NewPostgres(pgDB)
	orch := orchestrator.NewOrchestrator(
		srcs,
		registry,
		store,
		store,
		reconciler.NewReconciler(store, offloader.NewOffloader(httpFetcher, bucket, cfg.S3.Prefix, &logger), &logger),
		&logger,
	)

	if cfg.RunOnce {
		summary := orch.Run(ctx)
		cancel()
		closeBrowser()
		closePostgres(pgDB, &logger)
		if failed := summary.Failed(); len(failed) > 0 {
			logger.Error().Strs("failed", failed).Msg("sync finished with failed sources")
			os.Exit(1)
		}
		return
	}

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

	if err := conn.DeclareQueue(cfg.RabbitMQ.Queue, cfg.RabbitMQ.RoutingKey); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't declare RabbitMQ queue")
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})

	han := handler.NewHandler(
		conn,
		orch,
		lock.NewLocker(redisClient, cfg.Redis.LockKey, cfg.Redis.LockTTL),
		cfg.SyncSecret,
		&logger,
	)

	// start consuming and handling messages
	err = han.Start(ctx, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	logger.Info().Int("sources", len(srcs)).Msg("listing sync up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	// wait for consumer to finish
	<-conn.Done()

	closeBrowser()

	// close connections
	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		closePostgres(pgDB, &logger)
	}()

	go func() {
		defer wg.Done()
		if err := amqpConnection.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	}()

	go func() {
		defer wg.Done()
		if err := redisClient.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close Redis connection")
		}
	}()

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}

func closePostgres(db *sql.DB, logger *zerolog.Logger) {
	if err := db.Close(); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't close Postgres connection")
	}
}
