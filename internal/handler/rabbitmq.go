// Package handler handles sync commands consumed from RabbitMQ.
package handler

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/autolistings/listing-sync/internal/orchestrator"
	"github.com/autolistings/listing-sync/internal/platform/lock"
	"github.com/autolistings/listing-sync/internal/platform/rabbitmq"
	"github.com/autolistings/listing-sync/pkg/v1/commander"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Consumer --filename consumer.go
//go:generate mockery --name Syncer --filename syncer.go
//go:generate mockery --name Locker --filename locker.go

// Consumer consumes messages from queue.
type Consumer interface {
	Consume(ctx context.Context, queue string, handler rabbitmq.HandlerFunc) (<-chan error, error)
}

// Syncer syncs sources, all of them when no names provided.
type Syncer interface {
	Run(ctx context.Context, names ...string) orchestrator.Summary
}

// Locker runs functions holding lock shared by all workers.
type Locker interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// RMQHandler handles RMQ messages.
type RMQHandler struct {
	rmq    Consumer
	syncer Syncer
	locker Locker
	secret string
	logger *zerolog.Logger
}

// NewHandler returns new RMQHandler accepting commands signed with secret.
func NewHandler(rmq Consumer, syncer Syncer, locker Locker, secret string, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		rmq:    rmq,
		syncer: syncer,
		locker: locker,
		secret: secret,
		logger: logger,
	}
}

// Start starts consuming and handling sync commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.rmq.Consume(ctx, queue, h.Handle)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

// Handle runs sync requested by message. Sync already running elsewhere is not an error, command is skipped.
func (h *RMQHandler) Handle(ctx context.Context, msg rabbitmq.Message) error {
	if !h.authorized(msg.Header(commander.SecretHeader)) {
		return ErrUnauthorized
	}

	cmd, err := decodeMessage(msg.Body)
	if err != nil {
		return err
	}

	h.logger.Debug().
		Strs("sources", cmd.Sources).
		Time("requestedAt", cmd.RequestedAt).
		Msg("sync started")

	err = h.locker.Do(ctx, func(ctx context.Context) error {
		summary := h.syncer.Run(ctx, cmd.Sources...)

		h.logger.Debug().
			Strs("failed", summary.Failed()).
			Msg("sync finished")

		return nil
	})
	if errors.Is(err, lock.ErrLocked) {
		h.logger.Warn().
			Time("requestedAt", cmd.RequestedAt).
			Msg("sync already running, command skipped")
		return nil
	}
	if errors.Is(err, lock.ErrNotHeld) {
		h.logger.Warn().Msg("sync outlived its lock")
		return nil
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	return nil
}

// authorized reports whether secret matches configured one. Nothing is authorized without configured secret.
func (h *RMQHandler) authorized(secret string) bool {
	if h.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(h.secret)) == 1
}

func decodeMessage(msg []byte) (*commander.SyncCommand, error) {
	var cmd commander.SyncCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode sync command: %w", err)
	}

	return &cmd, nil
}
