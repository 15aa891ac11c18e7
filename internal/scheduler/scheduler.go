// Package scheduler publishes sync commands on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Commander --filename commander.go

// publishTimeout bounds publishing of a single command.
const publishTimeout = 30 * time.Second

// Commander sends sync commands.
type Commander interface {
	SendSyncCommand(ctx context.Context, sources ...string) error
}

// Scheduler sends sync command of all sources on schedule.
type Scheduler struct {
	commander Commander
	cron      *cron.Cron
	logger    *zerolog.Logger
}

// NewScheduler returns new Scheduler.
func NewScheduler(commander Commander, logger *zerolog.Logger) *Scheduler {
	return &Scheduler{
		commander: commander,
		cron:      cron.New(),
		logger:    logger,
	}
}

// Start starts sending commands on standard 5 field cron schedule.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.Trigger); err != nil {
		return fmt.Errorf("can't schedule sync: %w", err)
	}

	s.cron.Start()
	s.logger.Info().Str("schedule", schedule).Msg("sync scheduler started")

	return nil
}

// Stop stops scheduling and waits for command being sent.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("sync scheduler stopped")
}

// Trigger sends sync command immediately.
func (s *Scheduler) Trigger() {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := s.commander.SendSyncCommand(ctx); err != nil {
		s.logger.Error().Err(err).Msg("can't send sync command")
		return
	}

	s.logger.Info().Msg("sync command sent")
}
