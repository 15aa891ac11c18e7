// Package orchestrator runs sync of all configured sources.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/autolistings/listing-sync/internal/adapter"
	"github.com/autolistings/listing-sync/internal/location"
	"github.com/autolistings/listing-sync/internal/normalizer"
	"github.com/autolistings/listing-sync/internal/platform/models"
	"github.com/autolistings/listing-sync/internal/platform/sources"
	"github.com/autolistings/listing-sync/internal/reconciler"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name RunStore --filename run_store.go

// ErrPanic is returned when source sync panicked.
var ErrPanic = errors.New("source sync panicked")

// RunStore is sync runs storage.
type RunStore interface {
	// StartRun creates new run if there is no run for provided source running.
	StartRun(ctx context.Context, source string) (*models.Run, error)
	// FinishRun finishes provided run and updates its statistics.
	FinishRun(ctx context.Context, run *models.Run) error
}

// Adapters builds source adapters.
type Adapters interface {
	Build(cfg sources.SourceConfig) (adapter.Adapter, error)
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() time.Time
}

// Option is custom configuration of Orchestrator.
type Option func(o *Orchestrator)

// Orchestrator syncs sources one after another.
type Orchestrator struct {
	sources    []sources.SourceConfig
	adapters   Adapters
	runs       RunStore
	locations  location.Store
	reconciler *reconciler.Reconciler
	clock      Clock
	logger     *zerolog.Logger
}

// NewOrchestrator returns new Orchestrator of provided sources.
func NewOrchestrator(
	cfgs []sources.SourceConfig,
	adapters Adapters,
	runs RunStore,
	locations location.Store,
	rec *reconciler.Reconciler,
	logger *zerolog.Logger,
	ops ...Option,
) *Orchestrator {
	orch := &Orchestrator{
		sources:    cfgs,
		adapters:   adapters,
		runs:       runs,
		locations:  locations,
		reconciler: rec,
		clock:      systemClock{},
		logger:     logger,
	}

	for _, op := range ops {
		op(orch)
	}

	return orch
}

// WithClock sets Orchestrator's custom Clock.
func WithClock(c Clock) Option {
	return func(o *Orchestrator) {
		o.clock = c
	}
}

// Run syncs sources sequentially, in configuration order, and returns summary of the run.
// If names are provided, only sources with those names are synced.
// Failure of one source never stops the others.
func (o *Orchestrator) Run(ctx context.Context, names ...string) Summary {
	summary := Summary{StartedAt: o.clock.Now()}
	resolver := location.NewResolver(o.locations)

	selected := o.sources
	if len(names) > 0 {
		selected = lo.Filter(o.sources, func(cfg sources.SourceConfig, _ int) bool { return lo.Contains(names, cfg.Name) })

		known := lo.Map(o.sources, func(cfg sources.SourceConfig, _ int) string { return cfg.Name })
		if unknown := lo.Without(names, known...); len(unknown) > 0 {
			o.logger.Warn().Strs("sources", unknown).Msg("unknown sources requested")
		}
	}

	for _, cfg := range selected {
		if ctx.Err() != nil {
			summary.Sources = append(summary.Sources, SourceResult{Source: cfg.Name, Error: ctx.Err()})
			continue
		}
		summary.Sources = append(summary.Sources, o.syncSource(ctx, cfg, resolver))
	}

	summary.FinishedAt = o.clock.Now()

	for _, result := range summary.Sources {
		o.logger.Info().EmbedObject(result).Msg("source summary")
	}
	o.logger.Info().EmbedObject(summary).Msg("sync finished")

	return summary
}

// syncSource runs whole chain of one source and records it as a run.
func (o *Orchestrator) syncSource(ctx context.Context, cfg sources.SourceConfig, resolver *location.Resolver) SourceResult {
	logger := o.logger.With().Str("source", cfg.Name).Logger()
	result := SourceResult{Source: cfg.Name}

	logger.Info().Msg("source sync started")

	run, err := o.runs.StartRun(ctx, cfg.Name)
	if err != nil {
		result.Error = fmt.Errorf("can't start run: %w", err)
		logger.Error().Err(result.Error).Msg("source sync failed")
		return result
	}

	err = recovered(func() error { return o.ingest(ctx, cfg, resolver, &result, &logger) })
	result.Error = o.finishRun(ctx, run, &result, err)
	result.OK = result.Error == nil

	if result.Error != nil {
		logger.Error().Err(result.Error).Msg("source sync failed")
	} else {
		logger.Info().Msg("source sync finished")
	}

	return result
}

// ingest fetches, normalizes and reconciles listings of source, then runs the staleness sweep.
func (o *Orchestrator) ingest(
	ctx context.Context,
	cfg sources.SourceConfig,
	resolver *location.Resolver,
	result *SourceResult,
	logger *zerolog.Logger,
) error {
	src, err := o.adapters.Build(cfg)
	if err != nil {
		return fmt.Errorf("can't build adapter: %w", err)
	}

	stateID, cityID, err := resolver.Resolve(ctx, cfg.Location.State, cfg.Location.City)
	if err != nil {
		return fmt.Errorf("can't resolve location: %w", err)
	}

	pass := o.reconciler.Begin(cfg.Name)
	rawListings := make(chan models.RawListing)
	dropped := int32(0)

	errGroup, egCtx := errgroup.WithContext(ctx)

	// fetch raw listings.
	errGroup.Go(func() error {
		defer close(rawListings)
		return recovered(func() error {
			if err := src.FetchListings(egCtx, rawListings); err != nil {
				return fmt.Errorf("can't fetch listings: %w", err)
			}
			return nil
		})
	})

	// normalize and apply listings.
	errGroup.Go(func() error {
		return recovered(func() error {
			for raw := range rawListings {
				listing, err := normalizer.Normalize(raw, cfg, o.clock.Now())
				if err != nil {
					dropped++
					logger.Debug().Err(err).Str("externalId", raw.ExternalID).Msg("listing dropped")
					continue
				}

				listing.StateID = stateID
				listing.CityID = cityID
				listing.CityName = optional(cfg.Location.City)

				pass.Apply(ctx, listing)
			}
			return nil
		})
	})

	err = errGroup.Wait()
	result.Dropped = dropped
	stats := pass.Stats()
	setStats(result, stats)

	if err != nil {
		return err
	}

	stats, err = pass.Finish(ctx)
	setStats(result, stats)
	if err != nil {
		return fmt.Errorf("can't deactivate stale listings: %w", err)
	}

	return nil
}

func (o *Orchestrator) finishRun(ctx context.Context, run *models.Run, result *SourceResult, status error) error {
	if status != nil {
		run.StatusMessage = lo.ToPtr(status.Error())
	}
	run.IsSuccess = lo.ToPtr(status == nil)
	run.FinishedAt = lo.ToPtr(o.clock.Now())
	run.Observed = lo.ToPtr(result.Observed)
	run.Inserted = lo.ToPtr(result.Inserted)
	run.Updated = lo.ToPtr(result.Updated)
	run.Skipped = lo.ToPtr(result.Skipped)
	run.Dropped = lo.ToPtr(result.Dropped)
	run.Deactivated = lo.ToPtr(result.Deactivated)

	err := o.runs.FinishRun(ctx, run)
	if err != nil && status == nil {
		return fmt.Errorf("can't finish run: %w", err)
	}

	if err != nil && status != nil {
		return fmt.Errorf("can't finish failed run: %w (fail reason: %w)", err, status)
	}

	return status
}

func setStats(result *SourceResult, stats reconciler.Stats) {
	result.Observed = stats.Observed
	result.Inserted = stats.Inserted
	result.Updated = stats.Updated
	result.Skipped = stats.Skipped
	result.Deactivated = stats.Deactivated
}

// recovered calls fn and returns panic raised by it as error.
func recovered(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return fn()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
