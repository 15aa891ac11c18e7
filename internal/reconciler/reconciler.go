// Package reconciler syncs canonical listings of a source with the listings store.
package reconciler

import (
	"context"
	"errors"
	"time"

	"github.com/autolistings/listing-sync/internal/offloader"
	"github.com/autolistings/listing-sync/internal/platform"
	"github.com/autolistings/listing-sync/internal/platform/models"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Store --filename store.go
//go:generate mockery --name Offloader --filename offloader.go

// Store is listings storage.
type Store interface {
	// GetListing returns listing of source with provided external ID or platform.ErrNotFound.
	GetListing(ctx context.Context, source, externalID string) (*models.Listing, error)
	// UpsertListing inserts or updates listing by source and external ID. Returns true if listing was inserted.
	UpsertListing(ctx context.Context, listing *models.Listing) (inserted bool, err error)
	// DeactivateStale deactivates active listings of source last seen before provided time.
	// Returns number of deactivated listings.
	DeactivateStale(ctx context.Context, source string, before time.Time) (int64, error)
}

// Offloader copies images to durable storage.
type Offloader interface {
	Offload(ctx context.Context, sourceURL string, key offloader.Key) *string
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() time.Time
}

// Outcome is result of applying a listing.
type Outcome int

const (
	// Skipped listing was not persisted.
	Skipped Outcome = iota
	// Inserted listing is new.
	Inserted
	// Updated listing already existed.
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	default:
		return "skipped"
	}
}

// Stats are counters of a single pass.
type Stats struct {
	Observed    int32
	Inserted    int32
	Updated     int32
	Skipped     int32
	Deactivated int32
}

// Option is custom configuration of Reconciler.
type Option func(r *Reconciler)

// Reconciler upserts listings and deactivates listings not observed in a pass.
type Reconciler struct {
	store     Store
	offloader Offloader
	clock     Clock
	logger    *zerolog.Logger
}

// NewReconciler returns new Reconciler.
func NewReconciler(store Store, offloader Offloader, logger *zerolog.Logger, ops ...Option) *Reconciler {
	rec := &Reconciler{
		store:     store,
		offloader: offloader,
		clock:     systemClock{},
		logger:    logger,
	}

	for _, op := range ops {
		op(rec)
	}

	return rec
}

// WithClock sets Reconciler's custom Clock.
func WithClock(c Clock) Option {
	return func(r *Reconciler) {
		r.clock = c
	}
}

// Begin starts pass over listings of source.
// Listings of the source not applied to the pass are deactivated when it finishes.
func (r *Reconciler) Begin(source string) *Pass {
	return &Pass{
		rec:       r,
		source:    source,
		startedAt: r.clock.Now(),
	}
}

// Pass is a single reconciliation pass over one source. It is not safe for concurrent use.
type Pass struct {
	rec       *Reconciler
	source    string
	startedAt time.Time
	stats     Stats
}

// StartedAt returns time the pass started at.
func (p *Pass) StartedAt() time.Time {
	return p.startedAt
}

// Stats returns pass counters.
func (p *Pass) Stats() Stats {
	return p.stats
}

// Apply persists listing observed in the pass, keeping its already stored images.
// Storage failures are logged and the listing is skipped.
func (p *Pass) Apply(ctx context.Context, listing models.Listing) Outcome {
	p.stats.Observed++

	logger := p.rec.logger.With().Str("source", p.source).Str("externalId", listing.ExternalID).Logger()

	outcome, err := p.apply(ctx, &listing)
	if err != nil {
		logger.Warn().Err(err).Msg("listing skipped")
	}

	switch outcome {
	case Inserted:
		p.stats.Inserted++
	case Updated:
		p.stats.Updated++
	default:
		p.stats.Skipped++
	}

	logger.Debug().Str("outcome", outcome.String()).Msg("listing applied")

	return outcome
}

func (p *Pass) apply(ctx context.Context, listing *models.Listing) (Outcome, error) {
	listing.Source = p.source

	var stored [models.MaxImages]string
	existing, err := p.rec.store.GetListing(ctx, p.source, listing.ExternalID)
	switch {
	case err == nil:
		stored = existing.ImageURLs
	case !errors.Is(err, platform.ErrNotFound):
		return Skipped, err
	}

	listing.ImageURLs = p.resolveImages(ctx, listing.ExternalID, MergeImageSlots(stored, listing.ImageURLs))
	listing.LastSeenAt = p.rec.clock.Now()
	listing.IsActive = true

	inserted, err := p.rec.store.UpsertListing(ctx, listing)
	if err != nil {
		return Skipped, err
	}
	if inserted {
		return Inserted, nil
	}
	return Updated, nil
}

func (p *Pass) resolveImages(ctx context.Context, externalID string, plans [models.MaxImages]SlotPlan) [models.MaxImages]string {
	var urls [models.MaxImages]string

	for slot, plan := range plans {
		switch plan.Action {
		case SlotKeep:
			urls[slot] = plan.URL
		case SlotFetch:
			key := offloader.Key{Source: p.source, ExternalID: externalID, Slot: slot}
			if stored := p.rec.offloader.Offload(ctx, plan.URL, key); stored != nil {
				urls[slot] = *stored
			}
		}
	}

	return urls
}

// Finish deactivates listings of the source not seen since the pass started and returns pass counters.
// Nothing is deactivated when no listing was persisted in the pass.
func (p *Pass) Finish(ctx context.Context) (Stats, error) {
	logger := p.rec.logger.With().Str("source", p.source).Logger()

	if p.stats.Inserted+p.stats.Updated == 0 {
		logger.Warn().Int32("observed", p.stats.Observed).Msg("no listings persisted, staleness sweep skipped")
		return p.stats, nil
	}

	deactivated, err := p.rec.store.DeactivateStale(ctx, p.source, p.startedAt)
	if err != nil {
		return p.stats, err
	}
	p.stats.Deactivated = int32(deactivated)

	logger.Info().Int64("deactivated", deactivated).Msg("stale listings deactivated")

	return p.stats, nil
}
