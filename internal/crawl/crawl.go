// Package crawl holds the request pacing and page/listing cap policy applied to every source.
package crawl

import (
	"context"
	"time"

	"github.com/autolistings/listing-sync/internal/platform/sources"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Policy bounds how much of a source is fetched in a single run.
type Policy struct {
	FirstPage   int
	MaxPages    int
	MaxListings int
	Delay       time.Duration
	Workers     int
}

// PolicyFor returns Policy configured for source.
func PolicyFor(cfg sources.SourceConfig) Policy {
	return Policy{
		FirstPage:   cfg.StartPage(),
		MaxPages:    cfg.MaxPages,
		MaxListings: cfg.MaxListings,
		Delay:       cfg.Delay,
		Workers:     cfg.Workers,
	}
}

// Pages returns page numbers allowed to be fetched, in order.
func (p Policy) Pages() []int {
	pages := make([]int, 0, p.MaxPages)
	for ix := range p.MaxPages {
		pages = append(pages, p.FirstPage+ix)
	}
	return pages
}

// ListingCapReached reports whether n listings is enough for a run.
func (p Policy) ListingCapReached(n int) bool {
	return p.MaxListings > 0 && n >= p.MaxListings
}

// Queue executes outbound requests of a single source with a fixed delay between request starts,
// on at most Policy.Workers goroutines.
type Queue struct {
	workers int
	limiter *rate.Limiter
}

// NewQueue returns new Queue for policy.
func NewQueue(policy Policy) *Queue {
	limit := rate.Inf
	if policy.Delay > 0 {
		limit = rate.Every(policy.Delay)
	}

	workers := policy.Workers
	if workers < 1 {
		workers = 1
	}

	return &Queue{
		workers: workers,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Wait blocks until next request is allowed. First call returns immediately.
func (q *Queue) Wait(ctx context.Context) error {
	return q.limiter.Wait(ctx)
}

// Each runs fn for every index in [0, n), pacing each call with Wait.
// Tasks are expected to handle their own failures; Each returns only context errors.
func (q *Queue) Each(ctx context.Context, n int, fn func(ctx context.Context, ix int)) error {
	group, gCtx := errgroup.WithContext(ctx)
	group.SetLimit(q.workers)

	for ix := range n {
		if err := q.Wait(gCtx); err != nil {
			_ = group.Wait()
			return err
		}

		group.Go(func() error {
			fn(gCtx, ix)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}
