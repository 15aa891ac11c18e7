// Package adapter crawls dealer sites and yields raw listings scraped from their pages.
package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/autolistings/listing-sync/internal/crawl"
	"github.com/autolistings/listing-sync/internal/extract"
	"github.com/autolistings/listing-sync/internal/fetcher"
	"github.com/autolistings/listing-sync/internal/platform/models"
	"github.com/autolistings/listing-sync/internal/platform/sources"
	"github.com/rs/zerolog"
)

// pagePlaceholder in base URL is replaced with page number instead of setting page query parameter.
const pagePlaceholder = "{page}"

// Adapter fetches listings of a single source.
type Adapter interface {
	// Name returns source name.
	Name() string
	// FetchListings sends listings to out page by page, starting from the first page.
	// Failing page fetches end pagination and are not returned as errors.
	FetchListings(ctx context.Context, out chan<- models.RawListing) error
}

// PageFetcher fetches source documents.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (*fetcher.Page, error)
}

// parseFunc extracts listings from a fetched listing index page.
type parseFunc func(ctx context.Context, page *fetcher.Page) ([]models.RawListing, error)

// enrichFunc completes listings with data not present on index page.
type enrichFunc func(ctx context.Context, listings []models.RawListing) []models.RawListing

// crawler walks source pagination and emits parsed listings.
// Kind-specific adapters provide parse and optionally enrich.
type crawler struct {
	cfg     sources.SourceConfig
	fetcher PageFetcher
	policy  crawl.Policy
	queue   *crawl.Queue
	logger  zerolog.Logger
	parse   parseFunc
	enrich  enrichFunc
}

func newCrawler(cfg sources.SourceConfig, fetcher PageFetcher, logger *zerolog.Logger) *crawler {
	policy := crawl.PolicyFor(cfg)

	return &crawler{
		cfg:     cfg,
		fetcher: fetcher,
		policy:  policy,
		queue:   crawl.NewQueue(policy),
		logger:  logger.With().Str("source", cfg.Name).Str("kind", cfg.Kind).Logger(),
	}
}

// Name returns source name.
func (c *crawler) Name() string {
	return c.cfg.Name
}

// FetchListings fetches pages until a page has no new listings, a page fetch fails,
// the page limit or the listing limit is reached.
func (c *crawler) FetchListings(ctx context.Context, out chan<- models.RawListing) error {
	em := newEmitter(out, c.cfg, c.policy)

	for _, pageNum := range c.policy.Pages() {
		pageURL, err := PageURL(c.cfg, pageNum)
		if err != nil {
			return err
		}

		if err := c.queue.Wait(ctx); err != nil {
			return err
		}

		logger := c.logger.With().Int("page", pageNum).Str("url", pageURL).Logger()

		page, err := c.fetcher.FetchPage(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn().Err(err).Msg("can't fetch page, stopping pagination")
			break
		}

		listings, err := c.parse(ctx, page)
		if err != nil {
			logger.Warn().Err(err).Msg("can't parse page, stopping pagination")
			break
		}

		fresh := em.unseen(listings)
		if len(fresh) == 0 {
			logger.Debug().Int("parsed", len(listings)).Msg("no new listings on page, stopping pagination")
			break
		}

		if c.enrich != nil {
			fresh = c.enrich(ctx, fresh)
		}

		for _, listing := range fresh {
			if err := em.emit(ctx, listing); err != nil {
				return err
			}
			if em.capReached() {
				break
			}
		}

		logger.Debug().Int("parsed", len(listings)).Int("emitted", em.emitted).Msg("page done")

		if em.capReached() {
			logger.Info().Int("maxListings", c.policy.MaxListings).Msg("listing limit reached")
			break
		}
	}

	c.logger.Info().
		Int("emitted", em.emitted).
		Int("dropped", em.dropped).
		Msg("listings fetched")

	return nil
}

// PageURL returns URL of page pageNum of source.
func PageURL(cfg sources.SourceConfig, pageNum int) (string, error) {
	if strings.Contains(cfg.BaseURL, pagePlaceholder) {
		return strings.ReplaceAll(cfg.BaseURL, pagePlaceholder, strconv.Itoa(pageNum)), nil
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("can't parse base url: %w", err)
	}

	query := u.Query()
	query.Set(cfg.PageParam, strconv.Itoa(pageNum))
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// emitter filters listings and sends them to consumer.
// Listings are deduplicated by external id and external URL within a single run.
type emitter struct {
	out          chan<- models.RawListing
	requireImage bool
	policy       crawl.Policy
	seenIDs      map[string]struct{}
	seenURLs     map[string]struct{}
	emitted      int
	dropped      int
}

func newEmitter(out chan<- models.RawListing, cfg sources.SourceConfig, policy crawl.Policy) *emitter {
	return &emitter{
		out:          out,
		requireImage: cfg.RequireImage,
		policy:       policy,
		seenIDs:      make(map[string]struct{}),
		seenURLs:     make(map[string]struct{}),
	}
}

// unseen returns listings not emitted yet, without repeats inside listings.
func (e *emitter) unseen(listings []models.RawListing) []models.RawListing {
	batchIDs := make(map[string]struct{})
	batchURLs := make(map[string]struct{})

	fresh := make([]models.RawListing, 0, len(listings))
	for _, listing := range listings {
		if seen(listing, e.seenIDs, e.seenURLs) || seen(listing, batchIDs, batchURLs) {
			continue
		}
		mark(listing, batchIDs, batchURLs)
		fresh = append(fresh, listing)
	}

	return fresh
}

// emit sends listing to consumer if it has all required fields.
// Dropped listings count as seen, a page repeating them yields nothing new.
func (e *emitter) emit(ctx context.Context, listing models.RawListing) error {
	if seen(listing, e.seenIDs, e.seenURLs) {
		return nil
	}
	mark(listing, e.seenIDs, e.seenURLs)

	if !e.valid(listing) {
		e.dropped++
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case e.out <- listing:
	}

	e.emitted++

	return nil
}

func (e *emitter) capReached() bool {
	return e.policy.ListingCapReached(e.emitted)
}

func (e *emitter) valid(listing models.RawListing) bool {
	if strings.TrimSpace(listing.ExternalID) == "" {
		return false
	}
	if !hasPrice(listing) {
		return false
	}
	if e.requireImage && len(listing.ImageURLs) == 0 {
		return false
	}
	return true
}

// hasPrice reports whether listing price text contains a price.
func hasPrice(listing models.RawListing) bool {
	if listing.Price == nil {
		return false
	}
	_, ok := extract.Price(*listing.Price)
	return ok
}

func seen(listing models.RawListing, ids, urls map[string]struct{}) bool {
	if _, ok := ids[listing.ExternalID]; ok && listing.ExternalID != "" {
		return true
	}
	if _, ok := urls[listing.ExternalURL]; ok && listing.ExternalURL != "" {
		return true
	}
	return false
}

func mark(listing models.RawListing, ids, urls map[string]struct{}) {
	if listing.ExternalID != "" {
		ids[listing.ExternalID] = struct{}{}
	}
	if listing.ExternalURL != "" {
		urls[listing.ExternalURL] = struct{}{}
	}
}

// optional returns pointer to cleaned text or nil for empty text.
func optional(text string) *string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return &text
}
