package adapter

import (
	"fmt"

	"github.com/autolistings/listing-sync/internal/platform/sources"
	"github.com/rs/zerolog"
)

// Factory builds Adapter for source.
type Factory func(cfg sources.SourceConfig, fetcher PageFetcher, logger *zerolog.Logger) Adapter

// Registry builds adapters from source configuration by source kind.
type Registry struct {
	http      PageFetcher
	browser   PageFetcher
	logger    *zerolog.Logger
	factories map[string]Factory
}

// NewRegistry returns Registry with built-in source kinds.
// Nil browser disables sources rendered with headless browser.
func NewRegistry(http PageFetcher, browser PageFetcher, logger *zerolog.Logger) *Registry {
	return &Registry{
		http:    http,
		browser: browser,
		logger:  logger,
		factories: map[string]Factory{
			sources.KindCardGrid: NewCardGrid,
			sources.KindNextData: NewNextData,
			sources.KindJSONLD:   NewJSONLD,
		},
	}
}

// Register adds or replaces Factory for kind.
func (r *Registry) Register(kind string, factory Factory) {
	r.factories[kind] = factory
}

// Build returns Adapter for source.
func (r *Registry) Build(cfg sources.SourceConfig) (Adapter, error) {
	factory, ok := r.factories[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}

	fetcher := r.http
	if cfg.Render == sources.RenderBrowser {
		if r.browser == nil {
			return nil, fmt.Errorf("can't build adapter for %s: %w", cfg.Name, ErrRendererDisabled)
		}
		fetcher = r.browser
	}

	return factory(cfg, fetcher, r.logger), nil
}

// Validate reports first source no adapter can be built for.
func (r *Registry) Validate(cfgs []sources.SourceConfig) error {
	for _, cfg := range cfgs {
		if _, err := r.Build(cfg); err != nil {
			return err
		}
	}
	return nil
}
