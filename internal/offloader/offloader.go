// Package offloader copies listing images from source websites to the image bucket.
package offloader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/autolistings/listing-sync/internal/fetcher"
	"github.com/rs/zerolog"
)

//go:generate mockery --name ImageFetcher --filename image_fetcher.go
//go:generate mockery --name ObjectStore --filename object_store.go

// ImageFetcher downloads images.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) (*fetcher.Page, error)
}

// ObjectStore stores objects under keys, overwriting existing ones.
type ObjectStore interface {
	// Put stores body under key and returns object public URL.
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// Key identifies image slot of a listing.
type Key struct {
	Source     string
	ExternalID string
	Slot       int
}

// Offloader downloads images and uploads them to ObjectStore.
type Offloader struct {
	fetcher ImageFetcher
	store   ObjectStore
	prefix  string
	logger  *zerolog.Logger
}

// NewOffloader returns new Offloader storing objects under prefix.
func NewOffloader(fetcher ImageFetcher, store ObjectStore, prefix string, logger *zerolog.Logger) *Offloader {
	return &Offloader{
		fetcher: fetcher,
		store:   store,
		prefix:  strings.Trim(prefix, "/"),
		logger:  logger,
	}
}

// Offload copies image from sourceURL into the slot identified by key and returns its public URL.
// Failures are logged and nil is returned, slot stays empty then.
func (o *Offloader) Offload(ctx context.Context, sourceURL string, key Key) *string {
	logger := o.logger.With().
		Str("source", key.Source).
		Str("externalId", key.ExternalID).
		Int("slot", key.Slot).
		Str("url", sourceURL).
		Logger()

	image, err := o.fetcher.FetchImage(ctx, sourceURL)
	if err != nil {
		logger.Warn().Err(err).Msg("can't fetch image")
		return nil
	}

	storedURL, err := o.store.Put(ctx, o.ObjectKey(key, image.ContentType), image.ContentType, image.Body)
	if err != nil {
		logger.Warn().Err(err).Msg("can't store image")
		return nil
	}

	logger.Debug().Str("storedUrl", storedURL).Msg("image offloaded")

	return &storedURL
}

// ObjectKey returns object key of image slot, "<prefix>/<source>/<externalId>/<slot>.<ext>".
func (o *Offloader) ObjectKey(key Key, contentType string) string {
	name := fmt.Sprintf("%s/%s/%d.%s", sanitize(key.Source), sanitize(key.ExternalID), key.Slot, extension(contentType))
	if o.prefix == "" {
		return name
	}
	return o.prefix + "/" + name
}

func extension(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	case "image/avif":
		return "avif"
	case "image/svg+xml":
		return "svg"
	default:
		return "jpg"
	}
}

// sanitize replaces characters not safe in object key segment with "-".
// Changed segments get a hash suffix of the original, "ABC 1" and "ABC-1" keep distinct keys.
func sanitize(segment string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '-'
		}
	}, segment)

	// no empty, "." and ".." segments
	if strings.Trim(sanitized, ".") == "" {
		sanitized = "_"
	}
	if sanitized == segment {
		return segment
	}

	sum := sha256.Sum256([]byte(segment))
	return sanitized + "-" + hex.EncodeToString(sum[:4])
}
