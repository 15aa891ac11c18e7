package fetcher

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

const (
	// MaxPageSize is the maximum accepted page body size.
	MaxPageSize = 8 << 20
	// MaxImageSize is the maximum accepted image body size.
	MaxImageSize = 10 << 20
)

// Page is fetched document.
type Page struct {
	URL         string
	ContentType string
	Body        []byte
}

// Fetcher builds http requests and fetches pages and images via http.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher returns new Fetcher.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
	}
}

// FetchPage returns HTML or JSON document fetched from provided url or error.
func (f *Fetcher) FetchPage(ctx context.Context, url string) (*Page, error) {
	return f.fetch(ctx, url, "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8", isDocument, MaxPageSize)
}

// FetchImage returns image fetched from provided url or error.
func (f *Fetcher) FetchImage(ctx context.Context, url string) (*Page, error) {
	return f.fetch(ctx, url, "image/avif,image/webp,image/jpeg,image/png,image/*;q=0.8", isImage, MaxImageSize)
}

func (f *Fetcher) fetch(
	ctx context.Context,
	url string,
	accept string,
	supported func(mediaType string) bool,
	limit int64,
) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Add("Accept", accept)
	req.Header.Add("Accept-Encoding", "gzip")
	req.Header.Add("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d", ErrStatusNotOK, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !supported(mediaType) {
		return nil, fmt.Errorf("%w: %q", ErrContentTypeNotSupported, contentType)
	}

	body := io.ReadCloser(resp.Body)
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		if body, err = decompressResponse(resp.Body); err != nil {
			return nil, err
		}
	}

	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("can't read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}

	return &Page{
		URL:         resp.Request.URL.String(),
		ContentType: mediaType,
		Body:        data,
	}, nil
}

func isDocument(mediaType string) bool {
	switch mediaType {
	case "text/html", "application/xhtml+xml", "application/json", "application/ld+json":
		return true
	default:
		return false
	}
}

func isImage(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/")
}

// decompressResponse returns io.ReadCloser with decompressed http response and error.
func decompressResponse(response io.ReadCloser) (io.ReadCloser, error) {
	decompressed, err := gzip.NewReader(response)
	if err != nil {
		return nil, fmt.Errorf("can't decompress response: %w", err)
	}

	return &decompressedReadCloser{
		compressed:   response,
		decompressed: decompressed,
	}, nil
}

// decompressedReadCloser wraps decompressed Reader and compressed ReadCloser.
// It reads from decompressed Reader, but closes compressed ReadCloser.
type decompressedReadCloser struct {
	compressed   io.ReadCloser
	decompressed io.Reader
}

// Read reads uncompressed bytes from underlying Reader into p.
// Returns number of read bytes and error.
func (r decompressedReadCloser) Read(p []byte) (n int, err error) {
	return r.decompressed.Read(p)
}

// Close closes underlying compressed ReadCloser.
func (r decompressedReadCloser) Close() error {
	return r.compressed.Close()
}
