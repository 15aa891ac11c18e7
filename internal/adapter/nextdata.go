package adapter

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/autolistings/listing-sync/internal/extract"
	"github.com/autolistings/listing-sync/internal/fetcher"
	"github.com/autolistings/listing-sync/internal/platform/models"
	"github.com/autolistings/listing-sync/internal/platform/sources"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	defaultNextDataSelector = "script#__NEXT_DATA__"
	defaultItemsPath        = "props.pageProps.listings"
)

// defaultItemPaths are gjson paths of listing fields, relative to a single item.
var defaultItemPaths = map[string]string{
	"id":           "id",
	"url":          "url",
	"title":        "title",
	"description":  "description",
	"make":         "make",
	"model":        "model",
	"year":         "year",
	"price":        "price",
	"mileage":      "mileage",
	"transmission": "transmission",
	"fuel":         "fuelType",
	"body":         "bodyType",
	"vin":          "vin",
	"images":       "images",
}

// nextData reads listings from JSON state embedded by server-rendered JS frameworks,
// or from JSON API responses.
type nextData struct {
	*crawler
}

// NewNextData returns Adapter for pages with embedded listing JSON.
func NewNextData(cfg sources.SourceConfig, fetcher PageFetcher, logger *zerolog.Logger) Adapter {
	a := &nextData{crawler: newCrawler(cfg, fetcher, logger)}
	a.parse = a.parsePage
	return a
}

func (a *nextData) parsePage(_ context.Context, page *fetcher.Page) ([]models.RawListing, error) {
	data, err := a.embeddedJSON(page)
	if err != nil {
		return nil, err
	}

	items := gjson.Get(data, a.cfg.Path("items", defaultItemsPath))
	if !items.Exists() {
		return nil, fmt.Errorf("%w: no items at %q", ErrNoListingData, a.cfg.Path("items", defaultItemsPath))
	}

	var listings []models.RawListing
	items.ForEach(func(_, item gjson.Result) bool {
		listings = append(listings, a.parseItem(page.URL, item))
		return true
	})

	return listings, nil
}

// embeddedJSON returns JSON document of page.
func (a *nextData) embeddedJSON(page *fetcher.Page) (string, error) {
	var data string

	if page.ContentType == "application/json" {
		data = string(page.Body)
	} else {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
		if err != nil {
			return "", fmt.Errorf("can't parse html: %w", err)
		}
		data = strings.TrimSpace(doc.Find(a.cfg.Selector("script", defaultNextDataSelector)).First().Text())
	}

	if data == "" {
		return "", ErrNoListingData
	}
	if !gjson.Valid(data) {
		return "", fmt.Errorf("%w: invalid json", ErrNoListingData)
	}

	return data, nil
}

func (a *nextData) parseItem(pageURL string, item gjson.Result) models.RawListing {
	field := func(name string) string {
		return strings.TrimSpace(item.Get(a.cfg.Path(name, defaultItemPaths[name])).String())
	}

	link := extract.ResolveURL(pageURL, field("url"))
	id := field("id")
	if id == "" && link != "" {
		id = extract.LastPathSegment(link)
	}

	title := field("title")
	if title == "" {
		title = extract.Clean(strings.Join([]string{field("year"), field("make"), field("model")}, " "))
	}

	description := field("description")
	if description == "" {
		description = title
	}

	var imageURLs []string
	for _, image := range item.Get(a.cfg.Path("images", defaultItemPaths["images"])).Array() {
		ref := image.String()
		if image.IsObject() {
			ref = firstString(image, "url", "src", "href")
		}
		if u := extract.ResolveURL(pageURL, ref); u != "" {
			imageURLs = append(imageURLs, u)
		}
	}

	return models.RawListing{
		ExternalID:   id,
		ExternalURL:  link,
		Title:        title,
		Description:  description,
		Make:         optional(field("make")),
		Model:        optional(field("model")),
		Year:         optional(field("year")),
		Price:        optional(field("price")),
		Mileage:      optional(field("mileage")),
		Transmission: optional(field("transmission")),
		FuelType:     optional(field("fuel")),
		VehicleType:  optional(field("body")),
		VIN:          optional(field("vin")),
		ImageURLs:    imageURLs,
	}
}

// firstString returns first non-empty scalar value of paths in result.
func firstString(result gjson.Result, paths ...string) string {
	for _, path := range paths {
		value := result.Get(path)
		if value.IsObject() || value.IsArray() {
			continue
		}
		if text := strings.TrimSpace(value.String()); text != "" {
			return text
		}
	}
	return ""
}
