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
)

// Default card grid selectors.
const (
	defaultCardSelector        = ".vehicle-card"
	defaultLinkSelector        = "a"
	defaultPriceSelector       = ".price"
	defaultMileageSelector     = ".mileage"
	defaultImageSelector       = "img"
	defaultIDAttr              = "data-id"
	defaultDetailImageSelector = ".gallery img"
	defaultVINSelector         = ".vin"
	defaultSpecRowSelector     = ".specs tr"
	defaultSpecLabelSelector   = "th"
	defaultSpecValueSelector   = "td"
)

// cardGrid scrapes HTML inventory pages rendering one card per listing.
type cardGrid struct {
	*crawler
}

// NewCardGrid returns Adapter for inventory pages built of listing cards.
func NewCardGrid(cfg sources.SourceConfig, fetcher PageFetcher, logger *zerolog.Logger) Adapter {
	a := &cardGrid{crawler: newCrawler(cfg, fetcher, logger)}
	a.parse = a.parsePage
	if cfg.Detail {
		a.enrich = a.fetchDetails
	}
	return a
}

func (a *cardGrid) parsePage(_ context.Context, page *fetcher.Page) ([]models.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return nil, fmt.Errorf("can't parse html: %w", err)
	}

	var listings []models.RawListing
	doc.Find(a.cfg.Selector("card", defaultCardSelector)).Each(func(_ int, card *goquery.Selection) {
		listings = append(listings, a.parseCard(page.URL, card))
	})

	return listings, nil
}

func (a *cardGrid) parseCard(pageURL string, card *goquery.Selection) models.RawListing {
	linkSelector := a.cfg.Selector("link", defaultLinkSelector)

	link := extract.ResolveURL(pageURL, extract.Attr(card, linkSelector, "href"))
	if link == "" && goquery.NodeName(card) == "a" {
		link = extract.ResolveURL(pageURL, extract.Attr(card, "", "href"))
	}

	title := extract.Text(card, a.cfg.Selector("title", linkSelector))

	id := extract.Attr(card, "", a.cfg.Selector("idAttr", defaultIDAttr))
	if id == "" && link != "" {
		id = extract.LastPathSegment(link)
	}

	description := title
	if selector := a.cfg.Selector("description", ""); selector != "" {
		if text := extract.Text(card, selector); text != "" {
			description = text
		}
	}

	return models.RawListing{
		ExternalID:  id,
		ExternalURL: link,
		Title:       title,
		Description: description,
		Price:       optional(extract.Text(card, a.cfg.Selector("price", defaultPriceSelector))),
		Mileage:     optional(extract.Text(card, a.cfg.Selector("mileage", defaultMileageSelector))),
		ImageURLs:   images(pageURL, card.Find(a.cfg.Selector("image", defaultImageSelector))),
	}
}

// fetchDetails completes listings with data from their detail pages.
// Failed detail fetches leave listing as it is.
func (a *cardGrid) fetchDetails(ctx context.Context, listings []models.RawListing) []models.RawListing {
	enriched := make([]models.RawListing, len(listings))
	copy(enriched, listings)

	err := a.queue.Each(ctx, len(enriched), func(ctx context.Context, ix int) {
		enriched[ix] = a.withDetail(ctx, enriched[ix])
	})
	if err != nil {
		a.logger.Debug().Err(err).Msg("detail fetching interrupted")
	}

	return enriched
}

func (a *cardGrid) withDetail(ctx context.Context, listing models.RawListing) models.RawListing {
	if listing.ExternalURL == "" {
		return listing
	}

	logger := a.logger.With().Str("externalId", listing.ExternalID).Str("url", listing.ExternalURL).Logger()

	page, err := a.fetcher.FetchPage(ctx, listing.ExternalURL)
	if err != nil {
		logger.Warn().Err(err).Msg("can't fetch detail page")
		return listing
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		logger.Warn().Err(err).Msg("can't parse detail page")
		return listing
	}

	if gallery := images(page.URL, doc.Find(a.cfg.Selector("detailImage", defaultDetailImageSelector))); len(gallery) > 0 {
		listing.ImageURLs = gallery
	}

	if !hasPrice(listing) {
		if price := optional(extract.Text(doc.Selection, a.cfg.Selector("detailPrice", defaultPriceSelector))); price != nil {
			listing.Price = price
		}
	}

	if selector := a.cfg.Selector("detailDescription", ""); selector != "" {
		if text := extract.Text(doc.Selection, selector); text != "" {
			listing.Description = text
		}
	}

	a.readSpecs(doc, &listing)

	if listing.VIN == nil {
		vinText := extract.Text(doc.Selection, a.cfg.Selector("vin", defaultVINSelector))
		if vinText == "" {
			vinText = doc.Find("body").Text()
		}
		if vin, ok := extract.VIN(vinText); ok {
			listing.VIN = &vin
		}
	}

	return listing
}

// readSpecs fills listing from label/value rows of detail page specification table.
func (a *cardGrid) readSpecs(doc *goquery.Document, listing *models.RawListing) {
	labelSelector := a.cfg.Selector("specLabel", defaultSpecLabelSelector)
	valueSelector := a.cfg.Selector("specValue", defaultSpecValueSelector)

	doc.Find(a.cfg.Selector("specRow", defaultSpecRowSelector)).Each(func(_ int, row *goquery.Selection) {
		label := strings.ToLower(strings.TrimSuffix(extract.Text(row, labelSelector), ":"))
		value := optional(extract.Text(row, valueSelector))
		if value == nil {
			return
		}

		switch {
		case strings.Contains(label, "transmission"):
			listing.Transmission = value
		case strings.Contains(label, "fuel"):
			listing.FuelType = value
		case strings.Contains(label, "body"), label == "type":
			listing.VehicleType = value
		case strings.Contains(label, "mileage"), strings.Contains(label, "odometer"):
			if listing.Mileage == nil {
				listing.Mileage = value
			}
		case strings.Contains(label, "vin"):
			listing.VIN = value
		case label == "year":
			listing.Year = value
		case label == "make":
			listing.Make = value
		case label == "model":
			listing.Model = value
		case label == "price":
			if !hasPrice(*listing) {
				listing.Price = value
			}
		}
	})
}

// images returns absolute URLs of img elements, in document order, without repeats.
func images(pageURL string, imgs *goquery.Selection) []string {
	var urls []string
	known := make(map[string]struct{})

	imgs.Each(func(_ int, img *goquery.Selection) {
		u := extract.ResolveURL(pageURL, extract.SrcFromImg(img))
		if u == "" {
			return
		}
		if _, ok := known[u]; ok {
			return
		}
		known[u] = struct{}{}
		urls = append(urls, u)
	})

	return urls
}
