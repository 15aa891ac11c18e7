// Package normalizer maps raw scraped listings to canonical listings.
package normalizer

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/autolistings/listing-sync/internal/extract"
	"github.com/autolistings/listing-sync/internal/platform/models"
	"github.com/autolistings/listing-sync/internal/platform/sources"
	"github.com/samber/lo"
)

// MinPrice is the lowest price accepted as a real asking price.
const MinPrice = 1000

var (
	// ErrMissingExternalID is returned for listings without external id.
	ErrMissingExternalID = errors.New("listing has no external id")
	// ErrMissingPrice is returned for listings without price text.
	ErrMissingPrice = errors.New("listing has no price")
)

// Normalize returns canonical listing of source cfg built from raw.
// Listing location is not set. Implausible values are left empty instead of failing the listing.
func Normalize(raw models.RawListing, cfg sources.SourceConfig, now time.Time) (models.Listing, error) {
	externalID := strings.TrimSpace(raw.ExternalID)
	if externalID == "" {
		return models.Listing{}, ErrMissingExternalID
	}
	if raw.Price == nil || strings.TrimSpace(*raw.Price) == "" {
		return models.Listing{}, ErrMissingPrice
	}

	fullTitle := extract.Clean(raw.Title)
	description := extract.Clean(raw.Description)
	if description == "" {
		description = fullTitle
	}

	brand, model := brandModel(raw, fullTitle)

	title := fullTitle
	if brand != nil {
		title = *brand
	}

	return models.Listing{
		Source:       cfg.Name,
		ExternalID:   externalID,
		ExternalURL:  strings.TrimSpace(raw.ExternalURL),
		Title:        title,
		Description:  description,
		Brand:        brand,
		Model:        model,
		Year:         year(raw, fullTitle, description, now),
		Price:        price(*raw.Price, now),
		Mileage:      mileage(raw, description),
		Transmission: classified(transmissions, "", textOf(raw.Transmission), fullTitle, description),
		FuelType:     classified(fuels, FuelGasoline, textOf(raw.FuelType), fullTitle, description),
		VehicleType:  classified(vehicleTypes, "", textOf(raw.VehicleType), fullTitle, description),
		VIN:          vin(raw, description),
		ImageURLs:    imageSlots(raw.ImageURLs),
		ContactPhone: optional(cfg.Contact.Phone),
		ContactEmail: optional(cfg.Contact.Email),
		IsActive:     true,
	}, nil
}

func brandModel(raw models.RawListing, title string) (*string, *string) {
	mk, model := textOf(raw.Make), textOf(raw.Model)
	if mk == "" || model == "" {
		titleMake, titleModel := extract.MakeModel(title)
		if mk == "" {
			mk = titleMake
		}
		if model == "" && strings.EqualFold(canonicalBrand(titleMake), canonicalBrand(mk)) {
			model = titleModel
		}
	}

	var brand *string
	if mk != "" {
		brand = lo.ToPtr(canonicalBrand(mk))
	}

	return brand, optional(model)
}

func year(raw models.RawListing, title, description string, now time.Time) *int32 {
	for _, text := range []string{textOf(raw.Year), title, description} {
		if y, ok := extract.Year(text, now); ok {
			return lo.ToPtr(int32(y))
		}
	}
	return nil
}

// price returns the lowest plausible price in text, "Was $18,500 Now $15,200" reads as 15200.
// Fragments below MinPrice and numbers without thousands separators looking like a model year are skipped.
func price(text string, now time.Time) *int32 {
	var lowest *int32
	for _, match := range extract.Prices(text) {
		if match.Value < MinPrice || match.Value > math.MaxInt32 {
			continue
		}
		if !match.Grouped && extract.IsModelYear(match.Value, now) {
			continue
		}
		if lowest == nil || int32(match.Value) < *lowest {
			lowest = lo.ToPtr(int32(match.Value))
		}
	}
	return lowest
}

func mileage(raw models.RawListing, description string) *int32 {
	m, ok := extract.Number(textOf(raw.Mileage))
	if !ok {
		m, ok = extract.Mileage(textOf(raw.Mileage))
	}
	if !ok {
		m, ok = extract.Mileage(description)
	}
	if !ok || m > math.MaxInt32 {
		return nil
	}
	return lo.ToPtr(int32(m))
}

func vin(raw models.RawListing, description string) *string {
	for _, text := range []string{textOf(raw.VIN), description} {
		if v, ok := extract.VIN(text); ok {
			return &v
		}
	}
	return nil
}

// classified returns value of first matching category, def when nothing matches and nil for empty def.
func classified(categories []category, def string, texts ...string) *string {
	if value, ok := classify(categories, texts...); ok {
		return &value
	}
	return optional(def)
}

// imageSlots returns first MaxImages distinct absolute image URLs.
func imageSlots(urls []string) [models.MaxImages]string {
	var slots [models.MaxImages]string

	ix := 0
	for _, u := range lo.Uniq(urls) {
		if ix == models.MaxImages {
			break
		}
		u = strings.TrimSpace(u)
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			continue
		}
		slots[ix] = u
		ix++
	}

	return slots
}

func textOf(s *string) string {
	if s == nil {
		return ""
	}
	return extract.Clean(*s)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
