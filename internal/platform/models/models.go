package models

import "time"

// MaxImages is the number of image slots a listing has.
const MaxImages = 4

// RawListing is a listing as scraped from a source page, before normalization.
// All fields except ExternalID, ExternalURL and Title hold raw text as found on the page.
type RawListing struct {
	ExternalID   string
	ExternalURL  string
	Title        string
	Description  string
	Make         *string
	Model        *string
	Year         *string
	Price        *string
	Mileage      *string
	Transmission *string
	FuelType     *string
	VehicleType  *string
	VIN          *string
	ImageURLs    []string
}

// Listing is the canonical, persisted listing.
type Listing struct {
	ID           int
	Source       string
	ExternalID   string
	ExternalURL  string
	Title        string
	Description  string
	Brand        *string
	Model        *string
	Year         *int32
	Price        *int32
	Mileage      *int32
	Transmission *string
	FuelType     *string
	VehicleType  *string
	VIN          *string
	ImageURLs    [MaxImages]string
	ContactPhone *string
	ContactEmail *string
	StateID      int32
	CityID       *int32
	CityName     *string
	LastSeenAt   time.Time
	IsActive     bool
	CreatedAt    time.Time
}

// Run is a single sync pass over one source.
type Run struct {
	ID            int
	Source        string
	StartedAt     time.Time
	FinishedAt    *time.Time
	IsSuccess     *bool
	StatusMessage *string
	Observed      *int32
	Inserted      *int32
	Updated       *int32
	Skipped       *int32
	Dropped       *int32
	Deactivated   *int32
}

// State is a location state reference record.
type State struct {
	ID   int32
	Code string
	Name string
}

// City is a location city reference record.
type City struct {
	ID      int32
	StateID int32
	Name    string
}
