package storage

import (
	"github.com/autolistings/listing-sync/internal/platform/models"
	"github.com/samber/lo"

	pgmodels "github.com/autolistings/listing-sync/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

func toDBRun(run *models.Run) *pgmodels.SyncRun {
	return &pgmodels.SyncRun{
		ID:            int32(run.ID),
		Source:        run.Source,
		StartedAt:     run.StartedAt,
		FinishedAt:    run.FinishedAt,
		Success:       run.IsSuccess,
		StatusMessage: run.StatusMessage,
		Observed:      run.Observed,
		Inserted:      run.Inserted,
		Updated:       run.Updated,
		Skipped:       run.Skipped,
		Dropped:       run.Dropped,
		Deactivated:   run.Deactivated,
	}
}

// FromDBRun converts postgres run model into models.Run.
func FromDBRun(run *pgmodels.SyncRun) *models.Run {
	return &models.Run{
		ID:            int(run.ID),
		Source:        run.Source,
		StartedAt:     run.StartedAt,
		FinishedAt:    run.FinishedAt,
		IsSuccess:     run.Success,
		StatusMessage: run.StatusMessage,
		Observed:      run.Observed,
		Inserted:      run.Inserted,
		Updated:       run.Updated,
		Skipped:       run.Skipped,
		Dropped:       run.Dropped,
		Deactivated:   run.Deactivated,
	}
}

// ToDBListing converts models.Listing into postgres listing model.
func ToDBListing(listing *models.Listing) *pgmodels.Listing {
	return &pgmodels.Listing{
		ID:           int32(listing.ID),
		Source:       listing.Source,
		ExternalID:   listing.ExternalID,
		ExternalURL:  listing.ExternalURL,
		Title:        listing.Title,
		Description:  listing.Description,
		Brand:        listing.Brand,
		Model:        listing.Model,
		Year:         listing.Year,
		Price:        listing.Price,
		Mileage:      listing.Mileage,
		Transmission: listing.Transmission,
		FuelType:     listing.FuelType,
		VehicleType:  listing.VehicleType,
		Vin:          listing.VIN,
		ImageURL1:    toDBImageURL(listing.ImageURLs[0]),
		ImageURL2:    toDBImageURL(listing.ImageURLs[1]),
		ImageURL3:    toDBImageURL(listing.ImageURLs[2]),
		ImageURL4:    toDBImageURL(listing.ImageURLs[3]),
		ContactPhone: listing.ContactPhone,
		ContactEmail: listing.ContactEmail,
		StateID:      listing.StateID,
		CityID:       listing.CityID,
		CityName:     listing.CityName,
		LastSeenAt:   listing.LastSeenAt,
		IsActive:     listing.IsActive,
		CreatedAt:    listing.CreatedAt,
	}
}

// FromDBListing converts postgres listing model into models.Listing.
func FromDBListing(listing *pgmodels.Listing) *models.Listing {
	return &models.Listing{
		ID:           int(listing.ID),
		Source:       listing.Source,
		ExternalID:   listing.ExternalID,
		ExternalURL:  listing.ExternalURL,
		Title:        listing.Title,
		Description:  listing.Description,
		Brand:        listing.Brand,
		Model:        listing.Model,
		Year:         listing.Year,
		Price:        listing.Price,
		Mileage:      listing.Mileage,
		Transmission: listing.Transmission,
		FuelType:     listing.FuelType,
		VehicleType:  listing.VehicleType,
		VIN:          listing.Vin,
		ImageURLs: [models.MaxImages]string{
			lo.FromPtr(listing.ImageURL1),
			lo.FromPtr(listing.ImageURL2),
			lo.FromPtr(listing.ImageURL3),
			lo.FromPtr(listing.ImageURL4),
		},
		ContactPhone: listing.ContactPhone,
		ContactEmail: listing.ContactEmail,
		StateID:      listing.StateID,
		CityID:       listing.CityID,
		CityName:     listing.CityName,
		LastSeenAt:   listing.LastSeenAt,
		IsActive:     listing.IsActive,
		CreatedAt:    listing.CreatedAt,
	}
}

func toDBImageURL(url string) *string {
	if url == "" {
		return nil
	}
	return &url
}
