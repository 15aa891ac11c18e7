package modelstesting

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/autolistings/listing-sync/internal/platform/models"
	"github.com/go-faker/faker/v4"
	"github.com/samber/lo"
)

// FakeRawListing returns models.RawListing with fake data and random number of fake image URLs.
func FakeRawListing(ops ...func(l *models.RawListing)) models.RawListing {
	raw := models.RawListing{
		ExternalID:  faker.UUIDDigit(),
		ExternalURL: faker.URL(),
		Title:       fmt.Sprintf("%d Toyota Corolla LE", 2015+rand.Intn(8)),
		Price:       lo.ToPtr(fmt.Sprintf("$%d", 5000+rand.Intn(40000))),
		Mileage:     lo.ToPtr(fmt.Sprintf("%d miles", rand.Intn(150000))),
		ImageURLs:   fakeImageURLs(),
	}

	for _, op := range ops {
		op(&raw)
	}

	return raw
}

// FakeListing returns models.Listing with fake data.
func FakeListing(ops ...func(l *models.Listing)) models.Listing {
	listing := models.Listing{
		Source:       faker.Word(),
		ExternalID:   faker.UUIDDigit(),
		ExternalURL:  faker.URL(),
		Title:        "Toyota",
		Description:  faker.Sentence(),
		Brand:        lo.ToPtr("Toyota"),
		Model:        lo.ToPtr("Corolla"),
		Year:         lo.ToPtr(int32(2015 + rand.Intn(8))),
		Price:        lo.ToPtr(int32(5000 + rand.Intn(40000))),
		Mileage:      lo.ToPtr(int32(rand.Intn(150000))),
		Transmission: lo.ToPtr("automatic"),
		FuelType:     lo.ToPtr("gasoline"),
		VehicleType:  lo.ToPtr("sedan"),
		ContactPhone: lo.ToPtr(faker.Phonenumber()),
		ContactEmail: lo.ToPtr(faker.Email()),
		StateID:      rand.Int31n(50) + 1,
		CityName:     lo.ToPtr(faker.Word()),
		LastSeenAt:   time.Now().UTC(),
		IsActive:     true,
	}

	for _, op := range ops {
		op(&listing)
	}

	return listing
}

func fakeImageURLs() []string {
	imageURLsLen := rand.Intn(models.MaxImages + 1)
	imageURLs := make([]string, 0, imageURLsLen)
	for ix := range imageURLsLen {
		imageURLs = append(imageURLs, fmt.Sprintf("%s/%d.jpg", faker.URL(), ix))
	}

	return imageURLs
}
