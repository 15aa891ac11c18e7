package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	"github.com/autolistings/listing-sync/internal/platform/models"
	"github.com/autolistings/listing-sync/internal/platform/storage"
	pgmodels "github.com/autolistings/listing-sync/internal/platform/storage/gen/postgres/public/model"
	"github.com/autolistings/listing-sync/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"

	_ "github.com/lib/pq"
)

// Open opens connection to DB. Test is skipped when DATABASE_URL is not provided.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// InsertStates is a helper test function to insert states.
func InsertStates(t *testing.T, exc qrm.Executable, states ...pgmodels.LocationState) {
	t.Helper()

	if len(states) == 0 {
		return
	}

	_, err := table.LocationState.INSERT(table.LocationState.AllColumns).MODELS(states).Exec(exc)
	if err != nil {
		t.Fatal("can't insert states", err)
	}
}

// InsertCities is a helper test function to insert cities.
func InsertCities(t *testing.T, exc qrm.Executable, cities ...pgmodels.LocationCity) {
	t.Helper()

	if len(cities) == 0 {
		return
	}

	_, err := table.LocationCity.INSERT(table.LocationCity.AllColumns).MODELS(cities).Exec(exc)
	if err != nil {
		t.Fatal("can't insert cities", err)
	}
}

// InsertRuns is a helper test function to insert runs.
func InsertRuns(t *testing.T, exc qrm.Executable, runs ...pgmodels.SyncRun) {
	t.Helper()

	if len(runs) == 0 {
		return
	}

	_, err := table.SyncRun.INSERT(table.SyncRun.AllColumns.Except(table.SyncRun.ID)).MODELS(runs).Exec(exc)
	if err != nil {
		t.Fatal("can't insert runs", err)
	}
}

// InsertListings is a helper test function to insert listings.
func InsertListings(t *testing.T, exc qrm.Executable, listings ...models.Listing) {
	t.Helper()

	if len(listings) == 0 {
		return
	}

	toInsert := make([]pgmodels.Listing, 0, len(listings))
	for ix := range listings {
		toInsert = append(toInsert, *storage.ToDBListing(&listings[ix]))
	}

	_, err := table.Listing.INSERT(table.Listing.AllColumns.Except(table.Listing.ID, table.Listing.CreatedAt)).
		MODELS(toInsert).
		Exec(exc)
	if err != nil {
		t.Fatal("can't insert listings", err)
	}
}

// GetListingsBySource is a helper test function to get listings of source ordered by external ID.
func GetListingsBySource(t *testing.T, queryable qrm.Queryable, source string) []models.Listing {
	t.Helper()

	dbListings := []pgmodels.Listing{}
	err := table.Listing.SELECT(table.Listing.AllColumns).
		WHERE(table.Listing.Source.EQ(pg.String(source))).
		ORDER_BY(table.Listing.ExternalID.ASC()).
		Query(queryable, &dbListings)
	if err != nil {
		t.Fatal("can't get listings", err)
	}

	listings := make([]models.Listing, 0, len(dbListings))
	for ix := range dbListings {
		listings = append(listings, *storage.FromDBListing(&dbListings[ix]))
	}

	return listings
}

// GetLatestRun is a helper test function to get latest run of source.
func GetLatestRun(t *testing.T, queryable qrm.Queryable, source string) *models.Run {
	t.Helper()

	var runs []pgmodels.SyncRun
	err := table.SyncRun.SELECT(table.SyncRun.AllColumns).
		WHERE(table.SyncRun.Source.EQ(pg.String(source))).
		ORDER_BY(table.SyncRun.StartedAt.DESC(), table.SyncRun.ID.DESC()).
		LIMIT(1).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get latest run", err)
	}

	if len(runs) == 0 {
		return nil
	}

	return storage.FromDBRun(&runs[0])
}

// CleanupData is a helper test function to delete all data.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	_, err := table.Listing.DELETE().WHERE(table.Listing.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete listings data", err)
	}

	_, err = table.SyncRun.DELETE().WHERE(table.SyncRun.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete runs data", err)
	}

	_, err = table.LocationCity.DELETE().WHERE(table.LocationCity.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete cities data", err)
	}

	_, err = table.LocationState.DELETE().WHERE(table.LocationState.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete states data", err)
	}
}
