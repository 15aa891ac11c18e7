package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/autolistings/listing-sync/internal/platform"
	"github.com/autolistings/listing-sync/internal/platform/models"
	"github.com/autolistings/listing-sync/internal/platform/storage/gen/postgres/public/table"

	pgmodels "github.com/autolistings/listing-sync/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// DefaultAbandonAfter is the age after which an unfinished run no longer blocks new runs.
const DefaultAbandonAfter = 6 * time.Hour

// Option is custom configuration of Postgres.
type Option func(p *Postgres)

// Postgres is storage for listings, sync runs and location reference data.
type Postgres struct {
	db           *sql.DB
	abandonAfter time.Duration
	now          func() time.Time
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB, ops ...Option) Postgres {
	p := Postgres{
		db:           db,
		abandonAfter: DefaultAbandonAfter,
		now:          time.Now,
	}

	for _, op := range ops {
		op(&p)
	}

	return p
}

// WithAbandonAfter sets age after which unfinished run is considered abandoned.
// Runs killed by the host scheduler never finish, so they must stop blocking eventually.
func WithAbandonAfter(d time.Duration) Option {
	return func(p *Postgres) {
		p.abandonAfter = d
	}
}

// StartRun creates new unfinished run of source in database and returns it.
// It returns ErrAlreadyRunning if previous run is not finished yet.
func (p Postgres) StartRun(ctx context.Context, source string) (*models.Run, error) {
	run := &models.Run{
		Source: source,
	}

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		lastRun, err := getLastRun(ctx, tx, source)
		if err != nil && !errors.Is(err, qrm.ErrNoRows) {
			return fmt.Errorf("can't get last run from database: %w", err)
		}

		if lastRun != nil && lastRun.FinishedAt == nil && p.now().Sub(lastRun.StartedAt) < p.abandonAfter {
			return platform.ErrAlreadyRunning
		}

		newRun := toDBRun(run)
		err = table.SyncRun.INSERT(table.SyncRun.Source).
			MODEL(newRun).
			RETURNING(table.SyncRun.ID, table.SyncRun.StartedAt).
			QueryContext(ctx, tx, newRun)
		if err != nil {
			return fmt.Errorf("can't insert run into database: %w", err)
		}

		run.ID = int(newRun.ID)
		run.StartedAt = newRun.StartedAt

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't add run: %w", err)
	}

	return run, nil
}

// FinishRun sets run as finished and updates run's statistics.
func (p Postgres) FinishRun(ctx context.Context, run *models.Run) error {
	columnList := table.SyncRun.AllColumns.Except(table.SyncRun.ID, table.SyncRun.Source, table.SyncRun.StartedAt)

	result, err := table.SyncRun.UPDATE(columnList).
		MODEL(toDBRun(run)).
		WHERE(table.SyncRun.ID.EQ(pg.Int32(int32(run.ID)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("can't update run: %w", platform.ErrNotFound)
	}

	return nil
}

// GetListing returns listing of source with provided external ID.
// It returns ErrNotFound if there is no such listing.
func (p Postgres) GetListing(ctx context.Context, source, externalID string) (*models.Listing, error) {
	var listing pgmodels.Listing
	err := table.Listing.SELECT(table.Listing.AllColumns).
		WHERE(pg.AND(
			table.Listing.Source.EQ(pg.String(source)),
			table.Listing.ExternalID.EQ(pg.String(externalID)),
		)).
		QueryContext(ctx, p.db, &listing)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, platform.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't get listing: %w", err)
	}

	return FromDBListing(&listing), nil
}

// UpsertListing inserts listing or updates existing listing with the same source and external ID.
// It returns true if listing was inserted.
func (p Postgres) UpsertListing(ctx context.Context, listing *models.Listing) (bool, error) {
	inserted := false

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		exists, err := listingExists(ctx, tx, listing.Source, listing.ExternalID)
		if err != nil {
			return fmt.Errorf("can't check existing listing: %w", err)
		}

		columnList := table.Listing.AllColumns.Except(table.Listing.ID, table.Listing.CreatedAt)
		updateList := columnList.Except(table.Listing.Source, table.Listing.ExternalID)

		excludedExpressions := make([]pg.Expression, 0, len(updateList)) // converting to expression
		for _, col := range table.Listing.EXCLUDED.AllColumns.Except(
			table.Listing.EXCLUDED.ID,
			table.Listing.EXCLUDED.CreatedAt,
			table.Listing.EXCLUDED.Source,
			table.Listing.EXCLUDED.ExternalID,
		) {
			excludedExpressions = append(excludedExpressions, col)
		}

		dbListing := ToDBListing(listing)
		err = table.Listing.INSERT(columnList).
			MODEL(dbListing).
			ON_CONFLICT(table.Listing.Source, table.Listing.ExternalID).
			DO_UPDATE(
				pg.SET(
					updateList.SET(pg.ROW(excludedExpressions...)),
				),
			).
			RETURNING(table.Listing.ID, table.Listing.CreatedAt).
			QueryContext(ctx, tx, dbListing)
		if err != nil {
			return fmt.Errorf("can't upsert listing into database: %w", err)
		}

		listing.ID = int(dbListing.ID)
		listing.CreatedAt = dbListing.CreatedAt
		inserted = !exists

		return nil
	})
	if err != nil {
		return false, err
	}

	return inserted, nil
}

// DeactivateStale marks as inactive all active listings of source not seen since before.
// Returns number of deactivated listings.
func (p Postgres) DeactivateStale(ctx context.Context, source string, before time.Time) (int64, error) {
	result, err := table.Listing.UPDATE().
		SET(
			table.Listing.IsActive.SET(pg.Bool(false)),
		).
		WHERE(pg.AND(
			table.Listing.Source.EQ(pg.String(source)),
			table.Listing.IsActive.IS_TRUE(),
			table.Listing.LastSeenAt.LT(pg.TimestampzT(before)),
		)).
		ExecContext(ctx, p.db)
	if err != nil {
		return 0, fmt.Errorf("can't deactivate stale listings: %w", err)
	}

	deactivated, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("can't count deactivated listings: %w", err)
	}

	return deactivated, nil
}

// FindState returns state matching provided code or name.
// Exact code match wins over exact name match, which wins over partial name match.
// It returns ErrNotFound if no state matches.
func (p Postgres) FindState(ctx context.Context, nameOrCode string) (*models.State, error) {
	query := strings.TrimSpace(nameOrCode)
	if query == "" {
		return nil, platform.ErrNotFound
	}

	conditions := []pg.BoolExpression{
		pg.UPPER(table.LocationState.Code).EQ(pg.String(strings.ToUpper(query))),
		pg.LOWER(table.LocationState.Name).EQ(pg.String(strings.ToLower(query))),
		pg.LOWER(table.LocationState.Name).LIKE(pg.String(likePattern(query))),
	}

	for _, condition := range conditions {
		var state pgmodels.LocationState
		err := table.LocationState.SELECT(table.LocationState.AllColumns).
			WHERE(condition).
			ORDER_BY(table.LocationState.Name.ASC()).
			LIMIT(1).
			QueryContext(ctx, p.db, &state)
		if errors.Is(err, qrm.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("can't get state: %w", err)
		}

		return &models.State{ID: state.ID, Code: state.Code, Name: state.Name}, nil
	}

	return nil, platform.ErrNotFound
}

// FindCity returns city of state matching provided name.
// Exact name match wins over partial match. It returns ErrNotFound if no city matches.
func (p Postgres) FindCity(ctx context.Context, stateID int32, name string) (*models.City, error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return nil, platform.ErrNotFound
	}

	conditions := []pg.BoolExpression{
		pg.LOWER(table.LocationCity.Name).EQ(pg.String(strings.ToLower(query))),
		pg.LOWER(table.LocationCity.Name).LIKE(pg.String(likePattern(query))),
	}

	for _, condition := range conditions {
		var city pgmodels.LocationCity
		err := table.LocationCity.SELECT(table.LocationCity.AllColumns).
			WHERE(pg.AND(
				table.LocationCity.StateID.EQ(pg.Int32(stateID)),
				condition,
			)).
			ORDER_BY(table.LocationCity.Name.ASC()).
			LIMIT(1).
			QueryContext(ctx, p.db, &city)
		if errors.Is(err, qrm.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("can't get city: %w", err)
		}

		return &models.City{ID: city.ID, StateID: city.StateID, Name: city.Name}, nil
	}

	return nil, platform.ErrNotFound
}

func listingExists(ctx context.Context, db qrm.DB, source, externalID string) (bool, error) {
	var found []pgmodels.Listing
	err := table.Listing.SELECT(table.Listing.ID).
		WHERE(pg.AND(
			table.Listing.Source.EQ(pg.String(source)),
			table.Listing.ExternalID.EQ(pg.String(externalID)),
		)).
		FOR(pg.UPDATE()).
		QueryContext(ctx, db, &found)
	if err != nil {
		return false, err
	}

	return len(found) > 0, nil
}

func getLastRun(ctx context.Context, db qrm.DB, source string) (*pgmodels.SyncRun, error) {
	var run pgmodels.SyncRun
	err := table.SyncRun.SELECT(
		table.SyncRun.ID,
		table.SyncRun.StartedAt,
		table.SyncRun.FinishedAt,
		table.SyncRun.Success,
	).
		WHERE(table.SyncRun.Source.EQ(pg.String(source))).
		ORDER_BY(table.SyncRun.StartedAt.DESC()).
		LIMIT(1).
		QueryContext(ctx, db, &run)
	if err != nil {
		return nil, err
	}

	return &run, nil
}

func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(query))
	return "%" + escaped + "%"
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
