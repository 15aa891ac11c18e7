package reconciler_test

import (
	"context"
	"testing"
	"time"

	"github.com/autolistings/listing-sync/internal/offloader"
	"github.com/autolistings/listing-sync/internal/platform"
	"github.com/autolistings/listing-sync/internal/platform/models"
	"github.com/autolistings/listing-sync/internal/platform/models/modelstesting"
	"github.com/autolistings/listing-sync/internal/reconciler"
	"github.com/autolistings/listing-sync/internal/reconciler/mocks"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reusable test data
var (
	logger     = zerolog.Nop()
	source     = "lone-star"
	now        = time.Date(2024, time.March, 1, 6, 0, 0, 0, time.UTC)
	lastRun    = now.Add(-6 * time.Hour)
	storedURL  = "https://cdn.example.com/listings/lone-star/A100/0.jpg"
	dealerURL1 = "https://dealer.example.com/img/A100-2.jpg"
)

func TestUnitMergeImageSlots(t *testing.T) {
	tests := map[string]struct {
		existing  [models.MaxImages]string
		candidate [models.MaxImages]string
		want      [models.MaxImages]reconciler.SlotPlan
	}{
		"new listing": {
			candidate: [models.MaxImages]string{"a", "b"},
			want: [models.MaxImages]reconciler.SlotPlan{
				{Action: reconciler.SlotFetch, URL: "a"},
				{Action: reconciler.SlotFetch, URL: "b"},
				{Action: reconciler.SlotEmpty},
				{Action: reconciler.SlotEmpty},
			},
		},
		"stored image without candidate": {
			existing: [models.MaxImages]string{"s0", "", "s2"},
			want: [models.MaxImages]reconciler.SlotPlan{
				{Action: reconciler.SlotKeep, URL: "s0"},
				{Action: reconciler.SlotEmpty},
				{Action: reconciler.SlotKeep, URL: "s2"},
				{Action: reconciler.SlotEmpty},
			},
		},
		"stored image with new candidate": {
			existing:  [models.MaxImages]string{"s0", "", "", "s3"},
			candidate: [models.MaxImages]string{"c0", "c1", "", "c3"},
			want: [models.MaxImages]reconciler.SlotPlan{
				{Action: reconciler.SlotKeep, URL: "s0"},
				{Action: reconciler.SlotFetch, URL: "c1"},
				{Action: reconciler.SlotEmpty},
				{Action: reconciler.SlotKeep, URL: "s3"},
			},
		},
		"nothing": {
			want: [models.MaxImages]reconciler.SlotPlan{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, reconciler.MergeImageSlots(tt.existing, tt.candidate))
		})
	}
}

func TestUnitPassApplyIsIdempotent(t *testing.T) {
	store := newMemStore()
	off := mocks.NewOffloader(t)
	rec := reconciler.NewReconciler(store, off, &logger, reconciler.WithClock(fakeClock{now: now}))

	off.On("Offload", mock.Anything, dealerURL1, offloader.Key{Source: source, ExternalID: "abc123", Slot: 0}).
		Return(lo.ToPtr(storedURL)).Once()

	first := rec.Begin(source)
	outcome := first.Apply(context.TODO(), modelstesting.FakeListing(func(l *models.Listing) {
		l.ExternalID = "abc123"
		l.Price = lo.ToPtr(int32(15200))
		l.ImageURLs = [models.MaxImages]string{dealerURL1}
	}))
	require.Equal(t, reconciler.Inserted, outcome)

	second := rec.Begin(source)
	outcome = second.Apply(context.TODO(), modelstesting.FakeListing(func(l *models.Listing) {
		l.ExternalID = "abc123"
		l.Price = lo.ToPtr(int32(14800))
		l.ImageURLs = [models.MaxImages]string{dealerURL1}
	}))
	require.Equal(t, reconciler.Updated, outcome)

	require.Len(t, store.listings, 1, "shouldn't duplicate listing")
	got := store.listings[key{source, "abc123"}]
	assert.Equal(t, lo.ToPtr(int32(14800)), got.Price, "should update price")
	assert.Equal(t, storedURL, got.ImageURLs[0], "shouldn't fetch stored image again")
	assert.Equal(t, now, got.LastSeenAt)
	assert.True(t, got.IsActive)
	assert.Equal(t, source, got.Source)
}

func TestUnitPassApplyPreservesImages(t *testing.T) {
	store := newMemStore()
	store.put(modelstesting.FakeListing(func(l *models.Listing) {
		l.Source = source
		l.ExternalID = "A100"
		l.ImageURLs = [models.MaxImages]string{storedURL}
		l.LastSeenAt = lastRun
	}))

	off := mocks.NewOffloader(t)
	off.On("Offload", mock.Anything, dealerURL1, offloader.Key{Source: source, ExternalID: "A100", Slot: 1}).
		Return(lo.ToPtr("https://cdn.example.com/listings/lone-star/A100/1.jpg")).Once()
	off.On("Offload", mock.Anything, "https://dealer.example.com/img/broken.jpg", offloader.Key{Source: source, ExternalID: "A100", Slot: 2}).
		Return(nil).Once()

	rec := reconciler.NewReconciler(store, off, &logger, reconciler.WithClock(fakeClock{now: now}))

	outcome := rec.Begin(source).Apply(context.TODO(), modelstesting.FakeListing(func(l *models.Listing) {
		l.ExternalID = "A100"
		l.ImageURLs = [models.MaxImages]string{"", dealerURL1, "https://dealer.example.com/img/broken.jpg"}
	}))

	require.Equal(t, reconciler.Updated, outcome)
	assert.Equal(t,
		[models.MaxImages]string{storedURL, "https://cdn.example.com/listings/lone-star/A100/1.jpg", "", ""},
		store.listings[key{source, "A100"}].ImageURLs,
		"should keep stored image and leave failed slot empty",
	)
}

func TestUnitPassFinishDeactivatesStale(t *testing.T) {
	store := newMemStore()
	for _, id := range []string{"A", "B", "C"} {
		store.put(modelstesting.FakeListing(func(l *models.Listing) {
			l.Source = source
			l.ExternalID = id
			l.IsActive = true
			l.LastSeenAt = lastRun
		}))
	}
	store.put(modelstesting.FakeListing(func(l *models.Listing) {
		l.Source = "other-dealer"
		l.ExternalID = "C"
		l.IsActive = true
		l.LastSeenAt = lastRun
	}))

	rec := reconciler.NewReconciler(store, mocks.NewOffloader(t), &logger, reconciler.WithClock(fakeClock{now: now}))
	pass := rec.Begin(source)
	for _, id := range []string{"A", "B"} {
		pass.Apply(context.TODO(), modelstesting.FakeListing(func(l *models.Listing) { l.ExternalID = id }))
	}

	stats, err := pass.Finish(context.TODO())

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, reconciler.Stats{Observed: 2, Updated: 2, Deactivated: 1}, stats)
	assert.True(t, store.listings[key{source, "A"}].IsActive)
	assert.True(t, store.listings[key{source, "B"}].IsActive)
	assert.Equal(t, now, store.listings[key{source, "B"}].LastSeenAt)
	assert.False(t, store.listings[key{source, "C"}].IsActive, "should deactivate listing not observed")
	assert.True(t, store.listings[key{"other-dealer", "C"}].IsActive, "shouldn't touch other sources")
}

func TestUnitPassFinishWithoutListings(t *testing.T) {
	store := mocks.NewStore(t)
	rec := reconciler.NewReconciler(store, mocks.NewOffloader(t), &logger, reconciler.WithClock(fakeClock{now: now}))

	stats, err := rec.Begin(source).Finish(context.TODO())

	require.NoError(t, err)
	assert.Equal(t, reconciler.Stats{}, stats)
	store.AssertNotCalled(t, "DeactivateStale", mock.Anything, mock.Anything, mock.Anything)
}

func TestUnitPassApplyStoreFailures(t *testing.T) {
	tests := map[string]struct {
		setup func(store *mocks.Store)
	}{
		"lookup failure": {
			setup: func(store *mocks.Store) {
				store.On("GetListing", mock.Anything, source, "A100").Return(nil, assert.AnError).Once()
			},
		},
		"upsert failure": {
			setup: func(store *mocks.Store) {
				store.On("GetListing", mock.Anything, source, "A100").Return(nil, platform.ErrNotFound).Once()
				store.On("UpsertListing", mock.Anything, mock.AnythingOfType("*models.Listing")).Return(false, assert.AnError).Once()
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			store := mocks.NewStore(t)
			tt.setup(store)
			rec := reconciler.NewReconciler(store, mocks.NewOffloader(t), &logger, reconciler.WithClock(fakeClock{now: now}))

			pass := rec.Begin(source)
			outcome := pass.Apply(context.TODO(), modelstesting.FakeListing(func(l *models.Listing) {
				l.ExternalID = "A100"
				l.ImageURLs = [models.MaxImages]string{}
			}))
			stats, err := pass.Finish(context.TODO())

			require.NoError(t, err)
			assert.Equal(t, reconciler.Skipped, outcome, "should skip listing")
			assert.Equal(t, reconciler.Stats{Observed: 1, Skipped: 1}, stats, "shouldn't sweep without persisted listings")
		})
	}
}

func TestUnitPassFinishSweepFailure(t *testing.T) {
	store := mocks.NewStore(t)
	store.On("GetListing", mock.Anything, source, "A100").Return(nil, platform.ErrNotFound).Once()
	store.On("UpsertListing", mock.Anything, mock.MatchedBy(func(l *models.Listing) bool {
		return l.ExternalID == "A100" && l.IsActive && l.LastSeenAt.Equal(now)
	})).Return(true, nil).Once()
	store.On("DeactivateStale", mock.Anything, source, now).Return(int64(0), assert.AnError).Once()

	rec := reconciler.NewReconciler(store, mocks.NewOffloader(t), &logger, reconciler.WithClock(fakeClock{now: now}))
	pass := rec.Begin(source)
	outcome := pass.Apply(context.TODO(), modelstesting.FakeListing(func(l *models.Listing) {
		l.ExternalID = "A100"
		l.ImageURLs = [models.MaxImages]string{}
	}))

	stats, err := pass.Finish(context.TODO())

	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, reconciler.Inserted, outcome)
	assert.Equal(t, reconciler.Stats{Observed: 1, Inserted: 1}, stats)
}

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

type key struct {
	source     string
	externalID string
}

// memStore is in-memory listings store.
type memStore struct {
	listings map[key]models.Listing
}

func newMemStore() *memStore {
	return &memStore{listings: make(map[key]models.Listing)}
}

func (s *memStore) put(listing models.Listing) {
	s.listings[key{listing.Source, listing.ExternalID}] = listing
}

func (s *memStore) GetListing(_ context.Context, source, externalID string) (*models.Listing, error) {
	listing, ok := s.listings[key{source, externalID}]
	if !ok {
		return nil, platform.ErrNotFound
	}
	return &listing, nil
}

func (s *memStore) UpsertListing(_ context.Context, listing *models.Listing) (bool, error) {
	_, exists := s.listings[key{listing.Source, listing.ExternalID}]
	s.put(*listing)
	return !exists, nil
}

func (s *memStore) DeactivateStale(_ context.Context, source string, before time.Time) (int64, error) {
	deactivated := int64(0)
	for k, listing := range s.listings {
		if k.source == source && listing.IsActive && listing.LastSeenAt.Before(before) {
			listing.IsActive = false
			s.listings[k] = listing
			deactivated++
		}
	}
	return deactivated, nil
}
