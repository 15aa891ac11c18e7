// Package location resolves configured state and city names to location reference ids.
package location

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/autolistings/listing-sync/internal/platform"
	"github.com/autolistings/listing-sync/internal/platform/models"
)

//go:generate mockery --name Store --filename store.go

// ErrStateNotFound is returned when state can't be resolved.
var ErrStateNotFound = errors.New("state not found")

// Store looks up location reference records.
type Store interface {
	// FindState returns state matching name or code. It returns platform.ErrNotFound if there is no such state.
	FindState(ctx context.Context, nameOrCode string) (*models.State, error)
	// FindCity returns city of state matching name. It returns platform.ErrNotFound if there is no such city.
	FindCity(ctx context.Context, stateID int32, name string) (*models.City, error)
}

// Resolver resolves and caches locations. A Resolver is meant to live for a single sync run.
type Resolver struct {
	store Store

	mu     sync.Mutex
	states map[string]int32
	cities map[cityKey]*int32
}

type cityKey struct {
	stateID int32
	name    string
}

// NewResolver returns new Resolver with empty cache.
func NewResolver(store Store) *Resolver {
	return &Resolver{
		store:  store,
		states: make(map[string]int32),
		cities: make(map[cityKey]*int32),
	}
}

// Resolve returns id of state and id of city, or nil city id when city is empty or unknown.
// Unknown state results in ErrStateNotFound.
func (r *Resolver) Resolve(ctx context.Context, state, city string) (int32, *int32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stateID, err := r.resolveState(ctx, state)
	if err != nil {
		return 0, nil, err
	}

	cityID, err := r.resolveCity(ctx, stateID, city)
	if err != nil {
		return 0, nil, err
	}

	return stateID, cityID, nil
}

func (r *Resolver) resolveState(ctx context.Context, state string) (int32, error) {
	name := normalize(state)
	if name == "" {
		return 0, fmt.Errorf("%w: empty state", ErrStateNotFound)
	}

	key := strings.ToLower(name)
	if id, ok := r.states[key]; ok {
		return id, nil
	}

	found, err := r.store.FindState(ctx, name)
	if errors.Is(err, platform.ErrNotFound) {
		return 0, fmt.Errorf("%w: %q", ErrStateNotFound, state)
	}
	if err != nil {
		return 0, fmt.Errorf("can't find state: %w", err)
	}

	r.states[key] = found.ID
	return found.ID, nil
}

func (r *Resolver) resolveCity(ctx context.Context, stateID int32, city string) (*int32, error) {
	name := normalize(city)
	if name == "" {
		return nil, nil
	}

	key := cityKey{stateID: stateID, name: strings.ToLower(name)}
	if id, ok := r.cities[key]; ok {
		return id, nil
	}

	found, err := r.store.FindCity(ctx, stateID, name)
	if errors.Is(err, platform.ErrNotFound) {
		// misses are cached too
		r.cities[key] = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't find city: %w", err)
	}

	r.cities[key] = &found.ID
	return &found.ID, nil
}

func normalize(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
