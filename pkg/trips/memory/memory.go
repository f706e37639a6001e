// Package memory provides an in-memory trips.Store, used by tests and the
// CLI. It is safe for concurrent use and defensively deep-copies records in
// both directions so callers can never mutate stored state in place.
package memory

import (
	"context"
	"sync"

	"github.com/waymarkhq/waymark/pkg/errors"
	"github.com/waymarkhq/waymark/pkg/sites"
	"github.com/waymarkhq/waymark/pkg/trips"
)

// Store is an in-memory implementation of trips.Store.
type Store struct {
	mu       sync.RWMutex
	entities map[string]map[string]*trips.Entity // tripID -> entityID -> entity
	forests  map[string][]*sites.Site            // tripID -> folded trees
}

// New creates an empty store.
func New() *Store {
	return &Store{
		entities: make(map[string]map[string]*trips.Entity),
		forests:  make(map[string][]*sites.Site),
	}
}

// Entity returns the entity by id.
func (s *Store) Entity(ctx context.Context, tripID, entityID string) (*trips.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.entities[tripID][entityID]
	if !ok {
		return nil, errors.NewNotFoundError("entity", entityID)
	}
	return entity.Copy(), nil
}

// Entities returns all entities owned by the trip.
func (s *Store) Entities(ctx context.Context, tripID string) ([]*trips.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := s.entities[tripID]
	out := make([]*trips.Entity, 0, len(byID))
	for _, entity := range byID {
		out = append(out, entity.Copy())
	}
	return out, nil
}

// PutEntity creates or replaces the entity.
func (s *Store) PutEntity(ctx context.Context, entity *trips.Entity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entity == nil || entity.ID == "" || entity.TripID == "" {
		return errors.NewValidationError("entity", entity, "id and trip_id are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.entities[entity.TripID]
	if !ok {
		byID = make(map[string]*trips.Entity)
		s.entities[entity.TripID] = byID
	}
	byID[entity.ID] = entity.Copy()
	return nil
}

// Sites returns the trip's folded location trees.
func (s *Store) Sites(ctx context.Context, tripID string) ([]*sites.Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	forest := s.forests[tripID]
	out := make([]*sites.Site, len(forest))
	for i, tree := range forest {
		out[i] = tree.Copy()
	}
	return out, nil
}

// PutSites replaces the trip's folded location trees.
func (s *Store) PutSites(ctx context.Context, tripID string, forest []*sites.Site) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]*sites.Site, len(forest))
	for i, tree := range forest {
		stored[i] = tree.Copy()
	}
	s.forests[tripID] = stored
	return nil
}
