package trips

import (
	"context"

	"github.com/waymarkhq/waymark/pkg/sites"
)

// Store is the persistent entity collaborator. It supplies and receives
// whole records keyed by trip and entity id; it does not deduplicate or
// merge. Reconciliation is a pure transform the Service applies before
// calling PutEntity, and the Service assumes a single writer per entity at
// the call site.
type Store interface {
	// Entity returns the entity by id, or an error satisfying
	// errors.Is(err, errors.ErrNotFound).
	Entity(ctx context.Context, tripID, entityID string) (*Entity, error)

	// Entities returns all entities owned by the trip.
	Entities(ctx context.Context, tripID string) ([]*Entity, error)

	// PutEntity creates or replaces the entity.
	PutEntity(ctx context.Context, entity *Entity) error

	// Sites returns the trip's folded location trees.
	Sites(ctx context.Context, tripID string) ([]*sites.Site, error)

	// PutSites replaces the trip's folded location trees.
	PutSites(ctx context.Context, tripID string, forest []*sites.Site) error
}
