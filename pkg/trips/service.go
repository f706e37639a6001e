package trips

import (
	"context"
	"strings"

	"github.com/agentstation/utc"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/waymarkhq/waymark/pkg/facts"
	"github.com/waymarkhq/waymark/pkg/logging"
	"github.com/waymarkhq/waymark/pkg/match"
	"github.com/waymarkhq/waymark/pkg/reconcile"
	"github.com/waymarkhq/waymark/pkg/sites"
)

// EntityFacts is one incoming observation of an entity: the partial record
// upstream extraction produced for it, plus the provenance and workflow
// hints the caller derived from the envelope.
type EntityFacts struct {
	Kind   Kind
	Name   string
	Status reconcile.Status
	Refs   reconcile.RefSet
	Data   facts.Value
}

// Bundle is everything one extraction event contributes to a trip.
type Bundle struct {
	Entities []EntityFacts
	Observed []*sites.Site
}

// Result reports what applying a bundle changed.
type Result struct {
	Created []*Entity
	Updated []*Entity
	Skipped int
	Sites   []*sites.Site
}

// Service applies extracted fact bundles to a trip. It is the caller the
// reconciliation engine is written for: matching is scoped to the trip's
// existing entities, record data goes through Reconcile, provenance through
// RefSet.Union, status through Workflow.MergeStatus, and observed place
// trees are folded into the trip's canonical country subtrees.
type Service struct {
	store Store
	cache *sites.Cache
}

// NewService creates a service over the given store and canonical site
// cache.
func NewService(store Store, cache *sites.Cache) *Service {
	return &Service{store: store, cache: cache}
}

// Apply merges an extraction bundle into the trip and writes the results
// back through the store.
func (s *Service) Apply(ctx context.Context, tripID string, bundle Bundle) (*Result, error) {
	ctx = logging.WithTrip(ctx, tripID)
	log := logging.Ctx(ctx)

	existing, err := s.store.Entities(ctx, tripID)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, incoming := range bundle.Entities {
		if strings.TrimSpace(incoming.Name) == "" {
			// A nameless mention cannot be matched or corrected later.
			log.Warn().Str("kind", string(incoming.Kind)).Msg("Skipping nameless entity facts")
			result.Skipped++
			continue
		}

		target := findMatch(existing, incoming)
		if target == nil {
			created := newEntity(tripID, incoming)
			if err := s.store.PutEntity(ctx, created); err != nil {
				return nil, err
			}
			existing = append(existing, created)
			result.Created = append(result.Created, created)
			log.Debug().Str("entity_id", created.ID).Str("name", created.Name).Msg("Created entity")
			continue
		}

		updated := mergeEntity(target, incoming)
		if err := s.store.PutEntity(ctx, updated); err != nil {
			return nil, err
		}
		replace(existing, updated)
		result.Updated = append(result.Updated, updated)
		log.Debug().Str("entity_id", updated.ID).Str("name", updated.Name).Msg("Merged entity facts")
	}

	merged, err := s.foldSites(ctx, tripID, bundle.Observed)
	if err != nil {
		return nil, err
	}
	result.Sites = merged

	return result, nil
}

// findMatch returns the trip entity the incoming facts refer to, or nil.
// Matching is approximate by name, scoped to entities of the same kind.
func findMatch(existing []*Entity, incoming EntityFacts) *Entity {
	for _, entity := range existing {
		if entity.Kind == incoming.Kind && match.Names(entity.Name, incoming.Name) {
			return entity
		}
	}
	return nil
}

// newEntity builds a fresh entity from first facts.
func newEntity(tripID string, incoming EntityFacts) *Entity {
	now := utc.Now()
	status := incoming.Status
	if status == "" {
		status = reconcile.StatusCandidate
	}
	return &Entity{
		ID:        uuid.NewString(),
		TripID:    tripID,
		Kind:      incoming.Kind,
		Name:      strings.TrimSpace(incoming.Name),
		Status:    status,
		Refs:      reconcile.RefSet{}.Union(incoming.Refs),
		Data:      incoming.Data.Copy(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// mergeEntity folds incoming facts into an existing entity. Record data is
// merged with the never-erase rule, references by union, and status by
// workflow rank so a resurfaced old observation cannot downgrade progress.
func mergeEntity(existing *Entity, incoming EntityFacts) *Entity {
	merged := existing.Copy()
	merged.Data = reconcile.Reconcile(existing.Data, incoming.Data)
	merged.Refs = existing.Refs.Union(incoming.Refs)
	merged.Status = existing.Kind.Workflow().MergeStatus(existing.Status, incoming.Status)
	merged.UpdatedAt = utc.Now()
	return merged
}

func replace(entities []*Entity, updated *Entity) {
	for i, entity := range entities {
		if entity.ID == updated.ID {
			entities[i] = updated
			return
		}
	}
}

// foldSites merges observed hierarchy nodes into the trip's location trees,
// seeding each country from the canonical cache on first sight. Countries
// are folded concurrently; the merge itself is pure so only the final write
// is ordered.
func (s *Service) foldSites(ctx context.Context, tripID string, observed []*sites.Site) ([]*sites.Site, error) {
	if len(observed) == 0 {
		return nil, nil
	}
	log := logging.Ctx(ctx)

	tripForest, err := s.store.Sites(ctx, tripID)
	if err != nil {
		return nil, err
	}

	countries := observedCountries(observed)
	merged := make([]*sites.Site, len(countries))

	g, gctx := errgroup.WithContext(ctx)
	for i, country := range countries {
		g.Go(func() error {
			base := findTree(tripForest, country)
			if base == nil {
				canonical, cerr := s.cache.Country(gctx, country)
				if cerr != nil {
					// Best effort: with no canonical subtree available the
					// observed country seeds a fresh tree.
					log.Warn().Err(cerr).Str("country", country).
						Msg("No canonical subtree; seeding from observation")
					base = &sites.Site{Name: country, Type: sites.SiteTypeCountry}
				} else {
					base = canonical
				}
			}
			merged[i] = sites.MergeObserved(base, observed, country)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, tree := range merged {
		tripForest = upsertTree(tripForest, tree)
	}
	if err := s.store.PutSites(ctx, tripID, tripForest); err != nil {
		return nil, err
	}
	return merged, nil
}

// observedCountries returns the distinct country names among the observed
// roots, first-seen casing, in input order.
func observedCountries(observed []*sites.Site) []string {
	var names []string
	for _, node := range observed {
		if node == nil || node.Type != sites.SiteTypeCountry || strings.TrimSpace(node.Name) == "" {
			continue
		}
		exists := false
		for _, name := range names {
			if strings.EqualFold(name, node.Name) {
				exists = true
				break
			}
		}
		if !exists {
			names = append(names, node.Name)
		}
	}
	return names
}

func findTree(forest []*sites.Site, country string) *sites.Site {
	for _, tree := range forest {
		if strings.EqualFold(tree.Name, country) {
			return tree
		}
	}
	return nil
}

func upsertTree(forest []*sites.Site, tree *sites.Site) []*sites.Site {
	for i, existing := range forest {
		if strings.EqualFold(existing.Name, tree.Name) {
			forest[i] = tree
			return forest
		}
	}
	return append(forest, tree)
}
