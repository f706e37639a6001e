// Package trips holds the trip-scoped entity model and the service that
// applies extracted facts to it: fuzzy-matching incoming mentions against a
// trip's existing entities, merging records without erasing known data, and
// folding observed place hierarchies into the trip's canonical site trees.
package trips

import (
	"github.com/agentstation/utc"

	"github.com/waymarkhq/waymark/pkg/facts"
	"github.com/waymarkhq/waymark/pkg/reconcile"
)

// Kind classifies a trip entity.
type Kind string

// Entity kinds.
const (
	KindPointOfInterest Kind = "point_of_interest"
	KindTransportation  Kind = "transportation"
	KindMission         Kind = "mission"
	KindExpense         Kind = "expense"
	KindContact         Kind = "contact"
)

// Workflow returns the lifecycle ordering that governs the kind. Transport
// bookings follow their own order; everything else follows the
// point-of-interest order.
func (k Kind) Workflow() reconcile.Workflow {
	if k == KindTransportation {
		return reconcile.WorkflowTransport
	}
	return reconcile.WorkflowPlace
}

// Entity is the canonical record for one real-world thing a trip knows
// about. Data carries the merged semi-structured facts; Refs records which
// source documents contributed; Status is the entity's workflow position.
type Entity struct {
	ID     string `json:"id" yaml:"id"`
	TripID string `json:"trip_id" yaml:"trip_id"`
	Kind   Kind   `json:"kind" yaml:"kind"`
	Name   string `json:"name" yaml:"name"`

	Status reconcile.Status `json:"status,omitempty" yaml:"status,omitempty"`
	Refs   reconcile.RefSet `json:"refs,omitempty" yaml:"refs,omitempty"`
	Data   facts.Value      `json:"data,omitempty" yaml:"-"`

	CreatedAt utc.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt utc.Time `json:"updated_at" yaml:"updated_at"`
}

// Copy returns an independent deep copy of the entity.
func (e *Entity) Copy() *Entity {
	if e == nil {
		return nil
	}
	out := *e
	out.Refs = e.Refs.Copy()
	out.Data = e.Data.Copy()
	return &out
}
