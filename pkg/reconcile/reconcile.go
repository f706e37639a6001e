// Package reconcile merges partial trip facts into canonical entity records.
//
// The engine is deliberately last-write-wins at the leaf level and not
// time-aware: an incoming value overrides the matching existing field, but an
// incoming field that carries no information never erases existing data.
// Provenance references and lifecycle statuses have their own merge semantics
// (see RefSet.Union and Workflow.MergeStatus) which callers apply on those
// fields specifically; Reconcile itself has no concept of field meaning.
//
// All operations here are pure: inputs are never mutated and every merge
// returns newly constructed values, so they may be called freely from
// concurrent call sites without locking.
package reconcile

import (
	"github.com/waymarkhq/waymark/pkg/facts"
)

// Reconcile merges an incoming partial record into an existing one.
//
// Rules, in order:
//  1. An incoming value that is not present contributes nothing; the
//     existing value survives.
//  2. An incoming scalar or list fully replaces whatever exists. Lists are
//     never merged element-wise; partial list updates are unsupported to
//     avoid ambiguous positional semantics.
//  3. An incoming record replaces an existing value that is absent, a
//     scalar, or a list.
//  4. Two records merge field by field: every field set on the incoming
//     record is reconciled recursively against the existing field (absent
//     when the existing record lacks it); fields only the existing record
//     carries are preserved untouched.
//
// Reconcile is idempotent: applying the same incoming value twice yields
// the same result as applying it once.
func Reconcile(existing, incoming facts.Value) facts.Value {
	if !incoming.Present() {
		return existing.Copy()
	}
	if !incoming.IsRecord() {
		return incoming.Copy()
	}
	if !existing.IsRecord() {
		return incoming.Copy()
	}

	merged := make(map[string]facts.Value, existing.Len()+incoming.Len())
	for _, name := range existing.FieldNames() {
		merged[name] = existing.Field(name).Copy()
	}
	for _, name := range incoming.FieldNames() {
		result := Reconcile(existing.Field(name), incoming.Field(name))
		if result.Kind() == facts.KindAbsent && !existing.HasField(name) {
			// An uninformative incoming field must not introduce a field
			// the existing record never had.
			continue
		}
		merged[name] = result
	}
	return facts.Record(merged)
}
