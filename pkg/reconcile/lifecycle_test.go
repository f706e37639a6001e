package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waymarkhq/waymark/pkg/reconcile"
)

func TestPlaceOrder(t *testing.T) {
	w := reconcile.WorkflowPlace
	ordered := []reconcile.Status{
		reconcile.StatusCandidate,
		reconcile.StatusMatched,
		reconcile.StatusInPlan,
		reconcile.StatusVisited,
		reconcile.StatusBooked,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, w.Rank(ordered[i]), w.Rank(ordered[i-1]),
			"%s should outrank %s", ordered[i], ordered[i-1])
	}
}

func TestTransportOrder(t *testing.T) {
	w := reconcile.WorkflowTransport
	ordered := []reconcile.Status{
		reconcile.StatusCandidate,
		reconcile.StatusInPlan,
		reconcile.StatusBooked,
		reconcile.StatusCompleted,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, w.Rank(ordered[i]), w.Rank(ordered[i-1]))
	}

	// Statuses outside the transport vocabulary rank below everything.
	assert.Equal(t, -1, w.Rank(reconcile.StatusVisited))
	assert.Equal(t, -1, w.Rank(reconcile.StatusMatched))
}

func TestMergeStatusNeverDowngrades(t *testing.T) {
	w := reconcile.WorkflowPlace

	assert.Equal(t, reconcile.StatusBooked,
		w.MergeStatus(reconcile.StatusBooked, reconcile.StatusCandidate),
		"a resurfaced old observation must not downgrade a booked entity")
	assert.Equal(t, reconcile.StatusBooked,
		w.MergeStatus(reconcile.StatusVisited, reconcile.StatusBooked))
	assert.Equal(t, reconcile.StatusInPlan,
		w.MergeStatus(reconcile.StatusInPlan, reconcile.StatusInPlan))
}

func TestMergeStatusUnknowns(t *testing.T) {
	w := reconcile.WorkflowTransport

	// An unknown incoming status keeps the existing one.
	assert.Equal(t, reconcile.StatusBooked, w.MergeStatus(reconcile.StatusBooked, "wat"))
	// A known incoming status beats an unset existing one.
	assert.Equal(t, reconcile.StatusCandidate, w.MergeStatus("", reconcile.StatusCandidate))
	// Two unknowns keep the existing value.
	assert.Equal(t, reconcile.Status(""), w.MergeStatus("", ""))
}
