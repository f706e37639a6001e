package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waymarkhq/waymark/pkg/facts"
	"github.com/waymarkhq/waymark/pkg/reconcile"
)

func record(fields map[string]facts.Value) facts.Value {
	return facts.Record(fields)
}

func TestReconcileAbsentIncomingKeepsExisting(t *testing.T) {
	existing := record(map[string]facts.Value{
		"name": facts.String("Hilton"),
		"tags": facts.List(facts.String("beach")),
	})

	merged := reconcile.Reconcile(existing, facts.Absent())
	assert.True(t, merged.Equal(existing))

	merged = reconcile.Reconcile(existing, facts.String(""))
	assert.True(t, merged.Equal(existing), "empty string carries no information")
}

func TestReconcileNestedOverride(t *testing.T) {
	existing := record(map[string]facts.Value{
		"a": record(map[string]facts.Value{
			"x": facts.Number(1),
			"y": facts.Number(2),
		}),
		"b": facts.String("keep"),
	})
	incoming := record(map[string]facts.Value{
		"a": record(map[string]facts.Value{
			"y": facts.Number(99),
		}),
	})

	merged := reconcile.Reconcile(existing, incoming)

	want := record(map[string]facts.Value{
		"a": record(map[string]facts.Value{
			"x": facts.Number(1),
			"y": facts.Number(99),
		}),
		"b": facts.String("keep"),
	})
	assert.True(t, merged.Equal(want))
}

func TestReconcileListsReplacedWholesale(t *testing.T) {
	existing := record(map[string]facts.Value{
		"tags": facts.List(facts.String("a"), facts.String("b")),
	})
	incoming := record(map[string]facts.Value{
		"tags": facts.List(facts.String("c")),
	})

	merged := reconcile.Reconcile(existing, incoming)

	tags := merged.Field("tags")
	require.Equal(t, 1, tags.Len())
	got, _ := tags.Items()[0].AsString()
	assert.Equal(t, "c", got)
}

func TestReconcileTypeMismatchReplaces(t *testing.T) {
	// Scalar over record
	existing := record(map[string]facts.Value{"a": record(map[string]facts.Value{"x": facts.Number(1)})})
	incoming := record(map[string]facts.Value{"a": facts.String("flat")})
	merged := reconcile.Reconcile(existing, incoming)
	got, ok := merged.Field("a").AsString()
	require.True(t, ok)
	assert.Equal(t, "flat", got)

	// Record over list
	existing = record(map[string]facts.Value{"a": facts.List(facts.Number(1))})
	incoming = record(map[string]facts.Value{"a": record(map[string]facts.Value{"x": facts.Number(2)})})
	merged = reconcile.Reconcile(existing, incoming)
	assert.True(t, merged.Field("a").IsRecord())
}

func TestReconcileIdempotent(t *testing.T) {
	existing := record(map[string]facts.Value{
		"name": facts.String("Hilton"),
		"detail": record(map[string]facts.Value{
			"rating": facts.Number(4),
		}),
	})
	incoming := record(map[string]facts.Value{
		"detail": record(map[string]facts.Value{
			"rating": facts.Number(5),
			"rooms":  facts.Number(120),
		}),
	})

	once := reconcile.Reconcile(existing, incoming)
	twice := reconcile.Reconcile(once, incoming)
	assert.True(t, once.Equal(twice))
}

func TestReconcileDisjointUpdatesCompose(t *testing.T) {
	existing := record(map[string]facts.Value{"base": facts.String("keep")})
	first := record(map[string]facts.Value{"a": facts.Number(1)})
	second := record(map[string]facts.Value{"b": facts.Number(2)})

	merged := reconcile.Reconcile(reconcile.Reconcile(existing, first), second)

	assert.True(t, merged.HasField("base"))
	assert.True(t, merged.HasField("a"))
	assert.True(t, merged.HasField("b"))
}

func TestReconcileEmptyRecordIsNoOpAtField(t *testing.T) {
	existing := record(map[string]facts.Value{
		"detail": record(map[string]facts.Value{"x": facts.Number(1)}),
	})
	incoming := record(map[string]facts.Value{
		"detail": record(nil),
	})

	merged := reconcile.Reconcile(existing, incoming)
	assert.InDelta(t, 1.0, number(t, merged.Field("detail").Field("x")), 0)
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	existing := record(map[string]facts.Value{
		"detail": record(map[string]facts.Value{"x": facts.Number(1)}),
	})
	incoming := record(map[string]facts.Value{
		"detail": record(map[string]facts.Value{"x": facts.Number(2)}),
	})
	existingBefore := existing.Copy()
	incomingBefore := incoming.Copy()

	_ = reconcile.Reconcile(existing, incoming)

	assert.True(t, existing.Equal(existingBefore))
	assert.True(t, incoming.Equal(incomingBefore))
}

func number(t *testing.T, v facts.Value) float64 {
	t.Helper()
	n, ok := v.AsNumber()
	require.True(t, ok)
	return n
}
