package reconcile

// Status is an entity's position in its fixed linear workflow.
type Status string

// Lifecycle statuses across both workflows.
const (
	StatusCandidate Status = "candidate"
	StatusMatched   Status = "matched"
	StatusInPlan    Status = "in_plan"
	StatusVisited   Status = "visited"
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
)

// Workflow selects which lifecycle ordering applies to an entity.
type Workflow int

const (
	// WorkflowPlace orders statuses for point-of-interest-like entities.
	WorkflowPlace Workflow = iota
	// WorkflowTransport orders statuses for transport bookings.
	WorkflowTransport
)

// The orders are total and fixed at process start; they are not
// configurable per trip.
var (
	placeOrder = []Status{
		StatusCandidate,
		StatusMatched,
		StatusInPlan,
		StatusVisited,
		StatusBooked,
	}
	transportOrder = []Status{
		StatusCandidate,
		StatusInPlan,
		StatusBooked,
		StatusCompleted,
	}
)

// String returns a human-readable name for the workflow.
func (w Workflow) String() string {
	if w == WorkflowTransport {
		return "transport"
	}
	return "place"
}

// order returns the status vocabulary for the workflow, lowest rank first.
func (w Workflow) order() []Status {
	if w == WorkflowTransport {
		return transportOrder
	}
	return placeOrder
}

// Rank maps a status to its position in the workflow; higher means further
// along. Statuses outside the workflow's vocabulary rank below every known
// status and return -1.
func (w Workflow) Rank(s Status) int {
	for i, known := range w.order() {
		if known == s {
			return i
		}
	}
	return -1
}

// MergeStatus resolves a status conflict in favor of the further-along
// status, so a stale or re-submitted low-priority observation can never
// downgrade an entity that has already progressed. Ties keep the existing
// status. Callers apply this to the status field specifically instead of the
// generic incoming-wins rule of Reconcile.
func (w Workflow) MergeStatus(existing, incoming Status) Status {
	if w.Rank(incoming) > w.Rank(existing) {
		return incoming
	}
	return existing
}
