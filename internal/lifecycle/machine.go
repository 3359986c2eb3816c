package lifecycle

import (
	"github.com/baitalhikma/go-courses/catalog"
	"github.com/baitalhikma/go-courses/internal/domain"
	"github.com/baitalhikma/go-courses/lifecycle"
)

// Snapshot captures the lifecycle-relevant view of a course at planning time.
type Snapshot struct {
	Status     domain.Status
	Intent     domain.PendingIntent
	Enrollment int
}

// SnapshotOf reads the lifecycle triple off a catalog record.
func SnapshotOf(c *catalog.Course) Snapshot {
	if c == nil {
		return Snapshot{}
	}
	return Snapshot{
		Status:     c.Status,
		Intent:     c.PendingIntent,
		Enrollment: c.EnrollmentCount,
	}
}

// Plan describes how an operation will execute: either an immediate local
// transition to Target, or a deferred one that parks the course in pending
// until the approver resolves Intent.
type Plan struct {
	Operation      domain.Operation
	Deferred       bool
	Intent         domain.PendingIntent
	Target         domain.Status
	RequiresReason bool
}

type transitionKey struct {
	op   domain.Operation
	from domain.Status
}

type transition struct {
	op   domain.Operation
	from domain.Status
}

// courseTransitions is the legal edge set of the course workflow. Deferral and
// reason requirements are derived from the enrollment gate, not the table.
var courseTransitions = []transition{
	{op: domain.OperationRequestPublish, from: domain.StatusDraft},
	{op: domain.OperationCancel, from: domain.StatusPending},
	{op: domain.OperationUnpublish, from: domain.StatusPublished},
	{op: domain.OperationRequestUnpublish, from: domain.StatusPublished},
	{op: domain.OperationDelete, from: domain.StatusDraft},
	{op: domain.OperationDelete, from: domain.StatusPublished},
	{op: domain.OperationRequestDeletion, from: domain.StatusDraft},
	{op: domain.OperationRequestDeletion, from: domain.StatusPublished},
}

// operationOrder fixes the listing order for AvailableOperations.
var operationOrder = []domain.Operation{
	domain.OperationRequestPublish,
	domain.OperationCancel,
	domain.OperationUnpublish,
	domain.OperationRequestUnpublish,
	domain.OperationDelete,
	domain.OperationRequestDeletion,
}

// Machine executes deterministic course lifecycle planning against the
// compiled transition table.
type Machine struct {
	gate        EnrollmentGate
	transitions map[transitionKey]transition
}

// NewMachine constructs a machine seeded with the course workflow.
func NewMachine() *Machine {
	m := &Machine{
		transitions: make(map[transitionKey]transition, len(courseTransitions)),
	}
	for _, t := range courseTransitions {
		m.transitions[transitionKey{op: t.op, from: t.from}] = t
	}
	return m
}

// Plan resolves the requested operation against the snapshot. The returned
// plan canonicalizes aliased operations: a gated unpublish or delete comes
// back as its request_* form, an ungated request_* form as its direct one.
func (m *Machine) Plan(snap Snapshot, op domain.Operation) (Plan, error) {
	if _, ok := m.transitions[transitionKey{op: op, from: snap.Status}]; !ok {
		return Plan{}, &lifecycle.InvalidTransitionError{
			Operation: op,
			From:      snap.Status,
			Intent:    snap.Intent,
		}
	}

	if op == domain.OperationCancel {
		return Plan{
			Operation: op,
			Target:    domain.StatusDraft,
		}, nil
	}

	deferred := m.gate.RequiresApproval(op, snap.Enrollment)
	plan := Plan{
		Operation: canonicalOperation(op, deferred),
		Deferred:  deferred,
	}
	if deferred {
		plan.Intent = op.Intent()
		plan.Target = domain.StatusPending
		plan.RequiresReason = op != domain.OperationRequestPublish
		return plan, nil
	}

	plan.Target = op.Intent().TargetStatus()
	return plan, nil
}

// AvailableOperations lists the operations reachable from the snapshot,
// surfacing each gated family through a single canonical name.
func (m *Machine) AvailableOperations(snap Snapshot) []domain.Operation {
	ops := make([]domain.Operation, 0, 3)
	for _, op := range operationOrder {
		plan, err := m.Plan(snap, op)
		if err != nil {
			continue
		}
		if plan.Operation != op {
			continue
		}
		ops = append(ops, op)
	}
	return ops
}

func canonicalOperation(op domain.Operation, deferred bool) domain.Operation {
	switch op {
	case domain.OperationUnpublish, domain.OperationRequestUnpublish:
		if deferred {
			return domain.OperationRequestUnpublish
		}
		return domain.OperationUnpublish
	case domain.OperationDelete, domain.OperationRequestDeletion:
		if deferred {
			return domain.OperationRequestDeletion
		}
		return domain.OperationDelete
	default:
		return op
	}
}
