package domain

import internaldomain "github.com/baitalhikma/go-courses/internal/domain"

// Status represents lifecycle states for catalog courses.
type Status = internaldomain.Status

const (
	// StatusDraft indicates a course still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusPublished identifies a course visible to students.
	StatusPublished = internaldomain.StatusPublished
	// StatusPending marks a course awaiting an administrative decision.
	StatusPending = internaldomain.StatusPending
	// StatusDeleted is the terminal state observed only through the catalog.
	StatusDeleted = internaldomain.StatusDeleted
)

// PendingIntent identifies the transition a pending course is waiting to resolve into.
type PendingIntent = internaldomain.PendingIntent

const (
	IntentToPublished = internaldomain.IntentToPublished
	IntentToDraft     = internaldomain.IntentToDraft
	IntentToDeleted   = internaldomain.IntentToDeleted
)

// Operation enumerates the transitions a teacher can trigger on a course.
type Operation = internaldomain.Operation

const (
	OperationRequestPublish   = internaldomain.OperationRequestPublish
	OperationCancel           = internaldomain.OperationCancel
	OperationUnpublish        = internaldomain.OperationUnpublish
	OperationRequestUnpublish = internaldomain.OperationRequestUnpublish
	OperationDelete           = internaldomain.OperationDelete
	OperationRequestDeletion  = internaldomain.OperationRequestDeletion
)
