package domain

import "strings"

// Status represents lifecycle states for catalog courses
type Status string

const (
	// StatusDraft indicates a course still under preparation, invisible to students
	StatusDraft Status = "draft"
	// StatusPublished identifies a course visible and open for enrollment
	StatusPublished Status = "published"
	// StatusPending marks a course waiting on an administrative decision
	StatusPending Status = "pending"
	// StatusDeleted is the terminal state; the record itself is owned by the catalog
	StatusDeleted Status = "deleted"
)

// PendingIntent identifies which transition a pending course is waiting to resolve into.
type PendingIntent string

const (
	// IntentToPublished marks a publication request awaiting review.
	IntentToPublished PendingIntent = "to_published"
	// IntentToDraft marks an unpublish request awaiting review.
	IntentToDraft PendingIntent = "to_draft"
	// IntentToDeleted marks a deletion request awaiting review.
	IntentToDeleted PendingIntent = "to_deleted"
)

// TargetStatus maps a pending intent to the status the approver resolves it into.
func (i PendingIntent) TargetStatus() Status {
	switch i {
	case IntentToPublished:
		return StatusPublished
	case IntentToDraft:
		return StatusDraft
	case IntentToDeleted:
		return StatusDeleted
	default:
		return ""
	}
}

// Operation enumerates the transitions a teacher can trigger on a course.
type Operation string

const (
	// OperationRequestPublish queues a course for publication review.
	OperationRequestPublish Operation = "request_publish"
	// OperationCancel withdraws the outstanding pending request.
	OperationCancel Operation = "cancel"
	// OperationUnpublish takes a published course back to draft.
	OperationUnpublish Operation = "unpublish"
	// OperationRequestUnpublish queues an unpublish of an enrolled course for review.
	OperationRequestUnpublish Operation = "request_unpublish"
	// OperationDelete removes a course without enrollments.
	OperationDelete Operation = "delete"
	// OperationRequestDeletion queues deletion of an enrolled course for review.
	OperationRequestDeletion Operation = "request_deletion"
)

// Intent returns the pending intent implied by a deferred execution of the operation.
func (op Operation) Intent() PendingIntent {
	switch op {
	case OperationRequestPublish:
		return IntentToPublished
	case OperationUnpublish, OperationRequestUnpublish:
		return IntentToDraft
	case OperationDelete, OperationRequestDeletion:
		return IntentToDeleted
	default:
		return ""
	}
}

// NormalizeStatus coerces arbitrary status strings into a known representation,
// defaulting to draft for blank input.
func NormalizeStatus(input string) Status {
	if strings.TrimSpace(input) == "" {
		return StatusDraft
	}
	return Status(strings.ToLower(strings.TrimSpace(input)))
}

// NormalizeOperation parses an operation name, accepting the aliases the UI
// trigger surface uses. The boolean reports whether the name is known.
func NormalizeOperation(input string) (Operation, bool) {
	switch Operation(strings.ToLower(strings.TrimSpace(input))) {
	case OperationRequestPublish, Operation("publish"):
		return OperationRequestPublish, true
	case OperationCancel, Operation("cancel_pending"):
		return OperationCancel, true
	case OperationUnpublish:
		return OperationUnpublish, true
	case OperationRequestUnpublish:
		return OperationRequestUnpublish, true
	case OperationDelete:
		return OperationDelete, true
	case OperationRequestDeletion:
		return OperationRequestDeletion, true
	default:
		return "", false
	}
}
