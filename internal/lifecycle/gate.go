package lifecycle

import "github.com/baitalhikma/go-courses/internal/domain"

// EnrollmentGate is the pure predicate deciding whether an operation requires
// administrative review before it takes effect.
type EnrollmentGate struct{}

// RequiresApproval reports whether the operation must be deferred to the
// approver. Publication is always reviewed; unpublishing and deletion only
// once students are enrolled; withdrawing an unreviewed request never is.
func (EnrollmentGate) RequiresApproval(op domain.Operation, enrollment int) bool {
	switch op {
	case domain.OperationRequestPublish:
		return true
	case domain.OperationCancel:
		return false
	case domain.OperationUnpublish, domain.OperationRequestUnpublish,
		domain.OperationDelete, domain.OperationRequestDeletion:
		return enrollment > 0
	default:
		return false
	}
}
