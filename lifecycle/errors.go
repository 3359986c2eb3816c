package lifecycle

import (
	"errors"
	"fmt"

	"github.com/baitalhikma/go-courses/domain"
	"github.com/google/uuid"
)

var (
	ErrCourseIDRequired   = errors.New("lifecycle: course id required")
	ErrUnknownOperation   = errors.New("lifecycle: unknown operation")
	ErrReasonRequired     = errors.New("lifecycle: a reason is required for this request")
	ErrInvalidTransition  = errors.New("lifecycle: transition not allowed")
	ErrRequestInFlight    = errors.New("lifecycle: a transition is already in flight for this course")
	ErrTeacherNotApproved = errors.New("lifecycle: teacher is not approved for publication")
	ErrRegistryRequired   = errors.New("lifecycle: course registry required")
	ErrClientRequired     = errors.New("lifecycle: moderation client required")
)

// ValidationError reports a request rejected before any network activity.
type ValidationError struct {
	CourseID  uuid.UUID
	Operation Operation
	Err       error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "lifecycle: validation failed"
	}
	if e.Operation != "" {
		return fmt.Sprintf("%v: operation=%s", e.Err, e.Operation)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// InvalidTransitionError captures the rejected source state alongside the operation.
type InvalidTransitionError struct {
	Operation Operation
	From      domain.Status
	Intent    domain.PendingIntent
}

func (e *InvalidTransitionError) Error() string {
	if e == nil {
		return ErrInvalidTransition.Error()
	}
	if e.Intent != "" {
		return fmt.Sprintf("%v: %s from %s(%s)", ErrInvalidTransition, e.Operation, e.From, e.Intent)
	}
	return fmt.Sprintf("%v: %s from %s", ErrInvalidTransition, e.Operation, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
