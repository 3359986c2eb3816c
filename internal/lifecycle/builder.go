package lifecycle

import (
	"context"
	"strings"

	"github.com/baitalhikma/go-courses/catalog"
	"github.com/baitalhikma/go-courses/internal/domain"
	"github.com/baitalhikma/go-courses/lifecycle"
	"github.com/google/uuid"
)

// ApprovalChecker answers whether a teacher account has been cleared to
// publish courses. Implementations typically consult the identity backend.
type ApprovalChecker interface {
	TeacherApproved(ctx context.Context, teacherID uuid.UUID) (bool, error)
}

// RequestBuilder validates an operation against a course and assembles the
// immutable transition request handed to the moderation client.
type RequestBuilder struct {
	machine   *Machine
	approvals ApprovalChecker
}

// BuilderOption configures the request builder.
type BuilderOption func(*RequestBuilder)

// WithApprovalChecker gates publication requests on teacher approval.
func WithApprovalChecker(checker ApprovalChecker) BuilderOption {
	return func(b *RequestBuilder) {
		b.approvals = checker
	}
}

// NewRequestBuilder constructs a builder backed by the given machine.
func NewRequestBuilder(machine *Machine, opts ...BuilderOption) *RequestBuilder {
	if machine == nil {
		machine = NewMachine()
	}
	b := &RequestBuilder{machine: machine}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build plans the operation and returns a request ready for submission.
// Validation failures come back as *lifecycle.ValidationError.
func (b *RequestBuilder) Build(ctx context.Context, course *catalog.Course, op domain.Operation, reason string) (lifecycle.TransitionRequest, error) {
	if course == nil || course.ID == uuid.Nil {
		return lifecycle.TransitionRequest{}, &lifecycle.ValidationError{
			Operation: op,
			Err:       lifecycle.ErrCourseIDRequired,
		}
	}

	plan, err := b.machine.Plan(SnapshotOf(course), op)
	if err != nil {
		return lifecycle.TransitionRequest{}, &lifecycle.ValidationError{
			CourseID:  course.ID,
			Operation: op,
			Err:       err,
		}
	}

	reason = strings.TrimSpace(reason)
	if plan.RequiresReason && reason == "" {
		return lifecycle.TransitionRequest{}, &lifecycle.ValidationError{
			CourseID:  course.ID,
			Operation: plan.Operation,
			Err:       lifecycle.ErrReasonRequired,
		}
	}

	req := lifecycle.TransitionRequest{
		CourseID:  course.ID,
		Operation: plan.Operation,
		Reason:    reason,
		Deferred:  plan.Deferred,
		Intent:    plan.Intent,
		Target:    plan.Target,
	}

	if plan.Operation == domain.OperationRequestPublish {
		if err := b.checkApproval(ctx, course); err != nil {
			return lifecycle.TransitionRequest{}, err
		}
		// Publication reasons are informational notes, not justifications.
		req.Note = reason
		req.Reason = ""
	}

	return req, nil
}

func (b *RequestBuilder) checkApproval(ctx context.Context, course *catalog.Course) error {
	if b.approvals == nil {
		return nil
	}
	approved, err := b.approvals.TeacherApproved(ctx, course.TeacherID)
	if err != nil {
		return err
	}
	if !approved {
		return &lifecycle.ValidationError{
			CourseID:  course.ID,
			Operation: domain.OperationRequestPublish,
			Err:       lifecycle.ErrTeacherNotApproved,
		}
	}
	return nil
}
