package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/baitalhikma/go-courses/catalog"
	"github.com/baitalhikma/go-courses/internal/domain"
	"github.com/baitalhikma/go-courses/lifecycle"
	"github.com/google/uuid"
)

type fakeApprovals struct {
	approved map[uuid.UUID]bool
	err      error
}

func (f *fakeApprovals) TeacherApproved(_ context.Context, teacherID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.approved[teacherID], nil
}

func draftCourse() *catalog.Course {
	return &catalog.Course{
		ID:        uuid.New(),
		TeacherID: uuid.New(),
		Status:    domain.StatusDraft,
	}
}

func TestBuildRequestPublish(t *testing.T) {
	builder := NewRequestBuilder(NewMachine())
	course := draftCourse()

	req, err := builder.Build(context.Background(), course, domain.OperationRequestPublish, "  first version ready ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.CourseID != course.ID {
		t.Fatalf("expected course id %s, got %s", course.ID, req.CourseID)
	}
	if !req.Deferred {
		t.Fatal("publication should be deferred")
	}
	if req.Intent != domain.IntentToPublished {
		t.Fatalf("expected intent to_published, got %s", req.Intent)
	}
	if req.Reason != "" {
		t.Fatalf("publication should not carry a justification, got %q", req.Reason)
	}
	if req.Note != "first version ready" {
		t.Fatalf("expected trimmed note, got %q", req.Note)
	}
}

func TestBuildRejectsMissingCourse(t *testing.T) {
	builder := NewRequestBuilder(NewMachine())

	_, err := builder.Build(context.Background(), nil, domain.OperationRequestPublish, "")
	if !errors.Is(err, lifecycle.ErrCourseIDRequired) {
		t.Fatalf("expected ErrCourseIDRequired, got %v", err)
	}
}

func TestBuildRequiresReasonForGatedUnpublish(t *testing.T) {
	builder := NewRequestBuilder(NewMachine())
	course := draftCourse()
	course.Status = domain.StatusPublished
	course.EnrollmentCount = 9

	_, err := builder.Build(context.Background(), course, domain.OperationUnpublish, "   ")
	if !errors.Is(err, lifecycle.ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}

	req, err := builder.Build(context.Background(), course, domain.OperationUnpublish, "schedule conflict")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Operation != domain.OperationRequestUnpublish {
		t.Fatalf("expected canonical request_unpublish, got %s", req.Operation)
	}
	if req.Reason != "schedule conflict" {
		t.Fatalf("expected reason to be carried, got %q", req.Reason)
	}
}

func TestBuildRejectsInvalidTransition(t *testing.T) {
	builder := NewRequestBuilder(NewMachine())
	course := draftCourse()
	course.Status = domain.StatusPublished

	_, err := builder.Build(context.Background(), course, domain.OperationRequestPublish, "")
	if !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	var verr *lifecycle.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.CourseID != course.ID {
		t.Fatalf("expected course id on validation error, got %s", verr.CourseID)
	}
}

func TestBuildGatesUnapprovedTeacher(t *testing.T) {
	course := draftCourse()
	approvals := &fakeApprovals{approved: map[uuid.UUID]bool{}}
	builder := NewRequestBuilder(NewMachine(), WithApprovalChecker(approvals))

	_, err := builder.Build(context.Background(), course, domain.OperationRequestPublish, "")
	if !errors.Is(err, lifecycle.ErrTeacherNotApproved) {
		t.Fatalf("expected ErrTeacherNotApproved, got %v", err)
	}

	approvals.approved[course.TeacherID] = true
	if _, err := builder.Build(context.Background(), course, domain.OperationRequestPublish, ""); err != nil {
		t.Fatalf("approved teacher should pass, got %v", err)
	}

	// Deletion of an empty draft never consults the approval gate.
	if _, err := builder.Build(context.Background(), draftCourse(), domain.OperationDelete, ""); err != nil {
		t.Fatalf("delete should not consult approvals, got %v", err)
	}
}
