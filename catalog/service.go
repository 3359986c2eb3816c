package catalog

import (
	"context"

	"github.com/baitalhikma/go-courses/domain"
	"github.com/google/uuid"
)

// Service exposes catalog use cases. Create/Update cover the descriptive
// fields only; the lifecycle workflow drives every status change through the
// Registry.
type Service interface {
	Create(ctx context.Context, req CreateCourseRequest) (*Course, error)
	Get(ctx context.Context, id uuid.UUID) (*Course, error)
	GetBySlug(ctx context.Context, slug string) (*Course, error)
	List(ctx context.Context, opts ...ListOption) ([]*Course, error)
	Subjects(ctx context.Context) ([]*Subject, error)
	Grades(ctx context.Context, countryCode string) ([]*Grade, error)
}

// Registry is the single owner of the course lifecycle triple. ApplyTransition
// runs the mutation transactionally against the stored record and returns the
// rewritten course.
type Registry interface {
	Get(ctx context.Context, id uuid.UUID) (*Course, error)
	ApplyTransition(ctx context.Context, id uuid.UUID, mutation TransitionMutation) (*Course, error)
}

// CreateCourseRequest captures the information required to create a course.
// New courses always start in draft.
type CreateCourseRequest struct {
	TeacherID   uuid.UUID
	SubjectID   uuid.UUID
	GradeID     *uuid.UUID
	Slug        string
	TitleEN     string
	TitleAR     string
	Description *string
	HourlyPrice float64
}

// ListOption configures course list behavior.
type ListOption func(*ListQuery)

// ListQuery carries the resolved list filters.
type ListQuery struct {
	Status    domain.Status
	TeacherID uuid.UUID
	SubjectID uuid.UUID
}

// WithStatus restricts the listing to courses in the given lifecycle state.
func WithStatus(status domain.Status) ListOption {
	return func(q *ListQuery) {
		q.Status = status
	}
}

// WithTeacher restricts the listing to a single teacher's courses.
func WithTeacher(teacherID uuid.UUID) ListOption {
	return func(q *ListQuery) {
		q.TeacherID = teacherID
	}
}

// WithSubject restricts the listing to one subject.
func WithSubject(subjectID uuid.UUID) ListOption {
	return func(q *ListQuery) {
		q.SubjectID = subjectID
	}
}
