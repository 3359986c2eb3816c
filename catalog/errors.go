package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCourseIDRequired       = errors.New("catalog: course id required")
	ErrTeacherIDRequired      = errors.New("catalog: teacher id required")
	ErrSubjectIDRequired      = errors.New("catalog: subject id required")
	ErrTitleRequired          = errors.New("catalog: title is required")
	ErrSlugRequired           = errors.New("catalog: slug is required")
	ErrSlugInvalid            = errors.New("catalog: slug contains invalid characters")
	ErrSlugExists             = errors.New("catalog: slug already exists")
	ErrCourseNotFound         = errors.New("catalog: course not found")
	ErrCourseDeleted          = errors.New("catalog: course is deleted")
	ErrStatusInvalid          = errors.New("catalog: status invalid")
	ErrPendingIntentRequired  = errors.New("catalog: pending status requires an intent")
	ErrPendingIntentForbidden = errors.New("catalog: intent set on a non-pending course")
	ErrEnrollmentReadOnly     = errors.New("catalog: enrollment count is read-only for the lifecycle workflow")
)

// NotFoundError captures repository lookups that matched nothing.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrCourseNotFound.Error()
	}
	key := strings.TrimSpace(e.Key)
	if key != "" {
		return fmt.Sprintf("catalog: %s not found: %s", e.Resource, key)
	}
	return fmt.Sprintf("catalog: %s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrCourseNotFound
}
