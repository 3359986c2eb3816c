package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	courses "github.com/baitalhikma/go-courses/catalog"
	"github.com/baitalhikma/go-courses/internal/domain"
	"github.com/google/uuid"
)

func seedRegistryCourse(t *testing.T, svc courses.Service) *Course {
	t.Helper()
	created, err := svc.Create(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	return created
}

func TestRegistryApplyTransition(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	course := seedRegistryCourse(t, svc)

	updatedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	registry := NewBunRegistry(db, nil, WithRegistryClock(func() time.Time { return updatedAt }))
	ctx := context.Background()

	updated, err := registry.ApplyTransition(ctx, course.ID, func(c *Course) error {
		c.Status = domain.StatusPending
		c.PendingIntent = domain.IntentToPublished
		return nil
	})
	if err != nil {
		t.Fatalf("apply transition: %v", err)
	}
	if updated.Status != domain.StatusPending || updated.PendingIntent != domain.IntentToPublished {
		t.Fatalf("expected pending/to_published, got %s/%s", updated.Status, updated.PendingIntent)
	}
	if !updated.UpdatedAt.Equal(updatedAt) {
		t.Fatalf("expected updated_at %v, got %v", updatedAt, updated.UpdatedAt)
	}

	stored, err := registry.Get(ctx, course.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != domain.StatusPending {
		t.Fatalf("transition not persisted, got %s", stored.Status)
	}
}

func TestRegistryRejectsInvalidPairing(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	course := seedRegistryCourse(t, svc)
	registry := NewBunRegistry(db, nil)

	_, err := registry.ApplyTransition(context.Background(), course.ID, func(c *Course) error {
		c.Status = domain.StatusPending
		return nil
	})
	if !errors.Is(err, courses.ErrPendingIntentRequired) {
		t.Fatalf("expected ErrPendingIntentRequired, got %v", err)
	}

	_, err = registry.ApplyTransition(context.Background(), course.ID, func(c *Course) error {
		c.PendingIntent = domain.IntentToDraft
		return nil
	})
	if !errors.Is(err, courses.ErrPendingIntentForbidden) {
		t.Fatalf("expected ErrPendingIntentForbidden, got %v", err)
	}

	// Failed transitions must leave the stored record untouched.
	stored, err := registry.Get(context.Background(), course.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != domain.StatusDraft || stored.PendingIntent != "" {
		t.Fatalf("expected draft preserved, got %s/%s", stored.Status, stored.PendingIntent)
	}
}

func TestRegistryRejectsEnrollmentWrites(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	course := seedRegistryCourse(t, svc)
	registry := NewBunRegistry(db, nil)

	_, err := registry.ApplyTransition(context.Background(), course.ID, func(c *Course) error {
		c.EnrollmentCount = 99
		return nil
	})
	if !errors.Is(err, courses.ErrEnrollmentReadOnly) {
		t.Fatalf("expected ErrEnrollmentReadOnly, got %v", err)
	}
}

func TestRegistryMissingCourse(t *testing.T) {
	db := newTestDB(t)
	registry := NewBunRegistry(db, nil)

	_, err := registry.ApplyTransition(context.Background(), uuid.New(), func(c *Course) error {
		return nil
	})
	if !errors.Is(err, courses.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}
