package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/baitalhikma/go-courses/catalog"
	"github.com/baitalhikma/go-courses/internal/domain"
	"github.com/baitalhikma/go-courses/lifecycle"
	"github.com/google/uuid"
)

type memoryRegistry struct {
	mu      sync.Mutex
	courses map[uuid.UUID]*catalog.Course
}

func newMemoryRegistry(courses ...*catalog.Course) *memoryRegistry {
	r := &memoryRegistry{courses: make(map[uuid.UUID]*catalog.Course)}
	for _, c := range courses {
		r.courses[c.ID] = c
	}
	return r
}

func (r *memoryRegistry) Get(_ context.Context, id uuid.UUID) (*catalog.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, &catalog.NotFoundError{Resource: "course", Key: id.String()}
	}
	copied := *c
	return &copied, nil
}

func (r *memoryRegistry) ApplyTransition(_ context.Context, id uuid.UUID, mutate catalog.TransitionMutation) (*catalog.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, &catalog.NotFoundError{Resource: "course", Key: id.String()}
	}
	copied := *c
	if err := mutate(&copied); err != nil {
		return nil, err
	}
	if err := copied.ValidateStatus(); err != nil {
		return nil, err
	}
	r.courses[id] = &copied
	result := copied
	return &result, nil
}

type stubClient struct {
	submit func(ctx context.Context, req lifecycle.TransitionRequest) lifecycle.Outcome
	calls  []lifecycle.TransitionRequest
	mu     sync.Mutex
}

func (c *stubClient) Submit(ctx context.Context, req lifecycle.TransitionRequest) lifecycle.Outcome {
	c.mu.Lock()
	c.calls = append(c.calls, req)
	c.mu.Unlock()
	if c.submit == nil {
		return lifecycle.Accepted(req.Intent)
	}
	return c.submit(ctx, req)
}

func seedCourse(status domain.Status, intent domain.PendingIntent, enrollment int) *catalog.Course {
	return &catalog.Course{
		ID:              uuid.New(),
		TeacherID:       uuid.New(),
		SubjectID:       uuid.New(),
		Slug:            "algebra-foundations",
		TitleEN:         "Algebra Foundations",
		TitleAR:         "أسس الجبر",
		Status:          status,
		PendingIntent:   intent,
		EnrollmentCount: enrollment,
	}
}

func TestExecuteRequestPublishAccepted(t *testing.T) {
	course := seedCourse(domain.StatusDraft, "", 0)
	registry := newMemoryRegistry(course)
	client := &stubClient{}
	svc, err := NewService(registry, client)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Execute(context.Background(), lifecycle.ExecuteRequest{
		CourseID:  course.ID,
		Operation: "publish",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Outcome.Kind != lifecycle.OutcomeAccepted {
		t.Fatalf("expected accepted outcome, got %s", result.Outcome.Kind)
	}
	if result.Course.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %s", result.Course.Status)
	}
	if result.Course.PendingIntent != domain.IntentToPublished {
		t.Fatalf("expected to_published, got %s", result.Course.PendingIntent)
	}
	if len(client.calls) != 1 || client.calls[0].Operation != domain.OperationRequestPublish {
		t.Fatalf("expected a single request_publish submission, got %+v", client.calls)
	}
}

func TestExecuteGatedUnpublishRequiresReason(t *testing.T) {
	course := seedCourse(domain.StatusPublished, "", 6)
	svc, err := NewService(newMemoryRegistry(course), &stubClient{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Execute(context.Background(), lifecycle.ExecuteRequest{
		CourseID:  course.ID,
		Operation: domain.OperationUnpublish,
	})
	if !errors.Is(err, lifecycle.ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
}

func TestExecuteImmediateDeleteAuthorized(t *testing.T) {
	course := seedCourse(domain.StatusDraft, "", 0)
	registry := newMemoryRegistry(course)
	client := &stubClient{
		submit: func(_ context.Context, req lifecycle.TransitionRequest) lifecycle.Outcome {
			return lifecycle.Authorized(req.Target)
		},
	}
	deletedAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc, err := NewService(registry, client, WithServiceClock(func() time.Time { return deletedAt }))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Execute(context.Background(), lifecycle.ExecuteRequest{
		CourseID:  course.ID,
		Operation: domain.OperationDelete,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Course.Status != domain.StatusDeleted {
		t.Fatalf("expected deleted, got %s", result.Course.Status)
	}
	if result.Course.DeletedAt == nil || !result.Course.DeletedAt.Equal(deletedAt) {
		t.Fatalf("expected deletion timestamp %v, got %v", deletedAt, result.Course.DeletedAt)
	}

	// A second delete finds the terminal state and is rejected locally.
	_, err = svc.Execute(context.Background(), lifecycle.ExecuteRequest{
		CourseID:  course.ID,
		Operation: domain.OperationDelete,
	})
	if !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if got := len(client.calls); got != 1 {
		t.Fatalf("expected no second submission, got %d", got)
	}
}

func TestExecuteTransportFailureFallback(t *testing.T) {
	course := seedCourse(domain.StatusPublished, "", 11)
	registry := newMemoryRegistry(course)
	client := &stubClient{
		submit: func(context.Context, lifecycle.TransitionRequest) lifecycle.Outcome {
			return lifecycle.TransportFailure(errors.New("connection reset"))
		},
	}
	svc, err := NewService(registry, client)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Execute(context.Background(), lifecycle.ExecuteRequest{
		CourseID:  course.ID,
		Operation: domain.OperationRequestDeletion,
		Reason:    "duplicate listing",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Course.Status != domain.StatusPending || result.Course.PendingIntent != domain.IntentToDeleted {
		t.Fatalf("expected optimistic pending/to_deleted, got %s/%s", result.Course.Status, result.Course.PendingIntent)
	}
	if result.Course.PendingReason == nil || *result.Course.PendingReason != "duplicate listing" {
		t.Fatalf("expected pending reason persisted, got %v", result.Course.PendingReason)
	}
}

func TestExecuteDomainRejectedKeepsState(t *testing.T) {
	course := seedCourse(domain.StatusDraft, "", 0)
	registry := newMemoryRegistry(course)
	client := &stubClient{
		submit: func(context.Context, lifecycle.TransitionRequest) lifecycle.Outcome {
			return lifecycle.DomainRejected("teacher profile incomplete")
		},
	}
	svc, err := NewService(registry, client)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Execute(context.Background(), lifecycle.ExecuteRequest{
		CourseID:  course.ID,
		Operation: domain.OperationRequestPublish,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Resolution.Changed {
		t.Fatal("rejection must not change local state")
	}
	if result.Resolution.Message != "teacher profile incomplete" {
		t.Fatalf("expected server message, got %q", result.Resolution.Message)
	}
	if result.Course.Status != domain.StatusDraft {
		t.Fatalf("expected draft preserved, got %s", result.Course.Status)
	}
}

func TestExecuteCancelRestoresDraft(t *testing.T) {
	course := seedCourse(domain.StatusPending, domain.IntentToPublished, 0)
	reason := "awaiting approval"
	course.PendingReason = &reason
	registry := newMemoryRegistry(course)
	client := &stubClient{
		submit: func(context.Context, lifecycle.TransitionRequest) lifecycle.Outcome {
			return lifecycle.TransportFailure(errors.New("timeout"))
		},
	}
	svc, err := NewService(registry, client)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Execute(context.Background(), lifecycle.ExecuteRequest{
		CourseID:  course.ID,
		Operation: domain.OperationCancel,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	// The rollback applies locally even though the backend never confirmed.
	if result.Course.Status != domain.StatusDraft {
		t.Fatalf("expected draft after cancel, got %s", result.Course.Status)
	}
	if result.Course.PendingIntent != "" || result.Course.PendingReason != nil {
		t.Fatalf("expected pending fields cleared, got %s/%v", result.Course.PendingIntent, result.Course.PendingReason)
	}
	if result.Resolution.Message != MessageWithdrawn {
		t.Fatalf("unexpected message %q", result.Resolution.Message)
	}
}

func TestExecuteRejectsConcurrentRequests(t *testing.T) {
	course := seedCourse(domain.StatusDraft, "", 0)
	registry := newMemoryRegistry(course)

	release := make(chan struct{})
	started := make(chan struct{})
	client := &stubClient{
		submit: func(_ context.Context, req lifecycle.TransitionRequest) lifecycle.Outcome {
			close(started)
			<-release
			return lifecycle.Accepted(req.Intent)
		},
	}
	svc, err := NewService(registry, client)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Execute(context.Background(), lifecycle.ExecuteRequest{
			CourseID:  course.ID,
			Operation: domain.OperationRequestPublish,
		})
		done <- err
	}()

	<-started
	_, err = svc.Execute(context.Background(), lifecycle.ExecuteRequest{
		CourseID:  course.ID,
		Operation: domain.OperationRequestPublish,
	})
	if !errors.Is(err, lifecycle.ErrRequestInFlight) {
		t.Fatalf("expected ErrRequestInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first request should finish cleanly, got %v", err)
	}
}

func TestExecuteDiscardsStaleOutcome(t *testing.T) {
	course := seedCourse(domain.StatusDraft, "", 0)
	registry := newMemoryRegistry(course)

	var svc lifecycle.Service
	client := &stubClient{}
	client.submit = func(_ context.Context, req lifecycle.TransitionRequest) lifecycle.Outcome {
		// A newer change lands while this submission is on the wire.
		svc.(*service).bump(req.CourseID)
		return lifecycle.Accepted(req.Intent)
	}

	var err error
	svc, err = NewService(registry, client)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Execute(context.Background(), lifecycle.ExecuteRequest{
		CourseID:  course.ID,
		Operation: domain.OperationRequestPublish,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Resolution.Changed {
		t.Fatal("stale outcome must not change local state")
	}
	if result.Resolution.Message != MessageSuperseded {
		t.Fatalf("unexpected message %q", result.Resolution.Message)
	}
	if result.Course.Status != domain.StatusDraft {
		t.Fatalf("expected draft untouched, got %s", result.Course.Status)
	}
}

func TestAvailableOperations(t *testing.T) {
	course := seedCourse(domain.StatusPending, domain.IntentToDraft, 4)
	svc, err := NewService(newMemoryRegistry(course), &stubClient{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ops, err := svc.AvailableOperations(context.Background(), course.ID)
	if err != nil {
		t.Fatalf("available operations: %v", err)
	}
	if len(ops) != 1 || ops[0] != domain.OperationCancel {
		t.Fatalf("expected [cancel], got %v", ops)
	}

	if _, err := svc.AvailableOperations(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected not-found error for unknown course")
	}
}
