package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/baitalhikma/go-courses/catalog"
	"github.com/baitalhikma/go-courses/internal/domain"
	"github.com/baitalhikma/go-courses/internal/logging"
	"github.com/baitalhikma/go-courses/lifecycle"
	"github.com/baitalhikma/go-courses/pkg/interfaces"
	"github.com/google/uuid"
)

type inflightRequest struct {
	token     uint64
	operation domain.Operation
	intent    domain.PendingIntent
}

type service struct {
	registry   catalog.Registry
	client     lifecycle.ModerationClient
	machine    *Machine
	builder    *RequestBuilder
	reconciler *Reconciler
	logger     interfaces.Logger
	now        func() time.Time

	mu       sync.Mutex
	inflight map[uuid.UUID]inflightRequest
	tokens   map[uuid.UUID]uint64
}

// ServiceOption configures the lifecycle service.
type ServiceOption func(*service)

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithApprovals gates publication requests on teacher approval.
func WithApprovals(checker ApprovalChecker) ServiceOption {
	return func(s *service) {
		s.builder = NewRequestBuilder(s.machine, WithApprovalChecker(checker))
	}
}

// WithReconciler replaces the outcome reconciler.
func WithReconciler(reconciler *Reconciler) ServiceOption {
	return func(s *service) {
		if reconciler != nil {
			s.reconciler = reconciler
		}
	}
}

// WithServiceClock overrides the clock used for deletion timestamps.
func WithServiceClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewService wires the lifecycle workflow around a course registry and a
// moderation client.
func NewService(registry catalog.Registry, client lifecycle.ModerationClient, opts ...ServiceOption) (lifecycle.Service, error) {
	if registry == nil {
		return nil, lifecycle.ErrRegistryRequired
	}
	if client == nil {
		return nil, lifecycle.ErrClientRequired
	}
	s := &service{
		registry:   registry,
		client:     client,
		machine:    NewMachine(),
		reconciler: NewReconciler(),
		logger:     logging.LifecycleLogger(nil),
		now:        time.Now,
		inflight:   make(map[uuid.UUID]inflightRequest),
		tokens:     make(map[uuid.UUID]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.builder == nil {
		s.builder = NewRequestBuilder(s.machine)
	}
	return s, nil
}

func (s *service) Execute(ctx context.Context, req lifecycle.ExecuteRequest) (*lifecycle.Result, error) {
	if req.CourseID == uuid.Nil {
		return nil, &lifecycle.ValidationError{Operation: req.Operation, Err: lifecycle.ErrCourseIDRequired}
	}
	op, ok := domain.NormalizeOperation(string(req.Operation))
	if !ok {
		return nil, &lifecycle.ValidationError{
			CourseID:  req.CourseID,
			Operation: req.Operation,
			Err:       lifecycle.ErrUnknownOperation,
		}
	}

	course, err := s.registry.Get(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	build, err := s.builder.Build(ctx, course, op, req.Reason)
	if err != nil {
		return nil, err
	}

	if build.Operation == domain.OperationCancel {
		return s.cancel(ctx, course, build)
	}

	token, err := s.begin(course.ID, build)
	if err != nil {
		return nil, err
	}
	defer s.finish(course.ID, token)
	build.Token = token

	prior := SnapshotOf(course)
	outcome := s.client.Submit(ctx, build)

	if s.stale(course.ID, token) {
		s.logger.Warn("discarding stale moderation outcome",
			"course_id", course.ID, "operation", build.Operation, "outcome", outcome.Kind)
		current, err := s.registry.Get(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		return &lifecycle.Result{
			CourseID:   course.ID,
			Operation:  build.Operation,
			Outcome:    outcome,
			Resolution: lifecycle.Resolution{Status: current.Status, Intent: current.PendingIntent, Message: MessageSuperseded},
			Course:     current,
		}, nil
	}

	resolution := s.reconciler.Resolve(prior, build, outcome)
	s.logger.Info("moderation outcome reconciled",
		"course_id", course.ID,
		"operation", build.Operation,
		"outcome", outcome.Kind,
		"status", resolution.Status,
		"changed", resolution.Changed,
	)

	updated := course
	if resolution.Changed {
		updated, err = s.registry.ApplyTransition(ctx, course.ID, s.mutation(resolution))
		if err != nil {
			return nil, err
		}
	}

	return &lifecycle.Result{
		CourseID:   course.ID,
		Operation:  build.Operation,
		Outcome:    outcome,
		Resolution: resolution,
		Course:     updated,
	}, nil
}

// cancel applies the local rollback first and only then notifies the backend.
// A newer token makes any submission still in flight resolve as stale.
func (s *service) cancel(ctx context.Context, course *catalog.Course, build lifecycle.TransitionRequest) (*lifecycle.Result, error) {
	s.bump(course.ID)

	resolution := lifecycle.Resolution{
		Status:  domain.StatusDraft,
		Changed: true,
		Message: MessageWithdrawn,
	}
	updated, err := s.registry.ApplyTransition(ctx, course.ID, s.mutation(resolution))
	if err != nil {
		return nil, err
	}

	outcome := s.client.Submit(ctx, build)
	if outcome.Kind != lifecycle.OutcomeAuthorized {
		s.logger.Warn("cancel notification not confirmed by backend",
			"course_id", course.ID, "outcome", outcome.Kind, "error", outcome.Err)
	}

	return &lifecycle.Result{
		CourseID:   course.ID,
		Operation:  build.Operation,
		Outcome:    outcome,
		Resolution: resolution,
		Course:     updated,
	}, nil
}

func (s *service) AvailableOperations(ctx context.Context, courseID uuid.UUID) ([]lifecycle.Operation, error) {
	if courseID == uuid.Nil {
		return nil, &lifecycle.ValidationError{Err: lifecycle.ErrCourseIDRequired}
	}
	course, err := s.registry.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.machine.AvailableOperations(SnapshotOf(course)), nil
}

func (s *service) mutation(resolution lifecycle.Resolution) catalog.TransitionMutation {
	return func(c *catalog.Course) error {
		c.Status = resolution.Status
		c.PendingIntent = resolution.Intent
		if resolution.Status == domain.StatusPending && resolution.Reason != "" {
			reason := resolution.Reason
			c.PendingReason = &reason
		} else {
			c.PendingReason = nil
		}
		if resolution.Status == domain.StatusDeleted {
			now := s.now()
			c.DeletedAt = &now
		}
		return nil
	}
}

func (s *service) begin(id uuid.UUID, build lifecycle.TransitionRequest) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, busy := s.inflight[id]; busy {
		return 0, fmt.Errorf("%w: %s (%s pending)", lifecycle.ErrRequestInFlight, id, current.operation)
	}
	s.tokens[id]++
	token := s.tokens[id]
	s.inflight[id] = inflightRequest{token: token, operation: build.Operation, intent: build.Intent}
	return token, nil
}

func (s *service) finish(id uuid.UUID, token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.inflight[id]; ok && current.token == token {
		delete(s.inflight, id)
	}
}

func (s *service) stale(id uuid.UUID, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[id] != token
}

func (s *service) bump(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[id]++
	delete(s.inflight, id)
}
