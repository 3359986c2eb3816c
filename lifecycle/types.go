package lifecycle

import (
	"context"

	"github.com/baitalhikma/go-courses/catalog"
	"github.com/baitalhikma/go-courses/domain"
	"github.com/google/uuid"
)

// Operation enumerates the transitions a teacher can trigger on a course.
type Operation = domain.Operation

const (
	OperationRequestPublish   = domain.OperationRequestPublish
	OperationCancel           = domain.OperationCancel
	OperationUnpublish        = domain.OperationUnpublish
	OperationRequestUnpublish = domain.OperationRequestUnpublish
	OperationDelete           = domain.OperationDelete
	OperationRequestDeletion  = domain.OperationRequestDeletion
)

// Service coordinates the moderation workflow: it validates the intent,
// computes the allowed transition, submits it to the catalog backend and
// reconciles the local course record from the remote outcome.
type Service interface {
	Execute(ctx context.Context, req ExecuteRequest) (*Result, error)
	AvailableOperations(ctx context.Context, courseID uuid.UUID) ([]Operation, error)
}

// ExecuteRequest captures a UI intent against a single course.
type ExecuteRequest struct {
	CourseID  uuid.UUID
	Operation Operation
	Reason    string
	ActorID   uuid.UUID
}

// TransitionRequest is a validated, well-formed moderation request ready for
// submission. Token is a per-course monotonically increasing value used to
// discard stale outcomes.
type TransitionRequest struct {
	CourseID  uuid.UUID
	Operation Operation
	Reason    string
	Note      string
	Deferred  bool
	Intent    domain.PendingIntent
	Target    domain.Status
	Token     uint64
}

// OutcomeKind classifies the normalized result of a moderation submission.
type OutcomeKind string

const (
	// OutcomeAuthorized means the backend confirmed an immediately-applicable status.
	OutcomeAuthorized OutcomeKind = "authorized"
	// OutcomeAccepted means the request is recorded and now pending review.
	OutcomeAccepted OutcomeKind = "accepted"
	// OutcomeEndpointMissing means the moderation endpoint is not deployed yet.
	OutcomeEndpointMissing OutcomeKind = "endpoint_missing"
	// OutcomeDomainRejected means the backend explicitly refused the request.
	OutcomeDomainRejected OutcomeKind = "domain_rejected"
	// OutcomeTransportFailure covers network errors, timeouts and malformed bodies.
	OutcomeTransportFailure OutcomeKind = "transport_failure"
)

// Outcome is the normalized response of the moderation backend.
type Outcome struct {
	Kind    OutcomeKind
	Status  domain.Status
	Intent  domain.PendingIntent
	Message string
	Err     error
}

// Authorized builds an outcome carrying the confirmed new status.
func Authorized(status domain.Status) Outcome {
	return Outcome{Kind: OutcomeAuthorized, Status: status}
}

// Accepted builds an outcome for a request recorded as pending review.
func Accepted(intent domain.PendingIntent) Outcome {
	return Outcome{Kind: OutcomeAccepted, Intent: intent}
}

// EndpointMissing builds the outcome for a 404 from a moderation endpoint.
func EndpointMissing() Outcome {
	return Outcome{Kind: OutcomeEndpointMissing}
}

// DomainRejected builds an outcome carrying the server's refusal message verbatim.
func DomainRejected(message string) Outcome {
	return Outcome{Kind: OutcomeDomainRejected, Message: message}
}

// TransportFailure builds an outcome for network-level failures.
func TransportFailure(err error) Outcome {
	return Outcome{Kind: OutcomeTransportFailure, Err: err}
}

// ModerationClient submits transition requests to the catalog backend and
// classifies the response. Implementations never retry: every outcome is
// reported exactly once.
type ModerationClient interface {
	Submit(ctx context.Context, req TransitionRequest) Outcome
}

// FallbackPolicy decides whether an unconfirmed submission should still be
// applied locally as pending. See the module documentation for the
// optimistic-fallback compromise this encodes.
type FallbackPolicy interface {
	AssumePending(op Operation, outcome Outcome) bool
}

// Resolution is the locally-applied effect of an outcome.
type Resolution struct {
	Status  domain.Status
	Intent  domain.PendingIntent
	Reason  string
	Changed bool
	Message string
}

// Result bundles everything a caller needs to surface an executed operation.
type Result struct {
	CourseID   uuid.UUID
	Operation  Operation
	Outcome    Outcome
	Resolution Resolution
	Course     *catalog.Course
}
