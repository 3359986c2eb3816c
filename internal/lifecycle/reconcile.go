package lifecycle

import (
	"github.com/baitalhikma/go-courses/internal/domain"
	"github.com/baitalhikma/go-courses/lifecycle"
)

// User-facing reconciliation messages.
const (
	MessageSubmittedForReview = "submitted for review"
	MessageUnpublished        = "course unpublished"
	MessageDeleted            = "course deleted"
	MessagePublished          = "course published"
	MessageWithdrawn          = "request withdrawn"
	MessageRetryLater         = "the request could not be completed, please try again"
	MessageSuperseded         = "request superseded by a newer change"
)

// Reconciler maps a moderation outcome onto the local state change to apply.
type Reconciler struct {
	fallback lifecycle.FallbackPolicy
}

// ReconcilerOption configures the reconciler.
type ReconcilerOption func(*Reconciler)

// WithFallbackPolicy overrides the policy applied to unconfirmed outcomes.
func WithFallbackPolicy(policy lifecycle.FallbackPolicy) ReconcilerOption {
	return func(r *Reconciler) {
		r.fallback = policy
	}
}

// NewReconciler constructs a reconciler with the optimistic fallback enabled.
func NewReconciler(opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{fallback: AssumePendingFallback()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve computes the local effect of an outcome. A resolution with
// Changed=false leaves the course exactly as it was before the request.
func (r *Reconciler) Resolve(prior Snapshot, req lifecycle.TransitionRequest, outcome lifecycle.Outcome) lifecycle.Resolution {
	switch outcome.Kind {
	case lifecycle.OutcomeAuthorized:
		status := outcome.Status
		if status == "" {
			status = req.Target
		}
		return lifecycle.Resolution{
			Status:  status,
			Changed: true,
			Message: statusMessage(status),
		}
	case lifecycle.OutcomeAccepted:
		intent := outcome.Intent
		if intent == "" {
			intent = req.Intent
		}
		return lifecycle.Resolution{
			Status:  domain.StatusPending,
			Intent:  intent,
			Reason:  req.Reason,
			Changed: true,
			Message: MessageSubmittedForReview,
		}
	case lifecycle.OutcomeDomainRejected:
		return lifecycle.Resolution{
			Status:  prior.Status,
			Intent:  prior.Intent,
			Message: outcome.Message,
		}
	default:
		if req.Deferred && r.fallback != nil && r.fallback.AssumePending(req.Operation, outcome) {
			return lifecycle.Resolution{
				Status:  domain.StatusPending,
				Intent:  req.Intent,
				Reason:  req.Reason,
				Changed: true,
				Message: MessageSubmittedForReview,
			}
		}
		return lifecycle.Resolution{
			Status:  prior.Status,
			Intent:  prior.Intent,
			Message: MessageRetryLater,
		}
	}
}

type assumePendingPolicy struct{}

func (assumePendingPolicy) AssumePending(op lifecycle.Operation, outcome lifecycle.Outcome) bool {
	switch outcome.Kind {
	case lifecycle.OutcomeEndpointMissing:
		return op != domain.OperationCancel
	case lifecycle.OutcomeTransportFailure:
		// Unpublish and deletion requests already carry a collected reason,
		// so losing them to a flaky network is worse than an optimistic write.
		return op == domain.OperationRequestUnpublish || op == domain.OperationRequestDeletion
	default:
		return false
	}
}

type noFallbackPolicy struct{}

func (noFallbackPolicy) AssumePending(lifecycle.Operation, lifecycle.Outcome) bool {
	return false
}

// AssumePendingFallback returns the default optimistic policy: requests that
// could not be confirmed are parked as pending rather than silently dropped.
func AssumePendingFallback() lifecycle.FallbackPolicy {
	return assumePendingPolicy{}
}

// NoFallback returns a policy that never applies unconfirmed requests.
func NoFallback() lifecycle.FallbackPolicy {
	return noFallbackPolicy{}
}

func statusMessage(status domain.Status) string {
	switch status {
	case domain.StatusPublished:
		return MessagePublished
	case domain.StatusDeleted:
		return MessageDeleted
	case domain.StatusDraft:
		return MessageUnpublished
	default:
		return MessageSubmittedForReview
	}
}
