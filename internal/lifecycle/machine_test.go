package lifecycle

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/baitalhikma/go-courses/internal/domain"
	"github.com/baitalhikma/go-courses/lifecycle"
	"github.com/baitalhikma/go-courses/pkg/testsupport"
)

type transitionCase struct {
	Name           string `json:"name"`
	Status         string `json:"status"`
	Intent         string `json:"intent"`
	Enrollment     int    `json:"enrollment"`
	Operation      string `json:"operation"`
	Invalid        bool   `json:"invalid"`
	OperationOut   string `json:"operation_out"`
	Deferred       bool   `json:"deferred"`
	PlanIntent     string `json:"plan_intent"`
	Target         string `json:"target"`
	RequiresReason bool   `json:"requires_reason"`
}

func TestMachinePlan(t *testing.T) {
	data, err := testsupport.LoadFixture("testdata/transition_cases.json")
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	var cases []transitionCase
	if err := json.Unmarshal(data, &cases); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}

	machine := NewMachine()
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			snap := Snapshot{
				Status:     domain.Status(tc.Status),
				Intent:     domain.PendingIntent(tc.Intent),
				Enrollment: tc.Enrollment,
			}
			plan, err := machine.Plan(snap, domain.Operation(tc.Operation))
			if tc.Invalid {
				if !errors.Is(err, lifecycle.ErrInvalidTransition) {
					t.Fatalf("expected invalid transition, got plan=%+v err=%v", plan, err)
				}
				var details *lifecycle.InvalidTransitionError
				if !errors.As(err, &details) {
					t.Fatalf("expected *InvalidTransitionError, got %T", err)
				}
				if details.From != snap.Status {
					t.Fatalf("expected From=%s, got %s", snap.Status, details.From)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got, want := plan.Operation, domain.Operation(tc.OperationOut); got != want {
				t.Fatalf("expected canonical operation %s, got %s", want, got)
			}
			if plan.Deferred != tc.Deferred {
				t.Fatalf("expected deferred=%v, got %v", tc.Deferred, plan.Deferred)
			}
			if got, want := plan.Intent, domain.PendingIntent(tc.PlanIntent); got != want {
				t.Fatalf("expected intent %q, got %q", want, got)
			}
			if got, want := plan.Target, domain.Status(tc.Target); got != want {
				t.Fatalf("expected target %s, got %s", want, got)
			}
			if plan.RequiresReason != tc.RequiresReason {
				t.Fatalf("expected requires_reason=%v, got %v", tc.RequiresReason, plan.RequiresReason)
			}
		})
	}
}

func TestMachineAvailableOperations(t *testing.T) {
	machine := NewMachine()

	tests := []struct {
		name string
		snap Snapshot
		want []domain.Operation
	}{
		{
			name: "empty draft",
			snap: Snapshot{Status: domain.StatusDraft},
			want: []domain.Operation{domain.OperationRequestPublish, domain.OperationDelete},
		},
		{
			name: "published without enrollment",
			snap: Snapshot{Status: domain.StatusPublished},
			want: []domain.Operation{domain.OperationUnpublish, domain.OperationDelete},
		},
		{
			name: "published with enrollment",
			snap: Snapshot{Status: domain.StatusPublished, Enrollment: 3},
			want: []domain.Operation{domain.OperationRequestUnpublish, domain.OperationRequestDeletion},
		},
		{
			name: "pending publication",
			snap: Snapshot{Status: domain.StatusPending, Intent: domain.IntentToPublished},
			want: []domain.Operation{domain.OperationCancel},
		},
		{
			name: "deleted",
			snap: Snapshot{Status: domain.StatusDeleted},
			want: []domain.Operation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := machine.AvailableOperations(tt.snap)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEnrollmentGate(t *testing.T) {
	gate := EnrollmentGate{}

	if !gate.RequiresApproval(domain.OperationRequestPublish, 0) {
		t.Fatal("publication should always require approval")
	}
	if gate.RequiresApproval(domain.OperationCancel, 50) {
		t.Fatal("cancel should never require approval")
	}
	if gate.RequiresApproval(domain.OperationUnpublish, 0) {
		t.Fatal("unpublish without enrollment should not require approval")
	}
	if !gate.RequiresApproval(domain.OperationUnpublish, 1) {
		t.Fatal("unpublish with a single enrollment should require approval")
	}
	if !gate.RequiresApproval(domain.OperationRequestDeletion, 7) {
		t.Fatal("deletion with enrollment should require approval")
	}
}
