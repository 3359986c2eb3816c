package domain

import "testing"

func TestNormalizeOperation(t *testing.T) {
	cases := []struct {
		input string
		want  Operation
		ok    bool
	}{
		{"request_publish", OperationRequestPublish, true},
		{"publish", OperationRequestPublish, true},
		{"  Cancel ", OperationCancel, true},
		{"cancel_pending", OperationCancel, true},
		{"unpublish", OperationUnpublish, true},
		{"request_unpublish", OperationRequestUnpublish, true},
		{"delete", OperationDelete, true},
		{"request_deletion", OperationRequestDeletion, true},
		{"archive", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizeOperation(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("NormalizeOperation(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPendingIntentTargetStatus(t *testing.T) {
	if got := IntentToPublished.TargetStatus(); got != StatusPublished {
		t.Fatalf("to_published target = %s, want published", got)
	}
	if got := IntentToDraft.TargetStatus(); got != StatusDraft {
		t.Fatalf("to_draft target = %s, want draft", got)
	}
	if got := IntentToDeleted.TargetStatus(); got != StatusDeleted {
		t.Fatalf("to_deleted target = %s, want deleted", got)
	}
	if got := PendingIntent("").TargetStatus(); got != "" {
		t.Fatalf("empty intent target = %s, want empty", got)
	}
}

func TestOperationIntent(t *testing.T) {
	cases := map[Operation]PendingIntent{
		OperationRequestPublish:   IntentToPublished,
		OperationUnpublish:        IntentToDraft,
		OperationRequestUnpublish: IntentToDraft,
		OperationDelete:           IntentToDeleted,
		OperationRequestDeletion:  IntentToDeleted,
		OperationCancel:           "",
	}
	for op, want := range cases {
		if got := op.Intent(); got != want {
			t.Fatalf("%s intent = %q, want %q", op, got, want)
		}
	}
}
