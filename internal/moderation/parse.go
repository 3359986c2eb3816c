package moderation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/baitalhikma/go-courses/internal/domain"
	"github.com/baitalhikma/go-courses/lifecycle"
)

type coursePayload struct {
	Status        string `json:"status"`
	PendingIntent string `json:"pending_intent"`
}

// moderationResponse accepts both shapes the catalog backend is known to
// produce: a wrapped {"course": {...}} envelope and a bare status object.
type moderationResponse struct {
	Course        *coursePayload `json:"course"`
	Status        string         `json:"status"`
	PendingIntent string         `json:"pending_intent"`
}

// ParseOutcome normalizes a successful response body into an outcome. An
// empty body confirms the request as submitted; a malformed one counts as a
// transport failure so the caller never acts on garbage.
func ParseOutcome(req lifecycle.TransitionRequest, body []byte) lifecycle.Outcome {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return confirmed(req, "", "")
	}

	var payload moderationResponse
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return lifecycle.TransportFailure(fmt.Errorf("malformed catalog response: %w", err))
	}

	status := payload.Status
	intent := payload.PendingIntent
	if payload.Course != nil {
		if payload.Course.Status != "" {
			status = payload.Course.Status
		}
		if payload.Course.PendingIntent != "" {
			intent = payload.Course.PendingIntent
		}
	}

	return confirmed(req, domain.Status(strings.ToLower(strings.TrimSpace(status))), domain.PendingIntent(strings.ToLower(strings.TrimSpace(intent))))
}

func confirmed(req lifecycle.TransitionRequest, status domain.Status, intent domain.PendingIntent) lifecycle.Outcome {
	switch status {
	case "":
		if req.Deferred {
			return lifecycle.Accepted(req.Intent)
		}
		return lifecycle.Authorized(req.Target)
	case domain.StatusPending:
		if intent == "" {
			intent = req.Intent
		}
		return lifecycle.Accepted(intent)
	case domain.StatusDraft, domain.StatusPublished, domain.StatusDeleted:
		return lifecycle.Authorized(status)
	default:
		return lifecycle.TransportFailure(fmt.Errorf("catalog reported unknown status %q", status))
	}
}

const maxRejectionSnippet = 200

// rejectionMessage extracts the human-readable refusal from an error body,
// falling back to a trimmed snippet of the raw payload.
func rejectionMessage(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, msg := range []string{payload.Detail, payload.Error, payload.Message} {
			if strings.TrimSpace(msg) != "" {
				return strings.TrimSpace(msg)
			}
		}
	}

	snippet := strings.TrimSpace(string(body))
	if len(snippet) > maxRejectionSnippet {
		snippet = snippet[:maxRejectionSnippet]
	}
	if snippet == "" {
		return "request rejected by catalog backend"
	}
	return snippet
}
