package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/baitalhikma/go-courses/internal/domain"
	"github.com/baitalhikma/go-courses/internal/logging"
	"github.com/baitalhikma/go-courses/lifecycle"
	"github.com/baitalhikma/go-courses/pkg/interfaces"
)

// ErrRouteManagerRequired reports a client constructed without routes.
var ErrRouteManagerRequired = errors.New("moderation: route manager required")

const (
	defaultTimeout  = 10 * time.Second
	maxResponseBody = 1 << 20
)

// Client submits transition requests to the catalog backend over HTTP and
// classifies every response into exactly one outcome. It never retries.
type Client struct {
	manager *urlkit.RouteManager
	http    *http.Client
	logger  interfaces.Logger
}

var _ lifecycle.ModerationClient = (*Client)(nil)

// ClientOption configures the moderation client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithLogger overrides the client logger.
func WithLogger(logger interfaces.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a moderation client on top of a urlkit route manager
// carrying the catalog group.
func NewClient(manager *urlkit.RouteManager, opts ...ClientOption) (*Client, error) {
	if manager == nil {
		return nil, ErrRouteManagerRequired
	}
	c := &Client{
		manager: manager,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logging.ModerationLogger(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Submit sends the request and normalizes the response. Network errors,
// timeouts and unreadable bodies surface as transport failures; the caller
// decides what, if anything, to apply locally.
func (c *Client) Submit(ctx context.Context, req lifecycle.TransitionRequest) lifecycle.Outcome {
	endpoint, err := c.endpoint(req)
	if err != nil {
		return lifecycle.TransportFailure(err)
	}

	method, payload := requestPayload(req)
	body, err := json.Marshal(payload)
	if err != nil {
		return lifecycle.TransportFailure(fmt.Errorf("moderation: encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return lifecycle.TransportFailure(fmt.Errorf("moderation: build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("submitting transition request",
		"course_id", req.CourseID, "operation", req.Operation, "method", method, "url", endpoint)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn("moderation request failed", "course_id", req.CourseID, "error", err)
		return lifecycle.TransportFailure(classifyNetError(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return lifecycle.TransportFailure(fmt.Errorf("moderation: read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.logger.Info("moderation endpoint not deployed", "url", endpoint)
		return lifecycle.EndpointMissing()
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return ParseOutcome(req, respBody)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return lifecycle.DomainRejected(rejectionMessage(respBody))
	default:
		return lifecycle.TransportFailure(fmt.Errorf("moderation: catalog backend returned %d", resp.StatusCode))
	}
}

func (c *Client) endpoint(req lifecycle.TransitionRequest) (string, error) {
	group, err := lookupGroup(c.manager, RouteGroup)
	if err != nil {
		return "", err
	}
	route := routeFor(requestShape{operation: req.Operation, deferred: req.Deferred})
	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}
	builder.WithParam("id", req.CourseID.String())
	return builder.Build()
}

// requestPayload maps a request to its wire form: deferred operations POST a
// review request, immediate ones PATCH the status directly.
func requestPayload(req lifecycle.TransitionRequest) (string, map[string]any) {
	if !req.Deferred {
		return http.MethodPatch, map[string]any{"status": string(req.Target)}
	}

	payload := map[string]any{}
	if req.Operation == domain.OperationRequestPublish {
		if req.Note != "" {
			payload["note"] = req.Note
		}
	} else if req.Reason != "" {
		payload["reason"] = req.Reason
	}
	return http.MethodPost, payload
}

func classifyNetError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("moderation: request timed out: %w", err)
	}
	return fmt.Errorf("moderation: request failed: %w", err)
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("moderation: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("moderation: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("moderation: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}
