package moderation

import (
	urlkit "github.com/goliatone/go-urlkit"

	"github.com/baitalhikma/go-courses/internal/domain"
)

// RouteGroup is the urlkit group holding the catalog moderation endpoints.
const RouteGroup = "catalog"

// Route names inside the catalog group.
const (
	RouteStatus           = "status"
	RouteRequestPublish   = "request_publish"
	RouteRequestUnpublish = "request_unpublish"
	RouteRequestDeletion  = "request_deletion"
)

// DefaultRoutes builds the urlkit configuration for a catalog backend rooted
// at baseURL. Hosts with a different URL layout supply their own config with
// the same group and route names.
func DefaultRoutes(baseURL string) *urlkit.Config {
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    RouteGroup,
				BaseURL: baseURL,
				Paths: map[string]string{
					RouteStatus:           "/courses/:id/status",
					RouteRequestPublish:   "/courses/:id/request_publish",
					RouteRequestUnpublish: "/courses/:id/request_unpublish",
					RouteRequestDeletion:  "/courses/:id/request_deletion",
				},
			},
		},
	}
}

// routeFor maps a transition request to the route it is submitted on.
// Immediate transitions, cancel included, go through the status endpoint.
func routeFor(req requestShape) string {
	if !req.deferred {
		return RouteStatus
	}
	switch req.operation {
	case domain.OperationRequestPublish:
		return RouteRequestPublish
	case domain.OperationRequestUnpublish:
		return RouteRequestUnpublish
	case domain.OperationRequestDeletion:
		return RouteRequestDeletion
	default:
		return RouteStatus
	}
}

type requestShape struct {
	operation domain.Operation
	deferred  bool
}
