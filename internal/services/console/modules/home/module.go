// Package home serves the dashboard landing page: the viewer's profile card
// and the profile edit form.
package home

import (
	"net/http"

	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/routepath"
)

// Module provides the /app/ landing routes.
type Module struct {
	gateway gateway
}

// New returns the home module backed by the shared backend client.
func New() Module {
	return Module{}
}

// NewWithGateway returns the home module backed by g.
func NewWithGateway(g gateway) Module {
	return Module{gateway: g}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "home" }

// Mount wires the landing routes. The mount owns every /app/ path no other
// module claims, so it also answers unknown app paths with 404.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	g := m.gateway
	if g == nil && deps.Backend != nil {
		g = deps.Backend
	}
	if g == nil {
		g = unavailableGateway{}
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(g), deps))
	return module.Mount{Prefix: routepath.AppPrefix, Handler: mux}, nil
}
