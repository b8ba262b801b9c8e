// Package socialareas serves the shared facility pages: the facility cards
// and the bookings of one facility.
package socialareas

import (
	"net/http"

	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/routepath"
)

// Module provides the /app/areas-sociales/ routes.
type Module struct {
	gateway gateway
}

// New returns the social areas module backed by the shared backend client.
func New() Module {
	return Module{}
}

// NewWithGateway returns the social areas module backed by g.
func NewWithGateway(g gateway) Module {
	return Module{gateway: g}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "areas-sociales" }

// Mount wires the facility routes.
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
	return module.Mount{Prefix: routepath.AreasSocialesPrefix, Handler: mux}, nil
}
