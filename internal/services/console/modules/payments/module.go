// Package payments serves the recurring payments dashboard and its history
// table.
package payments

import (
	"net/http"

	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/routepath"
)

// Module provides the /app/pagos/ routes.
type Module struct {
	gateway gateway
}

// New returns the payments module backed by the shared backend client.
func New() Module {
	return Module{}
}

// NewWithGateway returns the payments module backed by g.
func NewWithGateway(g gateway) Module {
	return Module{gateway: g}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "pagos" }

// Mount wires the dashboard routes.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	g := m.gateway
	if g == nil && deps.Backend != nil {
		g = deps.Backend
	}
	if g == nil {
		g = unavailableGateway{}
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(g, deps))
	return module.Mount{Prefix: routepath.PagosPrefix, Handler: mux}, nil
}
