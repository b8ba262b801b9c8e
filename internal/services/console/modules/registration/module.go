// Package registration serves the staff-only user registration page: the
// complete-user form and the owner-unit assignment form.
package registration

import (
	"net/http"

	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/routepath"
)

// Module provides the /app/registrar-usuario/ routes.
type Module struct {
	gateway gateway
}

// New returns the registration module backed by the shared backend client.
func New() Module {
	return Module{}
}

// NewWithGateway returns the registration module backed by g.
func NewWithGateway(g gateway) Module {
	return Module{gateway: g}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "registrar-usuario" }

// Mount wires the registration routes.
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
	return module.Mount{Prefix: routepath.RegistrarUsuarioPrefix, Handler: mux}, nil
}
