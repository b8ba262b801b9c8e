// Package auth serves the signed-out console pages: sign-in, self
// registration, the administrator registration gate and sign-out.
package auth

import (
	"net/http"

	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/routepath"
)

// Module provides the public routes mounted at the root.
type Module struct {
	gateway gateway
}

// New returns the auth module backed by the shared backend client.
func New() Module {
	return Module{}
}

// NewWithGateway returns the auth module backed by g.
func NewWithGateway(g gateway) Module {
	return Module{gateway: g}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "auth" }

// Mount wires the public route handlers.
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
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
