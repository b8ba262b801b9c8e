// Package complaints serves the complaint list: filing a complaint,
// changing its status and deleting it.
package complaints

import (
	"net/http"

	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/platform/resourcelist"
	"github.com/myhome/console/internal/services/console/routepath"
)

// Module provides the /app/quejas/ routes.
type Module struct {
	gateway gateway
}

// New returns the complaints module backed by the shared backend client.
func New() Module {
	return Module{}
}

// NewWithGateway returns the complaints module backed by g.
func NewWithGateway(g gateway) Module {
	return Module{gateway: g}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "quejas" }

// Mount wires the list routes and the create form.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	g := m.gateway
	if g == nil && deps.Backend != nil {
		g = deps.Backend
	}
	if g == nil {
		g = unavailableGateway{}
	}
	svc := newService(g)
	ctrl, err := resourcelist.New(listConfig(svc), deps)
	if err != nil {
		return module.Mount{}, err
	}
	mux := http.NewServeMux()
	ctrl.Register(mux)
	registerRoutes(mux, newHandlers(svc, ctrl, deps))
	return module.Mount{Prefix: routepath.QuejasPrefix, Handler: mux}, nil
}
