// Package people serves the user management lists. Users, owners and staff
// are three views over the same backend collection, split by is_staff.
package people

import (
	"net/http"

	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/platform/resourcelist"
)

// Module provides one user list view.
type Module struct {
	gateway gateway
	view    view
}

// NewUsuarios returns the all-users list.
func NewUsuarios() Module { return Module{view: usuariosView} }

// NewPropietarios returns the owners list (is_staff false).
func NewPropietarios() Module { return Module{view: propietariosView} }

// NewPersonal returns the staff list (is_staff true).
func NewPersonal() Module { return Module{view: personalView} }

// WithGateway returns a copy of m backed by g.
func (m Module) WithGateway(g gateway) Module {
	m.gateway = g
	return m
}

// ID returns a stable module identifier.
func (m Module) ID() string { return m.view.id }

// Mount wires the list, edit and delete routes of the view.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	g := m.gateway
	if g == nil && deps.Backend != nil {
		g = deps.Backend
	}
	if g == nil {
		g = unavailableGateway{}
	}
	ctrl, err := resourcelist.New(m.view.config(newService(g)), deps)
	if err != nil {
		return module.Mount{}, err
	}
	mux := http.NewServeMux()
	ctrl.Register(mux)
	return module.Mount{Prefix: m.view.prefix, Handler: mux}, nil
}
