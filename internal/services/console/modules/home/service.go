package home

import (
	"context"
	"net/url"
	"strings"

	"github.com/myhome/console/internal/backend"
	"github.com/myhome/console/internal/validation"
)

type gateway interface {
	UpdatePerfil(ctx context.Context, sess backend.Session, id int, in backend.PerfilUpdate) (backend.Perfil, error)
}

type unavailableGateway struct{}

func (unavailableGateway) UpdatePerfil(context.Context, backend.Session, int, backend.PerfilUpdate) (backend.Perfil, error) {
	return backend.Perfil{}, &backend.Error{Kind: backend.KindNetwork, Message: "backend is not configured"}
}

type service struct {
	gateway gateway
}

func newService(g gateway) service {
	return service{gateway: g}
}

// updatePerfil validates the edit form and sends it for the viewer's
// profile record.
func (s service) updatePerfil(ctx context.Context, sess backend.Session, perfilID int, values url.Values) (validation.FieldErrors, error) {
	in := backend.PerfilUpdate{
		Telefono:        strings.TrimSpace(values.Get("telefono")),
		Direccion:       strings.TrimSpace(values.Get("direccion")),
		ImagenPerfilURL: strings.TrimSpace(values.Get("imagen_perfil_url")),
	}
	if errs := validation.Perfil(in.Telefono, in.Direccion, in.ImagenPerfilURL); !errs.Empty() {
		return errs, nil
	}
	if perfilID <= 0 {
		return nil, &backend.Error{Kind: backend.KindServer, Status: 404, Message: "profile record not found"}
	}
	_, err := s.gateway.UpdatePerfil(ctx, sess, perfilID, in)
	return nil, err
}
