package complaints

import (
	"context"
	"net/url"
	"strings"

	"github.com/myhome/console/internal/backend"
	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/validation"
)

type gateway interface {
	ListQuejas(ctx context.Context, sess backend.Session) ([]backend.Queja, error)
	CreateQueja(ctx context.Context, sess backend.Session, in backend.QuejaInput) (backend.Queja, error)
	UpdateQueja(ctx context.Context, sess backend.Session, id int, in backend.QuejaUpdate) (backend.Queja, error)
	DeleteQueja(ctx context.Context, sess backend.Session, id int) error
}

var errBackendUnavailable = &backend.Error{Kind: backend.KindNetwork, Message: "backend is not configured"}

type unavailableGateway struct{}

func (unavailableGateway) ListQuejas(context.Context, backend.Session) ([]backend.Queja, error) {
	return nil, errBackendUnavailable
}

func (unavailableGateway) CreateQueja(context.Context, backend.Session, backend.QuejaInput) (backend.Queja, error) {
	return backend.Queja{}, errBackendUnavailable
}

func (unavailableGateway) UpdateQueja(context.Context, backend.Session, int, backend.QuejaUpdate) (backend.Queja, error) {
	return backend.Queja{}, errBackendUnavailable
}

func (unavailableGateway) DeleteQueja(context.Context, backend.Session, int) error {
	return errBackendUnavailable
}

type service struct {
	gateway gateway
}

func newService(g gateway) service {
	return service{gateway: g}
}

func (s service) list(ctx context.Context, sess module.Session) ([]backend.Queja, error) {
	return s.gateway.ListQuejas(ctx, sess)
}

func (s service) create(ctx context.Context, sess module.Session, values url.Values) (validation.FieldErrors, error) {
	descripcion := strings.TrimSpace(values.Get("descripcion"))
	if errs := validation.Queja(descripcion); !errs.Empty() {
		return errs, nil
	}
	_, err := s.gateway.CreateQueja(ctx, sess, backend.QuejaInput{Descripcion: descripcion})
	return nil, err
}

// update changes the status only; the description is not editable.
func (s service) update(ctx context.Context, sess module.Session, queja backend.Queja, values url.Values) (validation.FieldErrors, error) {
	estado := strings.TrimSpace(values.Get("estado"))
	if errs := validation.QuejaEstado(estado, backend.EstadosQueja); !errs.Empty() {
		return errs, nil
	}
	_, err := s.gateway.UpdateQueja(ctx, sess, queja.ID, backend.QuejaUpdate{Estado: estado})
	return nil, err
}

func (s service) delete(ctx context.Context, sess module.Session, id int) error {
	return s.gateway.DeleteQueja(ctx, sess, id)
}
