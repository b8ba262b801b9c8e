package registration

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/myhome/console/internal/backend"
	"github.com/myhome/console/internal/services/console/modules/formfields"
	"github.com/myhome/console/internal/validation"
)

type gateway interface {
	CreateUserComplete(ctx context.Context, sess backend.Session, in backend.CompleteUser) (backend.RegistrationResponse, error)
	ListPropietarios(ctx context.Context, sess backend.Session) ([]backend.Propietario, error)
	ListUnidadesHabitacionales(ctx context.Context, sess backend.Session) ([]backend.UnidadHabitacional, error)
	CreatePropietarioUnidad(ctx context.Context, sess backend.Session, in backend.PropietarioUnidad) (backend.PropietarioUnidad, error)
}

var errBackendUnavailable = &backend.Error{Kind: backend.KindNetwork, Message: "backend is not configured"}

type unavailableGateway struct{}

func (unavailableGateway) CreateUserComplete(context.Context, backend.Session, backend.CompleteUser) (backend.RegistrationResponse, error) {
	return backend.RegistrationResponse{}, errBackendUnavailable
}

func (unavailableGateway) ListPropietarios(context.Context, backend.Session) ([]backend.Propietario, error) {
	return nil, errBackendUnavailable
}

func (unavailableGateway) ListUnidadesHabitacionales(context.Context, backend.Session) ([]backend.UnidadHabitacional, error) {
	return nil, errBackendUnavailable
}

func (unavailableGateway) CreatePropietarioUnidad(context.Context, backend.Session, backend.PropietarioUnidad) (backend.PropietarioUnidad, error) {
	return backend.PropietarioUnidad{}, errBackendUnavailable
}

type service struct {
	gateway gateway
}

func newService(g gateway) service {
	return service{gateway: g}
}

// createUser validates and sends the complete-user form. Fields of the role
// that was not selected are dropped before sending.
func (s service) createUser(ctx context.Context, sess backend.Session, values url.Values) (string, validation.FieldErrors, error) {
	fields := validation.CompleteUserFields{
		Account:              formfields.AccountFields(values),
		Telefono:             strings.TrimSpace(values.Get("telefono")),
		Direccion:            strings.TrimSpace(values.Get("direccion")),
		Sexo:                 strings.TrimSpace(values.Get("sexo")),
		TipoUsuario:          strings.TrimSpace(values.Get("tipo_usuario")),
		Turno:                strings.TrimSpace(values.Get("turno")),
		FechaContratacion:    strings.TrimSpace(values.Get("fecha_contratacion")),
		InformacionAdicional: strings.TrimSpace(values.Get("informacion_adicional")),
		CodigoPropietario:    strings.TrimSpace(values.Get("codigo_propietario")),
	}
	if errs := validation.CompleteUser(fields); !errs.Empty() {
		return "", errs, nil
	}
	in := backend.CompleteUser{
		Username:    fields.Account.Username,
		Email:       fields.Account.Email,
		Password:    fields.Account.Password,
		FirstName:   fields.Account.FirstName,
		LastName:    fields.Account.LastName,
		Telefono:    fields.Telefono,
		Direccion:   fields.Direccion,
		Sexo:        fields.Sexo,
		TipoUsuario: fields.TipoUsuario,
	}
	switch fields.TipoUsuario {
	case validation.TipoGuardia:
		in.Turno = fields.Turno
		in.FechaContratacion = fields.FechaContratacion
		in.InformacionAdicional = fields.InformacionAdicional
	case validation.TipoPropietario:
		in.CodigoPropietario = fields.CodigoPropietario
	}
	if _, err := s.gateway.CreateUserComplete(ctx, sess, in); err != nil {
		return "", nil, err
	}
	return in.Username, nil, nil
}

// choices holds the assignment form options.
type choices struct {
	propietarios []backend.Propietario
	unidades     []backend.UnidadHabitacional
}

// loadChoices fetches owners, then units.
func (s service) loadChoices(ctx context.Context, sess backend.Session) (choices, error) {
	propietarios, err := s.gateway.ListPropietarios(ctx, sess)
	if err != nil {
		return choices{}, err
	}
	unidades, err := s.gateway.ListUnidadesHabitacionales(ctx, sess)
	if err != nil {
		return choices{}, err
	}
	return choices{propietarios: propietarios, unidades: unidades}, nil
}

func (s service) assign(ctx context.Context, sess backend.Session, values url.Values) (validation.FieldErrors, error) {
	propietario := strings.TrimSpace(values.Get("propietario"))
	unidad := strings.TrimSpace(values.Get("unidad_habitacional"))
	if errs := validation.Asignacion(propietario, unidad); !errs.Empty() {
		return errs, nil
	}
	propietarioID, err1 := strconv.Atoi(propietario)
	unidadID, err2 := strconv.Atoi(unidad)
	if err := errors.Join(err1, err2); err != nil {
		return nil, err
	}
	_, err := s.gateway.CreatePropietarioUnidad(ctx, sess, backend.PropietarioUnidad{
		Propietario:        propietarioID,
		UnidadHabitacional: unidadID,
		FechaInicio:        strings.TrimSpace(values.Get("fecha_inicio")),
	})
	return nil, err
}
