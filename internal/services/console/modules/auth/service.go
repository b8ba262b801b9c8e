package auth

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
	Login(ctx context.Context, sess backend.Session, creds backend.Credentials) (backend.LoginResponse, error)
	Logout(ctx context.Context, sess backend.Session) error
	RegisterSecretaria(ctx context.Context, in backend.SecretariaRegistration) (backend.RegistrationResponse, error)
	RegisterAdministrador(ctx context.Context, in backend.AdministradorRegistration) (backend.RegistrationResponse, error)
}

var errBackendUnavailable = &backend.Error{Kind: backend.KindNetwork, Message: "backend is not configured"}

type unavailableGateway struct{}

func (unavailableGateway) Login(context.Context, backend.Session, backend.Credentials) (backend.LoginResponse, error) {
	return backend.LoginResponse{}, errBackendUnavailable
}

func (unavailableGateway) Logout(_ context.Context, sess backend.Session) error {
	if sess != nil {
		sess.RemoveToken(context.Background())
	}
	return errBackendUnavailable
}

func (unavailableGateway) RegisterSecretaria(context.Context, backend.SecretariaRegistration) (backend.RegistrationResponse, error) {
	return backend.RegistrationResponse{}, errBackendUnavailable
}

func (unavailableGateway) RegisterAdministrador(context.Context, backend.AdministradorRegistration) (backend.RegistrationResponse, error) {
	return backend.RegistrationResponse{}, errBackendUnavailable
}

type service struct {
	gateway gateway
}

func newService(g gateway) service {
	return service{gateway: g}
}

// login validates the form and signs in. A backend reply without a token is
// a failed sign-in.
func (s service) login(ctx context.Context, sess backend.Session, values url.Values) (validation.FieldErrors, error) {
	creds := backend.Credentials{
		Username: strings.TrimSpace(values.Get("username")),
		Password: values.Get("password"),
	}
	if errs := validation.Login(creds.Username, creds.Password); !errs.Empty() {
		return errs, nil
	}
	resp, err := s.gateway.Login(ctx, sess, creds)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Token) == "" {
		message := strings.TrimSpace(resp.Message)
		if message == "" {
			message = "login response carried no token"
		}
		return nil, &backend.Error{Kind: backend.KindServer, Message: message}
	}
	return nil, nil
}

func (s service) logout(ctx context.Context, sess backend.Session) error {
	return s.gateway.Logout(ctx, sess)
}

func (s service) registerSecretaria(ctx context.Context, values url.Values) (validation.FieldErrors, error) {
	account := formfields.AccountFields(values)
	telefono := strings.TrimSpace(values.Get("telefono"))
	direccion := strings.TrimSpace(values.Get("direccion"))
	sexo := strings.TrimSpace(values.Get("sexo"))
	turno := strings.TrimSpace(values.Get("turno"))
	velocidad := strings.TrimSpace(values.Get("velocidad_teclado"))
	if errs := validation.Secretaria(account, telefono, direccion, sexo, turno, velocidad); !errs.Empty() {
		return errs, nil
	}
	speed, err := strconv.Atoi(velocidad)
	if err != nil {
		return nil, errors.New("velocidad_teclado passed validation but is not an integer")
	}
	_, err = s.gateway.RegisterSecretaria(ctx, backend.SecretariaRegistration{
		Username:         account.Username,
		Email:            account.Email,
		Password:         account.Password,
		FirstName:        account.FirstName,
		LastName:         account.LastName,
		Telefono:         telefono,
		Direccion:        direccion,
		Sexo:             sexo,
		Turno:            turno,
		VelocidadTeclado: speed,
	})
	return nil, err
}

func (s service) registerAdministrador(ctx context.Context, values url.Values) (validation.FieldErrors, error) {
	account := formfields.AccountFields(values)
	telefono := strings.TrimSpace(values.Get("telefono"))
	direccion := strings.TrimSpace(values.Get("direccion"))
	sexo := strings.TrimSpace(values.Get("sexo"))
	if errs := validation.Administrador(account, telefono, direccion, sexo); !errs.Empty() {
		return errs, nil
	}
	_, err := s.gateway.RegisterAdministrador(ctx, backend.AdministradorRegistration{
		Username:  account.Username,
		Email:     account.Email,
		Password:  account.Password,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Telefono:  telefono,
		Direccion: direccion,
		Sexo:      sexo,
	})
	return nil, err
}
