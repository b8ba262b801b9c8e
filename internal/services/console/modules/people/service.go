package people

import (
	"context"
	"net/url"
	"strings"

	"github.com/myhome/console/internal/backend"
	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/platform/resourcelist"
	"github.com/myhome/console/internal/validation"
)

type gateway interface {
	ListUsers(ctx context.Context, sess backend.Session) ([]backend.User, error)
	UpdateUser(ctx context.Context, sess backend.Session, id int, in backend.UserUpdate) (backend.User, error)
	DeleteUser(ctx context.Context, sess backend.Session, id int) error
}

var errBackendUnavailable = &backend.Error{Kind: backend.KindNetwork, Message: "backend is not configured"}

type unavailableGateway struct{}

func (unavailableGateway) ListUsers(context.Context, backend.Session) ([]backend.User, error) {
	return nil, errBackendUnavailable
}

func (unavailableGateway) UpdateUser(context.Context, backend.Session, int, backend.UserUpdate) (backend.User, error) {
	return backend.User{}, errBackendUnavailable
}

func (unavailableGateway) DeleteUser(context.Context, backend.Session, int) error {
	return errBackendUnavailable
}

type service struct {
	gateway gateway
}

func newService(g gateway) service {
	return service{gateway: g}
}

func (s service) list(ctx context.Context, sess module.Session) ([]backend.User, error) {
	return s.gateway.ListUsers(ctx, sess)
}

// update sends the edit modal. Fields missing from values keep the loaded
// value, and the password goes out only when one was typed.
func (s service) update(ctx context.Context, sess module.Session, user backend.User, values url.Values) (validation.FieldErrors, error) {
	in := backend.UserUpdate{
		Username:  resourcelist.Value(values, "username", user.Username),
		Email:     resourcelist.Value(values, "email", user.Email),
		FirstName: resourcelist.Value(values, "first_name", user.FirstName),
		LastName:  resourcelist.Value(values, "last_name", user.LastName),
		IsStaff:   resourcelist.Checked(values, "is_staff", user.IsStaff),
		IsActive:  resourcelist.Checked(values, "is_active", user.IsActive),
		Password:  typedPassword(values),
	}
	if errs := validation.UserEdit(in.Username, in.Email, in.Password); !errs.Empty() {
		return errs, nil
	}
	_, err := s.gateway.UpdateUser(ctx, sess, user.ID, in)
	return nil, err
}

func (s service) delete(ctx context.Context, sess module.Session, id int) error {
	return s.gateway.DeleteUser(ctx, sess, id)
}

// typedPassword returns the submitted password, or "" when the field was
// left blank or holds only spaces.
func typedPassword(values url.Values) string {
	password := values.Get("password")
	if strings.TrimSpace(password) == "" {
		return ""
	}
	return password
}
