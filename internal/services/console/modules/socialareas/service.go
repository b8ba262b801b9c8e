package socialareas

import (
	"context"

	"github.com/myhome/console/internal/backend"
)

type gateway interface {
	ListAreasSociales(ctx context.Context, sess backend.Session) ([]backend.AreaSocial, error)
	RegistrosByAreaSocial(ctx context.Context, sess backend.Session, areaID int) ([]backend.RegistroAreaSocial, error)
}

var errBackendUnavailable = &backend.Error{Kind: backend.KindNetwork, Message: "backend is not configured"}

type unavailableGateway struct{}

func (unavailableGateway) ListAreasSociales(context.Context, backend.Session) ([]backend.AreaSocial, error) {
	return nil, errBackendUnavailable
}

func (unavailableGateway) RegistrosByAreaSocial(context.Context, backend.Session, int) ([]backend.RegistroAreaSocial, error) {
	return nil, errBackendUnavailable
}

type service struct {
	gateway gateway
}

func newService(g gateway) service {
	return service{gateway: g}
}

func (s service) areas(ctx context.Context, sess backend.Session) ([]backend.AreaSocial, error) {
	return s.gateway.ListAreasSociales(ctx, sess)
}

// bookings loads the facility and its bookings. found is false when the
// facility is not in the backend list.
func (s service) bookings(ctx context.Context, sess backend.Session, areaID int) (area backend.AreaSocial, registros []backend.RegistroAreaSocial, found bool, err error) {
	areas, err := s.gateway.ListAreasSociales(ctx, sess)
	if err != nil {
		return backend.AreaSocial{}, nil, false, err
	}
	for _, a := range areas {
		if a.ID == areaID {
			area, found = a, true
			break
		}
	}
	if !found {
		return backend.AreaSocial{}, nil, false, nil
	}
	registros, err = s.gateway.RegistrosByAreaSocial(ctx, sess, areaID)
	if err != nil {
		return area, nil, true, err
	}
	return area, registros, true, nil
}
