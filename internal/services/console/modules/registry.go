package modules

import (
	"github.com/myhome/console/internal/services/console/modules/auth"
	"github.com/myhome/console/internal/services/console/modules/complaints"
	"github.com/myhome/console/internal/services/console/modules/home"
	"github.com/myhome/console/internal/services/console/modules/payments"
	"github.com/myhome/console/internal/services/console/modules/people"
	"github.com/myhome/console/internal/services/console/modules/registration"
	"github.com/myhome/console/internal/services/console/modules/socialareas"
)

// DefaultPublicModules returns the signed-out modules.
func DefaultPublicModules() []Module {
	return []Module{
		auth.New(),
	}
}

// DefaultProtectedModules returns the signed-in modules in navigation order.
func DefaultProtectedModules() []Module {
	return []Module{
		home.New(),
		registration.New(),
		people.NewUsuarios(),
		people.NewPropietarios(),
		people.NewPersonal(),
		socialareas.New(),
		complaints.New(),
		payments.New(),
	}
}
