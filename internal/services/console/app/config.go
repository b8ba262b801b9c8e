package app

import (
	"net/http"

	"github.com/myhome/console/internal/services/console/module"
)

// Config captures the composition inputs for the console root handler.
type Config struct {
	Dependencies     module.Dependencies
	PublicModules    []module.Module
	ProtectedModules []module.Module
}

// BuildRootHandler composes cfg with authRequired guarding protected modules.
func BuildRootHandler(cfg Config, authRequired func(*http.Request) bool) (http.Handler, error) {
	return Composer{}.Compose(ComposeInput{
		Dependencies:     cfg.Dependencies,
		AuthRequired:     authRequired,
		PublicModules:    cfg.PublicModules,
		ProtectedModules: cfg.ProtectedModules,
	})
}
