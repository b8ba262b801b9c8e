package home

import (
	"net/http"

	"github.com/myhome/console/internal/services/console/platform/httpx"
	"github.com/myhome/console/internal/services/console/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppHome+"{$}", h.handleHome)
	mux.HandleFunc(routepath.AppHome+"{$}", httpx.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc(http.MethodPost+" "+routepath.AppPerfil, h.handlePerfil)
	mux.HandleFunc(routepath.AppPerfil, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.AppPrefix+"{rest...}", h.handleNotFound)
}
