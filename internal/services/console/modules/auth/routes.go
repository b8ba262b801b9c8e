package auth

import (
	"net/http"

	"github.com/myhome/console/internal/services/console/platform/httpx"
	"github.com/myhome/console/internal/services/console/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleRoot)

	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLoginGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleLoginPost)

	mux.HandleFunc(http.MethodGet+" "+routepath.Register, h.handleRegisterGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.Register, h.handleRegisterPost)

	mux.HandleFunc(http.MethodGet+" "+routepath.RegisterAdmin, h.handleAdminGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.RegisterAdmin, h.handleAdminPost)

	mux.HandleFunc(http.MethodPost+" "+routepath.Logout, h.handleLogout)
	mux.HandleFunc(http.MethodGet+" "+routepath.Logout, httpx.MethodNotAllowed(http.MethodPost))

	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)

	mux.HandleFunc(http.MethodGet+" /{rest...}", h.handleNotFound)
}
