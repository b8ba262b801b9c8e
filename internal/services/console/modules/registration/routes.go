package registration

import (
	"net/http"

	"github.com/myhome/console/internal/services/console/platform/httpx"
	"github.com/myhome/console/internal/services/console/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.RegistrarUsuarioPrefix+"{$}", h.requirePrivilege(h.handleForms))
	mux.HandleFunc(http.MethodPost+" "+routepath.RegistrarUsuarioPrefix+"{$}", h.requirePrivilege(h.handleCreateUser))
	mux.HandleFunc(routepath.RegistrarUsuarioPrefix+"{$}", httpx.MethodNotAllowed(http.MethodGet+", "+http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.AppRegistrarUsuarioUnidad, h.requirePrivilege(h.handleAssign))
	mux.HandleFunc(routepath.AppRegistrarUsuarioUnidad, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.RegistrarUsuarioPrefix+"{rest...}", h.handleNotFound)
}
