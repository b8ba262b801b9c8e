package payments

import (
	"net/http"

	"github.com/myhome/console/internal/services/console/platform/httpx"
	"github.com/myhome/console/internal/services/console/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.PagosPrefix+"{$}", h.handlePagos)
	mux.HandleFunc(routepath.PagosPrefix+"{$}", httpx.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc(routepath.PagosPrefix+"{rest...}", h.handleNotFound)
}
