package complaints

import (
	"net/http"

	"github.com/myhome/console/internal/services/console/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.QuejasPrefix+"{$}", h.handleCreate)
}
