package socialareas

import (
	"net/http"

	"github.com/myhome/console/internal/services/console/platform/httpx"
	"github.com/myhome/console/internal/services/console/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AreasSocialesPrefix+"{$}", h.handleAreas)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppAreaSocialPattern, h.handleBookings)
	mux.HandleFunc(routepath.AreasSocialesPrefix+"{$}", httpx.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc(routepath.AppAreaSocialPattern, httpx.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc(routepath.AppAreasSocialesRestPat, h.handleNotFound)
}
