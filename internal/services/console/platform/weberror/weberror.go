// Package weberror renders shared error responses for console modules.
package weberror

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/myhome/console/internal/backend"
	apperrors "github.com/myhome/console/internal/platform/errors"
	module "github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/platform/httpx"
	consolei18n "github.com/myhome/console/internal/services/console/platform/i18n"
	"github.com/myhome/console/internal/services/console/platform/pagerender"
	"github.com/myhome/console/internal/services/console/routepath"
	"github.com/myhome/console/internal/services/console/templates"
)

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message. Backend
// failures keep the text the backend sent.
func PublicMessage(loc consolei18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	var be *backend.Error
	if stderrors.As(err, &be) {
		return backendMessage(loc, be)
	}
	if key := apperrors.LocalizationKey(err); key != "" && loc != nil {
		if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
			return localized
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

func backendMessage(loc consolei18n.Localizer, be *backend.Error) string {
	key := be.LocalizationKey()
	switch {
	case key == "":
		return be.Message
	case be.Kind == backend.KindNetwork:
		return consolei18n.T(loc, key, be.Message)
	default:
		return consolei18n.T(loc, key)
	}
}

// StatusFor maps a backend failure to the status the console answers with.
func StatusFor(err error) int {
	var be *backend.Error
	if !stderrors.As(err, &be) {
		return apperrors.HTTPStatus(err)
	}
	switch be.Kind {
	case backend.KindUnauthenticated, backend.KindSessionExpired:
		return http.StatusUnauthorized
	case backend.KindServer:
		if be.Status >= http.StatusBadRequest && be.Status < http.StatusInternalServerError {
			return be.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// HandleAuthFailure signs the browser out when err means the backend no
// longer accepts the session. It reports whether a response was written.
func HandleAuthFailure(w http.ResponseWriter, r *http.Request, deps module.Dependencies, err error) bool {
	if !backend.IsAuthFailure(err) {
		return false
	}
	if deps.ResolveSession != nil {
		if sess := deps.ResolveSession(r); sess != nil {
			sess.RemoveToken(httpx.RequestContext(r))
		}
	}
	if deps.ClearSession != nil {
		deps.ClearSession(w, r)
	}
	httpx.WriteRedirect(w, r, routepath.Login)
	return true
}

// RequestGone reports whether the browser abandoned the request. Handlers
// write nothing in that case.
func RequestGone(r *http.Request) bool {
	return r != nil && r.Context().Err() != nil
}

// WriteAppError writes a localized error page for full-page and HTMX requests.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	page := pagerender.ModulePage{
		Title:      templates.ErrorPageTitle(statusCode, loc),
		StatusCode: statusCode,
		Fragment:   templates.ErrorState(statusCode, loc),
	}
	write := pagerender.WritePublicPage
	if deps.ResolveSession != nil {
		if sess := deps.ResolveSession(r); sess != nil && sess.IsAuthenticated(httpx.RequestContext(r)) {
			write = pagerender.WriteModulePage
		}
	}
	if err := write(w, r, deps, page); err != nil {
		deps.Logger.Error(err, "render error page", "status", statusCode)
	}
}

// WriteModuleError writes a module-safe localized error response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil || RequestGone(r) {
		return
	}
	if HandleAuthFailure(w, r, deps, err) {
		return
	}
	statusCode := StatusFor(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, deps)
		return
	}
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	http.Error(w, PublicMessage(loc, err), statusCode)
}
