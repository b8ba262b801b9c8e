package auth

import (
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/modules/formfields"
	"github.com/myhome/console/internal/services/console/platform/flash"
	"github.com/myhome/console/internal/services/console/platform/httpx"
	consolei18n "github.com/myhome/console/internal/services/console/platform/i18n"
	"github.com/myhome/console/internal/services/console/platform/pagerender"
	"github.com/myhome/console/internal/services/console/platform/requestmeta"
	"github.com/myhome/console/internal/services/console/platform/sessioncookie"
	"github.com/myhome/console/internal/services/console/platform/weberror"
	"github.com/myhome/console/internal/services/console/routepath"
	"github.com/myhome/console/internal/services/console/templates"
	"github.com/myhome/console/internal/validation"
)

type handlers struct {
	service service
	deps    module.Dependencies
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{service: s, deps: deps}
}

func (h handlers) session(r *http.Request) module.Session {
	if h.deps.ResolveSession == nil {
		return nil
	}
	return h.deps.ResolveSession(r)
}

func (h handlers) authenticated(r *http.Request) bool {
	sess := h.session(r)
	return sess != nil && sess.IsAuthenticated(httpx.RequestContext(r))
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	if h.authenticated(r) {
		httpx.WriteRedirect(w, r, routepath.AppHome)
		return
	}
	httpx.WriteRedirect(w, r, routepath.Login)
}

func (h handlers) handleLoginGet(w http.ResponseWriter, r *http.Request) {
	if h.authenticated(r) {
		httpx.WriteRedirect(w, r, routepath.AppHome)
		return
	}
	h.renderLogin(w, r, http.StatusOK, nil, nil, "")
}

func (h handlers) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, nil, nil, "")
		return
	}
	sess := h.session(r)
	errs, err := h.service.login(httpx.RequestContext(r), sess, r.PostForm)
	if weberror.RequestGone(r) {
		return
	}
	if !errs.Empty() {
		h.renderLogin(w, r, http.StatusUnprocessableEntity, r.PostForm, errs, "")
		return
	}
	if err != nil {
		loc, _ := consolei18n.ResolveLocalizer(w, r)
		h.renderLogin(w, r, http.StatusUnprocessableEntity, r.PostForm, nil, weberror.PublicMessage(loc, err))
		return
	}
	if h.deps.CommitSession != nil {
		if err := h.deps.CommitSession(w, r); err != nil {
			h.deps.Logger.Error(err, "write session cookie")
			if sess != nil {
				sess.RemoveToken(httpx.RequestContext(r))
			}
			loc, _ := consolei18n.ResolveLocalizer(w, r)
			h.renderLogin(w, r, http.StatusInternalServerError, r.PostForm, nil, consolei18n.T(loc, "backend.session_storage"))
			return
		}
	}
	httpx.WriteRedirect(w, r, routepath.AppHome)
}

func (h handlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, values url.Values, errs validation.FieldErrors, message string) {
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	b := formfields.New(loc, values, errs)
	form := templates.Form{
		Action: routepath.Login,
		Submit: consolei18n.T(loc, "login.submit"),
		Error:  message,
		Fields: []templates.Field{
			b.Input("username", "text", true),
			b.Input("password", "password", true),
		},
	}
	h.writePublic(w, r, status, consolei18n.T(loc, "login.title"), templates.AuthCard(
		consolei18n.T(loc, "login.title"),
		consolei18n.T(loc, "login.subtitle"),
		templates.FormView(form),
		templates.FooterLink{Href: routepath.Register, Label: consolei18n.T(loc, "login.register_link")},
		templates.FooterLink{Href: routepath.RegisterAdmin, Label: consolei18n.T(loc, "login.admin_link")},
	))
}

func (h handlers) handleRegisterGet(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, r, http.StatusOK, nil, nil, "")
}

func (h handlers) handleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegister(w, r, http.StatusBadRequest, nil, nil, "")
		return
	}
	errs, err := h.service.registerSecretaria(httpx.RequestContext(r), r.PostForm)
	if weberror.RequestGone(r) {
		return
	}
	if !errs.Empty() {
		h.renderRegister(w, r, http.StatusUnprocessableEntity, r.PostForm, errs, "")
		return
	}
	if err != nil {
		loc, _ := consolei18n.ResolveLocalizer(w, r)
		h.renderRegister(w, r, http.StatusUnprocessableEntity, r.PostForm, nil, weberror.PublicMessage(loc, err))
		return
	}
	flash.Write(w, r, flash.Success("flash.registered"), h.deps.SchemePolicy)
	httpx.WriteRedirect(w, r, routepath.Login)
}

func (h handlers) renderRegister(w http.ResponseWriter, r *http.Request, status int, values url.Values, errs validation.FieldErrors, message string) {
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	b := formfields.New(loc, values, errs)
	fields := append(b.Account(), b.Contact()...)
	speed := b.Input("velocidad_teclado", "number", true)
	speed.Min, speed.Max = "1", "200"
	fields = append(fields, b.Select("turno", formfields.TurnoOptions(loc)), speed)
	form := templates.Form{
		Action: routepath.Register,
		Submit: consolei18n.T(loc, "register.submit"),
		Error:  message,
		Fields: fields,
	}
	h.writePublic(w, r, status, consolei18n.T(loc, "register.title"), templates.AuthCard(
		consolei18n.T(loc, "register.title"),
		consolei18n.T(loc, "register.subtitle"),
		templates.FormView(form),
		templates.FooterLink{Href: routepath.Login, Label: consolei18n.T(loc, "register.login_link")},
	))
}

func (h handlers) gatePassed(r *http.Request) bool {
	return h.deps.AdminGate != nil && h.deps.AdminGate.Passed(r)
}

func (h handlers) handleAdminGet(w http.ResponseWriter, r *http.Request) {
	if !h.gatePassed(r) {
		h.renderGate(w, r, http.StatusOK, "")
		return
	}
	h.renderAdmin(w, r, http.StatusOK, nil, nil, "")
}

// handleAdminPost serves both steps: a gate_password field submits the
// gate, anything else submits the registration form.
func (h handlers) handleAdminPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderGate(w, r, http.StatusBadRequest, "")
		return
	}
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	if _, gateStep := r.PostForm["gate_password"]; gateStep {
		if h.deps.AdminGate == nil || !h.deps.AdminGate.Check(r.PostForm.Get("gate_password")) {
			h.renderGate(w, r, http.StatusUnprocessableEntity, consolei18n.T(loc, "admin.gate_wrong"))
			return
		}
		if err := h.deps.AdminGate.Pass(w, r); err != nil {
			h.deps.Logger.Error(err, "write admin gate cookie")
			h.renderGate(w, r, http.StatusInternalServerError, consolei18n.T(loc, "admin.gate_unavailable"))
			return
		}
		httpx.WriteRedirect(w, r, routepath.RegisterAdmin)
		return
	}
	if !h.gatePassed(r) {
		httpx.WriteRedirect(w, r, routepath.RegisterAdmin)
		return
	}

	errs, err := h.service.registerAdministrador(httpx.RequestContext(r), r.PostForm)
	if weberror.RequestGone(r) {
		return
	}
	if !errs.Empty() {
		h.renderAdmin(w, r, http.StatusUnprocessableEntity, r.PostForm, errs, "")
		return
	}
	if err != nil {
		h.renderAdmin(w, r, http.StatusUnprocessableEntity, r.PostForm, nil, weberror.PublicMessage(loc, err))
		return
	}
	h.deps.AdminGate.Reset(w, r)
	flash.Write(w, r, flash.Success("flash.admin_registered"), h.deps.SchemePolicy)
	httpx.WriteRedirect(w, r, routepath.Login)
}

func (h handlers) renderGate(w http.ResponseWriter, r *http.Request, status int, message string) {
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	form := templates.Form{
		Action: routepath.RegisterAdmin,
		Submit: consolei18n.T(loc, "admin.gate_submit"),
		Error:  message,
		Fields: []templates.Field{{
			Name:     "gate_password",
			Label:    consolei18n.T(loc, "field.gate_password"),
			Type:     "password",
			Required: true,
		}},
	}
	h.writePublic(w, r, status, consolei18n.T(loc, "admin.title"), templates.AuthCard(
		consolei18n.T(loc, "admin.title"),
		consolei18n.T(loc, "admin.gate_subtitle"),
		templates.FormView(form),
		templates.FooterLink{Href: routepath.Login, Label: consolei18n.T(loc, "register.login_link")},
	))
}

func (h handlers) renderAdmin(w http.ResponseWriter, r *http.Request, status int, values url.Values, errs validation.FieldErrors, message string) {
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	b := formfields.New(loc, values, errs)
	form := templates.Form{
		Action: routepath.RegisterAdmin,
		Submit: consolei18n.T(loc, "admin.submit"),
		Error:  message,
		Fields: append(b.Account(), b.Contact()...),
	}
	h.writePublic(w, r, status, consolei18n.T(loc, "admin.title"), templates.AuthCard(
		consolei18n.T(loc, "admin.title"),
		consolei18n.T(loc, "admin.subtitle"),
		templates.FormView(form),
		templates.FooterLink{Href: routepath.Login, Label: consolei18n.T(loc, "register.login_link")},
	))
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessioncookie.Read(r); ok && !requestmeta.HasSameOriginProofWithPolicy(r, h.deps.SchemePolicy) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	if err := h.service.logout(httpx.RequestContext(r), h.session(r)); err != nil {
		h.deps.Logger.V(1).Info("backend logout failed", "error", err.Error())
	}
	if h.deps.ClearSession != nil {
		h.deps.ClearSession(w, r)
	}
	httpx.WriteRedirect(w, r, routepath.Login)
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteText(w, http.StatusOK, "ok")
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
}

func (h handlers) writePublic(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	err := pagerender.WritePublicPage(w, r, h.deps, pagerender.ModulePage{
		Title:      title,
		StatusCode: status,
		Fragment:   body,
	})
	if err != nil {
		h.deps.Logger.Error(err, "render public page", "path", r.URL.Path)
	}
}
