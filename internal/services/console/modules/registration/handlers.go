package registration

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/myhome/console/internal/backend"
	apperrors "github.com/myhome/console/internal/platform/errors"
	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/modules/formfields"
	"github.com/myhome/console/internal/services/console/platform/flash"
	"github.com/myhome/console/internal/services/console/platform/httpx"
	consolei18n "github.com/myhome/console/internal/services/console/platform/i18n"
	"github.com/myhome/console/internal/services/console/platform/pagerender"
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

// formState is one submitted form shown again.
type formState struct {
	values  url.Values
	errs    validation.FieldErrors
	message string
}

func (h handlers) session(r *http.Request) backend.Session {
	if h.deps.ResolveSession == nil {
		return nil
	}
	return h.deps.ResolveSession(r)
}

// requirePrivilege limits the page to staff and superusers.
func (h handlers) requirePrivilege(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := module.Viewer{}
		if h.deps.ResolveViewer != nil {
			viewer = h.deps.ResolveViewer(r)
		}
		if !viewer.CanRegisterUsers() {
			weberror.WriteModuleError(w, r, apperrors.E(apperrors.KindForbidden, "user registration requires staff"), h.deps)
			return
		}
		next(w, r)
	}
}

func (h handlers) handleForms(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, formState{}, formState{})
}

func (h handlers) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, formState{}, formState{})
		return
	}
	username, errs, err := h.service.createUser(httpx.RequestContext(r), h.session(r), r.PostForm)
	if weberror.RequestGone(r) {
		return
	}
	if err != nil && weberror.HandleAuthFailure(w, r, h.deps, err) {
		return
	}
	if errs.Empty() && err == nil {
		flash.Write(w, r, flash.Success("registrar.created", username), h.deps.SchemePolicy)
		httpx.WriteRedirect(w, r, routepath.RegistrarUsuarioPrefix)
		return
	}
	state := formState{values: r.PostForm, errs: errs}
	if err != nil {
		loc, _ := consolei18n.ResolveLocalizer(w, r)
		state.message = weberror.PublicMessage(loc, err)
	}
	h.render(w, r, http.StatusUnprocessableEntity, state, formState{})
}

func (h handlers) handleAssign(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, formState{}, formState{})
		return
	}
	errs, err := h.service.assign(httpx.RequestContext(r), h.session(r), r.PostForm)
	if weberror.RequestGone(r) {
		return
	}
	if err != nil && weberror.HandleAuthFailure(w, r, h.deps, err) {
		return
	}
	if errs.Empty() && err == nil {
		flash.Write(w, r, flash.Success("registrar.assigned"), h.deps.SchemePolicy)
		httpx.WriteRedirect(w, r, routepath.RegistrarUsuarioPrefix)
		return
	}
	state := formState{values: r.PostForm, errs: errs}
	if err != nil {
		loc, _ := consolei18n.ResolveLocalizer(w, r)
		state.message = weberror.PublicMessage(loc, err)
	}
	h.render(w, r, http.StatusUnprocessableEntity, formState{}, state)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
}

// render loads the assignment choices and writes both forms. A failed
// choice load replaces the assignment form with a retry banner.
func (h handlers) render(w http.ResponseWriter, r *http.Request, status int, user, assign formState) {
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	opts, err := h.service.loadChoices(httpx.RequestContext(r), h.session(r))
	if weberror.RequestGone(r) {
		return
	}
	if err != nil && weberror.HandleAuthFailure(w, r, h.deps, err) {
		return
	}
	var assignCard templ.Component
	if err != nil {
		h.deps.Logger.V(1).Info("assignment choices load failed", "error", err.Error())
		assignCard = templates.Card(consolei18n.T(loc, "registrar.assign_title"), templates.AlertBanner(templates.Alert{
			Kind:       templates.AlertError,
			Text:       weberror.PublicMessage(loc, err),
			RetryURL:   routepath.RegistrarUsuarioPrefix,
			RetryLabel: consolei18n.T(loc, "list.retry"),
		}))
	} else {
		assignCard = templates.Card(consolei18n.T(loc, "registrar.assign_title"), assignForm(loc, opts, assign))
	}
	body := templates.Group(
		templates.PageHeader(consolei18n.T(loc, "registrar.title"), consolei18n.T(loc, "registrar.subtitle")),
		templates.Card(consolei18n.T(loc, "registrar.user_title"), userForm(loc, user)),
		assignCard,
	)
	err = pagerender.WriteModulePage(w, r, h.deps, pagerender.ModulePage{
		Title:      consolei18n.T(loc, "registrar.title"),
		StatusCode: status,
		Active:     templates.NavRegistrar,
		Fragment:   body,
	})
	if err != nil {
		h.deps.Logger.Error(err, "render registration page")
	}
}

func userForm(loc consolei18n.Localizer, state formState) templ.Component {
	b := formfields.New(loc, state.values, state.errs)
	fields := append(b.Account(), b.Contact()...)
	fields = append(fields, b.Select("tipo_usuario", []templates.Option{
		{Value: validation.TipoGuardia, Label: consolei18n.T(loc, "tipo.GUARDIA")},
		{Value: validation.TipoPropietario, Label: consolei18n.T(loc, "tipo.PROPIETARIO")},
	}))
	// Role fields are checked on the server for the selected role only.
	turno := b.Select("turno", formfields.TurnoOptions(loc))
	turno.Required = false
	fields = append(fields,
		turno,
		b.Input("fecha_contratacion", "date", false),
		b.Input("informacion_adicional", templates.InputTextarea, false),
		b.Input("codigo_propietario", "text", false),
	)
	return templates.FormView(templates.Form{
		ID:     "registrar-form",
		Action: routepath.RegistrarUsuarioPrefix,
		Submit: consolei18n.T(loc, "registrar.submit"),
		Error:  state.message,
		Fields: fields,
	})
}

func assignForm(loc consolei18n.Localizer, opts choices, state formState) templ.Component {
	b := formfields.New(loc, state.values, state.errs)
	propietarios := make([]templates.Option, 0, len(opts.propietarios))
	for _, p := range opts.propietarios {
		propietarios = append(propietarios, templates.Option{Value: strconv.Itoa(p.ID), Label: p.Label()})
	}
	unidades := make([]templates.Option, 0, len(opts.unidades))
	for _, u := range opts.unidades {
		unidades = append(unidades, templates.Option{Value: strconv.Itoa(u.ID), Label: u.Label()})
	}
	return templates.FormView(templates.Form{
		ID:     "asignar-form",
		Action: routepath.AppRegistrarUsuarioUnidad,
		Submit: consolei18n.T(loc, "registrar.assign_submit"),
		Error:  state.message,
		Fields: []templates.Field{
			b.Select("propietario", propietarios),
			b.Select("unidad_habitacional", unidades),
			b.Input("fecha_inicio", "date", false),
		},
	})
}
