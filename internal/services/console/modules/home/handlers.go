package home

import (
	"net/http"
	"net/url"

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

func (h handlers) viewer(r *http.Request) module.Viewer {
	if h.deps.ResolveViewer == nil {
		return module.Viewer{}
	}
	return h.deps.ResolveViewer(r)
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, nil, nil, "")
}

func (h handlers) handlePerfil(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, nil, nil, "")
		return
	}
	viewer := h.viewer(r)
	var sess module.Session
	if h.deps.ResolveSession != nil {
		sess = h.deps.ResolveSession(r)
	}
	errs, err := h.service.updatePerfil(httpx.RequestContext(r), sess, viewer.Profile.Perfil.ID, r.PostForm)
	if weberror.RequestGone(r) {
		return
	}
	if err != nil && weberror.HandleAuthFailure(w, r, h.deps, err) {
		return
	}
	if !errs.Empty() {
		h.render(w, r, http.StatusUnprocessableEntity, r.PostForm, errs, "")
		return
	}
	if err != nil {
		loc, _ := consolei18n.ResolveLocalizer(w, r)
		h.render(w, r, http.StatusUnprocessableEntity, r.PostForm, nil, weberror.PublicMessage(loc, err))
		return
	}
	flash.Write(w, r, flash.Success("flash.profile_updated"), h.deps.SchemePolicy)
	httpx.WriteRedirect(w, r, routepath.AppHome)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
}

// render shows the profile card and the edit form. values is nil on first
// display, so the form starts from the stored profile.
func (h handlers) render(w http.ResponseWriter, r *http.Request, status int, values url.Values, errs validation.FieldErrors, message string) {
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	viewer := h.viewer(r)
	if values == nil {
		perfil := viewer.Profile.Perfil
		values = url.Values{
			"telefono":          {perfil.Telefono},
			"direccion":         {perfil.Direccion},
			"imagen_perfil_url": {perfil.ImagenPerfilURL},
		}
	}
	b := formfields.New(loc, values, errs)
	form := templates.Form{
		ID:     "perfil-form",
		Action: routepath.AppPerfil,
		Submit: consolei18n.T(loc, "home.save_profile"),
		Error:  message,
		Fields: []templates.Field{
			b.Input("telefono", "tel", true),
			b.Input("direccion", "text", true),
			b.Input("imagen_perfil_url", "url", false),
		},
	}
	body := templates.Group(
		templates.PageHeader(consolei18n.T(loc, "home.title", viewer.DisplayName), consolei18n.T(loc, "home.subtitle")),
		templates.ProfileCard(viewer, loc),
		templates.Card(consolei18n.T(loc, "home.edit_profile"), templates.FormView(form)),
	)
	err := pagerender.WriteModulePage(w, r, h.deps, pagerender.ModulePage{
		Title:      consolei18n.T(loc, "nav.home"),
		StatusCode: status,
		Active:     templates.NavHome,
		Fragment:   body,
	})
	if err != nil {
		h.deps.Logger.Error(err, "render home page")
	}
}
