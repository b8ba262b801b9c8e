package complaints

import (
	"net/http"

	"github.com/myhome/console/internal/backend"
	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/platform/flash"
	"github.com/myhome/console/internal/services/console/platform/httpx"
	consolei18n "github.com/myhome/console/internal/services/console/platform/i18n"
	"github.com/myhome/console/internal/services/console/platform/resourcelist"
	"github.com/myhome/console/internal/services/console/platform/weberror"
	"github.com/myhome/console/internal/services/console/routepath"
)

type handlers struct {
	service service
	list    *resourcelist.Controller[backend.Queja]
	deps    module.Dependencies
}

func newHandlers(s service, list *resourcelist.Controller[backend.Queja], deps module.Dependencies) handlers {
	return handlers{service: s, list: list, deps: deps}
}

// handleCreate files a complaint. A rejected form re-renders the list with
// the form errors.
func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.list.RenderList(w, r, resourcelist.ListOptions{StatusCode: http.StatusBadRequest})
		return
	}
	var sess module.Session
	if h.deps.ResolveSession != nil {
		sess = h.deps.ResolveSession(r)
	}
	errs, err := h.service.create(httpx.RequestContext(r), sess, r.PostForm)
	if weberror.RequestGone(r) {
		return
	}
	if err != nil && weberror.HandleAuthFailure(w, r, h.deps, err) {
		return
	}
	if errs.Empty() && err == nil {
		flash.Write(w, r, flash.Success("quejas.created"), h.deps.SchemePolicy)
		httpx.WriteRedirect(w, r, routepath.QuejasPrefix)
		return
	}
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	message := ""
	if err != nil {
		message = weberror.PublicMessage(loc, err)
	}
	h.list.RenderList(w, r, resourcelist.ListOptions{
		StatusCode: http.StatusUnprocessableEntity,
		Extra:      createForm(loc, r.PostForm, errs, message),
	})
}
