package socialareas

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/myhome/console/internal/backend"
	"github.com/myhome/console/internal/payments"
	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/platform/httpx"
	consolei18n "github.com/myhome/console/internal/services/console/platform/i18n"
	"github.com/myhome/console/internal/services/console/platform/pagerender"
	"github.com/myhome/console/internal/services/console/platform/weberror"
	"github.com/myhome/console/internal/services/console/routepath"
	"github.com/myhome/console/internal/services/console/templates"
)

type handlers struct {
	service service
	deps    module.Dependencies
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{service: s, deps: deps}
}

func (h handlers) session(r *http.Request) backend.Session {
	if h.deps.ResolveSession == nil {
		return nil
	}
	return h.deps.ResolveSession(r)
}

func (h handlers) handleAreas(w http.ResponseWriter, r *http.Request) {
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	header := templates.PageHeader(consolei18n.T(loc, "areas.title"), consolei18n.T(loc, "areas.subtitle"))
	areas, err := h.service.areas(httpx.RequestContext(r), h.session(r))
	if h.settled(w, r, err) {
		return
	}
	if err != nil {
		h.writeLoadError(w, r, err, header, routepath.AreasSocialesPrefix)
		return
	}
	cards := make([]templates.AreaCard, 0, len(areas))
	for _, a := range areas {
		cards = append(cards, templates.AreaCard{
			Title: a.Descripcion,
			Href:  routepath.AppAreaSocial(a.ID),
			Label: consolei18n.T(loc, "areas.view_bookings"),
		})
	}
	h.write(w, r, http.StatusOK, consolei18n.T(loc, "areas.title"), templates.Group(
		header,
		templates.AreaCards(cards, consolei18n.T(loc, "areas.empty")),
	))
}

func (h handlers) handleBookings(w http.ResponseWriter, r *http.Request) {
	areaID, err := strconv.Atoi(strings.TrimSpace(r.PathValue("areaID")))
	if err != nil || areaID <= 0 {
		h.handleNotFound(w, r)
		return
	}
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	self := routepath.AppAreaSocial(areaID)
	area, registros, found, err := h.service.bookings(httpx.RequestContext(r), h.session(r), areaID)
	if h.settled(w, r, err) {
		return
	}
	header := templates.PageHeader(consolei18n.T(loc, "areas.bookings_title", area.Descripcion), "")
	if err != nil {
		h.writeLoadError(w, r, err, header, self)
		return
	}
	if !found {
		h.handleNotFound(w, r)
		return
	}
	table := templates.Table{
		Columns: []string{
			consolei18n.T(loc, "column.id"),
			consolei18n.T(loc, "column.date"),
			consolei18n.T(loc, "column.description"),
			consolei18n.T(loc, "column.principal"),
		},
		Empty: consolei18n.T(loc, "areas.no_bookings"),
	}
	for _, reg := range registros {
		table.Rows = append(table.Rows, templates.TableRow{Cells: bookingCells(loc, reg)})
	}
	h.write(w, r, http.StatusOK, area.Descripcion, templates.Group(
		header,
		templates.Link(routepath.AreasSocialesPrefix, consolei18n.T(loc, "areas.back"), "btn-link"),
		templates.StatCards([]templates.Stat{{Label: consolei18n.T(loc, "areas.booking_count"), Value: strconv.Itoa(len(registros))}}),
		templates.DataTable(table),
	))
}

func bookingCells(loc consolei18n.Localizer, reg backend.RegistroAreaSocial) []templ.Component {
	date := reg.FechaReserva
	if t, ok := payments.ParseDate(reg.FechaReserva); ok {
		date = t.Format("02/01/2006")
	}
	principal := consolei18n.T(loc, "common.no")
	if reg.IsPrincipal {
		principal = consolei18n.T(loc, "common.yes")
	}
	return []templ.Component{
		templates.Text(strconv.Itoa(reg.ID)),
		templates.Text(date),
		templates.Text(reg.Descripcion),
		templates.Text(principal),
	}
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
}

// settled reports whether the response is already decided: the browser went
// away or the session was rejected and the browser sent to sign in.
func (h handlers) settled(w http.ResponseWriter, r *http.Request, err error) bool {
	if weberror.RequestGone(r) {
		return true
	}
	return err != nil && weberror.HandleAuthFailure(w, r, h.deps, err)
}

func (h handlers) writeLoadError(w http.ResponseWriter, r *http.Request, err error, header templ.Component, retry string) {
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	h.deps.Logger.V(1).Info("social areas load failed", "path", r.URL.Path, "error", err.Error())
	h.write(w, r, weberror.StatusFor(err), consolei18n.T(loc, "areas.title"), templates.Group(header, templates.AlertBanner(templates.Alert{
		Kind:       templates.AlertError,
		Text:       weberror.PublicMessage(loc, err),
		RetryURL:   retry,
		RetryLabel: consolei18n.T(loc, "list.retry"),
	})))
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	err := pagerender.WriteModulePage(w, r, h.deps, pagerender.ModulePage{
		Title:      title,
		StatusCode: status,
		Active:     templates.NavAreas,
		Fragment:   body,
	})
	if err != nil {
		h.deps.Logger.Error(err, "render social areas page")
	}
}
