package payments

import (
	"context"
	"net/http"
	"strconv"

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

type gateway interface {
	ListPagosDespensa(ctx context.Context, sess backend.Session) ([]backend.PagoDespensa, error)
}

type unavailableGateway struct{}

func (unavailableGateway) ListPagosDespensa(context.Context, backend.Session) ([]backend.PagoDespensa, error) {
	return nil, &backend.Error{Kind: backend.KindNetwork, Message: "backend is not configured"}
}

// viewHistorial selects the history table instead of the dashboard.
const viewHistorial = "historial"

type handlers struct {
	gateway gateway
	deps    module.Dependencies
}

func newHandlers(g gateway, deps module.Dependencies) handlers {
	return handlers{gateway: g, deps: deps}
}

func (h handlers) handlePagos(w http.ResponseWriter, r *http.Request) {
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	historial := r.URL.Query().Get("view") == viewHistorial
	self := routepath.PagosPrefix
	if historial {
		self = routepath.AppPagosHistorial()
	}
	header := templates.Group(
		templates.PageHeader(consolei18n.T(loc, "pagos.title"), consolei18n.T(loc, "pagos.subtitle")),
		templates.Tabs([]templates.FooterLink{
			{Href: routepath.PagosPrefix, Label: consolei18n.T(loc, "pagos.tab_dashboard")},
			{Href: routepath.AppPagosHistorial(), Label: consolei18n.T(loc, "pagos.tab_history")},
		}, self),
	)

	var sess backend.Session
	if h.deps.ResolveSession != nil {
		sess = h.deps.ResolveSession(r)
	}
	pagos, err := h.gateway.ListPagosDespensa(httpx.RequestContext(r), sess)
	if weberror.RequestGone(r) {
		return
	}
	if err != nil {
		if weberror.HandleAuthFailure(w, r, h.deps, err) {
			return
		}
		h.deps.Logger.V(1).Info("payments load failed", "error", err.Error())
		h.write(w, r, weberror.StatusFor(err), templates.Group(header, templates.AlertBanner(templates.Alert{
			Kind:       templates.AlertError,
			Text:       weberror.PublicMessage(loc, err),
			RetryURL:   self,
			RetryLabel: consolei18n.T(loc, "list.retry"),
		})))
		return
	}
	if historial {
		h.write(w, r, http.StatusOK, templates.Group(header, historyTable(loc, pagos)))
		return
	}
	h.write(w, r, http.StatusOK, templates.Group(header, dashboard(loc, payments.Summarize(pagos))))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
}

func dashboard(loc consolei18n.Localizer, s payments.Summary) templ.Component {
	stats := []templates.Stat{
		{Label: consolei18n.T(loc, "pagos.total"), Value: payments.FormatARS(s.Total)},
		{Label: consolei18n.T(loc, "pagos.average"), Value: payments.FormatARS(s.Average)},
		{Label: consolei18n.T(loc, "pagos.count"), Value: strconv.Itoa(s.Count)},
	}
	if s.Undated > 0 {
		stats = append(stats, templates.Stat{Label: consolei18n.T(loc, "pagos.undated"), Value: strconv.Itoa(s.Undated)})
	}
	bars := make([]templates.Bar, 0, payments.Months)
	for i, amount := range s.Monthly {
		bars = append(bars, templates.Bar{
			Label:   consolei18n.T(loc, "month."+strconv.Itoa(i+1)),
			Value:   payments.FormatARS(amount),
			Percent: payments.BarPercent(amount),
		})
	}
	return templates.Group(
		templates.StatCards(stats),
		templates.BarChart(consolei18n.T(loc, "pagos.chart_title", payments.FormatARS(payments.ChartMax)), bars),
	)
}

func historyTable(loc consolei18n.Localizer, pagos []backend.PagoDespensa) templ.Component {
	table := templates.Table{
		Columns: []string{
			consolei18n.T(loc, "column.id"),
			consolei18n.T(loc, "column.date"),
			consolei18n.T(loc, "column.amount"),
			consolei18n.T(loc, "column.description"),
		},
		Empty: consolei18n.T(loc, "pagos.empty"),
	}
	for _, p := range pagos {
		date := p.FechadePago
		if t, ok := payments.ParseDate(p.FechadePago); ok {
			date = t.Format("02/01/2006")
		}
		table.Rows = append(table.Rows, templates.TableRow{Cells: []templ.Component{
			templates.Text(strconv.Itoa(p.ID)),
			templates.Text(date),
			templates.Text(payments.FormatARS(float64(p.Monto))),
			templates.Text(p.Descripcion),
		}})
	}
	return templates.DataTable(table)
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, status int, body templ.Component) {
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	err := pagerender.WriteModulePage(w, r, h.deps, pagerender.ModulePage{
		Title:      consolei18n.T(loc, "pagos.title"),
		StatusCode: status,
		Active:     templates.NavPagos,
		Fragment:   body,
	})
	if err != nil {
		h.deps.Logger.Error(err, "render payments page")
	}
}
