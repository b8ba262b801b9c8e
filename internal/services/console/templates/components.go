package templates

import (
	"github.com/a-h/templ"
)

// Alert kinds map to banner styles.
const (
	AlertSuccess = "success"
	AlertInfo    = "info"
	AlertError   = "error"
)

// ListAlertID is the region delete failures swap into.
const ListAlertID = "list-alert"

// Alert is a banner. Blocking banners use role=alertdialog.
type Alert struct {
	Kind       string
	Text       string
	RetryURL   string
	RetryLabel string
	BackURL    string
	BackLabel  string
	Blocking   bool
}

// AlertBanner renders a banner with optional retry and back links.
func AlertBanner(a Alert) templ.Component {
	return component(func(h *html) {
		kind := a.Kind
		if kind == "" {
			kind = AlertInfo
		}
		h.raw("<div")
		h.attr("class", "alert alert-"+kind)
		if a.Blocking {
			h.raw(` role="alertdialog" aria-modal="true"`)
		} else {
			h.raw(` role="alert"`)
		}
		h.raw(">")
		h.el("p", "", a.Text)
		if a.RetryURL != "" {
			h.raw(`<a class="btn btn-retry"`)
			h.attr("href", a.RetryURL)
			h.raw(">")
			h.text(a.RetryLabel)
			h.raw("</a>")
		}
		if a.BackURL != "" {
			h.raw(`<a class="btn"`)
			h.attr("href", a.BackURL)
			h.raw(">")
			h.text(a.BackLabel)
			h.raw("</a>")
		}
		h.raw("</div>")
	})
}

// PageHeader renders a page title and optional subtitle.
func PageHeader(title, subtitle string) templ.Component {
	return component(func(h *html) {
		h.raw(`<header class="page-header">`)
		h.el("h1", "", title)
		if subtitle != "" {
			h.el("p", "subtitle", subtitle)
		}
		h.raw("</header>")
	})
}

// Stat is one summary card.
type Stat struct {
	Label string
	Value string
}

// StatCards renders summary cards.
func StatCards(stats []Stat) templ.Component {
	return component(func(h *html) {
		if len(stats) == 0 {
			return
		}
		h.raw(`<div class="stats">`)
		for _, s := range stats {
			h.raw(`<div class="stat-card">`)
			h.el("span", "stat-value", s.Value)
			h.el("span", "stat-label", s.Label)
			h.raw("</div>")
		}
		h.raw("</div>")
	})
}

// Badge renders a small status label.
func Badge(text, kind string) templ.Component {
	return component(func(h *html) {
		h.raw("<span")
		h.attr("class", "badge badge-"+kind)
		h.raw(">")
		h.text(text)
		h.raw("</span>")
	})
}

// TableRow is one rendered table row.
type TableRow struct {
	Cells   []templ.Component
	Actions templ.Component
}

// Table is a data table. Actions adds a trailing column when ActionsLabel
// is set.
type Table struct {
	Columns      []string
	ActionsLabel string
	Rows         []TableRow
	Empty        string
}

// DataTable renders a table or its empty message.
func DataTable(t Table) templ.Component {
	return component(func(h *html) {
		if len(t.Rows) == 0 {
			h.el("p", "empty", t.Empty)
			return
		}
		h.raw(`<div class="table-wrap"><table class="table"><thead><tr>`)
		for _, col := range t.Columns {
			h.el("th", "", col)
		}
		if t.ActionsLabel != "" {
			h.el("th", "actions", t.ActionsLabel)
		}
		h.raw("</tr></thead><tbody>")
		for _, row := range t.Rows {
			h.raw("<tr>")
			for _, cell := range row.Cells {
				h.raw("<td>")
				h.render(cell)
				h.raw("</td>")
			}
			if t.ActionsLabel != "" {
				h.raw(`<td class="actions">`)
				h.render(row.Actions)
				h.raw("</td>")
			}
			h.raw("</tr>")
		}
		h.raw("</tbody></table></div>")
	})
}

// Link renders an anchor styled as a button.
func Link(href, label, class string) templ.Component {
	return component(func(h *html) {
		h.raw("<a")
		h.attr("class", "btn "+class)
		h.attr("href", href)
		h.raw(">")
		h.text(label)
		h.raw("</a>")
	})
}

// DeleteButton posts to action. HTMX asks confirm first and then sends
// confirm=yes; without HTMX the server answers with a confirmation page.
func DeleteButton(action, confirmText, label string) templ.Component {
	return component(func(h *html) {
		h.raw(`<form method="post" class="inline"`)
		h.attr("action", action)
		h.attr("hx-post", action)
		h.attr("hx-confirm", confirmText)
		h.raw(` hx-vals='{"confirm":"yes"}'`)
		h.attr("hx-target", "#"+ListAlertID)
		h.raw(` hx-swap="innerHTML"><button type="submit" class="btn btn-danger">`)
		h.text(label)
		h.raw("</button></form>")
	})
}

// ConfirmDelete renders the non-HTMX delete confirmation.
func ConfirmDelete(message, action, cancelURL string, loc Localizer) templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="confirm" role="alertdialog" aria-modal="true">`)
		h.el("h2", "", T(loc, "list.confirm_title"))
		h.el("p", "", message)
		h.raw(`<form method="post"`)
		h.attr("action", action)
		h.raw(`><input type="hidden" name="confirm" value="yes"><button type="submit" class="btn btn-danger">`)
		h.text(T(loc, "list.confirm_yes"))
		h.raw("</button> <a")
		h.attr("class", "btn")
		h.attr("href", cancelURL)
		h.raw(">")
		h.text(T(loc, "list.confirm_no"))
		h.raw("</a></form></section>")
	})
}

// Modal renders an overlay dialog with a close link.
func Modal(title string, body templ.Component, closeURL, closeLabel string) templ.Component {
	return component(func(h *html) {
		h.raw(`<div class="modal-backdrop"><div class="modal" role="dialog" aria-modal="true"><header class="modal-header">`)
		h.el("h2", "", title)
		h.raw(`<a class="modal-close"`)
		h.attr("href", closeURL)
		h.attr("aria-label", closeLabel)
		h.raw(">&times;</a></header>")
		h.render(body)
		h.raw("</div></div>")
	})
}

// Card renders a titled box around body.
func Card(title string, body templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="card">`)
		if title != "" {
			h.el("h2", "card-title", title)
		}
		h.render(body)
		h.raw("</section>")
	})
}

// Indicator renders the HTMX loading indicator.
func Indicator(id, label string) templ.Component {
	return component(func(h *html) {
		h.raw(`<span class="htmx-indicator"`)
		h.attr("id", id)
		h.raw(">")
		h.text(label)
		h.raw("</span>")
	})
}

// Region wraps body in an element with id so HTMX can target it.
func Region(id string, body templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw("<div")
		h.attr("id", id)
		h.raw(">")
		h.render(body)
		h.raw("</div>")
	})
}

// RefreshLink reloads href into the main content and shows indicatorID while
// the request is in flight.
func RefreshLink(href, label, indicatorID string) templ.Component {
	return component(func(h *html) {
		h.raw(`<a class="btn btn-refresh"`)
		h.attr("href", href)
		h.attr("hx-get", href)
		h.attr("hx-target", "#"+MainContentID)
		h.attr("hx-indicator", "#"+indicatorID)
		h.raw(">")
		h.text(label)
		h.raw("</a>")
	})
}
