package templates

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	module "github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/routepath"
)

// htmxConfig lets error responses swap so validation and alert fragments
// reach the page.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"[45]..","swap":true,"error":false}]}`

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// MainContentID is the element boosted navigation swaps into.
const MainContentID = "main-content"

// Navigation keys mark the active entry.
const (
	NavHome         = "inicio"
	NavRegistrar    = "registrar-usuario"
	NavUsuarios     = "usuarios"
	NavPropietarios = "propietarios"
	NavPersonal     = "personal"
	NavAreas        = "areas-sociales"
	NavQuejas       = "quejas"
	NavPagos        = "pagos"
)

// Notice is a rendered flash message.
type Notice struct {
	Kind string
	Text string
}

// LayoutData configures the app shell.
type LayoutData struct {
	Title  string
	Lang   string
	Viewer module.Viewer
	Active string
	Notice *Notice
}

type navItem struct {
	key   string
	label string
	href  string
}

func navItems(viewer module.Viewer, loc Localizer) []navItem {
	items := []navItem{{key: NavHome, label: T(loc, "nav.home"), href: routepath.AppHome}}
	if viewer.CanRegisterUsers() {
		items = append(items, navItem{key: NavRegistrar, label: T(loc, "nav.register_user"), href: routepath.RegistrarUsuarioPrefix})
	}
	return append(items,
		navItem{key: NavUsuarios, label: T(loc, "nav.users"), href: routepath.UsuariosPrefix},
		navItem{key: NavPropietarios, label: T(loc, "nav.owners"), href: routepath.PropietariosPrefix},
		navItem{key: NavPersonal, label: T(loc, "nav.staff"), href: routepath.PersonalPrefix},
		navItem{key: NavAreas, label: T(loc, "nav.social_areas"), href: routepath.AreasSocialesPrefix},
		navItem{key: NavQuejas, label: T(loc, "nav.complaints"), href: routepath.QuejasPrefix},
		navItem{key: NavPagos, label: T(loc, "nav.payments"), href: routepath.PagosPrefix},
	)
}

func (h *html) head(title, lang string, loc Localizer) {
	if lang == "" {
		lang = "es"
	}
	h.raw("<!DOCTYPE html><html")
	h.attr("lang", lang)
	h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
	h.raw(`<meta name="htmx-config"`)
	h.attr("content", htmxConfig)
	h.raw("><title>")
	h.text(pageTitle(title, loc))
	h.raw("</title>")
	h.raw(`<link rel="stylesheet"`)
	h.attr("href", routepath.StaticPrefix+"app.css")
	h.raw(`><script defer`)
	h.attr("src", htmxScript)
	h.raw("></script></head>")
}

func pageTitle(title string, loc Localizer) string {
	app := T(loc, "app.name")
	title = strings.TrimSpace(title)
	if title == "" {
		return app
	}
	return title + " | " + app
}

// AppLayout renders the signed-in shell around its children.
func AppLayout(data LayoutData, loc Localizer) templ.Component {
	return component(func(h *html) {
		h.head(data.Title, data.Lang, loc)
		h.raw(`<body hx-boost="true"`)
		h.attr("hx-target", "#"+MainContentID)
		h.raw(` hx-swap="innerHTML">`)
		h.navbar(data, loc)
		h.raw(`<main class="app-main"`)
		h.attr("id", MainContentID)
		h.raw(">")
		h.render(MainContent(data.Notice))
		h.raw("</main></body></html>")
	})
}

func (h *html) navbar(data LayoutData, loc Localizer) {
	h.raw(`<nav class="navbar" hx-boost="false"><a class="brand"`)
	h.attr("href", routepath.AppHome)
	h.raw(">")
	h.text(T(loc, "app.name"))
	h.raw(`</a><ul class="nav-items">`)
	for _, item := range navItems(data.Viewer, loc) {
		h.raw("<li><a")
		h.attr("href", item.href)
		h.attr("hx-get", item.href)
		h.attr("hx-target", "#"+MainContentID)
		h.raw(` hx-push-url="true"`)
		if item.key == data.Active {
			h.raw(` class="active" aria-current="page"`)
		}
		h.raw(">")
		h.text(item.label)
		h.raw("</a></li>")
	}
	h.raw(`</ul><div class="nav-user">`)
	if data.Viewer.DisplayName != "" {
		h.el("span", "nav-user-name", data.Viewer.DisplayName)
	}
	h.raw(`<form method="post" class="inline"`)
	h.attr("action", routepath.Logout)
	h.raw(`><button type="submit" class="btn btn-link">`)
	h.text(T(loc, "nav.logout"))
	h.raw("</button></form>")
	h.langSwitch(loc)
	h.raw("</div></nav>")
}

func (h *html) langSwitch(loc Localizer) {
	h.raw(`<span class="lang-switch">`)
	for _, code := range []string{"es", "en"} {
		h.raw("<a")
		h.attr("href", "?lang="+code)
		h.raw(">")
		h.text(strings.ToUpper(code))
		h.raw("</a>")
	}
	h.raw("</span>")
}

// PublicLayout renders the signed-out shell around its children.
func PublicLayout(title, lang string, notice *Notice, loc Localizer) templ.Component {
	return component(func(h *html) {
		h.head(title, lang, loc)
		h.raw(`<body class="public"><main class="public-main"`)
		h.attr("id", MainContentID)
		h.raw(">")
		h.render(MainContent(notice))
		h.raw(`<footer class="public-footer">`)
		h.langSwitch(loc)
		h.raw("</footer></main></body></html>")
	})
}

// MainContent renders a notice followed by the children. HTMX requests
// receive only this fragment.
func MainContent(notice *Notice) templ.Component {
	return component(func(h *html) {
		if notice != nil && notice.Text != "" {
			h.render(AlertBanner(Alert{Kind: notice.Kind, Text: notice.Text}))
		}
		h.children()
	})
}

// ErrorPageTitle names an error page.
func ErrorPageTitle(status int, loc Localizer) string {
	if status == http.StatusNotFound {
		return T(loc, "error.not_found_title")
	}
	return T(loc, "error.server_title")
}

// ErrorState renders the body of an error page.
func ErrorState(status int, loc Localizer) templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="error-state">`)
		h.el("h1", "", itoa(status))
		h.el("h2", "", ErrorPageTitle(status, loc))
		if status == http.StatusNotFound {
			h.el("p", "", T(loc, "error.not_found_body"))
		} else {
			h.el("p", "", T(loc, "error.server_body"))
		}
		h.raw(`<a class="btn"`)
		h.attr("href", routepath.Root)
		h.raw(">")
		h.text(T(loc, "error.back_home"))
		h.raw("</a></section>")
	})
}
