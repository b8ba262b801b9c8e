package templates

import (
	"strconv"

	"github.com/a-h/templ"

	module "github.com/myhome/console/internal/services/console/module"
)

// FooterLink is a link under a sign-in card.
type FooterLink struct {
	Href  string
	Label string
}

// AuthCard frames the signed-out forms.
func AuthCard(title, subtitle string, body templ.Component, links ...FooterLink) templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="auth-card">`)
		h.el("h1", "", title)
		if subtitle != "" {
			h.el("p", "subtitle", subtitle)
		}
		h.render(body)
		if len(links) > 0 {
			h.raw(`<nav class="auth-links">`)
			for _, link := range links {
				h.raw("<a")
				h.attr("href", link.Href)
				h.raw(">")
				h.text(link.Label)
				h.raw("</a>")
			}
			h.raw("</nav>")
		}
		h.raw("</section>")
	})
}

// ProfileCard renders the viewer summary on the home page.
func ProfileCard(viewer module.Viewer, loc Localizer) templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="card profile-card"><div class="avatar">`)
		if viewer.ImageURL != "" {
			h.raw("<img")
			h.url("src", viewer.ImageURL)
			h.attr("alt", viewer.DisplayName)
			h.raw(">")
		} else {
			h.el("span", "initials", viewer.Initials)
		}
		h.raw(`</div><div class="profile-body">`)
		h.el("h2", "", viewer.DisplayName)
		if viewer.RoleLabel != "" {
			h.render(Badge(viewer.RoleLabel, "role"))
		}
		h.raw("<dl>")
		user := viewer.Profile.User
		perfil := viewer.Profile.Perfil
		h.definition(T(loc, "profile.username"), user.Username)
		h.definition(T(loc, "profile.email"), user.Email)
		h.definition(T(loc, "profile.phone"), perfil.Telefono)
		h.definition(T(loc, "profile.address"), perfil.Direccion)
		if user.DateJoined != "" {
			h.definition(T(loc, "profile.joined"), user.DateJoined)
		}
		h.raw("</dl></div></section>")
	})
}

func (h *html) definition(term, value string) {
	if value == "" {
		value = "-"
	}
	h.el("dt", "", term)
	h.el("dd", "", value)
}

// AreaCard is one shared facility tile.
type AreaCard struct {
	Title string
	Href  string
	Label string
}

// AreaCards renders facility tiles.
func AreaCards(cards []AreaCard, empty string) templ.Component {
	return component(func(h *html) {
		if len(cards) == 0 {
			h.el("p", "empty", empty)
			return
		}
		h.raw(`<div class="cards">`)
		for _, card := range cards {
			h.raw(`<article class="card area-card">`)
			h.el("h3", "", card.Title)
			h.render(Link(card.Href, card.Label, "btn-primary"))
			h.raw("</article>")
		}
		h.raw("</div>")
	})
}

// Bar is one chart column. Percent is already clamped to 0..100.
type Bar struct {
	Label   string
	Value   string
	Percent float64
}

// BarChart renders CSS bars.
func BarChart(title string, bars []Bar) templ.Component {
	return component(func(h *html) {
		h.raw(`<figure class="chart">`)
		h.el("figcaption", "", title)
		h.raw(`<div class="chart-bars">`)
		for _, bar := range bars {
			h.raw(`<div class="chart-col"`)
			h.attr("title", bar.Label+": "+bar.Value)
			h.raw(`><div class="chart-bar"`)
			h.attr("style", "height: "+strconv.FormatFloat(bar.Percent, 'f', 1, 64)+"%")
			h.raw("></div>")
			h.el("span", "chart-label", bar.Label)
			h.raw("</div>")
		}
		h.raw("</div></figure>")
	})
}

// Tabs renders view switch links.
func Tabs(items []FooterLink, active string) templ.Component {
	return component(func(h *html) {
		h.raw(`<nav class="tabs">`)
		for _, item := range items {
			h.raw("<a")
			h.attr("href", item.Href)
			if item.Href == active {
				h.raw(` class="active" aria-current="page"`)
			}
			h.raw(">")
			h.text(item.Label)
			h.raw("</a>")
		}
		h.raw("</nav>")
	})
}
