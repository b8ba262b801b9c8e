// Package templates renders console HTML with a-h/templ components.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	consolei18n "github.com/myhome/console/internal/services/console/platform/i18n"
)

// Localizer formats catalog messages.
type Localizer = consolei18n.Localizer

// T formats key with loc.
func T(loc Localizer, key string, args ...any) string {
	return consolei18n.T(loc, key, args...)
}

// html accumulates output and keeps the first write error.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTML(ctx context.Context, w io.Writer) *html {
	return &html{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes escaped text.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes name="value" with the value escaped.
func (h *html) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// url writes a sanitized URL attribute.
func (h *html) url(name, value string) {
	h.attr(name, string(templ.URL(value)))
}

// flag writes a boolean attribute when on.
func (h *html) flag(name string, on bool) {
	if on {
		h.raw(" " + name)
	}
}

// open writes <tag class="..."> ; an empty class is omitted.
func (h *html) open(tag, class string) {
	h.raw("<" + tag)
	if class != "" {
		h.attr("class", class)
	}
	h.raw(">")
}

func (h *html) close(tag string) {
	h.raw("</" + tag + ">")
}

// el writes <tag class="...">text</tag>.
func (h *html) el(tag, class, text string) {
	h.open(tag, class)
	h.text(text)
	h.close(tag)
}

// render writes a child component.
func (h *html) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// children renders the components passed through templ.WithChildren.
func (h *html) children() {
	h.render(templ.GetChildren(h.ctx))
}

func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(ctx, w)
		fn(h)
		return h.err
	})
}

// Text renders escaped text.
func Text(s string) templ.Component {
	return component(func(h *html) { h.text(s) })
}

// Group renders components in order.
func Group(items ...templ.Component) templ.Component {
	return component(func(h *html) {
		for _, item := range items {
			h.render(item)
		}
	})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
