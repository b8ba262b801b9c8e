// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	module "github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/platform/flash"
	"github.com/myhome/console/internal/services/console/platform/httpx"
	consolei18n "github.com/myhome/console/internal/services/console/platform/i18n"
	"github.com/myhome/console/internal/services/console/templates"
)

// ModulePage describes a module page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Active     string
	Fragment   templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage writes a page inside the signed-in shell. HTMX requests
// receive only the main content.
func WriteModulePage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode, fragment := normalize(page)
	loc, lang := consolei18n.ResolveLocalizer(w, r)
	notice := ReadNotice(w, r, deps, loc)
	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if httpx.IsHTMXRequest(r) {
		w.WriteHeader(statusCode)
		return templates.MainContent(notice).Render(ctx, w)
	}

	viewer := module.Viewer{}
	if deps.ResolveViewer != nil {
		viewer = deps.ResolveViewer(r)
	}
	w.WriteHeader(statusCode)
	data := templates.LayoutData{Title: page.Title, Lang: lang, Viewer: viewer, Active: page.Active, Notice: notice}
	return templates.AppLayout(data, loc).Render(ctx, w)
}

// WritePublicPage writes a page inside the signed-out shell.
func WritePublicPage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode, fragment := normalize(page)
	loc, lang := consolei18n.ResolveLocalizer(w, r)
	notice := ReadNotice(w, r, deps, loc)
	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if httpx.IsHTMXRequest(r) {
		return templates.MainContent(notice).Render(ctx, w)
	}
	return templates.PublicLayout(page.Title, lang, notice, loc).Render(ctx, w)
}

// WriteFragment writes component alone, for HTMX swaps into a named target.
func WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, component templ.Component) error {
	if w == nil {
		return nil
	}
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if component == nil {
		return nil
	}
	return component.Render(httpx.RequestContext(r), w)
}

// ReadNotice consumes the pending flash notice and localizes it.
func ReadNotice(w http.ResponseWriter, r *http.Request, deps module.Dependencies, loc consolei18n.Localizer) *templates.Notice {
	notice, ok := flash.ReadAndClear(w, r, deps.SchemePolicy)
	if !ok {
		return nil
	}
	args := make([]any, 0, len(notice.Args))
	for _, arg := range notice.Args {
		args = append(args, arg)
	}
	return &templates.Notice{Kind: string(notice.Kind), Text: consolei18n.T(loc, notice.Key, args...)}
}

func normalize(page ModulePage) (int, templ.Component) {
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}
	return statusCode, fragment
}
