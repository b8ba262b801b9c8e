// Package resourcelist implements the load, table, edit and delete cycle
// shared by the console management views.
package resourcelist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	apperrors "github.com/myhome/console/internal/platform/errors"
	"github.com/myhome/console/internal/services/console/module"
	"github.com/myhome/console/internal/services/console/platform/flash"
	"github.com/myhome/console/internal/services/console/platform/httpx"
	consolei18n "github.com/myhome/console/internal/services/console/platform/i18n"
	"github.com/myhome/console/internal/services/console/platform/pagerender"
	"github.com/myhome/console/internal/services/console/platform/weberror"
	"github.com/myhome/console/internal/services/console/routepath"
	"github.com/myhome/console/internal/services/console/templates"
	"github.com/myhome/console/internal/validation"
)

// ConfirmValue is the form value that proves a delete was confirmed.
const ConfirmValue = "yes"

// Localizer formats catalog messages.
type Localizer = consolei18n.Localizer

// Config parameterizes one list view over items of type T.
type Config[T any] struct {
	// Prefix is the list route, for example /app/usuarios/.
	Prefix string
	// Active is the navigation key highlighted while the list is shown.
	Active      string
	TitleKey    string
	SubtitleKey string
	EmptyKey    string
	// Columns are catalog keys for the table headings.
	Columns []string

	Load   func(context.Context, module.Session) ([]T, error)
	Filter func(T) bool
	ID     func(T) int
	Row    func(Localizer, T) []templ.Component
	Stats  func(Localizer, []T) []templates.Stat
	// Extra renders between the stats and the table unless ListOptions
	// supplies its own.
	Extra func(Localizer) templ.Component

	// EditForm builds the modal fields. values is nil when the modal opens
	// and holds the submitted form when it is shown again after a failure.
	EditForm     func(loc Localizer, item T, values url.Values, errs validation.FieldErrors) []templates.Field
	EditTitleKey string
	// Update validates values and sends the change. Field errors returned
	// without an error mean no call was made.
	Update func(ctx context.Context, sess module.Session, item T, values url.Values) (validation.FieldErrors, error)
	Delete func(ctx context.Context, sess module.Session, id int) error

	// CanEdit defaults to every viewer. CanDelete defaults to superusers.
	CanEdit   func(module.Viewer) bool
	CanDelete func(module.Viewer) bool
}

// Controller serves one configured list.
type Controller[T any] struct {
	cfg  Config[T]
	deps module.Dependencies
}

// ListOptions adds content to a rendered list.
type ListOptions struct {
	StatusCode int
	Extra      templ.Component
	Alert      *templates.Alert
	Modal      templ.Component
}

// New validates cfg and returns a controller.
func New[T any](cfg Config[T], deps module.Dependencies) (*Controller[T], error) {
	cfg.Prefix = strings.TrimSpace(cfg.Prefix)
	if !strings.HasPrefix(cfg.Prefix, "/") || !strings.HasSuffix(cfg.Prefix, "/") {
		return nil, fmt.Errorf("resourcelist: prefix %q must start and end with /", cfg.Prefix)
	}
	if cfg.Load == nil || cfg.ID == nil || cfg.Row == nil {
		return nil, errors.New("resourcelist: load, id and row are required")
	}
	if cfg.Update != nil && cfg.EditForm == nil {
		return nil, errors.New("resourcelist: update requires an edit form")
	}
	if cfg.CanEdit == nil {
		cfg.CanEdit = func(module.Viewer) bool { return true }
	}
	if cfg.CanDelete == nil {
		cfg.CanDelete = module.Viewer.IsSuperuser
	}
	if cfg.EmptyKey == "" {
		cfg.EmptyKey = "list.empty"
	}
	if cfg.EditTitleKey == "" {
		cfg.EditTitleKey = "list.edit_title"
	}
	return &Controller[T]{cfg: cfg, deps: deps}, nil
}

// Register mounts the list, edit and delete routes on mux.
func (c *Controller[T]) Register(mux *http.ServeMux) {
	p := c.cfg.Prefix
	mux.HandleFunc(http.MethodGet+" "+p+"{$}", c.HandleList)
	mux.HandleFunc(p+"{$}", httpx.MethodNotAllowed(http.MethodGet))
	if c.cfg.Update != nil {
		mux.HandleFunc(http.MethodGet+" "+p+"{id}/edit", c.HandleEdit)
		mux.HandleFunc(http.MethodPost+" "+p+"{id}/edit", c.HandleUpdate)
		mux.HandleFunc(p+"{id}/edit", httpx.MethodNotAllowed(http.MethodGet+", "+http.MethodPost))
	}
	if c.cfg.Delete != nil {
		mux.HandleFunc(http.MethodPost+" "+p+"{id}/delete", c.HandleDelete)
		mux.HandleFunc(p+"{id}/delete", httpx.MethodNotAllowed(http.MethodPost))
	}
}

// HandleList renders the ready or error state.
func (c *Controller[T]) HandleList(w http.ResponseWriter, r *http.Request) {
	c.RenderList(w, r, ListOptions{})
}

// RenderList loads the items and renders the list with opts.
func (c *Controller[T]) RenderList(w http.ResponseWriter, r *http.Request, opts ListOptions) {
	items, err := c.load(r)
	if c.abandoned(w, r, err) {
		return
	}
	if err != nil {
		c.writeLoadError(w, r, err)
		return
	}
	c.writeList(w, r, items, opts)
}

// HandleEdit renders the list with the edit modal open.
func (c *Controller[T]) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := c.itemID(w, r)
	if !ok {
		return
	}
	if !c.cfg.CanEdit(c.viewer(r)) {
		weberror.WriteModuleError(w, r, apperrors.E(apperrors.KindForbidden, "edit not allowed"), c.deps)
		return
	}
	items, err := c.load(r)
	if c.abandoned(w, r, err) {
		return
	}
	if err != nil {
		c.writeLoadError(w, r, err)
		return
	}
	item, found := c.find(items, id)
	if !found {
		weberror.WriteAppError(w, r, http.StatusNotFound, c.deps)
		return
	}
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	c.writeList(w, r, items, ListOptions{Modal: c.modal(loc, item, nil, nil, "")})
}

// HandleUpdate submits the edit modal. Success reloads the list; failure
// keeps the modal open with status 422.
func (c *Controller[T]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := c.itemID(w, r)
	if !ok {
		return
	}
	if !c.cfg.CanEdit(c.viewer(r)) {
		weberror.WriteModuleError(w, r, apperrors.E(apperrors.KindForbidden, "edit not allowed"), c.deps)
		return
	}
	if err := r.ParseForm(); err != nil {
		weberror.WriteModuleError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form"), c.deps)
		return
	}
	items, err := c.load(r)
	if c.abandoned(w, r, err) {
		return
	}
	if err != nil {
		c.writeLoadError(w, r, err)
		return
	}
	item, found := c.find(items, id)
	if !found {
		weberror.WriteAppError(w, r, http.StatusNotFound, c.deps)
		return
	}

	fieldErrs, err := c.cfg.Update(httpx.RequestContext(r), c.session(r), item, r.PostForm)
	if c.abandoned(w, r, err) {
		return
	}
	if err == nil && fieldErrs.Empty() {
		flash.Write(w, r, flash.Success("list.updated"), c.deps.SchemePolicy)
		httpx.WriteRedirect(w, r, c.cfg.Prefix)
		return
	}
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	message := ""
	if err != nil {
		message = weberror.PublicMessage(loc, err)
	}
	c.writeList(w, r, items, ListOptions{
		StatusCode: http.StatusUnprocessableEntity,
		Modal:      c.modal(loc, item, r.PostForm, fieldErrs, message),
	})
}

// HandleDelete deletes after confirmation. An unconfirmed request renders
// the confirmation page. A failed delete shows a blocking alert and leaves
// the list as it was.
func (c *Controller[T]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := c.itemID(w, r)
	if !ok {
		return
	}
	if !c.cfg.CanDelete(c.viewer(r)) {
		weberror.WriteModuleError(w, r, apperrors.E(apperrors.KindForbidden, "delete not allowed"), c.deps)
		return
	}
	if err := r.ParseForm(); err != nil {
		weberror.WriteModuleError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form"), c.deps)
		return
	}
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	action := routepath.ItemDelete(c.cfg.Prefix, id)
	if r.PostForm.Get("confirm") != ConfirmValue {
		c.writePage(w, r, http.StatusOK, templates.ConfirmDelete(
			consolei18n.T(loc, "list.confirm_delete", id), action, c.cfg.Prefix, loc))
		return
	}

	err := c.cfg.Delete(httpx.RequestContext(r), c.session(r), id)
	if c.abandoned(w, r, err) {
		return
	}
	if err == nil {
		flash.Write(w, r, flash.Success("list.deleted"), c.deps.SchemePolicy)
		httpx.WriteRedirect(w, r, c.cfg.Prefix)
		return
	}

	alert := templates.AlertBanner(templates.Alert{
		Kind:      templates.AlertError,
		Text:      consolei18n.T(loc, "list.delete_failed", weberror.PublicMessage(loc, err)),
		BackURL:   c.cfg.Prefix,
		BackLabel: consolei18n.T(loc, "list.back"),
		Blocking:  true,
	})
	status := weberror.StatusFor(err)
	if httpx.IsHTMXRequest(r) {
		if err := pagerender.WriteFragment(w, r, status, alert); err != nil {
			c.deps.Logger.Error(err, "render delete alert", "prefix", c.cfg.Prefix)
		}
		return
	}
	c.writePage(w, r, status, templates.Group(c.header(loc), alert))
}

func (c *Controller[T]) load(r *http.Request) ([]T, error) {
	items, err := c.cfg.Load(httpx.RequestContext(r), c.session(r))
	if err != nil {
		return nil, err
	}
	if c.cfg.Filter == nil {
		return items, nil
	}
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if c.cfg.Filter(item) {
			kept = append(kept, item)
		}
	}
	return kept, nil
}

func (c *Controller[T]) find(items []T, id int) (T, bool) {
	for _, item := range items {
		if c.cfg.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// abandoned reports whether the response is already settled: the browser
// went away or the session is no longer accepted.
func (c *Controller[T]) abandoned(w http.ResponseWriter, r *http.Request, err error) bool {
	if weberror.RequestGone(r) {
		return true
	}
	return err != nil && weberror.HandleAuthFailure(w, r, c.deps, err)
}

func (c *Controller[T]) itemID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(r.PathValue("id")))
	if err != nil || id <= 0 {
		weberror.WriteAppError(w, r, http.StatusNotFound, c.deps)
		return 0, false
	}
	return id, true
}

func (c *Controller[T]) session(r *http.Request) module.Session {
	if c.deps.ResolveSession == nil {
		return nil
	}
	return c.deps.ResolveSession(r)
}

func (c *Controller[T]) viewer(r *http.Request) module.Viewer {
	if c.deps.ResolveViewer == nil {
		return module.Viewer{}
	}
	return c.deps.ResolveViewer(r)
}

func (c *Controller[T]) indicatorID() string {
	return strings.Trim(strings.ReplaceAll(c.cfg.Prefix, "/", "-"), "-") + "-loading"
}

func (c *Controller[T]) header(loc Localizer) templ.Component {
	subtitle := ""
	if c.cfg.SubtitleKey != "" {
		subtitle = consolei18n.T(loc, c.cfg.SubtitleKey)
	}
	return templates.Group(
		templates.PageHeader(consolei18n.T(loc, c.cfg.TitleKey), subtitle),
		templates.RefreshLink(c.cfg.Prefix, consolei18n.T(loc, "list.refresh"), c.indicatorID()),
		templates.Indicator(c.indicatorID(), consolei18n.T(loc, "list.loading")),
	)
}

func (c *Controller[T]) writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	c.deps.Logger.V(1).Info("list load failed", "prefix", c.cfg.Prefix, "error", err.Error())
	alert := templates.AlertBanner(templates.Alert{
		Kind:       templates.AlertError,
		Text:       weberror.PublicMessage(loc, err),
		RetryURL:   c.cfg.Prefix,
		RetryLabel: consolei18n.T(loc, "list.retry"),
	})
	c.writePage(w, r, weberror.StatusFor(err), templates.Group(c.header(loc), alert))
}

func (c *Controller[T]) writeList(w http.ResponseWriter, r *http.Request, items []T, opts ListOptions) {
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	viewer := c.viewer(r)
	canEdit := c.cfg.Update != nil && c.cfg.CanEdit(viewer)
	canDelete := c.cfg.Delete != nil && c.cfg.CanDelete(viewer)

	columns := make([]string, 0, len(c.cfg.Columns))
	for _, key := range c.cfg.Columns {
		columns = append(columns, consolei18n.T(loc, key))
	}
	table := templates.Table{Columns: columns, Empty: consolei18n.T(loc, c.cfg.EmptyKey)}
	if canEdit || canDelete {
		table.ActionsLabel = consolei18n.T(loc, "list.actions")
	}
	for _, item := range items {
		row := templates.TableRow{Cells: c.cfg.Row(loc, item)}
		if table.ActionsLabel != "" {
			row.Actions = c.actions(loc, c.cfg.ID(item), canEdit, canDelete)
		}
		table.Rows = append(table.Rows, row)
	}

	var alert templ.Component
	if opts.Alert != nil {
		alert = templates.AlertBanner(*opts.Alert)
	}
	var stats templ.Component
	if c.cfg.Stats != nil {
		stats = templates.StatCards(c.cfg.Stats(loc, items))
	}
	extra := opts.Extra
	if extra == nil && c.cfg.Extra != nil {
		extra = c.cfg.Extra(loc)
	}
	status := opts.StatusCode
	if status <= 0 {
		status = http.StatusOK
	}
	c.writePage(w, r, status, templates.Group(
		c.header(loc),
		templates.Region(templates.ListAlertID, alert),
		stats,
		extra,
		templates.DataTable(table),
		opts.Modal,
	))
}

func (c *Controller[T]) actions(loc Localizer, id int, canEdit, canDelete bool) templ.Component {
	var parts []templ.Component
	if canEdit {
		parts = append(parts, templates.Link(routepath.ItemEdit(c.cfg.Prefix, id), consolei18n.T(loc, "list.edit"), "btn-small"))
	}
	if canDelete {
		parts = append(parts, templates.DeleteButton(
			routepath.ItemDelete(c.cfg.Prefix, id),
			consolei18n.T(loc, "list.confirm_delete", id),
			consolei18n.T(loc, "list.delete"),
		))
	}
	return templates.Group(parts...)
}

func (c *Controller[T]) modal(loc Localizer, item T, values url.Values, errs validation.FieldErrors, message string) templ.Component {
	id := c.cfg.ID(item)
	form := templates.Form{
		Action:      routepath.ItemEdit(c.cfg.Prefix, id),
		Submit:      consolei18n.T(loc, "list.save"),
		Error:       message,
		Fields:      c.cfg.EditForm(loc, item, values, errs),
		CancelURL:   c.cfg.Prefix,
		CancelLabel: consolei18n.T(loc, "list.cancel"),
	}
	return templates.Modal(consolei18n.T(loc, c.cfg.EditTitleKey, id), templates.FormView(form), c.cfg.Prefix, consolei18n.T(loc, "list.cancel"))
}

func (c *Controller[T]) writePage(w http.ResponseWriter, r *http.Request, status int, fragment templ.Component) {
	loc, _ := consolei18n.ResolveLocalizer(w, r)
	err := pagerender.WriteModulePage(w, r, c.deps, pagerender.ModulePage{
		Title:      consolei18n.T(loc, c.cfg.TitleKey),
		StatusCode: status,
		Active:     c.cfg.Active,
		Fragment:   fragment,
	})
	if err != nil {
		c.deps.Logger.Error(err, "render list page", "prefix", c.cfg.Prefix)
	}
}

// FieldError localizes the error recorded for name.
func FieldError(loc Localizer, errs validation.FieldErrors, name string) string {
	if !errs.Has(name) {
		return ""
	}
	return consolei18n.T(loc, errs.Get(name))
}

// Value returns the submitted value for name, or fallback when the form
// was not submitted.
func Value(values url.Values, name, fallback string) string {
	if values == nil {
		return fallback
	}
	return strings.TrimSpace(values.Get(name))
}

// Checked reads a checkbox, or fallback when the form was not submitted.
func Checked(values url.Values, name string, fallback bool) bool {
	if values == nil {
		return fallback
	}
	return values.Get(name) != ""
}
