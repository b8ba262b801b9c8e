package complaints

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/myhome/console/internal/backend"
	"github.com/myhome/console/internal/payments"
	consolei18n "github.com/myhome/console/internal/services/console/platform/i18n"
	"github.com/myhome/console/internal/services/console/platform/resourcelist"
	"github.com/myhome/console/internal/services/console/routepath"
	"github.com/myhome/console/internal/services/console/templates"
	"github.com/myhome/console/internal/validation"
)

func listConfig(s service) resourcelist.Config[backend.Queja] {
	return resourcelist.Config[backend.Queja]{
		Prefix:       routepath.QuejasPrefix,
		Active:       templates.NavQuejas,
		TitleKey:     "quejas.title",
		SubtitleKey:  "quejas.subtitle",
		EmptyKey:     "quejas.empty",
		Columns:      []string{"column.id", "column.description", "column.status", "column.created"},
		Load:         s.list,
		ID:           func(q backend.Queja) int { return q.ID },
		Row:          quejaRow,
		Stats:        quejaStats,
		Extra:        func(loc resourcelist.Localizer) templ.Component { return createForm(loc, nil, nil, "") },
		EditForm:     estadoForm,
		EditTitleKey: "quejas.edit_title",
		Update:       s.update,
		Delete:       s.delete,
	}
}

func estadoLabel(loc resourcelist.Localizer, estado string) string {
	if estado == "" {
		estado = backend.EstadoPendiente
	}
	return consolei18n.T(loc, "estado."+estado)
}

func quejaRow(loc resourcelist.Localizer, q backend.Queja) []templ.Component {
	created := q.FechaCreacion
	if t, ok := payments.ParseDate(q.FechaCreacion); ok {
		created = t.Format("02/01/2006")
	}
	kind := q.Estado
	if kind == "" {
		kind = backend.EstadoPendiente
	}
	return []templ.Component{
		templates.Text(strconv.Itoa(q.ID)),
		templates.Text(q.Descripcion),
		templates.Badge(estadoLabel(loc, q.Estado), "estado-"+kind),
		templates.Text(created),
	}
}

func quejaStats(loc resourcelist.Localizer, quejas []backend.Queja) []templates.Stat {
	counts := make(map[string]int, len(backend.EstadosQueja))
	for _, q := range quejas {
		estado := q.Estado
		if estado == "" {
			estado = backend.EstadoPendiente
		}
		counts[estado]++
	}
	stats := []templates.Stat{{Label: consolei18n.T(loc, "stats.total"), Value: strconv.Itoa(len(quejas))}}
	for _, estado := range backend.EstadosQueja {
		stats = append(stats, templates.Stat{Label: estadoLabel(loc, estado), Value: strconv.Itoa(counts[estado])})
	}
	return stats
}

func estadoForm(loc resourcelist.Localizer, q backend.Queja, values url.Values, errs validation.FieldErrors) []templates.Field {
	options := make([]templates.Option, 0, len(backend.EstadosQueja))
	for _, estado := range backend.EstadosQueja {
		options = append(options, templates.Option{Value: estado, Label: estadoLabel(loc, estado)})
	}
	current := q.Estado
	if current == "" {
		current = backend.EstadoPendiente
	}
	return []templates.Field{
		{
			Name:     "estado",
			Label:    consolei18n.T(loc, "field.estado"),
			Type:     templates.InputSelect,
			Value:    resourcelist.Value(values, "estado", current),
			Error:    resourcelist.FieldError(loc, errs, "estado"),
			Required: true,
			Options:  options,
		},
	}
}

// createForm is the new-complaint card above the table.
func createForm(loc resourcelist.Localizer, values url.Values, errs validation.FieldErrors, message string) templ.Component {
	return templates.Card(consolei18n.T(loc, "quejas.new"), templates.FormView(templates.Form{
		ID:     "queja-form",
		Action: routepath.QuejasPrefix,
		Submit: consolei18n.T(loc, "quejas.submit"),
		Error:  message,
		Fields: []templates.Field{{
			Name:        "descripcion",
			Label:       consolei18n.T(loc, "field.descripcion"),
			Type:        templates.InputTextarea,
			Value:       resourcelist.Value(values, "descripcion", ""),
			Error:       resourcelist.FieldError(loc, errs, "descripcion"),
			Placeholder: consolei18n.T(loc, "quejas.placeholder"),
			Required:    true,
		}},
	}))
}
