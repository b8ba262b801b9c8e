// Package formfields builds the labelled form controls shared by console
// forms.
package formfields

import (
	"net/url"
	"strings"

	consolei18n "github.com/myhome/console/internal/services/console/platform/i18n"
	"github.com/myhome/console/internal/services/console/templates"
	"github.com/myhome/console/internal/validation"
)

// Builder renders fields for one submitted form.
type Builder struct {
	Loc    consolei18n.Localizer
	Values url.Values
	Errs   validation.FieldErrors
}

// New returns a builder. values and errs may be nil.
func New(loc consolei18n.Localizer, values url.Values, errs validation.FieldErrors) Builder {
	return Builder{Loc: loc, Values: values, Errs: errs}
}

// Value returns the trimmed submitted value of name.
func (b Builder) Value(name string) string {
	if b.Values == nil {
		return ""
	}
	return strings.TrimSpace(b.Values.Get(name))
}

// Error localizes the recorded error for name.
func (b Builder) Error(name string) string {
	if !b.Errs.Has(name) {
		return ""
	}
	return consolei18n.T(b.Loc, b.Errs.Get(name))
}

// Input builds a field labelled by field.<name>.
func (b Builder) Input(name, typ string, required bool) templates.Field {
	return templates.Field{
		Name:     name,
		Label:    consolei18n.T(b.Loc, "field."+name),
		Type:     typ,
		Value:    b.Value(name),
		Error:    b.Error(name),
		Required: required,
	}
}

// Select builds a select with a leading empty choice.
func (b Builder) Select(name string, options []templates.Option) templates.Field {
	f := b.Input(name, templates.InputSelect, true)
	f.Options = append([]templates.Option{{Value: "", Label: consolei18n.T(b.Loc, "field.choose")}}, options...)
	return f
}

// Account returns the credential and name fields of registration forms.
func (b Builder) Account() []templates.Field {
	return []templates.Field{
		b.Input("username", "text", true),
		b.Input("email", "email", true),
		b.Input("password", "password", true),
		b.Input("confirm_password", "password", true),
		b.Input("first_name", "text", true),
		b.Input("last_name", "text", true),
	}
}

// Contact returns phone, address and sex fields.
func (b Builder) Contact() []templates.Field {
	return []templates.Field{
		b.Input("telefono", "tel", true),
		b.Input("direccion", "text", true),
		b.Select("sexo", SexoOptions(b.Loc)),
	}
}

// SexoOptions lists the accepted sexes.
func SexoOptions(loc consolei18n.Localizer) []templates.Option {
	return []templates.Option{
		{Value: validation.SexoMasculino, Label: consolei18n.T(loc, "sexo.M")},
		{Value: validation.SexoFemenino, Label: consolei18n.T(loc, "sexo.F")},
	}
}

// TurnoOptions lists the accepted shifts.
func TurnoOptions(loc consolei18n.Localizer) []templates.Option {
	out := make([]templates.Option, 0, len(validation.Turnos))
	for _, turno := range validation.Turnos {
		out = append(out, templates.Option{Value: turno, Label: consolei18n.T(loc, "turno."+turno)})
	}
	return out
}

// AccountFields reads the shared registration fields from values.
func AccountFields(values url.Values) validation.AccountFields {
	return validation.AccountFields{
		Username:        strings.TrimSpace(values.Get("username")),
		Email:           strings.TrimSpace(values.Get("email")),
		Password:        values.Get("password"),
		ConfirmPassword: values.Get("confirm_password"),
		FirstName:       strings.TrimSpace(values.Get("first_name")),
		LastName:        strings.TrimSpace(values.Get("last_name")),
	}
}
