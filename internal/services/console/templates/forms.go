package templates

import (
	"github.com/a-h/templ"
)

// Input types understood by FormField besides the HTML ones.
const (
	InputSelect   = "select"
	InputCheckbox = "checkbox"
	InputTextarea = "textarea"
	InputHidden   = "hidden"
)

// Option is one select choice.
type Option struct {
	Value string
	Label string
}

// Field is one form control. Error is an already localized message.
type Field struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Error       string
	Placeholder string
	Required    bool
	Checked     bool
	Min         string
	Max         string
	Options     []Option
}

// Form is a POST form. Error is a general banner shown above the fields.
type Form struct {
	ID          string
	Action      string
	Submit      string
	Error       string
	Fields      []Field
	CancelURL   string
	CancelLabel string
	HXTarget    string
}

// FormView renders a form.
func FormView(f Form) templ.Component {
	return component(func(h *html) {
		h.raw(`<form method="post" class="form" novalidate`)
		if f.ID != "" {
			h.attr("id", f.ID)
		}
		h.attr("action", f.Action)
		if f.HXTarget != "" {
			h.attr("hx-post", f.Action)
			h.attr("hx-target", f.HXTarget)
			h.raw(` hx-swap="outerHTML"`)
		}
		h.raw(">")
		if f.Error != "" {
			h.render(AlertBanner(Alert{Kind: AlertError, Text: f.Error}))
		}
		for _, field := range f.Fields {
			h.render(FormField(field))
		}
		h.raw(`<div class="form-actions"><button type="submit" class="btn btn-primary">`)
		h.text(f.Submit)
		h.raw("</button>")
		if f.CancelURL != "" {
			h.raw(" <a")
			h.attr("class", "btn")
			h.attr("href", f.CancelURL)
			h.raw(">")
			h.text(f.CancelLabel)
			h.raw("</a>")
		}
		h.raw("</div></form>")
	})
}

// FormField renders one labelled control with its inline error.
func FormField(f Field) templ.Component {
	return component(func(h *html) {
		id := "field-" + f.Name
		if f.Type == InputHidden {
			h.raw(`<input type="hidden"`)
			h.attr("name", f.Name)
			h.attr("value", f.Value)
			h.raw(">")
			return
		}
		class := "field"
		if f.Error != "" {
			class += " field-invalid"
		}
		h.raw("<div")
		h.attr("class", class)
		h.raw(">")
		if f.Type == InputCheckbox {
			h.raw("<label")
			h.attr("for", id)
			h.raw(`><input type="checkbox" value="on"`)
			h.attr("id", id)
			h.attr("name", f.Name)
			h.flag("checked", f.Checked)
			h.raw("> ")
			h.text(f.Label)
			h.raw("</label>")
		} else {
			h.raw("<label")
			h.attr("for", id)
			h.raw(">")
			h.text(f.Label)
			h.raw("</label>")
			h.control(id, f)
		}
		if f.Error != "" {
			h.raw(`<p class="field-error"`)
			h.attr("id", id+"-error")
			h.raw(">")
			h.text(f.Error)
			h.raw("</p>")
		}
		h.raw("</div>")
	})
}

func (h *html) control(id string, f Field) {
	switch f.Type {
	case InputSelect:
		h.raw("<select")
		h.commonAttrs(id, f)
		h.raw(">")
		for _, opt := range f.Options {
			h.raw("<option")
			h.attr("value", opt.Value)
			h.flag("selected", opt.Value == f.Value)
			h.raw(">")
			h.text(opt.Label)
			h.raw("</option>")
		}
		h.raw("</select>")
	case InputTextarea:
		h.raw(`<textarea rows="3"`)
		h.commonAttrs(id, f)
		h.raw(">")
		h.text(f.Value)
		h.raw("</textarea>")
	default:
		typ := f.Type
		if typ == "" {
			typ = "text"
		}
		h.raw("<input")
		h.attr("type", typ)
		h.commonAttrs(id, f)
		if typ != "password" {
			h.attr("value", f.Value)
		}
		if f.Min != "" {
			h.attr("min", f.Min)
		}
		if f.Max != "" {
			h.attr("max", f.Max)
		}
		h.raw(">")
	}
}

func (h *html) commonAttrs(id string, f Field) {
	h.attr("id", id)
	h.attr("name", f.Name)
	if f.Placeholder != "" {
		h.attr("placeholder", f.Placeholder)
	}
	h.flag("required", f.Required)
	if f.Error != "" {
		h.raw(` aria-invalid="true"`)
		h.attr("aria-describedby", id+"-error")
	}
}
