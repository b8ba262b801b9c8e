package people

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/myhome/console/internal/backend"
	consolei18n "github.com/myhome/console/internal/services/console/platform/i18n"
	"github.com/myhome/console/internal/services/console/platform/resourcelist"
	"github.com/myhome/console/internal/services/console/routepath"
	"github.com/myhome/console/internal/services/console/templates"
	"github.com/myhome/console/internal/validation"
)

type view struct {
	id          string
	prefix      string
	active      string
	titleKey    string
	subtitleKey string
	emptyKey    string
	filter      func(backend.User) bool
	stats       func(resourcelist.Localizer, []backend.User) []templates.Stat
}

var usuariosView = view{
	id:          "usuarios",
	prefix:      routepath.UsuariosPrefix,
	active:      templates.NavUsuarios,
	titleKey:    "usuarios.title",
	subtitleKey: "usuarios.subtitle",
	emptyKey:    "usuarios.empty",
	stats:       usuariosStats,
}

var propietariosView = view{
	id:          "propietarios",
	prefix:      routepath.PropietariosPrefix,
	active:      templates.NavPropietarios,
	titleKey:    "propietarios.title",
	subtitleKey: "propietarios.subtitle",
	emptyKey:    "propietarios.empty",
	filter:      backend.IsOwner,
	stats:       propietariosStats,
}

var personalView = view{
	id:          "personal",
	prefix:      routepath.PersonalPrefix,
	active:      templates.NavPersonal,
	titleKey:    "personal.title",
	subtitleKey: "personal.subtitle",
	emptyKey:    "personal.empty",
	filter:      backend.IsStaffMember,
	stats:       personalStats,
}

func (v view) config(s service) resourcelist.Config[backend.User] {
	return resourcelist.Config[backend.User]{
		Prefix:      v.prefix,
		Active:      v.active,
		TitleKey:    v.titleKey,
		SubtitleKey: v.subtitleKey,
		EmptyKey:    v.emptyKey,
		Columns:     []string{"column.username", "column.name", "column.email", "column.role", "column.status"},
		Load:        s.list,
		Filter:      v.filter,
		ID:          func(u backend.User) int { return u.ID },
		Row:         userRow,
		Stats:       v.stats,
		EditForm:    editForm,
		Update:      s.update,
		Delete:      s.delete,
	}
}

func userRow(loc resourcelist.Localizer, u backend.User) []templ.Component {
	role := templates.Badge(consolei18n.T(loc, "people.owner"), "owner")
	if u.IsSuperuser {
		role = templates.Badge(consolei18n.T(loc, "people.admin"), "admin")
	} else if u.IsStaff {
		role = templates.Badge(consolei18n.T(loc, "people.staff"), "staff")
	}
	status := templates.Badge(consolei18n.T(loc, "people.inactive"), "inactive")
	if u.IsActive {
		status = templates.Badge(consolei18n.T(loc, "people.active"), "active")
	}
	return []templ.Component{
		templates.Text(u.Username),
		templates.Text(u.FullName()),
		templates.Text(u.Email),
		role,
		status,
	}
}

func editForm(loc resourcelist.Localizer, u backend.User, values url.Values, errs validation.FieldErrors) []templates.Field {
	input := func(name, typ, fallback string, required bool) templates.Field {
		return templates.Field{
			Name:     name,
			Label:    consolei18n.T(loc, "field."+name),
			Type:     typ,
			Value:    resourcelist.Value(values, name, fallback),
			Error:    resourcelist.FieldError(loc, errs, name),
			Required: required,
		}
	}
	password := input("password", "password", "", false)
	password.Label = consolei18n.T(loc, "field.new_password")
	password.Placeholder = consolei18n.T(loc, "people.password_hint")
	return []templates.Field{
		input("username", "text", u.Username, true),
		input("email", "email", u.Email, true),
		input("first_name", "text", u.FirstName, false),
		input("last_name", "text", u.LastName, false),
		password,
		{Name: "is_staff", Label: consolei18n.T(loc, "field.is_staff"), Type: templates.InputCheckbox, Checked: resourcelist.Checked(values, "is_staff", u.IsStaff)},
		{Name: "is_active", Label: consolei18n.T(loc, "field.is_active"), Type: templates.InputCheckbox, Checked: resourcelist.Checked(values, "is_active", u.IsActive)},
	}
}

func count(users []backend.User, keep func(backend.User) bool) string {
	return strconv.Itoa(len(backend.FilterUsers(users, keep)))
}

func isActive(u backend.User) bool { return u.IsActive }

func usuariosStats(loc resourcelist.Localizer, users []backend.User) []templates.Stat {
	return []templates.Stat{
		{Label: consolei18n.T(loc, "stats.total"), Value: strconv.Itoa(len(users))},
		{Label: consolei18n.T(loc, "stats.staff"), Value: count(users, backend.IsStaffMember)},
		{Label: consolei18n.T(loc, "stats.active"), Value: count(users, isActive)},
	}
}

// personalStats counts superusers as administrators and the remaining staff
// as secretaries.
func personalStats(loc resourcelist.Localizer, users []backend.User) []templates.Stat {
	return []templates.Stat{
		{Label: consolei18n.T(loc, "stats.administrators"), Value: count(users, func(u backend.User) bool { return u.IsSuperuser })},
		{Label: consolei18n.T(loc, "stats.secretaries"), Value: count(users, func(u backend.User) bool { return !u.IsSuperuser })},
		{Label: consolei18n.T(loc, "stats.active"), Value: count(users, isActive)},
	}
}

func propietariosStats(loc resourcelist.Localizer, users []backend.User) []templates.Stat {
	return []templates.Stat{
		{Label: consolei18n.T(loc, "stats.active"), Value: count(users, isActive)},
		{Label: consolei18n.T(loc, "stats.inactive"), Value: count(users, func(u backend.User) bool { return !u.IsActive })},
	}
}
