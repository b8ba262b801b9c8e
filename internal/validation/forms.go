package validation

import (
	"math"
	"net/url"
	"strings"
)

// Role values accepted by the complete-user form.
const (
	TipoGuardia     = "GUARDIA"
	TipoPropietario = "PROPIETARIO"
)

// Sexo values accepted by registration forms.
const (
	SexoMasculino = "M"
	SexoFemenino  = "F"
)

// Turno values accepted by staff forms.
var Turnos = []string{"MAÑANA", "TARDE", "NOCHE"}

// MinTypingSpeed and MaxTypingSpeed bound a secretary's words per minute.
const (
	MinTypingSpeed = 1
	MaxTypingSpeed = 200
)

// Login checks the login form.
func Login(username, password string) FieldErrors {
	errs := FieldErrors{}
	errs.Required("username", username)
	errs.Required("password", password)
	return errs
}

// AccountFields are the fields shared by every self-registration form.
type AccountFields struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
}

func (a AccountFields) validate(errs FieldErrors) {
	errs.Required("username", a.Username)
	errs.Email("email", a.Email)
	errs.Password("password", a.Password)
	errs.Match("confirm_password", a.ConfirmPassword, a.Password)
	errs.Required("first_name", a.FirstName)
	errs.Required("last_name", a.LastName)
}

// Administrador checks the administrator registration form.
func Administrador(account AccountFields, telefono, direccion, sexo string) FieldErrors {
	errs := FieldErrors{}
	account.validate(errs)
	errs.Required("telefono", telefono)
	errs.Required("direccion", direccion)
	errs.OneOf("sexo", sexo, SexoMasculino, SexoFemenino)
	return errs
}

// Secretaria checks the secretary self-registration form.
func Secretaria(account AccountFields, telefono, direccion, sexo, turno, velocidadTeclado string) FieldErrors {
	errs := Administrador(account, telefono, direccion, sexo)
	errs.OneOf("turno", turno, Turnos...)
	errs.IntRange("velocidad_teclado", velocidadTeclado, MinTypingSpeed, MaxTypingSpeed)
	return errs
}

// CompleteUserFields is the staff-facing user creation form.
type CompleteUserFields struct {
	Account              AccountFields
	Telefono             string
	Direccion            string
	Sexo                 string
	TipoUsuario          string
	Turno                string
	FechaContratacion    string
	InformacionAdicional string
	CodigoPropietario    string
}

// CompleteUser checks the complete-user form. Role-specific fields are
// required only for the selected role.
func CompleteUser(in CompleteUserFields) FieldErrors {
	errs := FieldErrors{}
	in.Account.validate(errs)
	errs.Required("telefono", in.Telefono)
	errs.Required("direccion", in.Direccion)
	errs.OneOf("sexo", in.Sexo, SexoMasculino, SexoFemenino)
	errs.OneOf("tipo_usuario", in.TipoUsuario, TipoGuardia, TipoPropietario)
	switch in.TipoUsuario {
	case TipoGuardia:
		errs.OneOf("turno", in.Turno, Turnos...)
		errs.Required("fecha_contratacion", in.FechaContratacion)
		errs.Required("informacion_adicional", in.InformacionAdicional)
	case TipoPropietario:
		errs.Required("codigo_propietario", in.CodigoPropietario)
	}
	return errs
}

// UserEdit checks the user edit modal. An empty password means unchanged.
func UserEdit(username, email, password string) FieldErrors {
	errs := FieldErrors{}
	errs.Required("username", username)
	errs.Email("email", email)
	if strings.TrimSpace(password) != "" && !Password(password) {
		errs.Add("password", KeyPassword)
	}
	return errs
}

// Perfil checks the profile edit form. The image URL is optional but must
// be an absolute http(s) URL when given.
func Perfil(telefono, direccion, imagenURL string) FieldErrors {
	errs := FieldErrors{}
	errs.Required("telefono", telefono)
	errs.Required("direccion", direccion)
	imagenURL = strings.TrimSpace(imagenURL)
	if imagenURL != "" {
		u, err := url.Parse(imagenURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs.Add("imagen_perfil_url", KeyURL)
		}
	}
	return errs
}

// Queja checks the complaint create form.
func Queja(descripcion string) FieldErrors {
	errs := FieldErrors{}
	errs.Required("descripcion", descripcion)
	return errs
}

// QuejaEstado checks the complaint status change.
func QuejaEstado(estado string, estados []string) FieldErrors {
	errs := FieldErrors{}
	errs.OneOf("estado", estado, estados...)
	return errs
}

// Asignacion checks the owner-unit assignment form.
func Asignacion(propietario, unidad string) FieldErrors {
	errs := FieldErrors{}
	errs.IntRange("propietario", propietario, 1, math.MaxInt32)
	errs.IntRange("unidad_habitacional", unidad, 1, math.MaxInt32)
	return errs
}
