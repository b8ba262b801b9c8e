package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// User is an account record from /api/users/.
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	IsActive    bool   `json:"is_active"`
	DateJoined  string `json:"date_joined,omitempty"`
}

// FullName joins first and last name, falling back to the username.
func (u User) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Username
	}
	return name
}

// UserUpdate is the PUT body for /api/users/{id}/. Password is sent only
// when non-empty.
type UserUpdate struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
	IsActive  bool   `json:"is_active"`
	Password  string `json:"password,omitempty"`
}

// Perfil is the per-role attribute record of a user.
type Perfil struct {
	ID                 int    `json:"id"`
	User               int    `json:"user,omitempty"`
	Telefono           string `json:"telefono,omitempty"`
	Direccion          string `json:"direccion,omitempty"`
	Sexo               string `json:"sexo,omitempty"`
	TipoUsuario        string `json:"tipo_usuario,omitempty"`
	TipoUsuarioDisplay string `json:"tipo_usuario_display,omitempty"`
	ImagenPerfilURL    string `json:"imagen_perfil_url,omitempty"`
}

// PerfilUpdate is the PUT body for /api/perfiles/{id}/.
type PerfilUpdate struct {
	Telefono        string `json:"telefono"`
	Direccion       string `json:"direccion"`
	ImagenPerfilURL string `json:"imagen_perfil_url,omitempty"`
}

// UserProfile is the signed-in user's account plus profile.
type UserProfile struct {
	User   User   `json:"user"`
	Perfil Perfil `json:"perfil"`
}

// RoleLabel prefers the backend display label over the raw role code.
func (p UserProfile) RoleLabel() string {
	if p.Perfil.TipoUsuarioDisplay != "" {
		return p.Perfil.TipoUsuarioDisplay
	}
	return p.Perfil.TipoUsuario
}

// IsPrivileged reports whether the viewer may see staff-only actions.
func (p UserProfile) IsPrivileged() bool {
	return p.User.IsStaff || p.User.IsSuperuser
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginData is the optional payload returned alongside the token.
type LoginData struct {
	User   *User   `json:"user,omitempty"`
	Perfil *Perfil `json:"perfil,omitempty"`
}

// LoginResponse is the login response body.
type LoginResponse struct {
	Token   string    `json:"token"`
	Message string    `json:"message,omitempty"`
	Data    LoginData `json:"data"`
}

// SecretariaRegistration is the secretary self-registration body.
type SecretariaRegistration struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Telefono         string `json:"telefono"`
	Direccion        string `json:"direccion"`
	Sexo             string `json:"sexo"`
	Turno            string `json:"turno"`
	VelocidadTeclado int    `json:"velocidad_teclado"`
}

// AdministradorRegistration is the administrator registration body.
type AdministradorRegistration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Sexo      string `json:"sexo"`
}

// CompleteUser is the body for /api/auth/create-user-complete/. Fields that
// do not apply to the chosen role are left empty and omitted.
type CompleteUser struct {
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Telefono             string `json:"telefono"`
	Direccion            string `json:"direccion"`
	Sexo                 string `json:"sexo"`
	TipoUsuario          string `json:"tipo_usuario"`
	Turno                string `json:"turno,omitempty"`
	FechaContratacion    string `json:"fecha_contratacion,omitempty"`
	InformacionAdicional string `json:"informacion_adicional,omitempty"`
	CodigoPropietario    string `json:"codigo_propietario,omitempty"`
}

// RegistrationResponse is returned by the registration endpoints.
type RegistrationResponse struct {
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// AreaSocial is a shared facility.
type AreaSocial struct {
	ID          int    `json:"id"`
	Descripcion string `json:"descripcion"`
}

// RegistroAreaSocial is one booking of a shared facility.
type RegistroAreaSocial struct {
	ID           int    `json:"id"`
	AreaSocial   int    `json:"AreaSocial"`
	FechaReserva string `json:"fecha_reserva,omitempty"`
	Descripcion  string `json:"descripcion,omitempty"`
	IsPrincipal  bool   `json:"is_principal"`
}

// Queja states.
const (
	EstadoPendiente = "PENDIENTE"
	EstadoEnProceso = "EN_PROCESO"
	EstadoResuelto  = "RESUELTO"
	EstadoCerrado   = "CERRADO"
)

// EstadosQueja lists complaint states in workflow order.
var EstadosQueja = []string{EstadoPendiente, EstadoEnProceso, EstadoResuelto, EstadoCerrado}

// Queja is a complaint.
type Queja struct {
	ID            int    `json:"id"`
	Descripcion   string `json:"descripcion"`
	Estado        string `json:"estado,omitempty"`
	FechaCreacion string `json:"fecha_creacion,omitempty"`
	Propietarios  *int   `json:"propietarios,omitempty"`
}

// QuejaInput is the create body for a complaint.
type QuejaInput struct {
	Descripcion string `json:"descripcion"`
}

// QuejaUpdate changes a complaint's state.
type QuejaUpdate struct {
	Estado string `json:"estado"`
}

// Amount accepts JSON numbers and decimal strings.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*a = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse amount %q: %w", s, err)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// PagoDespensa is one recurring payment.
type PagoDespensa struct {
	ID          int    `json:"id"`
	FechadePago string `json:"fechade_pago"`
	Monto       Amount `json:"monto"`
	Descripcion string `json:"descripcion,omitempty"`
	Propietario *int   `json:"propietario,omitempty"`
	IsPrincipal bool   `json:"is_principal"`
}

// Propietario is an owner record.
type Propietario struct {
	ID                int    `json:"id"`
	User              int    `json:"user,omitempty"`
	CodigoPropietario string `json:"codigo_propietario,omitempty"`
	Nombre            string `json:"nombre,omitempty"`
}

// Label is the text shown in selection lists.
func (p Propietario) Label() string {
	switch {
	case p.Nombre != "" && p.CodigoPropietario != "":
		return p.CodigoPropietario + " - " + p.Nombre
	case p.CodigoPropietario != "":
		return p.CodigoPropietario
	case p.Nombre != "":
		return p.Nombre
	default:
		return fmt.Sprintf("#%d", p.ID)
	}
}

// UnidadHabitacional is a dwelling unit.
type UnidadHabitacional struct {
	ID          int    `json:"id"`
	Codigo      string `json:"codigo,omitempty"`
	Descripcion string `json:"descripcion,omitempty"`
}

// Label is the text shown in selection lists.
func (u UnidadHabitacional) Label() string {
	switch {
	case u.Codigo != "":
		return u.Codigo
	case u.Descripcion != "":
		return u.Descripcion
	default:
		return fmt.Sprintf("#%d", u.ID)
	}
}

// PropietarioUnidad assigns an owner to a unit.
type PropietarioUnidad struct {
	ID                 int    `json:"id,omitempty"`
	Propietario        int    `json:"propietario"`
	UnidadHabitacional int    `json:"unidad_habitacional"`
	FechaInicio        string `json:"fecha_inicio,omitempty"`
}
