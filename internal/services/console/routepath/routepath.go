// Package routepath stores canonical HTTP paths for console modules.
package routepath

import (
	"net/url"
	"strconv"
)

const (
	Root          = "/"
	Login         = "/login"
	Logout        = "/logout"
	Register      = "/register"
	RegisterAdmin = "/register/admin"
	Health        = "/up"
	Metrics       = "/metrics"
	StaticPrefix  = "/static/"

	AppPrefix = "/app/"
	AppHome   = "/app/"
	AppPerfil = "/app/perfil"

	AppRegistrarUsuario       = "/app/registrar-usuario"
	RegistrarUsuarioPrefix    = "/app/registrar-usuario/"
	AppRegistrarUsuarioUnidad = "/app/registrar-usuario/unidad"

	UsuariosPrefix     = "/app/usuarios/"
	PropietariosPrefix = "/app/propietarios/"
	PersonalPrefix     = "/app/personal/"
	QuejasPrefix       = "/app/quejas/"

	AreasSocialesPrefix     = "/app/areas-sociales/"
	AppAreaSocialPattern    = AreasSocialesPrefix + "{areaID}"
	AppAreasSocialesRestPat = AreasSocialesPrefix + "{rest...}"

	PagosPrefix = "/app/pagos/"
)

// AppAreaSocial returns the bookings page of one facility.
func AppAreaSocial(areaID int) string {
	return AreasSocialesPrefix + strconv.Itoa(areaID)
}

// AppPagosHistorial returns the payments history view.
func AppPagosHistorial() string {
	return PagosPrefix + "?view=historial"
}

// ItemEdit returns the edit route of an item under a list prefix.
func ItemEdit(prefix string, id int) string {
	return prefix + strconv.Itoa(id) + "/edit"
}

// ItemDelete returns the delete route of an item under a list prefix.
func ItemDelete(prefix string, id int) string {
	return prefix + strconv.Itoa(id) + "/delete"
}

// WithLanguage returns path with the lang query parameter set.
func WithLanguage(path, lang string) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	q := u.Query()
	q.Set("lang", lang)
	u.RawQuery = q.Encode()
	return u.String()
}
