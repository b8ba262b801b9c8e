package backend

import (
	"context"
	"net/http"
)

const (
	pathAreasSociales          = "/api/areas-sociales/"
	pathRegistrosAreasSociales = "/api/registros-areas-sociales/"
	pathQuejas                 = "/api/quejas/"
	pathPagosDespensa          = "/api/pagos-despensa/"
	pathPropietarios           = "/api/propietarios/"
	pathUnidadesHabitacionales = "/api/unidades-habitacionales/"
	pathPropietariosUnidades   = "/api/propietarios-unidades/"
)

// ListAreasSociales returns every shared facility.
func (c *Client) ListAreasSociales(ctx context.Context, sess Session) ([]AreaSocial, error) {
	var out []AreaSocial
	err := c.do(ctx, sess, call{op: "list_areas_sociales", method: http.MethodGet, path: pathAreasSociales, auth: true, out: &out})
	return out, err
}

// ListRegistrosAreasSociales returns every booking.
func (c *Client) ListRegistrosAreasSociales(ctx context.Context, sess Session) ([]RegistroAreaSocial, error) {
	var out []RegistroAreaSocial
	err := c.do(ctx, sess, call{op: "list_registros_areas_sociales", method: http.MethodGet, path: pathRegistrosAreasSociales, auth: true, out: &out})
	return out, err
}

// RegistrosByAreaSocial returns the bookings of one facility. The backend
// cannot filter this collection, so the full list is fetched and filtered
// here.
func (c *Client) RegistrosByAreaSocial(ctx context.Context, sess Session, areaID int) ([]RegistroAreaSocial, error) {
	all, err := c.ListRegistrosAreasSociales(ctx, sess)
	if err != nil {
		return nil, err
	}
	return FilterRegistrosByArea(all, areaID), nil
}

// FilterRegistrosByArea keeps bookings whose AreaSocial equals areaID, in
// their original order.
func FilterRegistrosByArea(registros []RegistroAreaSocial, areaID int) []RegistroAreaSocial {
	out := make([]RegistroAreaSocial, 0, len(registros))
	for _, r := range registros {
		if r.AreaSocial == areaID {
			out = append(out, r)
		}
	}
	return out
}

// ListQuejas returns every complaint.
func (c *Client) ListQuejas(ctx context.Context, sess Session) ([]Queja, error) {
	var out []Queja
	err := c.do(ctx, sess, call{op: "list_quejas", method: http.MethodGet, path: pathQuejas, auth: true, out: &out})
	return out, err
}

// CreateQueja files a complaint.
func (c *Client) CreateQueja(ctx context.Context, sess Session, in QuejaInput) (Queja, error) {
	var out Queja
	err := c.do(ctx, sess, call{op: "create_queja", method: http.MethodPost, path: pathQuejas, auth: true, body: in, out: &out})
	return out, err
}

// UpdateQueja changes a complaint's state.
func (c *Client) UpdateQueja(ctx context.Context, sess Session, id int, in QuejaUpdate) (Queja, error) {
	var out Queja
	err := c.do(ctx, sess, call{op: "update_queja", method: http.MethodPut, path: idPath(pathQuejas, id), auth: true, body: in, out: &out})
	return out, err
}

// DeleteQueja removes a complaint.
func (c *Client) DeleteQueja(ctx context.Context, sess Session, id int) error {
	return c.do(ctx, sess, call{op: "delete_queja", method: http.MethodDelete, path: idPath(pathQuejas, id), auth: true})
}

// ListPagosDespensa returns every recurring payment.
func (c *Client) ListPagosDespensa(ctx context.Context, sess Session) ([]PagoDespensa, error) {
	var out []PagoDespensa
	err := c.do(ctx, sess, call{op: "list_pagos_despensa", method: http.MethodGet, path: pathPagosDespensa, auth: true, out: &out})
	return out, err
}

// ListPropietarios returns every owner record.
func (c *Client) ListPropietarios(ctx context.Context, sess Session) ([]Propietario, error) {
	var out []Propietario
	err := c.do(ctx, sess, call{op: "list_propietarios", method: http.MethodGet, path: pathPropietarios, auth: true, out: &out})
	return out, err
}

// ListUnidadesHabitacionales returns every dwelling unit.
func (c *Client) ListUnidadesHabitacionales(ctx context.Context, sess Session) ([]UnidadHabitacional, error) {
	var out []UnidadHabitacional
	err := c.do(ctx, sess, call{op: "list_unidades_habitacionales", method: http.MethodGet, path: pathUnidadesHabitacionales, auth: true, out: &out})
	return out, err
}

// CreatePropietarioUnidad assigns an owner to a unit.
func (c *Client) CreatePropietarioUnidad(ctx context.Context, sess Session, in PropietarioUnidad) (PropietarioUnidad, error) {
	var out PropietarioUnidad
	err := c.do(ctx, sess, call{op: "create_propietario_unidad", method: http.MethodPost, path: pathPropietariosUnidades, auth: true, body: in, out: &out})
	return out, err
}
