package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// Province mirrors the backend's provincia rows; ShippingCost is the
// per-province flat rate applied at checkout.
type Province struct {
	ID           int             `json:"cod_provincia"`
	Description  string          `json:"descripcion"`
	ShippingCost decimal.Decimal `json:"costo_envio"`
}

// Locality mirrors the backend's localidad rows.
type Locality struct {
	ID         int       `json:"id_localidad"`
	Name       string    `json:"nombre"`
	PostalCode string    `json:"codigo_postal"`
	ProvinceID int       `json:"cod_provincia"`
	Province   *Province `json:"provincia,omitempty"`
}

// PaymentMethod mirrors the backend's metodo_pago rows.
type PaymentMethod struct {
	ID          int    `json:"id_metodo"`
	Description string `json:"desc_metodo"`
}

func (c *Client) ListProvinces(ctx context.Context) ([]Province, error) {
	var out []Province
	if err := c.do(ctx, http.MethodGet, "/provincias", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListLocalities(ctx context.Context) ([]Locality, error) {
	var out []Locality
	if err := c.do(ctx, http.MethodGet, "/localidades", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLocalitiesByProvince narrows localities to one province, the lookup the
// checkout form drives when a province is picked.
func (c *Client) ListLocalitiesByProvince(ctx context.Context, provinceID int) ([]Locality, error) {
	var out []Locality
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/localidades/provincia/%d", provinceID), nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	var out []PaymentMethod
	if err := c.do(ctx, http.MethodGet, "/metodos", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// Admin CRUD payloads. One struct per entity and verb; the backend's loose
// form bags are not reproduced client-side.

type CreateProvinceRequest struct {
	Description  string          `json:"descripcion"`
	ShippingCost decimal.Decimal `json:"costo_envio"`
}

type UpdateProvinceRequest struct {
	Description  string          `json:"descripcion"`
	ShippingCost decimal.Decimal `json:"costo_envio"`
}

type CreateLocalityRequest struct {
	Name       string `json:"nombre"`
	PostalCode string `json:"codigo_postal"`
	ProvinceID int    `json:"cod_provincia"`
}

type UpdateLocalityRequest struct {
	Name       string `json:"nombre"`
	PostalCode string `json:"codigo_postal"`
	ProvinceID int    `json:"cod_provincia"`
}

type CreatePaymentMethodRequest struct {
	Description string `json:"desc_metodo"`
}

type UpdatePaymentMethodRequest struct {
	Description string `json:"desc_metodo"`
}

func (c *Client) CreateProvince(ctx context.Context, req CreateProvinceRequest) (*Province, error) {
	var out Province
	if err := c.do(ctx, http.MethodPost, "/provincias", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProvince(ctx context.Context, id int, req UpdateProvinceRequest) (*Province, error) {
	var out Province
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/provincias/%d", id), req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProvince(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/provincias/%d", id), nil, nil, nil)
}

func (c *Client) CreateLocality(ctx context.Context, req CreateLocalityRequest) (*Locality, error) {
	var out Locality
	if err := c.do(ctx, http.MethodPost, "/localidades", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateLocality(ctx context.Context, id int, req UpdateLocalityRequest) (*Locality, error) {
	var out Locality
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/localidades/%d", id), req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteLocality(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/localidades/%d", id), nil, nil, nil)
}

func (c *Client) CreatePaymentMethod(ctx context.Context, req CreatePaymentMethodRequest) (*PaymentMethod, error) {
	var out PaymentMethod
	if err := c.do(ctx, http.MethodPost, "/metodos", req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePaymentMethod(ctx context.Context, id int, req UpdatePaymentMethodRequest) (*PaymentMethod, error) {
	var out PaymentMethod
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/metodos/%d", id), req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePaymentMethod(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/metodos/%d", id), nil, nil, nil)
}
