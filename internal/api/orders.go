package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is one linea_pedido entry: quantity and the subtotal computed
// from the cart snapshot at submission time.
type OrderLine struct {
	ArticleID int             `json:"id_articulo"`
	Quantity  int             `json:"cantidad"`
	SubTotal  decimal.Decimal `json:"sub_total"`
}

// CreateOrderRequest is the POST /pedidos body. LocalityID is used by the
// standard backend; ProvinceID covers the simpler variant that ships
// per-province only. Exactly one of the two is set.
type CreateOrderRequest struct {
	PaymentMethodID int         `json:"id_metodo"`
	UserID          int         `json:"nro_usuario"`
	LocalityID      *int        `json:"id_localidad,omitempty"`
	ProvinceID      *int        `json:"cod_provincia,omitempty"`
	Address         string      `json:"direccion,omitempty"`
	Lines           []OrderLine `json:"linea_pedido"`
}

// OrderConfirmation is the successful POST /pedidos response.
type OrderConfirmation struct {
	OrderNumber int             `json:"nro_pedido"`
	Total       decimal.Decimal `json:"precio_total"`
	CreatedAt   time.Time       `json:"fecha_pedido"`
}

// Order is the full pedido row returned by the history endpoints.
type Order struct {
	OrderNumber int             `json:"nro_pedido"`
	Total       decimal.Decimal `json:"precio_total"`
	CreatedAt   time.Time       `json:"fecha_pedido"`
	Address     string          `json:"direccion"`
	User        *OrderUser      `json:"usuario,omitempty"`
	Locality    *Locality       `json:"localidad,omitempty"`
	Lines       []OrderHistLine `json:"linea_pedido"`
}

// OrderUser is the denormalized buyer attached to admin history rows.
type OrderUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderHistLine is a history line, including the article snapshot the
// backend joins in.
type OrderHistLine struct {
	ArticleID int             `json:"id_articulo"`
	Quantity  int             `json:"cantidad"`
	SubTotal  decimal.Decimal `json:"sub_total"`
	Article   *Article        `json:"articulo,omitempty"`
}

// CreateOrder submits a new order. idempotencyKey guards against
// double-submission; the backend treats replays with the same key as the
// original request.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest, idempotencyKey string) (*OrderConfirmation, error) {
	var out OrderConfirmation
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}
	if err := c.do(ctx, http.MethodPost, "/pedidos", req, &out, headers); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOrders fetches every order; the backend restricts this to admins.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/pedidos", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOrdersByUser fetches one user's order history.
func (c *Client) ListOrdersByUser(ctx context.Context, userID int) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pedidos/usuario/%d", userID), nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}
