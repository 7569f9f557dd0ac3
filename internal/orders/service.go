// Package orders drives checkout submission and order history lookups.
package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tutienda/storefront/internal/api"
	"github.com/tutienda/storefront/internal/cart"
	"github.com/tutienda/storefront/internal/checkout"
	"github.com/tutienda/storefront/internal/session"
	"github.com/tutienda/storefront/pkg/enums"
	pkgerrors "github.com/tutienda/storefront/pkg/errors"
	"github.com/tutienda/storefront/pkg/logger"
)

// Backend is the slice of the API client the order flow needs.
type Backend interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest, idempotencyKey string) (*api.OrderConfirmation, error)
	ListOrders(ctx context.Context) ([]api.Order, error)
	ListOrdersByUser(ctx context.Context, userID int) ([]api.Order, error)
}

// Cart is the slice of the cart manager the order flow needs.
type Cart interface {
	Lines() []cart.Line
	Clear(ctx context.Context)
}

// Sessions exposes the current session snapshot.
type Sessions interface {
	Current() session.Session
}

// Service submits carts as orders and fetches order history.
type Service interface {
	Submit(ctx context.Context, sel checkout.ShippingSelection) (*api.OrderConfirmation, error)
	History(ctx context.Context) ([]api.Order, error)
	SalesHistory(ctx context.Context) ([]api.Order, error)
}

type service struct {
	backend  Backend
	cart     Cart
	sessions Sessions
	opts     checkout.Options
	logg     *logger.Logger
}

// NewService wires the order service. All dependencies are required.
func NewService(backend Backend, cartMgr Cart, sessions Sessions, opts checkout.Options, logg *logger.Logger) (Service, error) {
	if backend == nil {
		return nil, errors.New("backend client is required")
	}
	if cartMgr == nil {
		return nil, errors.New("cart manager is required")
	}
	if sessions == nil {
		return nil, errors.New("session manager is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &service{backend: backend, cart: cartMgr, sessions: sessions, opts: opts, logg: logg}, nil
}

// Submit assembles the order from the current cart and session and posts it.
// The cart is cleared only after the backend confirms; any failure leaves
// cart and session exactly as they were.
func (s *service) Submit(ctx context.Context, sel checkout.ShippingSelection) (*api.OrderConfirmation, error) {
	sess := s.sessions.Current()
	req, err := checkout.BuildOrder(s.cart.Lines(), sel, sess, s.opts)
	if err != nil {
		return nil, err
	}

	attemptID := uuid.NewString()
	ctx = s.logg.WithAttemptID(s.logg.WithUserID(ctx, sess.UserID), attemptID)

	confirmation, err := s.backend.CreateOrder(ctx, *req, attemptID)
	if err != nil {
		s.logg.Error(ctx, "order submission failed", err)
		return nil, err
	}

	s.cart.Clear(ctx)
	s.logg.Info(s.logg.WithField(ctx, "order_number", confirmation.OrderNumber), "order confirmed")
	return confirmation, nil
}

// History lists the signed-in user's past orders.
func (s *service) History(ctx context.Context) ([]api.Order, error) {
	sess := s.sessions.Current()
	if !sess.IsAuthenticated() {
		return nil, pkgerrors.Validation(pkgerrors.ReasonNoSession, "sign in to view orders")
	}
	return s.backend.ListOrdersByUser(ctx, sess.UserID)
}

// SalesHistory lists every order in the system. The backend enforces the
// role too; the client-side check keeps unauthorized calls off the wire.
func (s *service) SalesHistory(ctx context.Context) ([]api.Order, error) {
	sess := s.sessions.Current()
	if !sess.IsAuthenticated() {
		return nil, pkgerrors.Validation(pkgerrors.ReasonNoSession, "sign in to view sales")
	}
	if sess.Role != enums.RoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sales history requires the admin role")
	}
	return s.backend.ListOrders(ctx)
}
