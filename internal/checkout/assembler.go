package checkout

import (
	"strings"

	"github.com/tutienda/storefront/internal/api"
	"github.com/tutienda/storefront/internal/cart"
	"github.com/tutienda/storefront/internal/session"
	"github.com/tutienda/storefront/pkg/config"
	pkgerrors "github.com/tutienda/storefront/pkg/errors"
)

// Options selects between the strict and lenient checkout variants.
type Options struct {
	RequireAddress  bool
	MinAddressLen   int
	RequireLocality bool
}

// OptionsFromConfig maps the checkout configuration onto assembler options.
func OptionsFromConfig(cfg config.CheckoutConfig) Options {
	return Options{
		RequireAddress:  cfg.RequireAddress,
		MinAddressLen:   cfg.MinAddressLen,
		RequireLocality: cfg.RequireLocality,
	}
}

// BuildOrder assembles the POST /pedidos payload from a cart snapshot, the
// shipping selection, and the current session. It is a pure transform: the
// returned request copies the lines, so later cart mutations cannot reach a
// payload already handed to the network layer.
func BuildOrder(lines []cart.Line, sel ShippingSelection, sess session.Session, opts Options) (*api.CreateOrderRequest, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.Validation(pkgerrors.ReasonEmptyCart, "cart has no lines")
	}
	if !sess.IsAuthenticated() {
		return nil, pkgerrors.Validation(pkgerrors.ReasonNoSession, "sign in before checking out")
	}
	if err := sel.validateStatic(); err != nil {
		return nil, err
	}
	if opts.RequireLocality && sel.LocalityID <= 0 {
		return nil, pkgerrors.Validation(pkgerrors.ReasonMissingShipping, "locality is required")
	}
	if opts.RequireAddress {
		address := strings.TrimSpace(sel.Address)
		if address == "" {
			return nil, pkgerrors.Validation(pkgerrors.ReasonMissingShipping, "shipping address is required")
		}
		if opts.MinAddressLen > 0 && len([]rune(address)) < opts.MinAddressLen {
			return nil, pkgerrors.Validation(pkgerrors.ReasonMissingShipping, "shipping address is too short")
		}
	}

	req := &api.CreateOrderRequest{
		PaymentMethodID: sel.PaymentMethodID,
		UserID:          sess.UserID,
		Address:         strings.TrimSpace(sel.Address),
		Lines:           make([]api.OrderLine, 0, len(lines)),
	}
	if opts.RequireLocality {
		locality := sel.LocalityID
		req.LocalityID = &locality
	} else {
		province := sel.ProvinceID
		req.ProvinceID = &province
	}

	for _, line := range lines {
		req.Lines = append(req.Lines, api.OrderLine{
			ArticleID: line.ArticleID,
			Quantity:  line.Quantity,
			SubTotal:  line.Subtotal(),
		})
	}
	return req, nil
}
