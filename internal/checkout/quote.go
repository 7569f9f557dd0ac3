package checkout

import (
	"github.com/shopspring/decimal"
	"github.com/tutienda/storefront/internal/cart"
)

// Quote is the displayed price breakdown: the cart subtotal, the selected
// province's shipping cost, and their sum.
type Quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// NewQuote computes the breakdown from a cart snapshot and a shipping cost.
func NewQuote(lines []cart.Line, shippingCost decimal.Decimal) Quote {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Subtotal())
	}
	return Quote{
		Subtotal: subtotal,
		Shipping: shippingCost,
		Total:    subtotal.Add(shippingCost),
	}
}
