// Package checkout turns a cart snapshot plus the user's shipping choices
// into a backend order request, and models the cosmetic QR payment step.
package checkout

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	pkgerrors "github.com/tutienda/storefront/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// ShippingSelection captures the checkout form: province, optional locality,
// payment method, free-text address, and the province's shipping cost looked
// up from the backend (never user-editable). It is ephemeral and never
// persisted.
type ShippingSelection struct {
	ProvinceID      int             `json:"cod_provincia" validate:"gt=0"`
	LocalityID      int             `json:"id_localidad"`
	PaymentMethodID int             `json:"id_metodo" validate:"gt=0"`
	Address         string          `json:"direccion"`
	ShippingCost    decimal.Decimal `json:"costo_envio"`
}

// validateStatic covers the selection fields whose requirements do not
// depend on configuration.
func (s ShippingSelection) validateStatic() error {
	if err := validate.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			details := map[string]any{"reason": pkgerrors.ReasonMissingShipping}
			fields := map[string]string{}
			for _, fieldErr := range errs {
				fields[fieldErr.Field()] = "is required"
			}
			details["fields"] = fields
			return pkgerrors.New(pkgerrors.CodeValidation, "shipping selection incomplete").WithDetails(details)
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "shipping selection invalid")
	}
	if s.ShippingCost.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping cost must be non-negative")
	}
	return nil
}
