package enums

import "fmt"

// PaymentState tracks the simulated QR payment flow at checkout.
type PaymentState string

const (
	PaymentStatePending    PaymentState = "pending"
	PaymentStateProcessing PaymentState = "processing"
	PaymentStateConfirmed  PaymentState = "confirmed"
	PaymentStateExpired    PaymentState = "expired"
)

var validPaymentStates = []PaymentState{
	PaymentStatePending,
	PaymentStateProcessing,
	PaymentStateConfirmed,
	PaymentStateExpired,
}

// String implements fmt.Stringer.
func (p PaymentState) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentState.
func (p PaymentState) IsValid() bool {
	for _, candidate := range validPaymentStates {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentState converts raw input into a PaymentState.
func ParsePaymentState(value string) (PaymentState, error) {
	for _, candidate := range validPaymentStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment state %q", value)
}
