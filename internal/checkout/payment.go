package checkout

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tutienda/storefront/pkg/config"
	"github.com/tutienda/storefront/pkg/enums"
	pkgerrors "github.com/tutienda/storefront/pkg/errors"
)

// QRPayload is the JSON document encoded into the payment QR. The backend
// never sees it; the flow exists so the storefront can rehearse the real
// gateway handshake.
type QRPayload struct {
	OrderNumber int             `json:"pedido"`
	Amount      decimal.Decimal `json:"monto"`
	Merchant    string          `json:"merchant"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Attempt tracks one simulated QR payment for an already-created order.
// State transitions are time-driven: a pending attempt expires once the
// payment window elapses, and a scanned attempt confirms after the
// processing delay.
type Attempt struct {
	mu sync.Mutex

	id        string
	payload   QRPayload
	startedAt time.Time
	scannedAt time.Time
	window    time.Duration
	delay     time.Duration
	scanned   bool
	now       func() time.Time
}

// NewAttempt opens a payment attempt for the given order and amount.
// A nil clock falls back to time.Now.
func NewAttempt(orderNumber int, amount decimal.Decimal, cfg config.CheckoutConfig, clock func() time.Time) *Attempt {
	if clock == nil {
		clock = time.Now
	}
	started := clock()
	return &Attempt{
		id: uuid.NewString(),
		payload: QRPayload{
			OrderNumber: orderNumber,
			Amount:      amount,
			Merchant:    cfg.Merchant,
			Timestamp:   started,
		},
		startedAt: started,
		window:    cfg.PaymentWindow,
		delay:     cfg.ProcessingDelay,
		now:       clock,
	}
}

func (a *Attempt) ID() string { return a.id }

// QR renders the payload the UI turns into a scannable code.
func (a *Attempt) QR() ([]byte, error) {
	raw, err := json.Marshal(a.payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding qr payload")
	}
	return raw, nil
}

// State derives the current payment state from the clock.
func (a *Attempt) State() enums.PaymentState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stateLocked()
}

func (a *Attempt) stateLocked() enums.PaymentState {
	now := a.now()
	if a.scanned {
		if now.Sub(a.scannedAt) >= a.delay {
			return enums.PaymentStateConfirmed
		}
		return enums.PaymentStateProcessing
	}
	if now.Sub(a.startedAt) >= a.window {
		return enums.PaymentStateExpired
	}
	return enums.PaymentStatePending
}

// Scan marks the QR as scanned, moving the attempt into processing.
// Scanning an expired or already-scanned attempt fails with a conflict.
func (a *Attempt) Scan() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch state := a.stateLocked(); state {
	case enums.PaymentStatePending:
		a.scanned = true
		a.scannedAt = a.now()
		return nil
	case enums.PaymentStateExpired:
		return pkgerrors.New(pkgerrors.CodeConflict, "payment window elapsed")
	default:
		return pkgerrors.New(pkgerrors.CodeConflict, "payment already scanned").
			WithDetails(map[string]any{"state": state})
	}
}

// Remaining reports how much of the payment window is left. Zero once the
// attempt expired or was scanned.
func (a *Attempt) Remaining() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.scanned {
		return 0
	}
	left := a.window - a.now().Sub(a.startedAt)
	if left < 0 {
		return 0
	}
	return left
}
