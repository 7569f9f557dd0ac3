package checkout

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tutienda/storefront/pkg/config"
	"github.com/tutienda/storefront/pkg/enums"
	pkgerrors "github.com/tutienda/storefront/pkg/errors"
)

func paymentConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		Merchant:        "TuTienda",
		PaymentWindow:   5 * time.Minute,
		ProcessingDelay: 3 * time.Second,
	}
}

// fakeClock advances only when told to.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func TestAttemptLifecycle(t *testing.T) {
	clock := &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	attempt := NewAttempt(42, decimal.NewFromInt(280), paymentConfig(), clock.now)

	if got := attempt.State(); got != enums.PaymentStatePending {
		t.Fatalf("expected pending, got %s", got)
	}
	if attempt.Remaining() != 5*time.Minute {
		t.Fatalf("expected full window remaining, got %s", attempt.Remaining())
	}

	clock.advance(time.Minute)
	if attempt.Remaining() != 4*time.Minute {
		t.Fatalf("expected 4m remaining, got %s", attempt.Remaining())
	}

	if err := attempt.Scan(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if got := attempt.State(); got != enums.PaymentStateProcessing {
		t.Fatalf("expected processing after scan, got %s", got)
	}

	clock.advance(3 * time.Second)
	if got := attempt.State(); got != enums.PaymentStateConfirmed {
		t.Fatalf("expected confirmed after delay, got %s", got)
	}
}

func TestAttemptExpires(t *testing.T) {
	clock := &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	attempt := NewAttempt(42, decimal.NewFromInt(280), paymentConfig(), clock.now)

	clock.advance(5 * time.Minute)
	if got := attempt.State(); got != enums.PaymentStateExpired {
		t.Fatalf("expected expired, got %s", got)
	}
	if attempt.Remaining() != 0 {
		t.Fatalf("expected no time remaining, got %s", attempt.Remaining())
	}
	if err := attempt.Scan(); !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict scanning expired attempt, got %v", err)
	}
}

func TestAttemptDoubleScan(t *testing.T) {
	clock := &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	attempt := NewAttempt(42, decimal.NewFromInt(280), paymentConfig(), clock.now)

	if err := attempt.Scan(); err != nil {
		t.Fatalf("first scan failed: %v", err)
	}
	if err := attempt.Scan(); !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict on second scan, got %v", err)
	}
}

func TestAttemptQRPayload(t *testing.T) {
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{current: started}
	attempt := NewAttempt(42, decimal.NewFromInt(280), paymentConfig(), clock.now)

	raw, err := attempt.QR()
	if err != nil {
		t.Fatalf("qr encode failed: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("qr payload is not json: %v", err)
	}
	if payload["pedido"] != float64(42) {
		t.Fatalf("expected pedido 42, got %v", payload["pedido"])
	}
	if payload["monto"] != "280" {
		t.Fatalf("expected monto 280, got %v", payload["monto"])
	}
	if payload["merchant"] != "TuTienda" {
		t.Fatalf("expected merchant TuTienda, got %v", payload["merchant"])
	}
	if payload["timestamp"] == "" {
		t.Fatalf("expected timestamp in payload")
	}
}
