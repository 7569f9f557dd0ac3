package file

import (
	"context"
	"errors"
	"testing"

	"github.com/tutienda/storefront/pkg/storage"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Get(ctx, "cart"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first write, got %v", err)
	}

	payload := []byte(`[{"id_articulo":1}]`)
	if err := store.Set(ctx, "cart", payload); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := store.Get(ctx, "cart")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("expected %s, got %s", payload, got)
	}
}

func TestOverwriteReplacesValue(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Set(ctx, "session", []byte(`{"user":1}`)); err != nil {
		t.Fatalf("first set failed: %v", err)
	}
	if err := store.Set(ctx, "session", []byte(`{"user":2}`)); err != nil {
		t.Fatalf("second set failed: %v", err)
	}

	got, err := store.Get(ctx, "session")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != `{"user":2}` {
		t.Fatalf("expected overwrite to win, got %s", got)
	}
}

func TestDelIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Del(ctx, "cart"); err != nil {
		t.Fatalf("deleting a missing key should be a no-op, got %v", err)
	}

	if err := store.Set(ctx, "cart", []byte(`[]`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Del(ctx, "cart"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := store.Get(ctx, "cart"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestNewRequiresDirectory(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatal("expected error for blank state directory")
	}
}
