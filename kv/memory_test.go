package kv

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreGetSet(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := store.Get(ctx, "key")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("expected value, got %s", got)
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	if err := store.Set(ctx, "ephemeral", []byte("x"), 30*time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if _, err := store.Get(ctx, "ephemeral"); err != nil {
		t.Fatalf("expected key before expiry, got %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if _, err := store.Get(ctx, "ephemeral"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	store.Set(ctx, "key", []byte("value"), 0)
	if err := store.Delete(ctx, "key"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "key"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Olmayan key'i silmek hata değildir.
	if err := store.Delete(ctx, "missing"); err != nil {
		t.Errorf("deleting missing key should not error, got %v", err)
	}
}

func TestMemoryStoreKeysPrefix(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	store.Set(ctx, "log_1", []byte("a"), 0)
	store.Set(ctx, "log_2", []byte("b"), 0)
	store.Set(ctx, "other", []byte("c"), 0)

	keys, err := store.Keys(ctx, "log_")
	if err != nil {
		t.Fatalf("keys failed: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("expected 2 keys with prefix, got %d: %v", len(keys), keys)
	}
}

func TestMemoryStoreValueIsolation(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	original := []byte("value")
	store.Set(ctx, "key", original, 0)
	original[0] = 'X'

	got, _ := store.Get(ctx, "key")
	if string(got) != "value" {
		t.Errorf("store must copy values, got %s", got)
	}
}
