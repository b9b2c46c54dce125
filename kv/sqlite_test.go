package kv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreGetSetDelete(t *testing.T) {
	store := newTestSQLiteStore(t)
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

	// Üzerine yazma.
	if err := store.Set(ctx, "key", []byte("updated"), 0); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, _ = store.Get(ctx, "key")
	if string(got) != "updated" {
		t.Errorf("expected updated, got %s", got)
	}

	if err := store.Delete(ctx, "key"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "key"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

// Expiry UTC saklanıp UTC ile karşılaştırılmalı: local time negatif offset'li
// bir timezone'dayken süresi DOLMAMIŞ key'ler Keys'te görünmeli ve janitor
// tarafından silinmemeli.
func TestSQLiteStoreTTLTimezoneIndependent(t *testing.T) {
	originalLocal := time.Local
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	time.Local = loc
	t.Cleanup(func() { time.Local = originalLocal })

	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "ratelimit:1.2.3.4", []byte("3"), 15*time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	keys, err := store.Keys(ctx, "ratelimit:")
	if err != nil {
		t.Fatalf("keys failed: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected unexpired key visible in Keys, got %v", keys)
	}

	// Janitor süresi dolmamış satırı silmemeli.
	if err := store.cleanupExpired(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if _, err := store.Get(ctx, "ratelimit:1.2.3.4"); err != nil {
		t.Errorf("janitor must not delete unexpired key, got %v", err)
	}
}

func TestSQLiteStoreExpiredKeys(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "ephemeral", []byte("x"), 10*time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	store.Set(ctx, "persistent", []byte("y"), 0)

	time.Sleep(30 * time.Millisecond)

	// Get stale değer dönmez.
	if _, err := store.Get(ctx, "ephemeral"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for expired key, got %v", err)
	}

	// Keys süresi dolmuş key'i listelemez.
	keys, err := store.Keys(ctx, "")
	if err != nil {
		t.Fatalf("keys failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "persistent" {
		t.Errorf("expected only persistent key, got %v", keys)
	}

	// Janitor süresi dolmuş satırı fiziksel siler, kalıcı olana dokunmaz.
	if err := store.cleanupExpired(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if _, err := store.Get(ctx, "persistent"); err != nil {
		t.Errorf("persistent key must survive cleanup, got %v", err)
	}
}
