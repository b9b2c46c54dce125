package kv

import (
	"context"
	"strings"
	"sync"
	"time"
)

// entry, memory store'daki tek bir kayıt.
// expiresAt zero value ise kayıt kalıcıdır.
type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore, Store interface'inin in-memory implementasyonu.
// Redis/SQLite konfigüre edilmemiş development ortamı ve testler için.
// Process yeniden başlayınca her şey uçar — production'da kullanılmaz.
//
// sync.RWMutex ile thread-safe: birden fazla goroutine aynı anda okuyabilir,
// yazma sırasında tüm erişim bloklanır.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry

	stopJanitor chan struct{}
	closeOnce   sync.Once
}

// NewMemoryStore, boş bir memory store oluşturur ve janitor'ı başlatır.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries:     make(map[string]entry),
		stopJanitor: make(chan struct{}),
	}
	go s.janitorLoop()
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || (!e.expiresAt.IsZero() && time.Now().After(e.expiresAt)) {
		return nil, ErrNotFound
	}

	// Çağıranın slice'ı mutate etmesi store'u bozmasın diye kopya dönülür.
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: stored, expiresAt: expiresAt}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	var keys []string
	for key, e := range s.entries {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() { close(s.stopJanitor) })
	return nil
}

// janitorLoop, süresi dolan entry'leri map'ten fiziksel olarak siler.
// Get zaten stale entry döndürmez; janitor sadece bellek sızıntısını önler.
func (s *MemoryStore) janitorLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for key, e := range s.entries {
				if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		case <-s.stopJanitor:
			return
		}
	}
}
