// Package kv, uygulamanın tüm kalıcı durumunu tutan key-value store soyutlamasıdır.
//
// Bu repo bir storage engine DEĞİLDİR — içerik koleksiyonları, token version
// sayacı, rate limit sayaçları ve admin log'ları hep aynı basit sözleşme
// üzerinden saklanır: string key → byte blob, opsiyonel TTL.
//
// Üç adapter vardır:
//   - RedisStore: production (Redis zaten TTL'li key-value store'dur)
//   - SQLiteStore: tek binary deployment — harici servis gerekmez
//   - MemoryStore: development fallback + testler
//
// Adapter'lar birbirinin yerine geçer; iş mantığı hangisinin arkada olduğunu
// bilmez. Atomiklik garantisi adapter'ın kendi key-başına last-write-wins
// davranışından ibarettir — cross-key transaction YOKTUR ve iş mantığı buna
// güvenmez.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound, istenen key store'da yoksa döner.
// Key yokluğu çoğu çağıran için hata değildir (boş koleksiyon, ilk login) —
// bu yüzden sentinel error ile ayırt edilir, generic hataya karışmaz.
var ErrNotFound = errors.New("kv: key not found")

// Store, key-value store sözleşmesi.
type Store interface {
	// Get, key'in değerini döner. Key yoksa veya TTL'i dolmuşsa ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set, değeri yazar. ttl > 0 ise key o süre sonunda otomatik silinir;
	// ttl == 0 kalıcı yazma demektir. Var olan key üzerine yazılır (TTL dahil).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete, key'i siler. Key zaten yoksa hata DÖNMEZ.
	Delete(ctx context.Context, key string) error

	// Keys, verilen prefix ile başlayan key'leri döner (sırasız).
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close, adapter'ın tuttuğu kaynakları serbest bırakır.
	Close() error
}
