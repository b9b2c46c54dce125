package kv

import (
	"log"

	"github.com/kaankoc/portfolio/config"
)

// NewStore, konfigürasyona göre uygun store adapter'ını seçer.
//
// Öncelik sırası:
//  1. REDIS_HOST doluysa Redis — bağlantı başarısızsa hata DÖNER,
//     sessizce başka backend'e düşmez (yanlış yere yazan bir admin
//     paneli, hiç açılmayan bir panelden daha tehlikelidir).
//  2. KV_DB_PATH doluysa gömülü SQLite.
//  3. Hiçbiri yoksa in-memory (sadece development).
func NewStore(cfg config.KVConfig) (Store, error) {
	if cfg.RedisHost != "" {
		store, err := NewRedisStore(cfg.RedisHost, cfg.RedisPort, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		log.Printf("[kv] using redis store: %s:%s", cfg.RedisHost, cfg.RedisPort)
		return store, nil
	}

	if cfg.SQLitePath != "" {
		return NewSQLiteStore(cfg.SQLitePath)
	}

	log.Println("[kv] using in-memory store (data will not survive restarts)")
	return NewMemoryStore(), nil
}
