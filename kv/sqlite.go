package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver — CGO gerekmez, her platformda çalışır
)

// SQLiteStore, Store interface'inin gömülü SQLite implementasyonu.
// Redis kurulamayan tek-binary deployment'lar için: tüm state tek bir
// key_value_store tablosunda yaşar (key, value, expires_at).
//
// TTL, SQLite'ın bilmediği bir kavramdır — expires_at kolonu ile taklit edilir:
// Get süresi dolmuş satırı yok sayar, janitor goroutine periyodik olarak
// fiziksel silme yapar.
type SQLiteStore struct {
	conn *sql.DB

	stopJanitor chan struct{}
	closeOnce   sync.Once
}

// NewSQLiteStore, SQLite dosyasını açar, şemayı kurar ve janitor'ı başlatır.
//
// "_pragma=journal_mode(WAL)" → eşzamanlı okuma/yazma performansı.
// Şema kurulumu idempotenttir (CREATE TABLE IF NOT EXISTS) — ayrı bir
// migration sistemi bu tek tablo için gereksiz ağırlık olur.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS key_value_store (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			expires_at DATETIME
		)
	`); err != nil {
		return nil, fmt.Errorf("failed to create key_value_store table: %w", err)
	}

	s := &SQLiteStore{
		conn:        conn,
		stopJanitor: make(chan struct{}),
	}

	go s.janitorLoop()

	log.Println("[kv] sqlite store ready:", dbPath)
	return s, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	var expiresAt sql.NullTime

	err := s.conn.QueryRowContext(ctx,
		`SELECT value, expires_at FROM key_value_store WHERE key = ?`, key,
	).Scan(&value, &expiresAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	// Süresi dolmuş satır henüz janitor tarafından silinmemiş olabilir —
	// okuma tarafında da kontrol edilir, stale değer asla dönmez.
	if expiresAt.Valid && time.Now().After(expiresAt.Time) {
		return nil, ErrNotFound
	}

	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// Expiry her zaman UTC saklanır ve UTC ile karşılaştırılır — local time
	// yazılırsa offset taşıyan değer, offset'siz değerlerle lexical olarak
	// yanlış sıralanır ve süre hesabı timezone'a göre kayar.
	var expiresAt any
	if ttl > 0 {
		expiresAt = time.Now().UTC().Add(ttl)
	}

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO key_value_store (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.conn.ExecContext(ctx,
		`DELETE FROM key_value_store WHERE key = ?`, key,
	); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	// CURRENT_TIMESTAMP yerine Go'dan bağlanan UTC değer: iki taraf da aynı
	// formatta yazıldığı için karşılaştırma timezone'dan bağımsız doğrudur.
	rows, err := s.conn.QueryContext(ctx, `
		SELECT key FROM key_value_store
		WHERE key LIKE ? || '%' AND (expires_at IS NULL OR expires_at > ?)`,
		prefix, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keys: %w", err)
	}
	return keys, nil
}

func (s *SQLiteStore) Close() error {
	s.closeOnce.Do(func() { close(s.stopJanitor) })
	return s.conn.Close()
}

// janitorLoop, süresi dolan satırları periyodik olarak fiziksel siler.
func (s *SQLiteStore) janitorLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.cleanupExpired(); err != nil {
				log.Printf("[kv] janitor cleanup failed: %v", err)
			}
		case <-s.stopJanitor:
			return
		}
	}
}

func (s *SQLiteStore) cleanupExpired() error {
	_, err := s.conn.Exec(
		`DELETE FROM key_value_store WHERE expires_at IS NOT NULL AND expires_at <= ?`,
		time.Now().UTC(),
	)
	return err
}
