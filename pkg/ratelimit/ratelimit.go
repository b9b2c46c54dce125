// Package ratelimit — LoginLimiter: brute-force saldırılarına karşı
// IP bazlı login rate limiting.
//
// Tasarım:
// - Her IP için başarısız deneme sayacı key-value store'da tutulur
//   ("ratelimit:<ip>" → sayı, 15 dakika TTL).
// - Her YENİ başarısızlıkta TTL baştan yazılır — pencere kayar, sabit değildir:
//   denemeye devam eden saldırgan pencereyi kendisi uzatır.
// - Eşik aşıldıktan sonra şifre hiç kontrol edilmez; bloklanmış bir IP doğru
//   şifreyle bile fark yaratamaz (timing bazlı enumeration kapanır).
// - Başarılı login sayacı tamamen siler.
//
// Sayaç neden store'da, bellekte değil?
// Token version sayacı ile aynı store'u paylaşmak tek instance varsayımını
// ortadan kaldırır — restart sonrası blok devam eder, birden fazla instance
// aynı sayacı görür. Sayaç basit bir get/increment/set olduğu için yarışlara
// toleranslıdır: kaybolan bir artış en kötü ihtimalle bir deneme fazla tanır.
package ratelimit

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/kaankoc/portfolio/kv"
)

const (
	// MaxAttempts, pencere içinde tolere edilen başarısız deneme sayısı.
	MaxAttempts = 5

	// Window, sayaç TTL'i — son başarısızlıktan itibaren 15 dakika.
	Window = 15 * time.Minute

	keyPrefix = "ratelimit:"
)

// LoginLimiter, store destekli login failure sayacı.
type LoginLimiter struct {
	store kv.Store
}

// NewLoginLimiter, constructor.
func NewLoginLimiter(store kv.Store) *LoginLimiter {
	return &LoginLimiter{store: store}
}

// Blocked, IP'nin mevcut pencerede eşiği doldurup doldurmadığını döner.
// Login akışı şifreye BAKMADAN ÖNCE bunu çağırır.
func (l *LoginLimiter) Blocked(ctx context.Context, ip string) (bool, error) {
	count, err := l.attempts(ctx, ip)
	if err != nil {
		return false, err
	}
	return count >= MaxAttempts, nil
}

// RecordFailure, başarısız denemeyi sayar ve güncel deneme sayısını döner.
// TTL her başarısızlıkta 15 dakikaya resetlenir.
func (l *LoginLimiter) RecordFailure(ctx context.Context, ip string) (int, error) {
	count, err := l.attempts(ctx, ip)
	if err != nil {
		return 0, err
	}

	count++
	if err := l.store.Set(ctx, keyPrefix+ip, []byte(strconv.Itoa(count)), Window); err != nil {
		return 0, err
	}
	return count, nil
}

// Reset, başarılı login sonrası sayacı tamamen siler.
// Temizlenmezse meşru kullanıcı sonraki denemelerinde bloke olabilir.
func (l *LoginLimiter) Reset(ctx context.Context, ip string) error {
	return l.store.Delete(ctx, keyPrefix+ip)
}

// attempts, mevcut sayaç değerini okur; key yoksa 0.
func (l *LoginLimiter) attempts(ctx context.Context, ip string) (int, error) {
	data, err := l.store.Get(ctx, keyPrefix+ip)
	if errors.Is(err, kv.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	count, err := strconv.Atoi(string(data))
	if err != nil {
		// Bozuk sayaç — sıfırdan başlamak bloklamaktan güvenli.
		return 0, nil
	}
	return count, nil
}

// ExtractIP, HTTP request'ten client IP adresini çıkarır.
//
// Öncelik sırası:
// 1. X-Forwarded-For header (reverse proxy arkasındaysa, ilk IP)
// 2. X-Real-IP header (nginx gibi proxy'ler ekler)
// 3. RemoteAddr (doğrudan bağlantı)
func ExtractIP(r *http.Request) string {
	// X-Forwarded-For: client, proxy1, proxy2 — ilk değer gerçek client
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
