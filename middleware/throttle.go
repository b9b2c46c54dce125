package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/kaankoc/portfolio/pkg"
	"github.com/kaankoc/portfolio/pkg/i18n"
	"github.com/kaankoc/portfolio/pkg/ratelimit"
)

// Throttle, public endpoint'ler için IP başına in-memory token bucket.
// Login rate limiter'dan farklı olarak store'a yazmaz ve restart'ta
// sıfırlanır — amacı hesap korumak değil, form spam'ini kesmek.
type Throttle struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewThrottle, dakikada perMinute istek + burst kadar ani yük izni verir.
func NewThrottle(perMinute, burst int) *Throttle {
	t := &Throttle{
		visitors:    make(map[string]*visitor),
		limit:       rate.Limit(float64(perMinute) / 60.0),
		burst:       burst,
		stopCleanup: make(chan struct{}),
	}
	go t.cleanupLoop()
	return t
}

// Stop, cleanup goroutine'ini durdurur. Birden fazla çağrı güvenlidir.
func (t *Throttle) Stop() {
	t.stopOnce.Do(func() { close(t.stopCleanup) })
}

// Wrap, limiti aşan istekleri 429 ile keser.
func (t *Throttle) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ratelimit.ExtractIP(r)
		if !t.allow(ip) {
			localizer := i18n.NewLocalizer(i18n.DetectLanguage(r.Header.Get("Accept-Language")))
			pkg.ErrorWithMessage(w, http.StatusTooManyRequests, localizer.T("contact.tooMany"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (t *Throttle) allow(ip string) bool {
	t.mu.Lock()
	v, ok := t.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	t.mu.Unlock()
	return v.limiter.Allow()
}

// cleanupLoop, uzun süre görünmeyen IP'leri map'ten atar.
func (t *Throttle) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.mu.Lock()
			for ip, v := range t.visitors {
				if time.Since(v.lastSeen) > 10*time.Minute {
					delete(t.visitors, ip)
				}
			}
			t.mu.Unlock()
		case <-t.stopCleanup:
			return
		}
	}
}
