package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kaankoc/portfolio/pkg/i18n"
	"github.com/kaankoc/portfolio/services"
)

// SessionCookieName, admin oturum token'ının taşındığı cookie.
const SessionCookieName = "admin_token"

// Gate, her isteği sınıflandırıp admin yüzeyini koruyan en dış katman.
//
// Sınıflandırma sırası:
//  1. Statik asset'ler ve public API dokunulmadan geçer.
//  2. Login sayfasına (/admin) geçerli oturumla gelen dashboard'a yönlenir.
//  3. Korumalı yüzeye (/admin/* UI, /api/admin/*) oturumsuz gelen:
//     API isteğiyse 401 JSON, sayfa isteğiyse /admin redirect'i alır.
//  4. Locale'siz sayfa yolları varsayılan dile rewrite edilir.
//
// Token doğrulaması AuthService'e delege edilir; gate sadece cookie'yi
// okur ve sonucuna göre yönlendirir.
type Gate struct {
	auth services.AuthService
	next http.Handler
}

// NewGate, constructor.
func NewGate(auth services.AuthService, next http.Handler) *Gate {
	return &Gate{auth: auth, next: next}
}

func (g *Gate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if isStaticAsset(path) {
		g.next.ServeHTTP(w, r)
		return
	}

	// Login sayfası: zaten geçerli oturum varsa formu tekrar göstermek
	// anlamsız, doğrudan dashboard'a.
	if path == "/admin" || path == "/admin/" {
		if g.hasValidSession(r) {
			http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
			return
		}
		g.next.ServeHTTP(w, r)
		return
	}

	if isProtected(path) && !g.hasValidSession(r) {
		if strings.HasPrefix(path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   "unauthorized",
			})
			return
		}
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	// Public sayfalar locale prefix'i ister: "/" → "/tr", "/about" →
	// "/tr/about". Redirect ile çözülür — client canonical URL'yi görür,
	// sessiz rewrite aynı sayfayı iki URL altında yaşatırdı. API, admin ve
	// zaten locale'li yollar dokunulmaz.
	if target, ok := localeRedirect(path); ok {
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	g.next.ServeHTTP(w, r)
}

func (g *Gate) hasValidSession(r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	_, err = g.auth.ValidateToken(r.Context(), cookie.Value)
	return err == nil
}

// assetExtensions, gate'i atlayabilen dosya uzantıları. Whitelist bilinçli
// olarak dardır: "uzantısı olan her şey asset'tir" kuralı
// "/admin/dashboard.html" gibi korumalı sayfaların oturumsuz servis
// edilmesine yol açar.
var assetExtensions = map[string]bool{
	".ico": true, ".png": true, ".jpg": true, ".jpeg": true,
	".svg": true, ".webp": true, ".gif": true,
	".css": true, ".js": true, ".pdf": true,
	".woff": true, ".woff2": true,
}

// isStaticAsset, build çıktıları ve bilinen asset uzantılı dosya istekleri.
func isStaticAsset(path string) bool {
	if strings.HasPrefix(path, "/_next/") || strings.HasPrefix(path, "/static/") {
		return true
	}
	if path == "/favicon.ico" || path == "/robots.txt" || path == "/sitemap.xml" {
		return true
	}
	ext := strings.ToLower(path[strings.LastIndex(path, "/")+1:])
	if i := strings.LastIndex(ext, "."); i >= 0 {
		return assetExtensions[ext[i:]]
	}
	return false
}

// isProtected, oturum gerektiren yüzey. "/admin" login sayfasının kendisi
// hariçtir — oraya oturumsuz girilebilmeli ki login yapılabilsin.
func isProtected(path string) bool {
	if strings.HasPrefix(path, "/api/admin/") || path == "/api/admin" {
		return true
	}
	return strings.HasPrefix(path, "/admin/")
}

// localeRedirect, locale prefix'i olmayan public sayfa yolları için
// varsayılan dile redirect hedefi üretir. İkinci dönüş değeri redirect
// gerekip gerekmediğidir.
func localeRedirect(path string) (string, bool) {
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/admin") || strings.HasPrefix(path, "/cv/") {
		return path, false
	}
	for _, lang := range i18n.SupportedLanguages {
		if path == "/"+lang || strings.HasPrefix(path, "/"+lang+"/") {
			return path, false
		}
	}
	if path == "/" {
		return "/" + i18n.DefaultLanguage, true
	}
	return "/" + i18n.DefaultLanguage + path, true
}
