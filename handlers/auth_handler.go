// Package handlers, HTTP katmanını barındırır.
//
// Handler, request'i parse eder, service'i çağırır ve yanıtı yazar.
// İş mantığı burada YAŞAMAZ — handler sadece HTTP çevirmenidir.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kaankoc/portfolio/middleware"
	"github.com/kaankoc/portfolio/models"
	"github.com/kaankoc/portfolio/pkg"
	"github.com/kaankoc/portfolio/pkg/ratelimit"
	"github.com/kaankoc/portfolio/services"
)

// sessionMaxAge, cookie ömrü — token TTL'i ile aynı (24 saat).
const sessionMaxAge = 86400

// AuthHandler, login/logout ve oturum yönetimi endpoint'leri.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler, constructor.
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login — POST /api/auth/login
// Şifre doğruysa token'ı HttpOnly cookie olarak set eder; body'de token dönmez.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.Error(w, fmt.Errorf("%w: invalid request body", pkg.ErrBadRequest))
		return
	}

	ip := ratelimit.ExtractIP(r)
	token, err := h.authService.Login(r.Context(), req.Password, ip)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	setSessionCookie(w, token, sessionMaxAge)
	pkg.JSON(w, http.StatusOK, map[string]any{"message": "login successful"})
}

// Logout — POST /api/auth/logout
// Sadece cookie'yi düşürür; token sunucu tarafında geçerli kalır ve
// süresiyle ölür. Tüm oturumları düşürmek için InvalidateSessions vardır.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	setSessionCookie(w, "", -1)
	pkg.JSON(w, http.StatusOK, map[string]any{"message": "logged out"})
}

// ChangePassword — POST /api/auth/change-password
// Yeni bcrypt hash yanıtta döner — environment'a elle taşınmalıdır,
// sunucu credential storage tutmaz. Değişiklik epoch'u artırdığı için
// çağırana yeni version'lı taze cookie verilir.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, err := h.sessionClaims(r)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.Error(w, fmt.Errorf("%w: invalid request body", pkg.ErrBadRequest))
		return
	}

	result, err := h.authService.ChangePassword(r.Context(), claims, req.CurrentPassword, req.NewPassword)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	setSessionCookie(w, result.Token, sessionMaxAge)
	pkg.JSON(w, http.StatusOK, map[string]any{
		"message":         "password changed",
		"newPasswordHash": result.NewPasswordHash,
	})
}

// InvalidateSessions — POST /api/auth/invalidate-sessions
// Epoch'u artırır: bu çağrıdan önce verilmiş HER token (çağıranınki dahil)
// geçersizleşir. Cookie de düşürülür, admin yeniden login olur.
func (h *AuthHandler) InvalidateSessions(w http.ResponseWriter, r *http.Request) {
	claims, err := h.sessionClaims(r)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	version, err := h.authService.InvalidateSessions(r.Context(), claims)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	setSessionCookie(w, "", -1)
	pkg.JSON(w, http.StatusOK, map[string]any{
		"message":    "all sessions invalidated",
		"newVersion": version,
	})
}

// Activity — GET /api/auth/activity
// /api/auth gate'in dışında kaldığı için oturum burada doğrulanır.
func (h *AuthHandler) Activity(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessionClaims(r); err != nil {
		pkg.Error(w, err)
		return
	}

	entries, err := h.authService.Activity(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]any{"logs": entries})
}

// sessionClaims, cookie'deki token'ı doğrulayıp claim'leri döner.
// Gate zaten doğruladı ama handler claim içeriğine (IP, version) ihtiyaç
// duyduğu için burada tekrar parse edilir.
func (h *AuthHandler) sessionClaims(r *http.Request) (*models.TokenClaims, error) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, fmt.Errorf("%w: authentication required", pkg.ErrUnauthorized)
	}
	return h.authService.ValidateToken(r.Context(), cookie.Value)
}

// setSessionCookie, oturum cookie'sini yazar. maxAge < 0 siler.
func setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
