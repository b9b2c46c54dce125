// Package services, business logic katmanını barındırır.
//
// Service, Handler (HTTP) ile Repository/Store arasında oturan katmandır.
// Service ASLA http.Request/Response bilmez — sadece domain tipleri alır/verir.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kaankoc/portfolio/kv"
	"github.com/kaankoc/portfolio/models"
	"github.com/kaankoc/portfolio/pkg"
	"github.com/kaankoc/portfolio/pkg/ratelimit"
	"github.com/kaankoc/portfolio/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	// tokenTTL, oturum token'ının sabit ömrü.
	tokenTTL = 24 * time.Hour

	// versionKey, global token epoch sayacının store key'i.
	versionKey = "current_version"

	// defaultVersion, sayaç hiç yazılmamışken kabul edilen değer.
	defaultVersion = "1"

	minPasswordLength = 8
)

// AuthService interface'i — dışarıya açık API.
// Handler ve access gate bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	// Login, şifreyi doğrular ve imzalı oturum token'ı döner.
	// Rate limit eşiği dolmuşsa şifreye hiç bakmadan ErrRateLimited döner.
	Login(ctx context.Context, password, ip string) (string, error)

	// ValidateToken, token'ın imzasını, süresini VE version claim'ini doğrular.
	// Version, store'daki güncel epoch ile eşleşmiyorsa token reddedilir —
	// imzası sağlam olsa bile.
	ValidateToken(ctx context.Context, tokenString string) (*models.TokenClaims, error)

	// ChangePassword, mevcut şifreyi doğrulayıp yeni hash üretir, epoch'u
	// artırır (diğer tüm oturumlar düşer) ve yeni version'lı taze token döner.
	// Yeni hash'i kalıcılaştırmak ÇAĞIRANIN işidir — bu servis credential
	// storage'ın sahibi değildir, hash environment'ta yaşar.
	ChangePassword(ctx context.Context, claims *models.TokenClaims, currentPassword, newPassword string) (*PasswordChange, error)

	// InvalidateSessions, epoch'u artırır ve yeni değeri döner.
	// Daha önce üretilmiş HER token bir sonraki doğrulamada reddedilir;
	// token'ları tek tek bulup silmek gerekmez.
	InvalidateSessions(ctx context.Context, claims *models.TokenClaims) (string, error)

	// Activity, son güvenlik olaylarını döner (en yeni üstte).
	Activity(ctx context.Context) ([]models.LogEntry, error)
}

// PasswordChange, şifre değişiminin sonucu.
type PasswordChange struct {
	// Token, yeni version'ı taşıyan taze oturum token'ı.
	Token string

	// NewPasswordHash, environment'a elle taşınması gereken yeni bcrypt hash.
	NewPasswordHash string
}

// authService, AuthService interface'inin implementasyonu.
type authService struct {
	store        kv.Store
	activityRepo repository.ActivityRepository
	limiter      *ratelimit.LoginLimiter
	jwtSecret    []byte
	passwordHash string
}

// NewAuthService, constructor.
// jwtSecret/passwordHash boş geçilirse servis kurulur ama her çağrı
// ErrConfiguration döner — config.Load zaten bunları zorunlu kılar, bu
// kontrol testlerdeki/gömülü wire-up'lardaki yarım konfigürasyonu yakalar.
func NewAuthService(
	store kv.Store,
	activityRepo repository.ActivityRepository,
	limiter *ratelimit.LoginLimiter,
	jwtSecret string,
	passwordHash string,
) AuthService {
	return &authService{
		store:        store,
		activityRepo: activityRepo,
		limiter:      limiter,
		jwtSecret:    []byte(jwtSecret),
		passwordHash: passwordHash,
	}
}

func (s *authService) Login(ctx context.Context, password, ip string) (string, error) {
	if err := s.configured(); err != nil {
		return "", err
	}

	// Eşik dolmuşsa şifre hiç karşılaştırılmaz — bloklanan bir IP doğru
	// şifreyle bile farklı bir yanıt süresi gözlemleyemez.
	blocked, err := s.limiter.Blocked(ctx, ip)
	if err != nil {
		return "", fmt.Errorf("failed to check rate limit: %w", err)
	}
	if blocked {
		s.appendLog(ctx, models.LogEntry{IP: ip, Action: models.ActionLoginBlocked})
		return "", fmt.Errorf("%w: too many failed attempts, try again later", pkg.ErrRateLimited)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		if _, ferr := s.limiter.RecordFailure(ctx, ip); ferr != nil {
			log.Printf("[auth] failed to record login failure for %s: %v", ip, ferr)
		}
		s.appendLog(ctx, models.LogEntry{IP: ip, Action: models.ActionLoginFailed})
		return "", fmt.Errorf("%w: invalid password", pkg.ErrUnauthorized)
	}

	version, err := s.currentVersion(ctx)
	if err != nil {
		return "", err
	}

	token, err := s.signToken(ip, version)
	if err != nil {
		return "", err
	}

	if err := s.limiter.Reset(ctx, ip); err != nil {
		log.Printf("[auth] failed to reset rate limit for %s: %v", ip, err)
	}
	s.appendLog(ctx, models.LogEntry{IP: ip, Action: models.ActionLoginSuccess})

	return token, nil
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*models.TokenClaims, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid || !claims.Admin {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}

	// Epoch kontrolü — token'ı gerçekten geçersiz kılabilen tek sunucu
	// tarafı mekanizma. İmza ve süre geçerli olsa bile eski version'lı
	// token kabul edilmez.
	current, err := s.currentVersion(ctx)
	if err != nil {
		return nil, err
	}
	if claims.Version != current {
		return nil, fmt.Errorf("%w: session invalidated", pkg.ErrUnauthorized)
	}

	return claims, nil
}

func (s *authService) ChangePassword(ctx context.Context, claims *models.TokenClaims, currentPassword, newPassword string) (*PasswordChange, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: authentication required", pkg.ErrUnauthorized)
	}

	if len(newPassword) < minPasswordLength {
		return nil, fmt.Errorf("%w: new password must be at least %d characters", pkg.ErrBadRequest, minPasswordLength)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(currentPassword)); err != nil {
		return nil, fmt.Errorf("%w: current password is incorrect", pkg.ErrUnauthorized)
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash new password: %w", err)
	}

	newVersion, err := s.bumpVersion(ctx)
	if err != nil {
		return nil, err
	}

	s.appendLog(ctx, models.LogEntry{
		IP:      claims.IP,
		Action:  models.ActionPasswordChanged,
		Version: newVersion,
	})

	// Yeni version'lı taze token — şifreyi değiştiren oturum açık kalır,
	// diğer tüm oturumlar version uyuşmazlığından düşer.
	token, err := s.signToken(claims.IP, newVersion)
	if err != nil {
		return nil, err
	}

	return &PasswordChange{
		Token:           token,
		NewPasswordHash: string(newHash),
	}, nil
}

func (s *authService) InvalidateSessions(ctx context.Context, claims *models.TokenClaims) (string, error) {
	if err := s.configured(); err != nil {
		return "", err
	}
	if claims == nil {
		return "", fmt.Errorf("%w: authentication required", pkg.ErrUnauthorized)
	}

	newVersion, err := s.bumpVersion(ctx)
	if err != nil {
		return "", err
	}

	s.appendLog(ctx, models.LogEntry{
		IP:      claims.IP,
		Action:  models.ActionSessionsInvalidated,
		Version: newVersion,
	})

	return newVersion, nil
}

func (s *authService) Activity(ctx context.Context) ([]models.LogEntry, error) {
	return s.activityRepo.Recent(ctx)
}

// ─── Private Helpers ───

func (s *authService) configured() error {
	if len(s.jwtSecret) == 0 || s.passwordHash == "" {
		return fmt.Errorf("%w: signing secret or password hash missing", pkg.ErrConfiguration)
	}
	return nil
}

func (s *authService) signToken(ip, version string) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		Admin:   true,
		IP:      ip,
		Version: version,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// currentVersion, global epoch değerini okur; hiç yazılmamışsa "1".
func (s *authService) currentVersion(ctx context.Context) (string, error) {
	data, err := s.store.Get(ctx, versionKey)
	if errors.Is(err, kv.ErrNotFound) {
		return defaultVersion, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token version: %w", err)
	}
	return string(data), nil
}

// bumpVersion, epoch'u bir artırıp yeni değeri yazar ve döner.
// Sayaç okunamaz haldeyse varsayılandan devam edilir — version kaybetmek
// en kötü ihtimalle fazladan bir invalidation demektir, asla eksik değil.
func (s *authService) bumpVersion(ctx context.Context) (string, error) {
	current, err := s.currentVersion(ctx)
	if err != nil {
		return "", err
	}

	n, err := strconv.Atoi(current)
	if err != nil {
		n = 1
	}

	newVersion := strconv.Itoa(n + 1)
	if err := s.store.Set(ctx, versionKey, []byte(newVersion), 0); err != nil {
		return "", fmt.Errorf("failed to store token version: %w", err)
	}
	return newVersion, nil
}

// appendLog, güvenlik olayını kaydeder. Log yazılamaması asıl işlemi
// durdurmaz — sadece loglanır.
func (s *authService) appendLog(ctx context.Context, entry models.LogEntry) {
	if err := s.activityRepo.Append(ctx, entry); err != nil {
		log.Printf("[auth] failed to append activity log (%s): %v", entry.Action, err)
	}
}
