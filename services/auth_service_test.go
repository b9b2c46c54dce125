package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/kaankoc/portfolio/kv"
	"github.com/kaankoc/portfolio/models"
	"github.com/kaankoc/portfolio/pkg"
	"github.com/kaankoc/portfolio/pkg/ratelimit"
	"github.com/kaankoc/portfolio/repository"
)

const testPassword = "correct-horse-battery"

func newTestAuthService(t *testing.T) (AuthService, kv.Store) {
	t.Helper()

	store := kv.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	svc := NewAuthService(
		store,
		repository.NewKVActivityRepo(store),
		ratelimit.NewLoginLimiter(store),
		"test-secret",
		string(hash),
	)
	return svc, store
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "wrong", "1.2.3.4")
	if !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLoginReturnsValidToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, testPassword, "1.2.3.4")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := svc.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("token validation failed: %v", err)
	}
	if !claims.Admin {
		t.Error("expected admin claim")
	}
	if claims.IP != "1.2.3.4" {
		t.Errorf("expected ip claim 1.2.3.4, got %s", claims.IP)
	}
	if claims.Version != "1" {
		t.Errorf("expected initial version 1, got %s", claims.Version)
	}
}

func TestLoginBlockedAfterRepeatedFailures(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	for i := 0; i < ratelimit.MaxAttempts; i++ {
		if _, err := svc.Login(ctx, "wrong", "1.2.3.4"); !errors.Is(err, pkg.ErrUnauthorized) {
			t.Fatalf("attempt %d: expected ErrUnauthorized, got %v", i, err)
		}
	}

	// Eşik dolduktan sonra DOĞRU şifre bile işe yaramaz.
	_, err := svc.Login(ctx, testPassword, "1.2.3.4")
	if !errors.Is(err, pkg.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited with correct password, got %v", err)
	}

	// Başka IP etkilenmez.
	if _, err := svc.Login(ctx, testPassword, "5.6.7.8"); err != nil {
		t.Errorf("other IP should not be blocked: %v", err)
	}
}

func TestLoginSuccessResetsCounter(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	for i := 0; i < ratelimit.MaxAttempts-1; i++ {
		svc.Login(ctx, "wrong", "1.2.3.4")
	}
	if _, err := svc.Login(ctx, testPassword, "1.2.3.4"); err != nil {
		t.Fatalf("login at threshold edge failed: %v", err)
	}

	// Sayaç sıfırlandı — yeni başarısızlıklar sıfırdan sayılır.
	for i := 0; i < ratelimit.MaxAttempts-1; i++ {
		if _, err := svc.Login(ctx, "wrong", "1.2.3.4"); !errors.Is(err, pkg.ErrUnauthorized) {
			t.Fatalf("attempt %d after reset: expected ErrUnauthorized, got %v", i, err)
		}
	}
	if _, err := svc.Login(ctx, testPassword, "1.2.3.4"); err != nil {
		t.Errorf("expected login to succeed after counter reset, got %v", err)
	}
}

func TestInvalidateSessionsRejectsOldTokens(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, testPassword, "1.2.3.4")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := svc.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("validation failed: %v", err)
	}

	newVersion, err := svc.InvalidateSessions(ctx, claims)
	if err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if newVersion != "2" {
		t.Errorf("expected bumped version 2, got %s", newVersion)
	}

	// Eski token'ın imzası hâlâ geçerli ama version eski — reddedilmeli.
	if _, err := svc.ValidateToken(ctx, token); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Errorf("expected old token rejected, got %v", err)
	}

	// Yeni login yeni version'la çalışır.
	fresh, err := svc.Login(ctx, testPassword, "1.2.3.4")
	if err != nil {
		t.Fatalf("fresh login failed: %v", err)
	}
	freshClaims, err := svc.ValidateToken(ctx, fresh)
	if err != nil {
		t.Fatalf("fresh token validation failed: %v", err)
	}
	if freshClaims.Version != "2" {
		t.Errorf("expected fresh token version 2, got %s", freshClaims.Version)
	}
}

func TestInvalidateSessionsRequiresClaims(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.InvalidateSessions(context.Background(), nil); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for nil claims, got %v", err)
	}
}

func TestChangePasswordWeakPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	token, _ := svc.Login(ctx, testPassword, "1.2.3.4")
	claims, _ := svc.ValidateToken(ctx, token)

	_, err := svc.ChangePassword(ctx, claims, testPassword, "short")
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest for weak password, got %v", err)
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	token, _ := svc.Login(ctx, testPassword, "1.2.3.4")
	claims, _ := svc.ValidateToken(ctx, token)

	_, err := svc.ChangePassword(ctx, claims, "wrong-current", "new-password-123")
	if !errors.Is(err, pkg.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for wrong current password, got %v", err)
	}
}

func TestChangePasswordRotatesSessions(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	oldToken, _ := svc.Login(ctx, testPassword, "1.2.3.4")
	claims, _ := svc.ValidateToken(ctx, oldToken)

	result, err := svc.ChangePassword(ctx, claims, testPassword, "new-password-123")
	if err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	// Dönen hash yeni şifreyi doğrular.
	if err := bcrypt.CompareHashAndPassword([]byte(result.NewPasswordHash), []byte("new-password-123")); err != nil {
		t.Error("returned hash does not match new password")
	}

	// Eski oturum düşer, dönen taze token çalışır.
	if _, err := svc.ValidateToken(ctx, oldToken); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Errorf("expected old token rejected after password change, got %v", err)
	}
	freshClaims, err := svc.ValidateToken(ctx, result.Token)
	if err != nil {
		t.Fatalf("fresh token validation failed: %v", err)
	}
	if freshClaims.Version != "2" {
		t.Errorf("expected fresh token version 2, got %s", freshClaims.Version)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.ValidateToken(context.Background(), "not-a-jwt"); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for garbage token, got %v", err)
	}
}

func TestActivityLogging(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	svc.Login(ctx, "wrong", "1.2.3.4")
	svc.Login(ctx, testPassword, "1.2.3.4")

	entries, err := svc.Activity(ctx)
	if err != nil {
		t.Fatalf("activity failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}

	// Timestamp saniye çözünürlüklü — ard arda iki olayın sırası garantili
	// değil, iki aksiyonun da kayıtlı olması yeterli.
	seen := map[string]bool{}
	for _, e := range entries {
		seen[e.Action] = true
		if e.IP != "1.2.3.4" {
			t.Errorf("expected entry IP 1.2.3.4, got %s", e.IP)
		}
	}
	if !seen[models.ActionLoginFailed] || !seen[models.ActionLoginSuccess] {
		t.Errorf("expected login_failed and login_success entries, got %v", seen)
	}
}

func TestUnconfiguredService(t *testing.T) {
	store := kv.NewMemoryStore()
	defer store.Close()

	svc := NewAuthService(store, repository.NewKVActivityRepo(store), ratelimit.NewLoginLimiter(store), "", "")

	if _, err := svc.Login(context.Background(), "pw", "1.2.3.4"); !errors.Is(err, pkg.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}
