// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi taşırız.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her struct tek bir concern'ü temsil eder.
type Config struct {
	Server ServerConfig
	Auth   AuthConfig
	KV     KVConfig
	CV     CVConfig
	Mail   MailConfig
	Domain DomainConfig
	Web    WebConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

// AuthConfig, admin oturum ayarları.
type AuthConfig struct {
	JWTSecret    string // Token imzalama anahtarı — GİZLİ TUTULMALI
	PasswordHash string // Admin şifresinin bcrypt hash'i (plaintext DEĞİL)
}

// KVConfig, key-value store backend seçimi.
// RedisHost doluysa Redis kullanılır, yoksa SQLitePath'teki gömülü store.
type KVConfig struct {
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	SQLitePath    string
}

// CVConfig, CV dosya depolama ayarları.
// Backend "fs" (disk dizini) veya "kv" (key-value store blob'ları) olabilir —
// iki backend birbirinin alternatifidir, aynı anda kullanılmaz.
type CVConfig struct {
	Backend string
	Dir     string
}

// MailConfig, Resend üzerinden alert mail gönderim ayarları.
type MailConfig struct {
	ResendAPIKey string
	From         string
	AlertTo      string
}

// DomainConfig, domain süre takibi ayarları.
type DomainConfig struct {
	Domains    []string
	CronSecret string // Boşsa cron endpoint'i hiçbir isteği kabul etmez
}

// WebConfig, statik site dosyalarının servis edildiği dizin.
type WebConfig struct {
	Dir string
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için).
//
// JWT_SECRET ve ADMIN_PASSWORD_HASH zorunludur — eksiklerse uygulama hiç
// başlamamalıdır; yarım konfigürasyonla açılan bir admin paneli her isteğe
// 500 dönmekten başka bir şey yapamaz.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "9090"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	passwordHash := getEnv("ADMIN_PASSWORD_HASH", "")
	if passwordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH environment variable is required")
	}

	cvBackend := getEnv("CV_STORAGE", "fs")
	if cvBackend != "fs" && cvBackend != "kv" {
		return nil, fmt.Errorf("invalid CV_STORAGE %q: must be \"fs\" or \"kv\"", cvBackend)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        port,
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		},
		Auth: AuthConfig{
			JWTSecret:    jwtSecret,
			PasswordHash: passwordHash,
		},
		KV: KVConfig{
			RedisHost:     getEnv("REDIS_HOST", ""),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisUsername: getEnv("REDIS_USERNAME", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			SQLitePath:    getEnv("KV_DB_PATH", "./data/portfolio.db"),
		},
		CV: CVConfig{
			Backend: cvBackend,
			Dir:     getEnv("CV_DIR", "./data/cv"),
		},
		Mail: MailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			From:         getEnv("EMAIL_FROM", "noreply@kaankoc.net"),
			AlertTo:      getEnv("ALERT_EMAIL", ""),
		},
		Domain: DomainConfig{
			Domains:    splitList(getEnv("DOMAINS", "kaankoc.com,kaankoc.net")),
			CronSecret: getEnv("CRON_SECRET", ""),
		},
		Web: WebConfig{
			Dir: getEnv("WEB_DIR", "./web"),
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:9090").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// splitList, virgülle ayrılmış env değerini temizlenmiş slice'a çevirir.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
