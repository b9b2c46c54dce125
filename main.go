// Portfolio backend — kişisel site için içerik API'si ve admin paneli sunucusu.
//
// Mimari katmanlar:
//
//	main.go     → wire-up: config, store, repo, service, handler, router
//	middleware/ → access gate (oturum koruması) ve public throttle
//	handlers/   → HTTP katmanı (parse → service → yanıt)
//	services/   → iş mantığı (auth, içerik, cv, domain)
//	repository/ → key-value store üzerinde veri erişimi
//	kv/         → store backend'leri (redis / sqlite / memory)
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/kaankoc/portfolio/config"
	"github.com/kaankoc/portfolio/handlers"
	"github.com/kaankoc/portfolio/kv"
	"github.com/kaankoc/portfolio/middleware"
	"github.com/kaankoc/portfolio/pkg/email"
	"github.com/kaankoc/portfolio/pkg/i18n"
	"github.com/kaankoc/portfolio/pkg/ratelimit"
	"github.com/kaankoc/portfolio/repository"
	"github.com/kaankoc/portfolio/services"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}

	// ─── Store ───
	store, err := kv.NewStore(cfg.KV)
	if err != nil {
		log.Fatalf("[main] failed to initialize key-value store: %v", err)
	}
	defer store.Close()

	// ─── i18n ───
	localesFS, err := fs.Sub(i18n.EmbeddedLocales, "locales")
	if err != nil {
		log.Fatalf("[main] failed to access embedded locales: %v", err)
	}
	if err := i18n.Load(localesFS); err != nil {
		log.Fatalf("[main] failed to load translations: %v", err)
	}

	// ─── Repository'ler ───
	contentRepo := repository.NewKVContentRepo(store)
	messageRepo := repository.NewKVMessageRepo(store)
	activityRepo := repository.NewKVActivityRepo(store)

	// ─── Service'ler ───
	limiter := ratelimit.NewLoginLimiter(store)
	authService := services.NewAuthService(store, activityRepo, limiter, cfg.Auth.JWTSecret, cfg.Auth.PasswordHash)
	contentService := services.NewContentService(contentRepo, messageRepo)

	cvService, err := services.NewCVService(cfg.CV, store)
	if err != nil {
		log.Fatalf("[main] failed to initialize cv storage: %v", err)
	}

	// Mail gönderimi opsiyonel — API key yoksa alert'ler sessizce atlanır.
	var sender email.EmailSender
	if cfg.Mail.ResendAPIKey != "" && cfg.Mail.AlertTo != "" {
		sender = email.NewResendSender(cfg.Mail.ResendAPIKey, cfg.Mail.From, cfg.Mail.AlertTo)
	} else {
		log.Println("[main] email alerts disabled (RESEND_API_KEY or ALERT_EMAIL not set)")
	}
	domainService := services.NewDomainService(store, sender, cfg.Domain.Domains)

	// ─── Handler'lar ───
	authHandler := handlers.NewAuthHandler(authService)
	contentHandler := handlers.NewContentHandler(contentService)
	cvHandler := handlers.NewCVHandler(cvService)
	domainHandler := handlers.NewDomainHandler(domainService, cfg.Domain.CronSecret)

	// ─── Router ───
	mux := http.NewServeMux()

	// Public
	throttle := middleware.NewThrottle(10, 3)
	defer throttle.Stop()
	mux.Handle("POST /api/contact", throttle.Wrap(http.HandlerFunc(contentHandler.SubmitContact)))
	mux.HandleFunc("GET /cv/{filename}", cvHandler.Serve)
	mux.HandleFunc("GET /api/cron/check-domains", domainHandler.Cron)

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth — /api/auth gate'in korumalı yüzeyinin dışındadır; oturum isteyen
	// operasyonlar cookie'yi handler içinde kendileri doğrular.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("POST /api/auth/change-password", authHandler.ChangePassword)
	mux.HandleFunc("POST /api/auth/invalidate-sessions", authHandler.InvalidateSessions)
	mux.HandleFunc("GET /api/auth/activity", authHandler.Activity)

	// Admin — gate tüm /api/admin yüzeyini oturum şartına bağlar.
	mux.HandleFunc("GET /api/admin/messages", contentHandler.ListMessages)
	mux.HandleFunc("DELETE /api/admin/messages", contentHandler.DeleteMessage)
	mux.HandleFunc("GET /api/admin/cv", cvHandler.List)
	mux.HandleFunc("POST /api/admin/cv", cvHandler.Upload)
	mux.HandleFunc("DELETE /api/admin/cv", cvHandler.Delete)
	mux.HandleFunc("GET /api/admin/domains", domainHandler.Check)

	// Koleksiyon route'ları en sona — "messages", "cv" ve "domains" yukarıdaki
	// spesifik pattern'lere, kalan koleksiyon adları wildcard'a düşer.
	mux.HandleFunc("GET /api/admin/{collection}", contentHandler.List)
	mux.HandleFunc("POST /api/admin/{collection}", contentHandler.Replace)

	// Statik site — locale rewrite'tan sonra dosyalar buradan servis edilir.
	mux.Handle("/", http.FileServer(http.Dir(cfg.Web.Dir)))

	// Gate en dışta: statik/public geçer, korumalı yüzey oturum ister,
	// locale'siz yollar varsayılan dile taşınır.
	gate := middleware.NewGate(authService, mux)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Accept-Language"},
		AllowCredentials: true,
	}).Handler(gate)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── Graceful Shutdown ───
	go func() {
		log.Printf("[main] server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[main] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] forced shutdown: %v", err)
	}
	log.Println("[main] server stopped")
}
