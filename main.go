// Package main, fitcircle backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat (embedded migration'lar çalışır)
//  3. Repository'leri oluştur (DB bağlantısı ile)
//  4. Service'leri oluştur (repository'ler ile)
//  5. Handler'ları oluştur (service'ler ile)
//  6. HTTP router'ı kur, route'ları bağla
//  7. CORS yapılandır
//  8. HTTP Server'ı başlat
//  9. Graceful shutdown
//
// Global değişken YOK — her şey burada oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/yalcinkaya/fitcircle/config"
	"github.com/yalcinkaya/fitcircle/database"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] fitcircle server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	// Migration'lar binary'ye gömülüdür (go:embed) — deploy'da ayrıca
	// migration dosyası taşınmaz.
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to open embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3-5. Repository → Service → Handler ───
	repos := initRepositories(db.Conn)

	messageLimiter := newMessageLimiter()
	defer messageLimiter.Stop()
	loginLimiter := newLoginLimiter()
	defer loginLimiter.Stop()

	svcs := initServices(db.Conn, repos, cfg, messageLimiter)
	h := initHandlers(svcs, loginLimiter)

	// ─── 6. HTTP Router ───
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"fitcircle"}`)
	})

	initRoutes(mux, h, svcs.Auth, repos.User, repos.Group)

	// ─── 7. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(mux)

	// ─── 8. HTTP Server ───
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Server'ı ayrı goroutine'de başlat — main goroutine shutdown sinyali bekler
	go func() {
		log.Printf("[main] listening on %s", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	// Arka plan: süresi dolmuş session'ları periyodik temizle
	stopCleanup := make(chan struct{})
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := repos.Session.DeleteExpired(context.Background()); err != nil {
					log.Printf("[main] session cleanup failed: %v", err)
				}
			case <-stopCleanup:
				return
			}
		}
	}()

	// ─── 9. Graceful Shutdown ───
	// SIGINT (Ctrl+C) veya SIGTERM (docker stop) gelene kadar blokla
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[main] shutting down...")
	close(stopCleanup)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped")
}
