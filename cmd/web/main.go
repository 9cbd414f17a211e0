package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/reservacitas/frontdesk/internal/backend"
	"github.com/reservacitas/frontdesk/internal/session"
	"github.com/reservacitas/frontdesk/internal/web"
	"github.com/reservacitas/frontdesk/pkg/config"
	"github.com/reservacitas/frontdesk/pkg/logger"
	mw "github.com/reservacitas/frontdesk/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	store, closeStore := sessionStore(cfg)
	defer closeStore()

	sessions := session.NewManager(store, cfg.Session.CookieName, cfg.Session.SigningKey,
		cfg.Session.TTL, cfg.Session.SecureCookie)

	api := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	h := web.New(api, sessions)

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("frontdesk"))
	r.Use(mw.Logging)
	r.Use(mw.Recover)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:8090"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(mw.Health)

	h.Routes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down frontdesk...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Frontdesk shutdown error", "error", err)
		}
	}()

	logger.Info("Starting frontdesk", "port", cfg.Server.Port, "backend", cfg.Backend.BaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Frontdesk server error", "error", err)
		os.Exit(1)
	}
}

// sessionStore picks Redis when configured and falls back to the
// in-process store otherwise.
func sessionStore(cfg *config.Config) (session.Store, func()) {
	if cfg.Redis.Enabled {
		store, err := session.NewRedisStore(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Error("Failed to connect to Redis, using in-memory sessions", "error", err)
		} else {
			logger.Info("Using Redis session store")
			return store, func() { _ = store.Close() }
		}
	}
	return session.NewMemoryStore(), func() {}
}
