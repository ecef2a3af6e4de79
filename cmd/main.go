package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/healthcareplus/consult-service/config"
	"github.com/healthcareplus/consult-service/internal/memstore"
	"github.com/healthcareplus/consult-service/internal/postgres"
	"github.com/healthcareplus/consult-service/internal/service"
	httpx "github.com/healthcareplus/consult-service/internal/transport/http"
	"github.com/healthcareplus/consult-service/internal/transport/ws"
	"github.com/healthcareplus/consult-service/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting consult-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- session repo ---
	ctx := context.Background()
	var sessionRepo service.SessionRepo
	switch cfg.Storage.Backend {
	case "postgres":
		db, err := postgres.New(ctx, cfg.Storage.DSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer db.Close()
		sessionRepo = postgres.NewSessionRepository(db.Pool)
	default:
		sessionRepo = memstore.NewSessionRepository(cfg.Storage.TTL())
	}

	// --- services ---
	sessionSvc := service.NewSessionService(sessionRepo)

	// --- WS Hub & Server ---
	hub := ws.NewHub()
	wsServer := ws.NewServer(hub, sessionSvc, cfg.Auth.JWTSecret)

	// --- HTTP ---
	handler := httpx.NewHandler(sessionSvc)
	router := httpx.NewRouter(handler, cfg.Auth.JWTSecret, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
