package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petdb/internal/adapters/storage"
	"petdb/internal/platform/config"
	"petdb/internal/platform/logger"
	"petdb/internal/router"
	"petdb/internal/seed"
)

func main() {
	cfg, err := config.Load("")
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	lg := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		lg.Error("storage open failed", map[string]any{"backend": cfg.Storage.Backend, "err": err.Error()})
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = backend.Close(closeCtx)
	}()

	// memory arranca vacío en cada proceso: ahí el seed es la "primera inicialización"
	if backend.Fresh || cfg.SeedOnStart {
		if err := seed.New(backend.Target, lg).Seed(ctx); err != nil {
			lg.Error("seed failed", map[string]any{"backend": backend.Name, "err": err.Error()})
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router.NewRouter(router.Options{Pets: backend.Pets, Logger: lg}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	lg.Info("starting server", map[string]any{"addr": cfg.HTTP.Addr, "backend": backend.Name})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
