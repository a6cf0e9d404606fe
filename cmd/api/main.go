package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/inkwell/internal/api"
	"github.com/baharkarakas/inkwell/internal/app"
	"github.com/baharkarakas/inkwell/internal/config"
	"github.com/baharkarakas/inkwell/internal/logger"
	"github.com/baharkarakas/inkwell/internal/metrics"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup", "err", err)
		os.Exit(1)
	}
	defer a.Close()

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:   cfg,
		Auth:  a.Auth,
		Posts: a.Posts,
		Authn: a.Auth,
		Log:   a.Log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info("config",
		"env", cfg.Env,
		"storage", cfg.StorageDriver,
		"token_mode", cfg.TokenMode,
		"password_mode", cfg.PasswordMode,
	)

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
