// Package app assembles storage, repositories and services from config.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baharkarakas/inkwell/internal/auth"
	"github.com/baharkarakas/inkwell/internal/config"
	"github.com/baharkarakas/inkwell/internal/db"
	"github.com/baharkarakas/inkwell/internal/repository/kv"
	"github.com/baharkarakas/inkwell/internal/services"
	"github.com/baharkarakas/inkwell/internal/storage"
	"github.com/baharkarakas/inkwell/internal/storage/postgres"
	"github.com/baharkarakas/inkwell/internal/storage/sqlite"
	"github.com/baharkarakas/inkwell/internal/store"
	"github.com/baharkarakas/inkwell/internal/worker"
)

type App struct {
	Cfg    config.Config
	Log    *slog.Logger
	KV     storage.KV
	Repos  kv.Repositories
	Hasher auth.PasswordHasher
	Tokens auth.TokenIssuer

	// Auth never persists a session; it backs the multi-user HTTP API.
	Auth  *services.AuthService
	Posts *services.PostService

	closers []func()
}

// New opens the configured KV, seeds it and wires the services.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	a := &App{Cfg: cfg, Log: log}

	var err error
	a.Hasher, err = auth.NewPasswordHasher(cfg.PasswordMode)
	if err != nil {
		return nil, err
	}
	a.Tokens, err = auth.NewTokenIssuer(cfg.TokenMode, cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	if err := a.openKV(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := storage.Bootstrap(ctx, a.KV, a.Hasher.Hash); err != nil {
		a.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	a.Repos = kv.NewRepositories(a.KV)
	a.Auth = services.NewAuthService(a.Repos.Users, a.Hasher, a.Tokens, nil, cfg.AuthDelay, log)
	a.Posts = services.NewPostService(a.Repos.Posts, a.Repos.Users, cfg.PostsDelay, log)
	return a, nil
}

func (a *App) openKV(ctx context.Context) error {
	switch a.Cfg.StorageDriver {
	case "memory":
		a.KV = storage.NewMemory()
	case "", "sqlite":
		s, err := sqlite.Open(a.Cfg.SQLitePath)
		if err != nil {
			return err
		}
		a.KV = s
		a.closers = append(a.closers, func() { _ = s.Close() })
	case "postgres":
		pool, err := db.NewPool(ctx, a.Cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := db.RunMigrations(ctx, pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		a.KV = postgres.New(pool)
	default:
		return fmt.Errorf("unknown storage driver %q", a.Cfg.StorageDriver)
	}
	a.Log.Debug("storage opened", "driver", a.Cfg.StorageDriver)
	return nil
}

// NewStore builds a single-client store whose session lives in the KV.
// The returned stop func drains the worker pool.
func (a *App) NewStore(ctx context.Context) (*store.Store, func(), error) {
	clientAuth := services.NewAuthService(a.Repos.Users, a.Hasher, a.Tokens, storage.NewSession(a.KV), a.Cfg.AuthDelay, a.Log)
	pool := worker.NewPool(a.Cfg.Workers)
	s, err := store.New(ctx, clientAuth, a.Posts, pool)
	if err != nil {
		pool.Stop()
		return nil, nil, err
	}
	return s, pool.Stop, nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
