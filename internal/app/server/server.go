package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slipgen/internal/auth"
	"slipgen/internal/domain/draft"
	"slipgen/internal/domain/export"
	"slipgen/internal/domain/render"
	"slipgen/internal/domain/slip"
	"slipgen/internal/platform/config"
	"slipgen/internal/platform/db"
	authhandler "slipgen/internal/transport/http/handlers/auth"
	drafthandler "slipgen/internal/transport/http/handlers/draft"
	slipshandler "slipgen/internal/transport/http/handlers/slips"
	"slipgen/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Store  slip.Store
	Router http.Handler
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var pool *pgxpool.Pool
	var store slip.Store
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, using in-memory slip store")
		store = slip.NewMemStore()
	} else {
		var err error
		pool, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				pool.Close()
				return nil, err
			}
		}
		store = slip.NewPGStore(pool)
	}

	var adminPasswordHash string
	if cfg.JWTSecret != "" {
		hash, err := auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			if pool != nil {
				pool.Close()
			}
			return nil, err
		}
		adminPasswordHash = hash
	}

	exporter := &export.Exporter{Capture: render.CaptureOptions{Scale: cfg.CaptureScale}}
	session := draft.NewSession()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if pool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := pool.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTSecret != "" {
			authHandler := authhandler.NewHandler(cfg.JWTSecret, cfg.AdminEmail, adminPasswordHash)
			r.Post("/auth/login", authHandler.HandleLogin)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(cfg.JWTSecret))

			slipsHandler := slipshandler.NewHandler(store, exporter)
			slipsHandler.RegisterRoutes(r)

			draftHandler := drafthandler.NewHandler(session, store, exporter)
			draftHandler.RegisterRoutes(r)
		})
	})

	return &App{Config: cfg, Pool: pool, Store: store, Router: router}, nil
}

func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

func Run() {
	cfg := config.Load()

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("salary slip server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
