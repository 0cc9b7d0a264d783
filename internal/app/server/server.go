package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffhub/internal/domain/auth"
	"staffhub/internal/domain/ledger"
	"staffhub/internal/domain/payroll"
	"staffhub/internal/domain/people"
	"staffhub/internal/domain/roster"
	"staffhub/internal/platform/config"
	"staffhub/internal/platform/db"
	"staffhub/internal/platform/metrics"
	"staffhub/internal/platform/storage"
	authhandler "staffhub/internal/transport/http/handlers/auth"
	ledgerhandler "staffhub/internal/transport/http/handlers/ledger"
	payrollhandler "staffhub/internal/transport/http/handlers/payroll"
	peoplehandler "staffhub/internal/transport/http/handlers/people"
	rosterhandler "staffhub/internal/transport/http/handlers/roster"
	"staffhub/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Router http.Handler

	closeStores func()
}

// stores bundles the per-domain persistence picked by STORE_DRIVER.
type stores struct {
	auth    auth.Store
	people  people.Store
	roster  roster.Store
	payroll payroll.Store
	ready   func(ctx context.Context) error
	close   func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunSeed {
		if err := seedUsers(ctx, st.auth, cfg); err != nil {
			st.close()
			return nil, err
		}
	}

	files := storage.NewLocal(cfg.StorageDir, cfg.PublicBaseURL)
	collector := metrics.New(cfg.StoreDriver)

	peopleSvc := people.NewService(st.people, cfg.Locales, st.roster)
	rosterSvc := roster.NewService(st.roster, peopleSvc)
	ledgerSvc := ledger.NewService(st.people)
	payrollSvc := payroll.NewService(st.payroll, peopleSvc, files)
	authSvc := auth.NewService(st.auth, cfg.JWTSecret)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := st.ready(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	fileServer := http.StripPrefix("/files/", http.FileServer(http.Dir(files.Dir())))
	router.Get("/files/*", fileServer.ServeHTTP)

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authSvc)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Get("/auth/me", authHandler.HandleMe)

			if cfg.MetricsEnabled {
				r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					writeMetrics(w, collector)
				})
			}

			peoplehandler.NewHandler(peopleSvc, files).RegisterRoutes(r)
			rosterhandler.NewHandler(rosterSvc).RegisterRoutes(r)
			ledgerhandler.NewHandler(ledgerSvc, peopleSvc).RegisterRoutes(r)
			payrollhandler.NewHandler(payrollSvc, peopleSvc).RegisterRoutes(r)
		})
	})

	return &App{Config: cfg, Router: router, closeStores: st.close}, nil
}

func (a *App) Close() {
	if a.closeStores != nil {
		a.closeStores()
	}
}

func Run() {
	cfg := config.Load()
	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("staffhub server listening on %s (driver=%s)", cfg.Addr, cfg.StoreDriver)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return stores{}, err
		}
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, "migrations"); err != nil {
				pool.Close()
				return stores{}, err
			}
		}
		if cfg.RunSeed {
			if err := db.Seed(ctx, pool, cfg); err != nil {
				pool.Close()
				return stores{}, err
			}
		}
		return stores{
			auth:    auth.NewPGStore(pool),
			people:  people.NewPGStore(pool),
			roster:  roster.NewPGStore(pool),
			payroll: payroll.NewPGStore(pool),
			ready:   pool.Ping,
			close:   pool.Close,
		}, nil

	case config.DriverJSONFile:
		authStore, err := auth.NewJSONStore(cfg.DataDir)
		if err != nil {
			return stores{}, err
		}
		peopleStore, err := people.NewJSONStore(cfg.DataDir)
		if err != nil {
			return stores{}, err
		}
		rosterStore, err := roster.NewJSONStore(cfg.DataDir)
		if err != nil {
			return stores{}, err
		}
		payrollStore, err := payroll.NewJSONStore(cfg.DataDir)
		if err != nil {
			return stores{}, err
		}
		return stores{
			auth:    authStore,
			people:  peopleStore,
			roster:  rosterStore,
			payroll: payrollStore,
			ready:   func(ctx context.Context) error { return nil },
			close:   func() {},
		}, nil
	}
	return stores{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

// seedUsers makes sure the configured accounts exist, whatever the driver.
// The postgres seed also creates them; EnsureUser keeps this idempotent.
func seedUsers(ctx context.Context, store auth.Store, cfg config.Config) error {
	type seed struct {
		email, password, role, locale string
	}
	accounts := []seed{
		{cfg.SeedAdminEmail, cfg.SeedAdminPassword, auth.RoleAdmin, auth.LocaleAll},
		{cfg.SeedEncargadoEmail, cfg.SeedEncargadoPassword, auth.RoleEncargado, cfg.SeedEncargadoLocale},
	}
	for _, account := range accounts {
		if account.email == "" || account.password == "" {
			continue
		}
		hash, err := auth.HashPassword(account.password)
		if err != nil {
			return err
		}
		if err := store.EnsureUser(ctx, auth.User{
			Email:        account.email,
			PasswordHash: hash,
			Role:         account.role,
			Locale:       account.locale,
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeMetrics(w http.ResponseWriter, collector *metrics.Collector) {
	if err := json.NewEncoder(w).Encode(collector.Snapshot()); err != nil {
		slog.Warn("write metrics failed", "err", err)
	}
}
