package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hrconnect/internal/domain/auth"
	"hrconnect/internal/domain/dashboard"
	"hrconnect/internal/domain/employee"
	"hrconnect/internal/domain/leave"
	"hrconnect/internal/domain/notifications"
	"hrconnect/internal/domain/org"
	"hrconnect/internal/domain/performance"
	"hrconnect/internal/domain/policy"
	"hrconnect/internal/domain/record"
	"hrconnect/internal/domain/session"
	"hrconnect/internal/domain/talent"
	"hrconnect/internal/platform/config"
	"hrconnect/internal/platform/metrics"
	"hrconnect/internal/platform/seed"
	"hrconnect/internal/platform/storage"
	"hrconnect/internal/transport/http/api"
	authhandler "hrconnect/internal/transport/http/handlers/auth"
	dashboardhandler "hrconnect/internal/transport/http/handlers/dashboard"
	employeehandler "hrconnect/internal/transport/http/handlers/employees"
	leavehandler "hrconnect/internal/transport/http/handlers/leave"
	notificationshandler "hrconnect/internal/transport/http/handlers/notifications"
	orghandler "hrconnect/internal/transport/http/handlers/org"
	performancehandler "hrconnect/internal/transport/http/handlers/performance"
	policyhandler "hrconnect/internal/transport/http/handlers/policies"
	talenthandler "hrconnect/internal/transport/http/handlers/talent"
	"hrconnect/internal/transport/http/middleware"
	"hrconnect/internal/transport/http/shared"
)

const (
	readyTimeout    = 2 * time.Second
	shutdownTimeout = 10 * time.Second
)

type App struct {
	Config   config.Config
	Log      *zap.Logger
	Router   http.Handler
	Storage  storage.Store
	Sessions *session.Manager
	Feed     *notifications.Feed
	Metrics  *metrics.Collector
}

// New loads the fixtures, restores the stored session and assembles the
// router. The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	fixtures, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}

	store, err := storage.Open(ctx, cfg.StorageOptions(), log)
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}

	app, err := assemble(ctx, cfg, log, fixtures, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

func assemble(ctx context.Context, cfg config.Config, log *zap.Logger, fixtures seed.Fixtures, store storage.Store) (*App, error) {
	feed := notifications.NewFeed(cfg.NotificationHistory, log.Named("notifications"))

	users, err := auth.NewDirectory(fixtures.Users, cfg.BcryptCost, log.Named("auth"))
	if err != nil {
		return nil, fmt.Errorf("build user directory: %w", err)
	}
	authorizer, err := auth.NewAuthorizer(auth.RolePermissions)
	if err != nil {
		return nil, fmt.Errorf("build authorizer: %w", err)
	}

	sessions := session.NewManager(store, users, feed, log.Named("session"))
	if err := sessions.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	employees := employee.NewService(record.New(fixtures.Employees), feed, log.Named("employees"))
	leaveSvc := leave.NewService(record.New(fixtures.LeaveRequests), employees, feed, log.Named("leave"))
	orgSvc := org.NewService(record.New(fixtures.Departments), record.New(fixtures.Positions), feed, log.Named("org"))
	talentSvc := talent.NewService(record.New(fixtures.Skills), record.New(fixtures.Programs), feed, log.Named("talent"))
	performanceSvc := performance.NewService(record.New(fixtures.Performance), feed, log.Named("performance"))
	policySvc := policy.NewService(record.New(fixtures.Policies))
	dashboardSvc := dashboard.NewService(employees, leaveSvc, orgSvc)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	pages := shared.PageSizes{Default: cfg.PageSize, Max: cfg.MaxPageSize}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log.Named("http"), collector))
	router.Use(middleware.Recoverer(log))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret, sessions))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute, middleware.WithLogger(log)))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute, middleware.WithLogger(log)))
	router.Use(middleware.Idempotency(store))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			http.Error(w, "storage not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if collector != nil {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(sessions, users, cfg.JWTSecret, cfg.TokenTTL, log.Named("auth")).RegisterRoutes(r)
		dashboardhandler.NewHandler(dashboardSvc, authorizer).RegisterRoutes(r)
		employeehandler.NewHandler(employees, authorizer, pages).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, authorizer, pages).RegisterRoutes(r)
		orghandler.NewHandler(orgSvc, authorizer, pages).RegisterRoutes(r)
		talenthandler.NewHandler(talentSvc, authorizer, pages).RegisterRoutes(r)
		performancehandler.NewHandler(performanceSvc, authorizer, pages).RegisterRoutes(r)
		policyhandler.NewHandler(policySvc, authorizer, pages).RegisterRoutes(r)
		notificationshandler.NewHandler(feed, authorizer).RegisterRoutes(r)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", middleware.GetRequestID(r.Context()))
	})

	return &App{
		Config:   cfg,
		Log:      log,
		Router:   router,
		Storage:  store,
		Sessions: sessions,
		Feed:     feed,
		Metrics:  collector,
	}, nil
}

func (a *App) Close() error {
	return a.Storage.Close()
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("server listening", zap.String("addr", a.Config.Addr), zap.String("environment", a.Config.Environment))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.Log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
