package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"employeehub/internal/auth"
	"employeehub/internal/domain/capture"
	"employeehub/internal/domain/directory"
	"employeehub/internal/domain/navigator"
	"employeehub/internal/platform/config"
	"employeehub/internal/platform/db"
	"employeehub/internal/platform/logger"
	"employeehub/internal/platform/metrics"
	"employeehub/internal/platform/requestctx"
	"employeehub/internal/prefs"
	"employeehub/internal/source"
	"employeehub/internal/transport/http/api"
	analyticshandler "employeehub/internal/transport/http/handlers/analytics"
	authhandler "employeehub/internal/transport/http/handlers/auth"
	capturehandler "employeehub/internal/transport/http/handlers/capture"
	directoryhandler "employeehub/internal/transport/http/handlers/directory"
	prefshandler "employeehub/internal/transport/http/handlers/prefs"
	sessionhandler "employeehub/internal/transport/http/handlers/session"
	"employeehub/internal/transport/http/middleware"
)

// Abandoned sessions are swept once they have been idle past the token
// lifetime; by then no valid token can reference them.
const (
	sessionIdleTTL       = 8 * time.Hour
	sessionSweepInterval = 15 * time.Minute
)

// Deps are the swappable edges of the application: everything that talks to
// the outside world.
type Deps struct {
	Logger  *zap.Logger
	Metrics *metrics.Collector
	Fetcher source.Fetcher
	Opener  capture.Opener
	Prefs   prefs.Store
	DB      *pgxpool.Pool
}

type App struct {
	Config    config.Config
	Router    http.Handler
	Metrics   *metrics.Collector
	Registry  *navigator.Registry
	Directory *directory.Service
}

func New(cfg config.Config, deps Deps) (*App, error) {
	gate, err := auth.NewGate(cfg.LoginDelay)
	if err != nil {
		return nil, err
	}

	registry := navigator.NewRegistry()
	directorySvc := directory.NewService()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(deps.Logger, deps.Metrics))
	router.Use(middleware.Recoverer(deps.Logger))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret, registry))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.DB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := deps.DB.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, deps.Metrics.Snapshot(), requestctx.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(gate, cfg.JWTSecret, registry, directorySvc, deps.Fetcher, deps.Metrics, deps.Logger)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)

		directoryhandler.NewHandler(directorySvc).RegisterRoutes(r)
		analyticshandler.NewHandler(directorySvc).RegisterRoutes(r)
		capturehandler.NewHandler(deps.Opener, directorySvc, deps.Metrics).RegisterRoutes(r)
		sessionhandler.NewHandler(directorySvc).RegisterRoutes(r)
		prefshandler.NewHandler(deps.Prefs).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return &App{
		Config:    cfg,
		Router:    router,
		Metrics:   deps.Metrics,
		Registry:  registry,
		Directory: directorySvc,
	}, nil
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	ctx := context.Background()
	collector := metrics.New()

	// Preferences survive restarts only when a database is configured.
	var prefStore prefs.Store = prefs.NewMemoryStore()
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = db.Connect(ctx, cfg)
		if err != nil {
			zlog.Fatal("db connect failed", zap.Error(err))
		}
		defer pool.Close()
		pgStore, err := prefs.NewPGStore(ctx, pool)
		if err != nil {
			zlog.Fatal("preferences store init failed", zap.Error(err))
		}
		prefStore = pgStore
	}

	app, err := New(cfg, Deps{
		Logger:  zlog,
		Metrics: collector,
		Fetcher: source.New(cfg.SourceURL, cfg.SourceUsername, cfg.SourcePassword, cfg.SourceTimeout, zlog, collector),
		Opener:  capture.OpenSynthetic,
		Prefs:   prefStore,
		DB:      pool,
	})
	if err != nil {
		zlog.Fatal("app init failed", zap.Error(err))
	}

	go func() {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			if n := app.Registry.Sweep(sessionIdleTTL); n > 0 {
				zlog.Info("idle sessions evicted", zap.Int("count", n))
			}
		}
	}()

	zlog.Info("server listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		zlog.Fatal("server failed", zap.Error(err))
	}
}

// spaHandler serves the built frontend, falling back to the index page for
// client-routed paths.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
