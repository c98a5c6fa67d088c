// Package control wires the application together: storage selection,
// redis, the LinkedIn client, the collaborator services, the method
// catalogue, and the health/metrics server.
package control

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pressly/goose/v3"

	"github.com/vietddude/linkedin-mcp/internal/core/config"
	"github.com/vietddude/linkedin-mcp/internal/dispatch"
	"github.com/vietddude/linkedin-mcp/internal/health"
	"github.com/vietddude/linkedin-mcp/internal/infra/linkedin"
	redisclient "github.com/vietddude/linkedin-mcp/internal/infra/redis"
	"github.com/vietddude/linkedin-mcp/internal/infra/storage"
	"github.com/vietddude/linkedin-mcp/internal/infra/storage/memory"
	"github.com/vietddude/linkedin-mcp/internal/infra/storage/postgres"
	"github.com/vietddude/linkedin-mcp/internal/server"
	"github.com/vietddude/linkedin-mcp/internal/services/applications"
	"github.com/vietddude/linkedin-mcp/internal/services/auth"
	"github.com/vietddude/linkedin-mcp/internal/services/documents"
	"github.com/vietddude/linkedin-mcp/internal/services/jobs"
	"github.com/vietddude/linkedin-mcp/internal/services/profile"
)

// App is the assembled application.
type App struct {
	cfg          config.AppConfig
	registry     *dispatch.Registry
	dispatcher   *dispatch.Dispatcher
	rpcServer    *server.Server
	healthServer *health.Server
	db           *postgres.DB
	redisClient  *redisclient.Client
	log          *slog.Logger

	done chan error
}

// NewApp initializes every component from cfg. Requests are read from in
// and answered on out (stdin/stdout in production).
func NewApp(cfg config.AppConfig, in io.Reader, out io.Writer) (*App, error) {
	log := slog.Default()

	// 1. Storage: postgres when configured, memory otherwise.
	var (
		docRepo storage.DocumentRepository
		appRepo storage.ApplicationRepository
		db      *postgres.DB
	)
	if cfg.Database.URL != "" {
		var err error
		db, err = postgres.NewDB(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}
		if err := goose.SetDialect("postgres"); err != nil {
			return nil, err
		}
		if err := goose.Up(db.DB.DB, "migrations"); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}
		docRepo = postgres.NewDocumentRepo(db)
		appRepo = postgres.NewApplicationRepo(db)
		log.Info("Using PostgreSQL storage")
	} else {
		store := memory.NewMemoryStorage()
		docRepo = memory.NewDocumentRepo(store)
		appRepo = memory.NewApplicationRepo(store)
		log.Info("Using Memory storage")
	}

	// 2. Redis: session store and caches. Optional; without it sessions
	// and caches live only in process memory.
	var redisClient *redisclient.Client
	if cfg.Redis.URL != "" {
		var err error
		redisClient, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, caching disabled", "error", err)
			redisClient = nil
		}
	}

	// 3. LinkedIn client: the single network edge.
	client := linkedin.NewClient(linkedin.Config{
		BaseURL:           cfg.LinkedIn.BaseURL,
		Timeout:           cfg.LinkedIn.Timeout.Std(),
		RequestsPerMinute: cfg.LinkedIn.RequestsPerMinute,
	})

	// 4. Collaborator services.
	var (
		sessionStore auth.SessionStore = auth.NewMemoryStore()
		profileCache profile.Cache
		jobCache     jobs.Cache
	)
	if redisClient != nil {
		sessionStore = redisClient
		profileCache = redisClient
		jobCache = redisClient
	}

	authSvc := auth.NewService(client, sessionStore, cfg.LinkedIn.SessionTTL.Std(), log)
	profileSvc := profile.NewService(client, profileCache, cfg.LinkedIn.CacheTTL.Std(), log)
	jobsSvc := jobs.NewService(client, jobCache, cfg.LinkedIn.CacheTTL.Std(), log)
	docsSvc := documents.NewService(profileSvc, jobsSvc, docRepo,
		cfg.Documents.DataDir, cfg.Documents.TemplateDir, log)
	appsSvc := applications.NewService(client, docRepo, appRepo, log)

	// 5. Method catalogue + dispatcher.
	registry, err := BuildRegistry(Services{
		Auth:         authSvc,
		Profile:      profileSvc,
		Jobs:         jobsSvc,
		Documents:    docsSvc,
		Applications: appsSvc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build method registry: %w", err)
	}
	dispatcher := dispatch.NewDispatcher(registry, dispatch.Options{
		MaxRetries: cfg.Dispatch.Retries(),
		BaseDelay:  cfg.Dispatch.BaseDelay.Std(),
		MaxDelay:   cfg.Dispatch.MaxDelay.Std(),
		Markers:    cfg.Dispatch.Markers,
	}, log)

	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	rpcServer := server.NewServer(dispatcher, in, out, log)

	// 6. Health monitor + server.
	healthMon := health.NewMonitor()
	if redisClient != nil {
		healthMon.RegisterComponent("redis", redisClient, true)
	}
	if db != nil {
		healthMon.RegisterComponent("postgres", db, true)
	}
	healthMon.RegisterComponent("linkedin_session", health.CheckerFunc(func(ctx context.Context) error {
		state, err := authSvc.CheckSession(ctx)
		if err != nil {
			return err
		}
		if !state.LoggedIn {
			return fmt.Errorf("no active session")
		}
		return nil
	}), false)
	healthServer := health.NewServer(healthMon, cfg.Server.Port)

	return &App{
		cfg:          cfg,
		registry:     registry,
		dispatcher:   dispatcher,
		rpcServer:    rpcServer,
		healthServer: healthServer,
		db:           db,
		redisClient:  redisClient,
		log:          log,
		done:         make(chan error, 1),
	}, nil
}

// Registry exposes the method catalogue (used by the status command).
func (a *App) Registry() *dispatch.Registry {
	return a.registry
}

// Start launches the health server and the request loop.
func (a *App) Start(ctx context.Context) error {
	go func() {
		if err := a.healthServer.Start(); err != nil {
			a.log.Error("Health server failed", "error", err)
		}
	}()

	go func() {
		a.done <- a.rpcServer.Run(ctx)
	}()

	a.log.Info("Serving requests", "methods", len(a.registry.Methods()))
	return nil
}

// Done reports when the request loop finishes (stdin closed or fatal error).
func (a *App) Done() <-chan error {
	return a.done
}

// Stop shuts everything down.
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("Stopping...")

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Warn("Failed to close Redis", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn("Failed to close database", "error", err)
		}
	}

	return a.healthServer.Stop(ctx)
}
