package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"goal-detector/internal/catalog"
	openai "goal-detector/internal/llm/openai"
	"goal-detector/internal/personalize"
	"goal-detector/internal/queue"
	"goal-detector/internal/roadmaps"
	"goal-detector/internal/services/health"
	"goal-detector/internal/shared/config"
	"goal-detector/internal/shared/metrics"
	"goal-detector/internal/shared/server"
	"goal-detector/internal/shared/storage/db"
	"goal-detector/internal/shared/storage/object"
	localstore "goal-detector/internal/shared/storage/object/local"
	s3store "goal-detector/internal/shared/storage/object/s3"
	"goal-detector/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Redis    *redis.Client
	Store    object.ObjectStore
	Catalog  *catalog.Catalog
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Health   *health.Service
	Gateway  personalize.Gateway
	Events   queue.Client
	Repo     roadmaps.Repo
	Service  *roadmaps.Service
	Handler  *roadmaps.Handler
}

// Build prepares dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	cat, err := LoadCatalog(cfg.GoalsPath)
	if err != nil {
		return nil, err
	}

	reg := metrics.NewRegistry()
	app := &App{
		Config:   cfg,
		Catalog:  cat,
		Registry: reg,
		Metrics:  metrics.New(reg),
	}

	if err := app.buildRepo(ctx); err != nil {
		return nil, err
	}
	if app.Store, err = buildStore(ctx, cfg); err != nil {
		app.Close()
		return nil, err
	}
	if app.Gateway, err = NewGateway(cfg, app.Metrics); err != nil {
		app.Close()
		return nil, err
	}

	if app.Redis != nil && cfg.EventsStream != "" {
		events, err := queue.NewStreamClient(app.Redis, cfg.EventsStream, 0)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Events = events
	}

	app.Service = &roadmaps.Service{
		Repo:    app.Repo,
		Catalog: app.Catalog,
		Gateway: app.Gateway,
		Store:   app.Store,
		Events:  app.Events,
		Metrics: app.Metrics,
	}
	app.Health = app.healthChecks()
	app.Handler = roadmaps.NewHandler(app.Service)
	app.Router = server.NewRouter(cfg, server.Deps{
		Metrics:  app.Metrics,
		Gatherer: reg,
		Health:   app.Health,
		Handlers: []server.RouteRegistrar{app.Handler},
	})
	return app, nil
}

// Close releases database and cache connections.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}

func (a *App) healthChecks() *health.Service {
	checks := health.NewService()
	if a.DB != nil {
		checks.Register("database", a.DB.PingContext)
	}
	if a.Redis != nil {
		checks.Register("redis", func(ctx context.Context) error {
			return a.Redis.Ping(ctx).Err()
		})
	}
	return checks
}

// LoadCatalog loads the goal catalog at path, or the embedded default when path is empty.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	loader, err := catalog.NewLoader(0)
	if err != nil {
		return nil, err
	}
	cat, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load goal catalog: %w", err)
	}
	source := path
	if source == "" {
		source = "embedded"
	}
	telemetry.Info("catalog.loaded", map[string]any{"source": source, "goals": cat.Len()})
	return cat, nil
}

func (a *App) buildRepo(ctx context.Context) error {
	cfg := a.Config
	switch {
	case cfg.RedisURL != "":
		client, err := roadmaps.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return a.fallbackOrFail("redis", err)
		}
		a.Redis = client
		a.Repo = roadmaps.NewRedisRepo(client, cfg.RoadmapTTL)
		telemetry.Info("bootstrap.repo", map[string]any{"kind": "redis", "ttl": cfg.RoadmapTTL.String()})
		return nil
	case cfg.DatabaseURL != "":
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, DBPool(db.ServerPool(), cfg))
		if err != nil {
			return a.fallbackOrFail("postgres", err)
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return a.fallbackOrFail("postgres", err)
		}
		a.DB = sqlDB
		a.Repo = &roadmaps.PGRepo{DB: sqlDB}
		telemetry.Info("bootstrap.repo", map[string]any{"kind": "postgres"})
		return nil
	default:
		a.Repo = roadmaps.NewMemoryRepo()
		telemetry.Info("bootstrap.repo", map[string]any{"kind": "memory"})
		return nil
	}
}

// DBPool applies the DB_* overrides from cfg to base.
func DBPool(base db.Pool, cfg config.Config) db.Pool {
	return base.Override(db.Pool{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		PingTimeout:     cfg.DBPingTimeout,
	})
}

// fallbackOrFail keeps dev environments running on the memory repo.
func (a *App) fallbackOrFail(kind string, err error) error {
	if !isDevLike(a.Config.Env) {
		return fmt.Errorf("connect %s: %w", kind, err)
	}
	telemetry.Warn("bootstrap.repo_fallback", map[string]any{"kind": kind, "error": err})
	a.Repo = roadmaps.NewMemoryRepo()
	return nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "none":
		return nil, nil
	case "s3":
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, fmt.Errorf("object store: %w", err)
		}
		return store, nil
	default:
		if strings.TrimSpace(cfg.LocalStoreDir) == "" {
			return nil, errors.New("object store: LOCAL_STORE_DIR is empty")
		}
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// NewGateway returns the OpenAI-backed gateway when a key is configured, else NoopGateway.
func NewGateway(cfg config.Config, m *metrics.Metrics) (personalize.Gateway, error) {
	if !cfg.Personalization() {
		return personalize.NoopGateway{}, nil
	}
	client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	if err != nil {
		return nil, fmt.Errorf("openai client: %w", err)
	}
	telemetry.Info("bootstrap.gateway", map[string]any{
		"model":      client.Model(),
		"timeout_ms": cfg.LLMTimeout.Milliseconds(),
	})
	return personalize.New(personalize.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Timeout: cfg.LLMTimeout,
	}, client, personalize.WithMetrics(m)), nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
