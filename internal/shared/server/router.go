package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"goal-detector/internal/services/health"
	"goal-detector/internal/shared/config"
	"goal-detector/internal/shared/metrics"
	"goal-detector/internal/shared/server/middleware"
	"goal-detector/internal/shared/server/respond"
)

// RouteRegistrar attaches routes to the versioned API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Deps are the collaborators the router needs.
type Deps struct {
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Health   *health.Service
	Handlers []RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(deps.Metrics),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	if deps.Gatherer != nil {
		r.GET("/metrics", metrics.Handler(deps.Gatherer))
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		rep := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !rep.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, rep)
	})

	limited := api.Group("")
	limited.Use(middleware.RateLimit(middleware.RateLimitConfig{
		GroupFor: rateLimitGroup,
		Rules: map[string]middleware.RateLimitRule{
			"GENERATE": {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			"READ":     {Rate: cfg.RateLimitRPS * 4, Burst: cfg.RateLimitBurst * 4},
		},
	}))
	for _, h := range deps.Handlers {
		h.RegisterRoutes(limited)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	return r
}

func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost {
		return "GENERATE"
	}
	return "READ"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
