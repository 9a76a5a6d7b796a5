package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/ai"
	"resume-builder/internal/auth"
	"resume-builder/internal/builder"
	"resume-builder/internal/export"
	"resume-builder/internal/render"
	"resume-builder/internal/scoring"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

const rateLimitGroupAI = "AI"

// RouterDeps carries the handlers mounted on the router.
type RouterDeps struct {
	Config  config.Config
	Builder *builder.Handler
	Scoring *scoring.Handler
	Render  *render.Handler
	AI      *ai.Handler
	Export  *export.Handler
	Auth    *auth.Service
	Health  *health.Service
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Session(deps.Config.IsProduction()),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				rateLimitGroupAI: middleware.PerMinute(deps.Config.AIRateLimitPerMin),
				"DEFAULT":        middleware.PerMinute(deps.Config.DefaultRateLimitMin),
			},
			GroupFor: rateLimitGroup,
			Limiter:  deps.Limiter,
		}),
	)

	r.GET("/metrics", metrics.Handler())
	if deps.Auth != nil {
		deps.Auth.RegisterPages(r)
	}

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})
	if deps.Builder != nil {
		deps.Builder.RegisterRoutes(api)
	}
	if deps.Scoring != nil {
		deps.Scoring.RegisterRoutes(api)
	}
	if deps.Render != nil {
		deps.Render.RegisterRoutes(api)
	}
	if deps.AI != nil {
		deps.AI.RegisterRoutes(api)
	}
	if deps.Export != nil {
		deps.Export.RegisterRoutes(api)
	}
	if deps.Auth != nil {
		deps.Auth.RegisterRoutes(api)
	}

	return r
}

// Model calls share the AI budget; the status probe and pending list do not.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && strings.Contains(c.Request.URL.Path, "/ai/") {
		return rateLimitGroupAI
	}
	return ""
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
