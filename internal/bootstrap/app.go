package bootstrap

import (
	"context"
	"fmt"
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
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/telemetry"
)

// App holds shared dependencies and the router.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	Store          *builder.MemoryStore
	BuilderService *builder.Service
	Renderer       *render.Renderer
	Engine         *scoring.Engine
	Generator      ai.Generator
	AIService      *ai.Service
	ExportService  *export.Service
	Auth           *auth.Service
}

// Option overrides a dependency, mainly for tests.
type Option func(*App)

// WithGenerator replaces the configured model provider.
func WithGenerator(gen ai.Generator) Option {
	return func(a *App) { a.Generator = gen }
}

// WithPrinter replaces the headless Chrome PDF printer.
func WithPrinter(p export.Printer) Option {
	return func(a *App) {
		if a.ExportService != nil {
			a.ExportService.Printer = p
		}
	}
}

// Build wires every service and mounts the routes.
func Build(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	app := &App{Config: cfg}

	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	app.Renderer = renderer
	app.Store = builder.NewMemoryStore(cfg.SessionTTL)
	app.BuilderService = builder.NewService(app.Store)

	app.Engine = scoring.NewEngine()
	if cfg.RecentExperienceMonths > 0 {
		app.Engine.RecentMonths = cfg.RecentExperienceMonths
	}

	app.ExportService = export.NewService(app.BuilderService, renderer, export.NewChromePrinter(cfg.ChromePath, cfg.PDFTimeout))
	app.Auth = auth.NewService(app.BuilderService, cfg.UIRedirectURL,
		auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL),
		auth.NewGitHubProvider(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.GitHubRedirectURL),
	)

	for _, opt := range opts {
		opt(app)
	}

	if app.Generator == nil {
		gen, err := ai.NewGenerator(ctx, ai.Config{
			Provider:      cfg.LLMProvider,
			Model:         cfg.LLMModel,
			OllamaURL:     cfg.OllamaURL,
			OpenAIKey:     cfg.OpenAIAPIKey,
			OpenAIBaseURL: cfg.OpenAIBaseURL,
			GeminiKey:     cfg.GeminiAPIKey,
			Timeout:       cfg.AITimeout,
		})
		if err != nil {
			return nil, err
		}
		app.Generator = gen
	}
	app.AIService = ai.NewService(app.Generator, app.BuilderService, cfg.LLMModel, cfg.AITimeout)

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":         cfg.Env,
		"ai_provider": app.Generator.Name(),
		"session_ttl": cfg.SessionTTL.String(),
	})

	app.Router = server.NewRouter(server.RouterDeps{
		Config:  cfg,
		Builder: builder.NewHandler(app.BuilderService),
		Scoring: scoring.NewHandler(app.BuilderService, app.Engine),
		Render:  render.NewHandler(app.BuilderService, renderer),
		AI:      ai.NewHandler(app.AIService),
		Export:  export.NewHandler(app.ExportService),
		Auth:    app.Auth,
		Health:  health.NewService(app.Store, app.Generator.Name()),
		Limiter: middleware.NewRateLimiter(nil),
	})
	return app, nil
}
