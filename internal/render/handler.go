package render

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resume"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// ResumeSource loads the resume of a session.
type ResumeSource interface {
	Resume(ctx context.Context, sessionID string) (resume.Resume, error)
}

// Handler serves the live preview.
type Handler struct {
	Source   ResumeSource
	Renderer *Renderer
}

// NewHandler constructs a Handler.
func NewHandler(source ResumeSource, renderer *Renderer) *Handler {
	return &Handler{Source: source, Renderer: renderer}
}

// RegisterRoutes attaches preview routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.templates)
	rg.GET("/resume/layout", h.layout)
	rg.GET("/resume/preview", h.preview)
}

func (h *Handler) templates(c *gin.Context) {
	respond.OK(c, CatalogueOptions())
}

func (h *Handler) layout(c *gin.Context) {
	r, settings, ok := h.load(c)
	if !ok {
		return
	}
	respond.OK(c, BuildLayout(r, settings))
}

func (h *Handler) preview(c *gin.Context) {
	r, settings, ok := h.load(c)
	if !ok {
		return
	}
	body, err := h.Renderer.Render(r, settings)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "render_failed", err.Error(), nil)
		return
	}
	respond.HTML(c, http.StatusOK, body)
}

// load resolves the resume and its effective settings. A ?template= query overrides the stored template.
func (h *Handler) load(c *gin.Context) (resume.Resume, resume.TemplateSettings, bool) {
	r, err := h.Source.Resume(c.Request.Context(), middleware.SessionIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load resume", nil)
		return resume.Resume{}, resume.TemplateSettings{}, false
	}
	settings := EffectiveSettings(r)
	if tmpl := strings.TrimSpace(c.Query("template")); tmpl != "" {
		if !KnownTemplate(tmpl) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown template", nil)
			return resume.Resume{}, resume.TemplateSettings{}, false
		}
		settings.Template = tmpl
	}
	return r, settings, true
}
