package scoring

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resume"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// ResumeSource loads the resume of a session.
type ResumeSource interface {
	Resume(ctx context.Context, sessionID string) (resume.Resume, error)
}

// Handler serves completeness and review scores.
type Handler struct {
	Source ResumeSource
	Engine *Engine
	Now    func() time.Time
}

// NewHandler constructs a Handler with the default engine.
func NewHandler(source ResumeSource, engine *Engine) *Handler {
	if engine == nil {
		engine = NewEngine()
	}
	return &Handler{Source: source, Engine: engine, Now: time.Now}
}

// RegisterRoutes attaches scoring routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume/progress", h.progress)
	rg.GET("/resume/review", h.review)
	rg.GET("/resume/keywords", h.keywords)
}

type keywordsResponse struct {
	Density     float64  `json:"density"`
	ActionVerbs []string `json:"actionVerbs"`
	Keywords    []string `json:"keywords"`
}

func (h *Handler) progress(c *gin.Context) {
	r, ok := h.load(c)
	if !ok {
		return
	}
	respond.OK(c, Progress(r))
}

func (h *Handler) review(c *gin.Context) {
	r, ok := h.load(c)
	if !ok {
		return
	}
	respond.OK(c, h.Engine.Review(r, h.Now()))
}

func (h *Handler) keywords(c *gin.Context) {
	r, ok := h.load(c)
	if !ok {
		return
	}
	respond.OK(c, keywordsResponse{
		Density:     h.Engine.KeywordDensity(r),
		ActionVerbs: ActionVerbsUsed(r),
		Keywords:    ExtractKeywords(narrative(r)),
	})
}

func (h *Handler) load(c *gin.Context) (resume.Resume, bool) {
	r, err := h.Source.Resume(c.Request.Context(), middleware.SessionIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load resume", nil)
		return resume.Resume{}, false
	}
	return r, true
}
