package ai

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/builder"
	"resume-builder/internal/resume"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

const ensureRunningMessage = "Please ensure Ollama is running and try again"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches AI routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/summary", h.summary)
	rg.POST("/ai/improve-bullet", h.improveBullet)
	rg.POST("/ai/tailor", h.tailor)
	rg.POST("/ai/generate-resume", h.generateResume)
	rg.GET("/ai/status", h.status)

	rg.POST("/resume/ai/summary", h.sessionSummary)
	rg.POST("/resume/experiences/:id/ai/improve", h.sessionImprove)
	rg.GET("/resume/ai/pending", h.pending)
}

type summaryRequest struct {
	PersonalInfo *resume.PersonalInfo `json:"personalInfo"`
	Experiences  *[]resume.Experience `json:"experiences"`
}

type improveBulletRequest struct {
	BulletPoint string `json:"bulletPoint"`
	Context     string `json:"context"`
}

type tailorRequest struct {
	Resume         *resume.Resume `json:"resume"`
	JobDescription string         `json:"jobDescription"`
}

type generateRequestBody struct {
	UserData       json.RawMessage `json:"userData"`
	JobDescription string          `json:"jobDescription"`
}

type improveExperienceRequest struct {
	Context string `json:"context"`
}

func (h *Handler) summary(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PersonalInfo == nil || req.Experiences == nil {
		respond.Error(c, http.StatusBadRequest, "Personal info and experiences are required", "", nil)
		return
	}
	h.markProvider(c)
	out, err := h.Svc.GenerateSummary(c.Request.Context(), *req.PersonalInfo, *req.Experiences)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to generate summary", err.Error(), nil)
		return
	}
	respond.OK(c, gin.H{"summary": out})
}

func (h *Handler) improveBullet(c *gin.Context) {
	var req improveBulletRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.BulletPoint) == "" {
		respond.Error(c, http.StatusBadRequest, "Bullet point is required", "", nil)
		return
	}
	h.markProvider(c)
	out, err := h.Svc.ImproveBullet(c.Request.Context(), req.BulletPoint, req.Context)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to improve bullet point", err.Error(), nil)
		return
	}
	respond.OK(c, gin.H{"improvedBullet": out})
}

func (h *Handler) tailor(c *gin.Context) {
	var req tailorRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Resume == nil || strings.TrimSpace(req.JobDescription) == "" {
		respond.Error(c, http.StatusBadRequest, "Resume and job description are required", "", nil)
		return
	}
	h.markProvider(c)
	out, err := h.Svc.TailorResume(c.Request.Context(), *req.Resume, req.JobDescription)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to tailor resume", err.Error(), nil)
		return
	}
	respond.OK(c, gin.H{"suggestions": out})
}

func (h *Handler) generateResume(c *gin.Context) {
	var req generateRequestBody
	if err := c.ShouldBindJSON(&req); err != nil || isEmptyJSON(req.UserData) {
		respond.Error(c, http.StatusBadRequest, "User data is required", "", nil)
		return
	}
	h.markProvider(c)
	out, err := h.Svc.GenerateATSResume(c.Request.Context(), req.UserData, req.JobDescription)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error(), ensureRunningMessage, nil)
		return
	}
	respond.OK(c, gin.H{
		"success": true,
		"resume":  out,
		"message": "ATS-optimized resume generated successfully",
	})
}

func (h *Handler) status(c *gin.Context) {
	h.markProvider(c)
	report := h.Svc.Status(c.Request.Context())
	if report.Status != statusAvailable {
		respond.JSON(c, http.StatusServiceUnavailable, report)
		return
	}
	respond.OK(c, report)
}

func (h *Handler) sessionSummary(c *gin.Context) {
	h.markProvider(c)
	res, err := h.Svc.SummarizeSession(c.Request.Context(), middleware.SessionIDFromContext(c))
	h.writeResult(c, res, err)
}

func (h *Handler) sessionImprove(c *gin.Context) {
	var req improveExperienceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}
	h.markProvider(c)
	res, err := h.Svc.ImproveExperience(c.Request.Context(), middleware.SessionIDFromContext(c), c.Param("id"), req.Context)
	h.writeResult(c, res, err)
}

func (h *Handler) pending(c *gin.Context) {
	out, err := h.Svc.Pending(c.Request.Context(), middleware.SessionIDFromContext(c))
	if err != nil {
		builder.WriteError(c, err)
		return
	}
	respond.OK(c, out)
}

// writeResult answers write-back requests. Model failures still carry the Result so the client
// can match them to the request it issued.
func (h *Handler) writeResult(c *gin.Context, res Result, err error) {
	if res.RequestID != "" {
		c.Set("aiRequestId", res.RequestID)
	}
	switch {
	case err == nil:
		respond.OK(c, res)
	case res.State == StateError && errors.Is(err, ErrUnavailable):
		respond.JSON(c, http.StatusServiceUnavailable, res)
	case res.State == StateError && !isBuilderError(err):
		respond.JSON(c, http.StatusInternalServerError, res)
	default:
		builder.WriteError(c, err)
	}
}

func (h *Handler) markProvider(c *gin.Context) {
	c.Set("aiProvider", h.Svc.Gen.Name())
}

func isBuilderError(err error) bool {
	var verrs resume.ValidationErrors
	return errors.As(err, &verrs) ||
		errors.Is(err, builder.ErrNotFound) ||
		errors.Is(err, builder.ErrInvalidInput) ||
		errors.Is(err, builder.ErrSessionNotFound)
}

func isEmptyJSON(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null" || s == `""` || s == "false" || s == "0"
}
