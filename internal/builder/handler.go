package builder

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resume"
	"resume-builder/internal/scoring"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches builder routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume", h.getResume)
	rg.PUT("/resume", h.putResume)
	rg.PUT("/resume/personal-info", h.putPersonalInfo)
	rg.PUT("/resume/template", h.putTemplate)
	rg.PUT("/resume/template-settings", h.putTemplateSettings)

	registerList(rg, h.Svc, ExperienceList)
	registerList(rg, h.Svc, EducationList)
	registerList(rg, h.Svc, SkillList)
	registerList(rg, h.Svc, ProjectList)

	rg.GET("/wizard", h.wizard)
	rg.PUT("/wizard/step", h.setStep)
	rg.POST("/wizard/next", h.nextStep)
	rg.POST("/wizard/prev", h.prevStep)
	rg.DELETE("/session", h.reset)
}

// WriteError maps builder and validation errors onto HTTP responses.
func WriteError(c *gin.Context, err error) {
	var verrs resume.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		respond.Error(c, http.StatusBadRequest, "validation_error", "Please fix the highlighted fields", verrs.Details())
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSessionNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, ErrInvalidStep), errors.Is(err, ErrInvalidIndex), errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrStaleResult):
		respond.Error(c, http.StatusConflict, "stale_result", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update resume", nil)
	}
}

func (h *Handler) getResume(c *gin.Context) {
	r, err := h.Svc.Resume(c.Request.Context(), middleware.SessionIDFromContext(c))
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, r)
}

func (h *Handler) putResume(c *gin.Context) {
	var req resume.Resume
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	r, err := h.Svc.SetResume(c.Request.Context(), middleware.SessionIDFromContext(c), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, r)
}

func (h *Handler) putPersonalInfo(c *gin.Context) {
	var req resume.PersonalInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	r, err := h.Svc.UpdatePersonalInfo(c.Request.Context(), middleware.SessionIDFromContext(c), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, r)
}

type templateRequest struct {
	Template string `json:"template"`
}

func (h *Handler) putTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Template) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "template is required", nil)
		return
	}
	r, err := h.Svc.SetTemplate(c.Request.Context(), middleware.SessionIDFromContext(c), req.Template)
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, r)
}

func (h *Handler) putTemplateSettings(c *gin.Context) {
	var req resume.TemplateSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	r, err := h.Svc.SetTemplateSettings(c.Request.Context(), middleware.SessionIDFromContext(c), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, r)
}

type stepRequest struct {
	Step int `json:"step"`
}

func (h *Handler) wizard(c *gin.Context) {
	sess, err := h.Svc.Session(c.Request.Context(), middleware.SessionIDFromContext(c))
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, WizardOf(sess, scoring.CalculateProgress(sess.Resume)))
}

func (h *Handler) setStep(c *gin.Context) {
	var req stepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	h.respondWizard(c)(h.Svc.SetStep(c.Request.Context(), middleware.SessionIDFromContext(c), req.Step))
}

func (h *Handler) nextStep(c *gin.Context) {
	h.respondWizard(c)(h.Svc.NextStep(c.Request.Context(), middleware.SessionIDFromContext(c)))
}

func (h *Handler) prevStep(c *gin.Context) {
	h.respondWizard(c)(h.Svc.PrevStep(c.Request.Context(), middleware.SessionIDFromContext(c)))
}

func (h *Handler) respondWizard(c *gin.Context) func(Session, error) {
	return func(sess Session, err error) {
		if err != nil {
			WriteError(c, err)
			return
		}
		respond.OK(c, WizardOf(sess, scoring.CalculateProgress(sess.Resume)))
	}
}

func (h *Handler) reset(c *gin.Context) {
	err := h.Svc.Reset(c.Request.Context(), middleware.SessionIDFromContext(c))
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type moveRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

func registerList[T any](rg *gin.RouterGroup, svc *Service, l List[T]) {
	base := "/resume/" + l.Name

	rg.GET(base, func(c *gin.Context) {
		r, err := svc.Resume(c.Request.Context(), middleware.SessionIDFromContext(c))
		if err != nil {
			WriteError(c, err)
			return
		}
		respond.OK(c, *l.items(&r))
	})

	rg.POST(base, func(c *gin.Context) {
		var item T
		if err := c.ShouldBindJSON(&item); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
		added, err := Add(c.Request.Context(), svc, middleware.SessionIDFromContext(c), l, item)
		if err != nil {
			WriteError(c, err)
			return
		}
		respond.JSON(c, http.StatusCreated, added)
	})

	rg.POST(base+"/move", func(c *gin.Context) {
		var req moveRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.From == nil || req.To == nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "from and to are required", nil)
			return
		}
		items, err := Move(c.Request.Context(), svc, middleware.SessionIDFromContext(c), l, *req.From, *req.To)
		if err != nil {
			WriteError(c, err)
			return
		}
		respond.OK(c, items)
	})

	rg.GET(base+"/:id", func(c *gin.Context) {
		item, err := Find(c.Request.Context(), svc, middleware.SessionIDFromContext(c), l, c.Param("id"))
		if err != nil {
			WriteError(c, err)
			return
		}
		respond.OK(c, item)
	})

	rg.PUT(base+"/:id", func(c *gin.Context) {
		var item T
		if err := c.ShouldBindJSON(&item); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
		updated, err := Update(c.Request.Context(), svc, middleware.SessionIDFromContext(c), l, c.Param("id"), item)
		if err != nil {
			WriteError(c, err)
			return
		}
		respond.OK(c, updated)
	})

	rg.DELETE(base+"/:id", func(c *gin.Context) {
		if err := Delete(c.Request.Context(), svc, middleware.SessionIDFromContext(c), l, c.Param("id")); err != nil {
			WriteError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
