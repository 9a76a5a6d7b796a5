package export

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/builder"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

const maxImportBytes = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches export and import routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/export/:format", h.export)
	rg.POST("/resume/import", h.importResume)
}

func (h *Handler) export(c *gin.Context) {
	format := strings.ToLower(c.Param("format"))
	c.Set("exportFormat", format)

	file, err := h.Svc.Export(c.Request.Context(), middleware.SessionIDFromContext(c), format)
	switch {
	case err == nil:
		respond.Attachment(c, file.ContentType, file.Name, file.Body)
	case errors.Is(err, ErrNotImplemented):
		respond.Error(c, http.StatusNotImplemented, "not_implemented", "DOCX export coming soon!", nil)
	case errors.Is(err, ErrUnknownFormat):
		respond.Error(c, http.StatusBadRequest, "unsupported_format", err.Error(), nil)
	case errors.Is(err, ErrExport):
		respond.Error(c, http.StatusInternalServerError, "export_failed", "Failed to generate export. Please try again.", nil)
	default:
		builder.WriteError(c, err)
	}
}

func (h *Handler) importResume(c *gin.Context) {
	c.Set("exportFormat", FormatJSON)
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if len(body) > maxImportBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "too_large", "import exceeds 1 MiB", nil)
		return
	}
	r, err := h.Svc.Import(c.Request.Context(), middleware.SessionIDFromContext(c), body)
	var schemaErr *SchemaError
	switch {
	case err == nil:
		respond.OK(c, r)
	case errors.As(err, &schemaErr):
		respond.Error(c, http.StatusBadRequest, "validation_error", "Imported file is not a valid resume export", schemaErr.Problems)
	default:
		builder.WriteError(c, err)
	}
}
