package render

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resume"
)

type staticSource struct{ r resume.Resume }

func (s staticSource) Resume(context.Context, string) (resume.Resume, error) { return s.r, nil }

func previewRouter(t *testing.T, r resume.Resume) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	engine := gin.New()
	NewHandler(staticSource{r: r}, renderer).RegisterRoutes(engine.Group("/api"))
	return engine
}

func TestPreviewRoute(t *testing.T) {
	r := resume.New()
	r.PersonalInfo = &resume.PersonalInfo{FirstName: "Jane", LastName: "Doe"}
	engine := previewRouter(t, r)

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/resume/preview?template=creative", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.HasPrefix(resp.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("unexpected content type %q", resp.Header().Get("Content-Type"))
	}
	if !strings.Contains(resp.Body.String(), `class="creative`) {
		t.Fatalf("expected creative skin")
	}

	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/resume/preview?template=glitter", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown template, got %d", resp.Code)
	}
}

func TestLayoutAndTemplatesRoutes(t *testing.T) {
	engine := previewRouter(t, resume.New())

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/resume/layout", nil))
	var layout Layout
	if err := json.Unmarshal(resp.Body.Bytes(), &layout); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !layout.Placeholder || layout.Template != "classic" {
		t.Fatalf("unexpected layout %+v", layout)
	}

	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/templates", nil))
	var opts Options
	if err := json.Unmarshal(resp.Body.Bytes(), &opts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(opts.Templates) != 6 || len(opts.ColorSchemes) != 8 || len(opts.BulletStyles) != 4 {
		t.Fatalf("unexpected options %+v", opts)
	}
}
