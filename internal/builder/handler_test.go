package builder

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resume"
	"resume-builder/internal/shared/server/middleware"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Session(false))
	NewHandler(NewService(NewMemoryStore(time.Hour))).RegisterRoutes(r.Group("/api"))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, "handler-session")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestGetResumeCreatesSession(t *testing.T) {
	r := setupRouter()
	resp := do(t, r, http.MethodGet, "/api/resume", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got resume.Resume
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "My Resume" || got.Template != "classic" || got.Experiences == nil {
		t.Fatalf("unexpected initial resume %+v", got)
	}
}

func TestPersonalInfoValidation(t *testing.T) {
	r := setupRouter()
	resp := do(t, r, http.MethodPut, "/api/resume/personal-info", resume.PersonalInfo{FirstName: "Jane", LastName: "Doe", Email: "nope"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body struct {
		Error   string              `json:"error"`
		Details []map[string]string `json:"details"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "validation_error" || len(body.Details) != 1 || body.Details[0]["field"] != "email" {
		t.Fatalf("unexpected body %+v", body)
	}
	if body.Details[0]["issue"] != "Please enter a valid email address" {
		t.Fatalf("unexpected issue %q", body.Details[0]["issue"])
	}

	resp = do(t, r, http.MethodPut, "/api/resume/personal-info", resume.PersonalInfo{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCollectionRoutes(t *testing.T) {
	r := setupRouter()

	resp := do(t, r, http.MethodPost, "/api/resume/experiences", resume.Experience{Company: "Acme", Position: "Engineer", StartDate: "2023-01"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created resume.Experience
	_ = json.Unmarshal(resp.Body.Bytes(), &created)

	do(t, r, http.MethodPost, "/api/resume/experiences", resume.Experience{Company: "Globex", Position: "Lead", StartDate: "2024-01"})

	resp = do(t, r, http.MethodPost, "/api/resume/experiences/move", map[string]int{"from": 1, "to": 0})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var moved []resume.Experience
	_ = json.Unmarshal(resp.Body.Bytes(), &moved)
	if len(moved) != 2 || moved[0].Company != "Globex" {
		t.Fatalf("unexpected order %+v", moved)
	}

	resp = do(t, r, http.MethodPut, "/api/resume/experiences/"+created.ID, resume.Experience{Company: "Acme Corp", Position: "Engineer", StartDate: "2023-01"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = do(t, r, http.MethodGet, "/api/resume/experiences/"+created.ID, nil)
	var fetched resume.Experience
	_ = json.Unmarshal(resp.Body.Bytes(), &fetched)
	if fetched.Company != "Acme Corp" {
		t.Fatalf("expected updated company, got %q", fetched.Company)
	}

	resp = do(t, r, http.MethodDelete, "/api/resume/experiences/"+created.ID, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	resp = do(t, r, http.MethodDelete, "/api/resume/experiences/"+created.ID, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	resp = do(t, r, http.MethodPost, "/api/resume/skills/move", map[string]int{"from": 0})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing to, got %d", resp.Code)
	}
}

func TestWizardRoutes(t *testing.T) {
	r := setupRouter()

	resp := do(t, r, http.MethodPost, "/api/wizard/next", nil)
	var w Wizard
	_ = json.Unmarshal(resp.Body.Bytes(), &w)
	if w.CurrentStep != 2 || w.Title != "Experience" || w.TotalSteps != 6 {
		t.Fatalf("unexpected wizard %+v", w)
	}

	resp = do(t, r, http.MethodPut, "/api/wizard/step", map[string]int{"step": 0})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid step, got %d", resp.Code)
	}

	resp = do(t, r, http.MethodDelete, "/api/session", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	resp = do(t, r, http.MethodGet, "/api/wizard", nil)
	_ = json.Unmarshal(resp.Body.Bytes(), &w)
	if w.CurrentStep != 1 || w.Progress != 0 {
		t.Fatalf("expected reset wizard, got %+v", w)
	}
}
