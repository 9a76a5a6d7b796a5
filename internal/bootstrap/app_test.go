package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server/middleware"
)

type stubGenerator struct{}

func (stubGenerator) Name() string { return "stub" }

func (stubGenerator) Generate(context.Context, string, string) (string, error) {
	return "Generated text.", nil
}

func (stubGenerator) Ping(context.Context) error { return nil }

func testConfig() config.Config {
	return config.Config{
		Env:                 "dev",
		CORSAllowOrigin:     []string{"http://localhost:3000"},
		AIRateLimitPerMin:   2,
		DefaultRateLimitMin: 1000,
		SessionTTL:          time.Hour,
		AITimeout:           time.Second,
	}
}

func request(app *App, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(middleware.SessionHeader, "bootstrap-session")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestBuildMountsRoutes(t *testing.T) {
	app, err := Build(context.Background(), testConfig(), WithGenerator(stubGenerator{}))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	tests := []struct {
		method string
		path   string
		code   int
	}{
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/resume", http.StatusOK},
		{http.MethodGet, "/api/resume/progress", http.StatusOK},
		{http.MethodGet, "/api/resume/preview", http.StatusOK},
		{http.MethodGet, "/api/templates", http.StatusOK},
		{http.MethodGet, "/api/ai/status", http.StatusOK},
		{http.MethodGet, "/api/export/json", http.StatusOK},
		{http.MethodGet, "/auth/signin", http.StatusOK},
		{http.MethodGet, "/api/auth/google/start", http.StatusInternalServerError},
		{http.MethodGet, "/metrics", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if resp := request(app, tt.method, tt.path); resp.Code != tt.code {
				t.Fatalf("%s %s: expected %d, got %d: %s", tt.method, tt.path, tt.code, resp.Code, resp.Body.String())
			}
		})
	}
}

func TestAIRoutesAreRateLimited(t *testing.T) {
	app, err := Build(context.Background(), testConfig(), WithGenerator(stubGenerator{}))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for i := 0; i < 2; i++ {
		if resp := request(app, http.MethodPost, "/api/resume/ai/summary"); resp.Code != http.StatusOK {
			t.Fatalf("call %d: expected 200, got %d: %s", i, resp.Code, resp.Body.String())
		}
	}
	resp := request(app, http.MethodPost, "/api/resume/ai/summary")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp := request(app, http.MethodGet, "/api/resume"); resp.Code != http.StatusOK {
		t.Fatalf("expected non-AI route to stay open, got %d", resp.Code)
	}
	if !strings.Contains(request(app, http.MethodGet, "/api/resume").Body.String(), "Generated text.") {
		t.Fatalf("expected the generated summary to be stored")
	}
}

func TestBuildRejectsUnknownProvider(t *testing.T) {
	cfg := testConfig()
	cfg.LLMProvider = "bard"
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestHealthReportsSessions(t *testing.T) {
	app, err := Build(context.Background(), testConfig(), WithGenerator(stubGenerator{}))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	request(app, http.MethodGet, "/api/resume")

	resp := request(app, http.MethodGet, "/api/health")
	var body struct {
		OK         bool   `json:"ok"`
		Sessions   int    `json:"sessions"`
		AIProvider string `json:"aiProvider"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.OK || body.Sessions < 1 || body.AIProvider != "stub" {
		t.Fatalf("unexpected health %+v", body)
	}
}

func requestJSON(app *App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, "template-session")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestTemplateChoiceReachesPreview(t *testing.T) {
	app, err := Build(context.Background(), testConfig(), WithGenerator(stubGenerator{}))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if resp := requestJSON(app, http.MethodPut, "/api/resume/template", `{"template":"modern"}`); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp := requestJSON(app, http.MethodPut, "/api/resume/personal-info", `{"firstName":"Jane","lastName":"Doe","email":"jane@x.com"}`); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp := requestJSON(app, http.MethodGet, "/api/resume/layout", "")
	var layout struct {
		Template string `json:"template"`
		Skin     string `json:"skin"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &layout); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if layout.Template != "modern" || layout.Skin != "modern" {
		t.Fatalf("expected modern layout, got %+v", layout)
	}

	resp = requestJSON(app, http.MethodGet, "/api/resume/preview", "")
	if !strings.Contains(resp.Body.String(), `class="modern`) {
		t.Fatalf("expected modern skin in preview")
	}
}
