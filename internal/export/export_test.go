package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"resume-builder/internal/builder"
	"resume-builder/internal/render"
	"resume-builder/internal/resume"
	"resume-builder/internal/shared/server/middleware"
)

const testSession = "export-test-session"

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakePrinter struct {
	out  []byte
	err  error
	html []byte
}

func (f *fakePrinter) PrintPDF(_ context.Context, html []byte) ([]byte, error) {
	f.html = html
	return f.out, f.err
}

// minimalPDF builds a PDF with the given number of empty pages and a correct xref table.
func minimalPDF(pages int) []byte {
	var objs []string
	kids := make([]string, pages)
	for i := 0; i < pages; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		objs = append(objs, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] >>")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func newTestService(t *testing.T, printer Printer) (*Service, *builder.Service) {
	t.Helper()
	renderer, err := render.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	b := builder.NewService(builder.NewMemoryStore(time.Hour))
	svc := NewService(b, renderer, printer)
	svc.Now = func() time.Time { return fixedNow }
	return svc, b
}

func seed(t *testing.T, b *builder.Service) {
	t.Helper()
	ctx := context.Background()
	if _, err := b.UpdatePersonalInfo(ctx, testSession, resume.PersonalInfo{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}); err != nil {
		t.Fatalf("personal info: %v", err)
	}
	if _, err := builder.Add(ctx, b, testSession, builder.ExperienceList, resume.Experience{Company: "Acme", Position: "Engineer", StartDate: "2021-04"}); err != nil {
		t.Fatalf("experience: %v", err)
	}
}

func TestCountPages(t *testing.T) {
	for _, n := range []int{1, 3} {
		got, err := CountPages(minimalPDF(n))
		if err != nil {
			t.Fatalf("CountPages(%d pages): %v", n, err)
		}
		if got != n {
			t.Fatalf("expected %d pages, got %d", n, got)
		}
	}
	if _, err := CountPages([]byte("not a pdf")); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}

func TestExportJSON(t *testing.T) {
	svc, b := newTestService(t, nil)
	seed(t, b)

	file, err := svc.Export(context.Background(), testSession, "JSON")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if file.Name != "resume-data.json" || file.ContentType != "application/json" {
		t.Fatalf("unexpected file %s %s", file.Name, file.ContentType)
	}
	var doc map[string]any
	if err := json.Unmarshal(file.Body, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc["exportedAt"] != "2026-03-01T12:00:00Z" || doc["version"] != "1.0" || doc["title"] != "My Resume" {
		t.Fatalf("unexpected metadata %v", doc)
	}
	if exps, ok := doc["experiences"].([]any); !ok || len(exps) != 1 {
		t.Fatalf("expected one experience, got %v", doc["experiences"])
	}
}

func TestExportYAML(t *testing.T) {
	svc, b := newTestService(t, nil)
	seed(t, b)

	file, err := svc.Export(context.Background(), testSession, FormatYAML)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(file.Body, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc["version"] != "1.0" || doc["title"] != "My Resume" {
		t.Fatalf("unexpected document %v", doc)
	}
	info, ok := doc["personalInfo"].(map[any]any)
	if !ok || info["firstName"] != "Jane" {
		t.Fatalf("unexpected personal info %v", doc["personalInfo"])
	}
}

func TestExportPDF(t *testing.T) {
	printer := &fakePrinter{out: minimalPDF(1)}
	svc, b := newTestService(t, printer)
	seed(t, b)

	file, err := svc.Export(context.Background(), testSession, FormatPDF)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if file.Name != "resume.pdf" || file.ContentType != "application/pdf" {
		t.Fatalf("unexpected file %s %s", file.Name, file.ContentType)
	}
	if !bytes.Contains(printer.html, []byte("Jane Doe")) {
		t.Fatalf("expected the preview page to be printed")
	}
}

func TestExportPDFFailures(t *testing.T) {
	tests := []struct {
		name    string
		printer Printer
	}{
		{"no printer", nil},
		{"printer error", &fakePrinter{err: errors.New("chrome not found")}},
		{"not a pdf", &fakePrinter{out: []byte("<html>")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, b := newTestService(t, tt.printer)
			seed(t, b)
			if _, err := svc.Export(context.Background(), testSession, FormatPDF); !errors.Is(err, ErrExport) {
				t.Fatalf("expected ErrExport, got %v", err)
			}
		})
	}
}

func TestImageEmbedsPNG(t *testing.T) {
	page := string(imagePage([]byte{0x89, 'P', 'N', 'G'}))
	if !strings.Contains(page, "data:image/png;base64,iVBORw==") || !strings.Contains(page, "size:A4") {
		t.Fatalf("unexpected page %s", page)
	}
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{"empty object", `{}`, true},
		{"export metadata", `{"title": "CV", "exportedAt": "2026-03-01T12:00:00Z", "version": "1.0", "experiences": []}`, true},
		{"skill level out of range", `{"skills": [{"name": "Go", "level": 9}]}`, false},
		{"experience missing company", `{"experiences": [{"position": "Dev"}]}`, false},
		{"wrong type", `{"title": 5}`, false},
		{"not json", `title: x`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument([]byte(tt.body))
			if (err == nil) != tt.valid {
				t.Fatalf("ValidateDocument(%s) = %v, want valid=%v", tt.body, err, tt.valid)
			}
			var schemaErr *SchemaError
			if err != nil && !errors.As(err, &schemaErr) {
				t.Fatalf("expected SchemaError, got %T", err)
			}
		})
	}
}

func setupRouter(t *testing.T, printer Printer) (*gin.Engine, *builder.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, b := newTestService(t, printer)
	r := gin.New()
	r.Use(middleware.Session(false))
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r, b
}

func serve(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(middleware.SessionHeader, testSession)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestExportRoutes(t *testing.T) {
	r, b := setupRouter(t, nil)
	seed(t, b)

	resp := serve(r, http.MethodGet, "/api/export/json", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Header().Get("Content-Disposition"), "resume-data.json") {
		t.Fatalf("unexpected disposition %q", resp.Header().Get("Content-Disposition"))
	}

	resp = serve(r, http.MethodGet, "/api/export/docx", nil)
	if resp.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", resp.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body["error"] != "not_implemented" || body["message"] != "DOCX export coming soon!" {
		t.Fatalf("unexpected body %v", body)
	}

	resp = serve(r, http.MethodGet, "/api/export/odt", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	resp = serve(r, http.MethodGet, "/api/export/pdf", nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without a printer, got %d", resp.Code)
	}
}

func TestImportRoute(t *testing.T) {
	r, b := setupRouter(t, nil)
	seed(t, b)
	exported := serve(r, http.MethodGet, "/api/export/json", nil).Body.Bytes()

	if _, err := b.Resume(context.Background(), "other-session-id"); err != nil {
		t.Fatalf("create session: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/resume/import", bytes.NewReader(exported))
	req.Header.Set(middleware.SessionHeader, "other-session-id")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	imported, _ := b.Resume(context.Background(), "other-session-id")
	if imported.PersonalInfo == nil || imported.PersonalInfo.FirstName != "Jane" || len(imported.Experiences) != 1 {
		t.Fatalf("unexpected imported resume %+v", imported)
	}

	resp = serve(r, http.MethodPost, "/api/resume/import", []byte(`{"skills": [{"level": 3}]}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body.Error != "validation_error" || len(body.Details) == 0 {
		t.Fatalf("unexpected body %+v", body)
	}
}
