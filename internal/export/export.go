package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"resume-builder/internal/builder"
	"resume-builder/internal/render"
	"resume-builder/internal/resume"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

// Formats offered by the export menu.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// Version is stamped on every data export.
const Version = "1.0"

var (
	ErrNotImplemented = errors.New("export format not implemented")
	ErrUnknownFormat  = errors.New("unknown export format")
	ErrExport         = errors.New("export failed")
)

// Document is the data export payload: the resume plus export metadata.
type Document struct {
	resume.Resume `yaml:",inline"`
	ExportedAt    string `json:"exportedAt" yaml:"exportedAt"`
	Version       string `json:"version" yaml:"version"`
}

// File is a finished export ready for download.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Service produces exports of session resumes and imports data exports.
type Service struct {
	Builder  *builder.Service
	Renderer *render.Renderer
	Printer  Printer
	Now      func() time.Time
}

// NewService constructs a Service. A nil printer disables PDF export.
func NewService(b *builder.Service, renderer *render.Renderer, printer Printer) *Service {
	return &Service{Builder: b, Renderer: renderer, Printer: printer, Now: time.Now}
}

// NewDocument stamps r with export metadata.
func NewDocument(r resume.Resume, now time.Time) Document {
	return Document{Resume: r, ExportedAt: now.UTC().Format(time.RFC3339), Version: Version}
}

// Export renders the session resume in the requested format.
func (s *Service) Export(ctx context.Context, sessionID, format string) (File, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	r, err := s.Builder.Resume(ctx, sessionID)
	if err != nil {
		return File{}, err
	}
	var file File
	switch format {
	case FormatJSON:
		file, err = s.jsonFile(r)
	case FormatYAML:
		file, err = s.yamlFile(r)
	case FormatPDF:
		file, err = s.pdfFile(ctx, r)
	case FormatDOCX:
		return File{}, ErrNotImplemented
	default:
		return File{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		metrics.IncExportFailure()
		telemetry.Error("export.failed", map[string]any{
			"session_id": sessionID,
			"format":     format,
			"error":      err,
		})
		return File{}, err
	}
	metrics.IncExport(format)
	return file, nil
}

func (s *Service) jsonFile(r resume.Resume) (File, error) {
	body, err := json.MarshalIndent(NewDocument(r, s.Now()), "", "  ")
	if err != nil {
		return File{}, fmt.Errorf("%w: encode json: %v", ErrExport, err)
	}
	return File{Name: "resume-data.json", ContentType: "application/json", Body: body}, nil
}

func (s *Service) yamlFile(r resume.Resume) (File, error) {
	body, err := yaml.Marshal(NewDocument(r, s.Now()))
	if err != nil {
		return File{}, fmt.Errorf("%w: encode yaml: %v", ErrExport, err)
	}
	return File{Name: "resume-data.yaml", ContentType: "application/x-yaml", Body: body}, nil
}

func (s *Service) pdfFile(ctx context.Context, r resume.Resume) (File, error) {
	if s.Printer == nil {
		return File{}, fmt.Errorf("%w: pdf printer not configured", ErrExport)
	}
	page, err := s.Renderer.Render(r, render.EffectiveSettings(r))
	if err != nil {
		return File{}, fmt.Errorf("%w: render preview: %v", ErrExport, err)
	}
	body, err := s.Printer.PrintPDF(ctx, page)
	if err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrExport, err)
	}
	pages, err := CountPages(body)
	if err != nil {
		return File{}, fmt.Errorf("%w: unreadable pdf: %v", ErrExport, err)
	}
	if pages < 1 {
		return File{}, fmt.Errorf("%w: pdf has no pages", ErrExport)
	}
	return File{Name: "resume.pdf", ContentType: "application/pdf", Body: body}, nil
}
