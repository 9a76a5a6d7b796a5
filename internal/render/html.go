package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"resume-builder/internal/resume"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer produces the HTML preview of a resume.
type Renderer struct {
	tmpl *template.Template
}

type pageData struct {
	Title  string
	Vars   template.CSS
	Layout Layout
	Header *Header
	Body   []Section
}

// NewRenderer parses the embedded skins.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"levelDots": LevelDots,
		"join":      strings.Join,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// HTML renders the preview for a resume using the given settings.
func (r *Renderer) HTML(w io.Writer, res resume.Resume, settings resume.TemplateSettings) error {
	return r.Layout(w, BuildLayout(res, settings))
}

// Layout renders a prepared layout. Placeholder layouts render the empty-state page.
func (r *Renderer) Layout(w io.Writer, l Layout) error {
	data := pageData{
		Title:  "Resume",
		Vars:   cssVars(l.Style),
		Layout: l,
	}
	name := l.Skin
	if l.Placeholder {
		name = "placeholder"
	}
	for _, s := range l.Sections {
		if s.Kind == SectionHeader {
			data.Header = s.Header
			data.Title = s.Header.Name + " - Resume"
			continue
		}
		data.Body = append(data.Body, s)
	}
	if r.tmpl.Lookup(name) == nil {
		name = SkinClassic
	}
	return r.tmpl.ExecuteTemplate(w, name, data)
}

// Render is a convenience wrapper returning the HTML as bytes.
func (r *Renderer) Render(res resume.Resume, settings resume.TemplateSettings) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.HTML(&buf, res, settings); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// cssVars only interpolates values taken from the fixed style tables.
func cssVars(s Style) template.CSS {
	return template.CSS(fmt.Sprintf(
		"--primary: %s; --light: %s; --border: %s; --accent: %s; --font-size: %s; --font-family: %s;",
		s.Palette.Primary, s.Palette.Light, s.Palette.Border, s.Palette.Accent, s.FontSize, s.FontFamily,
	))
}
