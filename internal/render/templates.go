package render

import (
	"sort"

	"resume-builder/internal/resume"
)

// TemplateInfo describes one selectable template.
type TemplateInfo struct {
	Value       string   `json:"value"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Skin        string   `json:"skin"`
	Features    []string `json:"features"`
}

// Skins with their own HTML.
const (
	SkinClassic  = "classic"
	SkinModern   = "modern"
	SkinCreative = "creative"
)

var catalogue = []TemplateInfo{
	{Value: "classic", Name: "Classic", Description: "Traditional professional layout", Category: "Professional", Skin: SkinClassic,
		Features: []string{"ATS-friendly", "Clean layout", "Easy to read"}},
	{Value: "modern", Name: "Modern", Description: "Clean contemporary design", Category: "Contemporary", Skin: SkinModern,
		Features: []string{"Modern styling", "Visual appeal", "Tech-focused"}},
	{Value: "creative", Name: "Creative", Description: "Unique artistic layout", Category: "Creative", Skin: SkinCreative,
		Features: []string{"Unique design", "Visual impact", "Stand out"}},
	{Value: "professional", Name: "Professional", Description: "Executive-level presentation", Category: "Executive", Skin: SkinClassic,
		Features: []string{"Executive style", "High-end look", "Leadership focus"}},
	{Value: "minimalist", Name: "Minimalist", Description: "Clean and simple design", Category: "Minimal", Skin: SkinClassic,
		Features: []string{"Clean lines", "Simple layout", "Focus on content"}},
	{Value: "executive", Name: "Executive", Description: "C-suite and senior level", Category: "Executive", Skin: SkinClassic,
		Features: []string{"Senior level", "Authority", "Strategic focus"}},
}

// Templates returns the template catalogue in display order.
func Templates() []TemplateInfo {
	out := make([]TemplateInfo, len(catalogue))
	copy(out, catalogue)
	return out
}

// LookupTemplate returns the catalogue entry for a tag.
func LookupTemplate(tag string) (TemplateInfo, bool) {
	for _, t := range catalogue {
		if t.Value == tag {
			return t, true
		}
	}
	return TemplateInfo{}, false
}

// KnownTemplate reports whether tag names a catalogue template.
func KnownTemplate(tag string) bool {
	_, ok := LookupTemplate(tag)
	return ok
}

// EffectiveSettings merges stored settings over the defaults.
// The template is taken from the settings, then the resume, then classic.
func EffectiveSettings(r resume.Resume) resume.TemplateSettings {
	settings := resume.DefaultTemplateSettings()
	if r.TemplateSettings != nil {
		settings = *r.TemplateSettings
	} else {
		// The defaults carry no choice of their own; the resume's template decides.
		settings.Template = ""
	}
	switch {
	case KnownTemplate(settings.Template):
	case KnownTemplate(r.Template):
		settings.Template = r.Template
	default:
		settings.Template = resume.DefaultTemplate
	}
	return settings
}

// Options is the catalogue served to clients building a settings form.
type Options struct {
	Templates    []TemplateInfo          `json:"templates"`
	ColorSchemes []Palette               `json:"colorSchemes"`
	FontSizes    []string                `json:"fontSizes"`
	FontFamilies []string                `json:"fontFamilies"`
	Layouts      []string                `json:"layouts"`
	BulletStyles []resume.BulletStyle    `json:"bulletStyles"`
	Defaults     resume.TemplateSettings `json:"defaults"`
}

// CatalogueOptions lists every supported template setting value.
func CatalogueOptions() Options {
	schemes := make([]Palette, 0, len(Palettes))
	for _, p := range Palettes {
		schemes = append(schemes, p)
	}
	sort.Slice(schemes, func(i, j int) bool { return schemes[i].Name < schemes[j].Name })
	return Options{
		Templates:    Templates(),
		ColorSchemes: schemes,
		FontSizes:    []string{"sm", "base", "lg", "xl"},
		FontFamilies: []string{"sans", "serif", "mono"},
		Layouts:      append([]string{}, Layouts...),
		BulletStyles: []resume.BulletStyle{resume.BulletDash, resume.BulletDot, resume.BulletArrow, resume.BulletNumber},
		Defaults:     resume.DefaultTemplateSettings(),
	}
}
