package render

import "resume-builder/internal/resume"

// Palette is the colour set of one colour scheme.
type Palette struct {
	Name    string `json:"name"`
	Primary string `json:"primary"`
	Light   string `json:"light"`
	Border  string `json:"border"`
	Accent  string `json:"accent"`
}

// Style is the resolved visual configuration handed to the HTML skins.
type Style struct {
	Palette    Palette `json:"palette"`
	FontSize   string  `json:"fontSize"`
	FontFamily string  `json:"fontFamily"`
	Compact    bool    `json:"compact"`
	Dividers   bool    `json:"dividers"`
	Icons      bool    `json:"icons"`
	TwoColumn  bool    `json:"twoColumn"`
}

const (
	defaultScheme = "blue"
	defaultSize   = "base"
	defaultFamily = "sans"
)

// Palettes maps colour scheme names to colours.
var Palettes = map[string]Palette{
	"blue":   {Name: "blue", Primary: "#2563eb", Light: "#eff6ff", Border: "#bfdbfe", Accent: "#dbeafe"},
	"green":  {Name: "green", Primary: "#16a34a", Light: "#f0fdf4", Border: "#bbf7d0", Accent: "#dcfce7"},
	"purple": {Name: "purple", Primary: "#9333ea", Light: "#faf5ff", Border: "#e9d5ff", Accent: "#f3e8ff"},
	"red":    {Name: "red", Primary: "#dc2626", Light: "#fef2f2", Border: "#fecaca", Accent: "#fee2e2"},
	"indigo": {Name: "indigo", Primary: "#4f46e5", Light: "#eef2ff", Border: "#c7d2fe", Accent: "#e0e7ff"},
	"teal":   {Name: "teal", Primary: "#0d9488", Light: "#f0fdfa", Border: "#99f6e4", Accent: "#ccfbf1"},
	"orange": {Name: "orange", Primary: "#ea580c", Light: "#fff7ed", Border: "#fed7aa", Accent: "#ffedd5"},
	"gray":   {Name: "gray", Primary: "#4b5563", Light: "#f9fafb", Border: "#e5e7eb", Accent: "#f3f4f6"},
}

// FontSizes maps size names to the base CSS font size.
var FontSizes = map[string]string{
	"sm":   "14px",
	"base": "16px",
	"lg":   "18px",
	"xl":   "20px",
}

// FontFamilies maps family names to CSS font stacks.
var FontFamilies = map[string]string{
	"sans":  `-apple-system, "Segoe UI", Helvetica, Arial, sans-serif`,
	"serif": `Georgia, "Times New Roman", serif`,
	"mono":  `"SFMono-Regular", Menlo, Consolas, monospace`,
}

// Layouts lists the supported page layouts.
var Layouts = []string{"single", "two-column", "sidebar"}

// StyleFor resolves settings to concrete colours and fonts. Unknown values fall back to blue, base and sans.
func StyleFor(s resume.TemplateSettings) Style {
	palette, ok := Palettes[s.ColorScheme]
	if !ok {
		palette = Palettes[defaultScheme]
	}
	size, ok := FontSizes[s.FontSize]
	if !ok {
		size = FontSizes[defaultSize]
	}
	family, ok := FontFamilies[s.FontFamily]
	if !ok {
		family = FontFamilies[defaultFamily]
	}
	return Style{
		Palette:    palette,
		FontSize:   size,
		FontFamily: family,
		Compact:    s.CompactMode,
		Dividers:   s.ShowDividers,
		Icons:      s.ShowIcons,
		TwoColumn:  s.Layout == "two-column" || s.Layout == "sidebar",
	}
}
