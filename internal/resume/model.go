package resume

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BulletStyle selects the glyph used when descriptions are rendered as bullet lists.
type BulletStyle string

const (
	BulletDash   BulletStyle = "dash"
	BulletDot    BulletStyle = "dot"
	BulletArrow  BulletStyle = "arrow"
	BulletNumber BulletStyle = "number"
)

// Skill categories offered by the builder. The set is open: any string is accepted.
const (
	CategoryTechnical     = "technical"
	CategorySoft          = "soft"
	CategoryLanguage      = "language"
	CategoryCertification = "certification"
)

const (
	DefaultTitle    = "My Resume"
	DefaultTemplate = "classic"
)

// Resume is the aggregate root edited by the builder.
type Resume struct {
	ID               string            `json:"id,omitempty" yaml:"id,omitempty"`
	Title            string            `json:"title" yaml:"title"`
	Template         string            `json:"template" yaml:"template"`
	TemplateSettings *TemplateSettings `json:"templateSettings,omitempty" yaml:"templateSettings,omitempty"`
	IsPublic         bool              `json:"isPublic" yaml:"isPublic"`
	ShareToken       string            `json:"shareToken,omitempty" yaml:"shareToken,omitempty"`
	PersonalInfo     *PersonalInfo     `json:"personalInfo,omitempty" yaml:"personalInfo,omitempty"`
	Experiences      []Experience      `json:"experiences" yaml:"experiences"`
	Education        []Education       `json:"education" yaml:"education"`
	Skills           []Skill           `json:"skills" yaml:"skills"`
	Projects         []Project         `json:"projects" yaml:"projects"`
	CreatedAt        *time.Time        `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt        *time.Time        `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// TemplateSettings holds the visual options of the preview.
type TemplateSettings struct {
	Template         string      `json:"template" yaml:"template"`
	ColorScheme      string      `json:"colorScheme" yaml:"colorScheme"`
	FontSize         string      `json:"fontSize" yaml:"fontSize"`
	FontFamily       string      `json:"fontFamily" yaml:"fontFamily"`
	Layout           string      `json:"layout" yaml:"layout"`
	ShowDividers     bool        `json:"showDividers" yaml:"showDividers"`
	ShowIcons        bool        `json:"showIcons" yaml:"showIcons"`
	CompactMode      bool        `json:"compactMode" yaml:"compactMode"`
	ConvertToBullets bool        `json:"convertToBullets" yaml:"convertToBullets"`
	BulletStyle      BulletStyle `json:"bulletStyle" yaml:"bulletStyle"`
}

// PersonalInfo is the singleton contact block of a resume.
type PersonalInfo struct {
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location  string `json:"location,omitempty" yaml:"location,omitempty"`
	Website   string `json:"website,omitempty" yaml:"website,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty" yaml:"github,omitempty"`
	Summary   string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Experience is one work history entry.
type Experience struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Company     string `json:"company" yaml:"company"`
	Position    string `json:"position" yaml:"position"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	IsCurrent   bool   `json:"isCurrent" yaml:"isCurrent"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Order       int    `json:"order" yaml:"order"`
}

// Education is one academic entry.
type Education struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Field       string `json:"field,omitempty" yaml:"field,omitempty"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	GPA         string `json:"gpa,omitempty" yaml:"gpa,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Order       int    `json:"order" yaml:"order"`
}

// Skill is a named proficiency. Level is 1-5.
type Skill struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string `json:"name" yaml:"name"`
	Level    int    `json:"level" yaml:"level"`
	Category string `json:"category" yaml:"category"`
	Order    int    `json:"order" yaml:"order"`
}

// Project is a portfolio entry.
type Project struct {
	ID           string `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Technologies string `json:"technologies,omitempty" yaml:"technologies,omitempty"`
	URL          string `json:"url,omitempty" yaml:"url,omitempty"`
	GitHubURL    string `json:"githubUrl,omitempty" yaml:"githubUrl,omitempty"`
	StartDate    string `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Order        int    `json:"order" yaml:"order"`
}

// New returns the resume a fresh builder session starts with.
func New() Resume {
	return Resume{
		Title:        DefaultTitle,
		Template:     DefaultTemplate,
		PersonalInfo: &PersonalInfo{},
		Experiences:  []Experience{},
		Education:    []Education{},
		Skills:       []Skill{},
		Projects:     []Project{},
	}
}

// DefaultTemplateSettings mirrors the preview defaults.
func DefaultTemplateSettings() TemplateSettings {
	return TemplateSettings{
		Template:         DefaultTemplate,
		ColorScheme:      "blue",
		FontSize:         "base",
		FontFamily:       "sans",
		Layout:           "single",
		ShowDividers:     true,
		ShowIcons:        true,
		CompactMode:      false,
		ConvertToBullets: true,
		BulletStyle:      BulletDash,
	}
}

// NewID returns a random entity identifier.
func NewID() string {
	return uuid.NewString()
}

// Info returns the personal info block, or a zero value when absent.
func (r Resume) Info() PersonalInfo {
	if r.PersonalInfo == nil {
		return PersonalInfo{}
	}
	return *r.PersonalInfo
}

// FullName joins first and last name.
func (p PersonalInfo) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// HasIdentity reports whether the fields required for completeness are present.
func (p PersonalInfo) HasIdentity() bool {
	return present(p.FirstName) && present(p.LastName) && present(p.Email)
}

// Clone returns a deep copy so callers can read a snapshot outside the store lock.
func (r Resume) Clone() Resume {
	out := r
	if r.TemplateSettings != nil {
		ts := *r.TemplateSettings
		out.TemplateSettings = &ts
	}
	if r.PersonalInfo != nil {
		pi := *r.PersonalInfo
		out.PersonalInfo = &pi
	}
	out.Experiences = append([]Experience{}, r.Experiences...)
	out.Education = append([]Education{}, r.Education...)
	out.Skills = append([]Skill{}, r.Skills...)
	out.Projects = append([]Project{}, r.Projects...)
	return out
}

// Normalize replaces nil collections with empty ones so JSON consumers always see arrays.
func (r *Resume) Normalize() {
	if r.Experiences == nil {
		r.Experiences = []Experience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Skills == nil {
		r.Skills = []Skill{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	if strings.TrimSpace(r.Template) == "" {
		r.Template = DefaultTemplate
	}
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
