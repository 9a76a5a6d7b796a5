package render

import (
	"strings"

	"resume-builder/internal/resume"
)

// Section kinds in render order.
const (
	SectionHeader     = "header"
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
	SectionProjects   = "projects"
)

var sectionTitles = map[string]string{
	SectionSummary:    "Professional Summary",
	SectionExperience: "Work Experience",
	SectionEducation:  "Education",
	SectionSkills:     "Skills",
	SectionProjects:   "Projects",
}

// Layout is the render-ready view of a resume.
type Layout struct {
	Template    string                  `json:"template"`
	Skin        string                  `json:"skin"`
	Settings    resume.TemplateSettings `json:"settings"`
	Style       Style                   `json:"style"`
	Placeholder bool                    `json:"placeholder"`
	Sections    []Section               `json:"sections"`
}

// Section is one block of the rendered page. Only the field matching Kind is set.
type Section struct {
	Kind        string           `json:"kind"`
	Title       string           `json:"title,omitempty"`
	Header      *Header          `json:"header,omitempty"`
	Summary     string           `json:"summary,omitempty"`
	Experiences []ExperienceView `json:"experiences,omitempty"`
	Education   []EducationView  `json:"education,omitempty"`
	SkillGroups []SkillGroup     `json:"skillGroups,omitempty"`
	Projects    []ProjectView    `json:"projects,omitempty"`
}

// Header carries the identity and contact lines.
type Header struct {
	Name     string   `json:"name"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`
	Links    []string `json:"links,omitempty"`
}

// ExperienceView is a formatted work entry.
type ExperienceView struct {
	ID          string   `json:"id"`
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Location    string   `json:"location,omitempty"`
	Dates       string   `json:"dates"`
	Description string   `json:"description,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
}

// EducationView is a formatted education entry.
type EducationView struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution"`
	Location    string `json:"location,omitempty"`
	Dates       string `json:"dates"`
	GPA         string `json:"gpa,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProjectView is a formatted project entry.
type ProjectView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
	GitHubURL    string   `json:"githubUrl,omitempty"`
	Dates        string   `json:"dates,omitempty"`
}

// BuildLayout arranges a resume into ordered sections, omitting the ones without data.
// A resume without a name yields a placeholder layout with no sections.
func BuildLayout(r resume.Resume, settings resume.TemplateSettings) Layout {
	info, ok := LookupTemplate(settings.Template)
	if !ok {
		info, _ = LookupTemplate(resume.DefaultTemplate)
		settings.Template = info.Value
	}
	layout := Layout{
		Template: info.Value,
		Skin:     info.Skin,
		Settings: settings,
		Style:    StyleFor(settings),
		Sections: []Section{},
	}

	pi := r.Info()
	name := pi.FullName()
	if name == "" {
		layout.Placeholder = true
		return layout
	}

	layout.Sections = append(layout.Sections, Section{
		Kind:   SectionHeader,
		Header: &Header{Name: name, Email: pi.Email, Phone: pi.Phone, Location: pi.Location, Links: links(pi)},
	})
	if summary := strings.TrimSpace(pi.Summary); summary != "" {
		layout.Sections = append(layout.Sections, section(SectionSummary, Section{Summary: summary}))
	}
	if len(r.Experiences) > 0 {
		views := make([]ExperienceView, 0, len(r.Experiences))
		for _, exp := range r.Experiences {
			end := exp.EndDate
			if exp.IsCurrent {
				end = ""
			}
			v := ExperienceView{
				ID:       exp.ID,
				Position: exp.Position,
				Company:  exp.Company,
				Location: exp.Location,
				Dates:    DateRange(exp.StartDate, end),
			}
			v.Description, v.Bullets = describe(exp.Description, settings)
			views = append(views, v)
		}
		layout.Sections = append(layout.Sections, section(SectionExperience, Section{Experiences: views}))
	}
	if len(r.Education) > 0 {
		views := make([]EducationView, 0, len(r.Education))
		for _, edu := range r.Education {
			views = append(views, EducationView{
				ID:          edu.ID,
				Degree:      edu.Degree,
				Field:       edu.Field,
				Institution: edu.Institution,
				Location:    edu.Location,
				Dates:       DateRange(edu.StartDate, edu.EndDate),
				GPA:         edu.GPA,
				Description: edu.Description,
			})
		}
		layout.Sections = append(layout.Sections, section(SectionEducation, Section{Education: views}))
	}
	if len(r.Skills) > 0 {
		layout.Sections = append(layout.Sections, section(SectionSkills, Section{SkillGroups: GroupSkills(r.Skills)}))
	}
	if len(r.Projects) > 0 {
		views := make([]ProjectView, 0, len(r.Projects))
		for _, p := range r.Projects {
			v := ProjectView{
				ID:           p.ID,
				Name:         p.Name,
				Technologies: SplitTechnologies(p.Technologies),
				URL:          p.URL,
				GitHubURL:    p.GitHubURL,
			}
			if strings.TrimSpace(p.StartDate) != "" {
				v.Dates = DateRange(p.StartDate, p.EndDate)
			}
			v.Description, v.Bullets = describe(p.Description, settings)
			views = append(views, v)
		}
		layout.Sections = append(layout.Sections, section(SectionProjects, Section{Projects: views}))
	}
	return layout
}

// DateRange renders "January 2024 - Present" style ranges. An empty end means present.
func DateRange(start, end string) string {
	from := resume.FormatMonth(start)
	to := "Present"
	if strings.TrimSpace(end) != "" {
		to = resume.FormatMonth(end)
	}
	if from == "" {
		return to
	}
	return from + " - " + to
}

// SplitTechnologies splits a comma separated technology list.
func SplitTechnologies(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func section(kind string, s Section) Section {
	s.Kind = kind
	s.Title = sectionTitles[kind]
	return s
}

func describe(text string, settings resume.TemplateSettings) (string, []string) {
	if settings.ConvertToBullets {
		if bullets := ConvertToBulletPoints(text, settings.BulletStyle); len(bullets) > 0 {
			return "", bullets
		}
	}
	return strings.TrimSpace(text), nil
}

func links(pi resume.PersonalInfo) []string {
	var out []string
	for _, l := range []string{pi.Website, pi.LinkedIn, pi.GitHub} {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
