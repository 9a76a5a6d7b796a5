package scoring

import (
	"strings"
	"time"
	"unicode/utf8"

	"resume-builder/internal/resume"
)

// RecentExperienceMonths is the default window for the "recent experience" rule.
const RecentExperienceMonths = 24

// experienceKeywords are matched case-sensitively as substrings of a description.
var experienceKeywords = []string{"managed", "developed"}

// monthLength approximates a month when measuring recency.
const monthLength = 30 * 24 * time.Hour

// Input is the read-only view every rule evaluates.
type Input struct {
	Resume       resume.Resume
	Info         resume.PersonalInfo
	Now          time.Time
	RecentMonths int
}

// Rule awards Weight points when Applies holds.
type Rule struct {
	Name    string
	Weight  int
	Applies func(Input) bool
}

// Suggestion is advisory text emitted when When holds. It does not affect scores.
type Suggestion struct {
	When func(Input) bool
	Text string
}

// Category groups the rules and suggestions of one review item.
type Category struct {
	ID          string
	Title       string
	Kind        string
	MaxScore    int
	Rules       []Rule
	Suggestions []Suggestion
}

// Score sums the weights of applicable rules, capped at MaxScore.
func (c Category) Score(in Input) int {
	total := 0
	for _, rule := range c.Rules {
		if rule.Applies(in) {
			total += rule.Weight
		}
	}
	if total > c.MaxScore {
		total = c.MaxScore
	}
	if total < 0 {
		total = 0
	}
	return total
}

// Suggest returns the suggestion texts that apply, in table order.
func (c Category) Suggest(in Input) []string {
	out := []string{}
	for _, s := range c.Suggestions {
		if s.When(in) {
			out = append(out, s.Text)
		}
	}
	return out
}

// DefaultCategories returns the six review categories with their weight tables.
func DefaultCategories() []Category {
	return []Category{
		{
			ID: "personal-info", Title: "Personal Information", Kind: KindContent, MaxScore: 100,
			Rules: []Rule{
				{Name: "firstName", Weight: 20, Applies: func(in Input) bool { return has(in.Info.FirstName) }},
				{Name: "lastName", Weight: 20, Applies: func(in Input) bool { return has(in.Info.LastName) }},
				{Name: "email", Weight: 20, Applies: hasEmail},
				{Name: "phone", Weight: 15, Applies: hasPhone},
				{Name: "location", Weight: 15, Applies: func(in Input) bool { return has(in.Info.Location) }},
				{Name: "summary", Weight: 10, Applies: hasSummary},
			},
			Suggestions: personalInfoSuggestions,
		},
		{
			ID: "experience", Title: "Work Experience", Kind: KindContent, MaxScore: 100,
			Rules: []Rule{
				{Name: "recent", Weight: 30, Applies: hasRecentExperience},
				{Name: "multiple", Weight: 20, Applies: func(in Input) bool { return len(in.Resume.Experiences) >= 2 }},
				{Name: "detailed", Weight: 25, Applies: hasDetailedDescription},
				{Name: "actionKeywords", Weight: 25, Applies: hasExperienceKeyword},
			},
			Suggestions: experienceSuggestions,
		},
		{
			ID: "skills", Title: "Skills & Competencies", Kind: KindContent, MaxScore: 100,
			Rules: []Rule{
				{Name: "five", Weight: 30, Applies: func(in Input) bool { return len(in.Resume.Skills) >= 5 }},
				{Name: "ten", Weight: 20, Applies: func(in Input) bool { return len(in.Resume.Skills) >= 10 }},
				{Name: "technical", Weight: 25, Applies: hasSkillCategory(resume.CategoryTechnical)},
				{Name: "soft", Weight: 25, Applies: hasSkillCategory(resume.CategorySoft)},
			},
			Suggestions: skillsSuggestions,
		},
		{
			ID: "education", Title: "Education", Kind: KindContent, MaxScore: 100,
			Rules: []Rule{
				{Name: "present", Weight: 50, Applies: hasEducation},
				{Name: "degree", Weight: 30, Applies: func(in Input) bool {
					return anyEducation(in, func(e resume.Education) bool { return has(e.Degree) })
				}},
				{Name: "institution", Weight: 20, Applies: func(in Input) bool {
					return anyEducation(in, func(e resume.Education) bool { return has(e.Institution) })
				}},
			},
			Suggestions: educationSuggestions,
		},
		{
			ID: "ats-optimization", Title: "ATS Optimization", Kind: KindATS, MaxScore: 100,
			Rules: []Rule{
				{Name: "email", Weight: 15, Applies: hasEmail},
				{Name: "phone", Weight: 15, Applies: hasPhone},
				{Name: "experience", Weight: 20, Applies: hasExperience},
				{Name: "skills", Weight: 15, Applies: hasSkills},
				{Name: "summary", Weight: 15, Applies: hasSummary},
				{Name: "education", Weight: 20, Applies: hasEducation},
			},
			Suggestions: atsSuggestions,
		},
		{
			ID: "format-design", Title: "Format & Design", Kind: KindFormat, MaxScore: 100,
			Rules: []Rule{
				{Name: "fullName", Weight: 30, Applies: hasFullName},
				{Name: "experience", Weight: 25, Applies: hasExperience},
				{Name: "skills", Weight: 25, Applies: hasSkills},
				{Name: "summary", Weight: 20, Applies: hasSummary},
			},
			Suggestions: formatSuggestions,
		},
	}
}

func has(s string) bool {
	return strings.TrimSpace(s) != ""
}

func hasEmail(in Input) bool   { return has(in.Info.Email) }
func hasPhone(in Input) bool   { return has(in.Info.Phone) }
func hasSummary(in Input) bool { return has(in.Info.Summary) }

func hasFullName(in Input) bool {
	return has(in.Info.FirstName) && has(in.Info.LastName)
}

func hasExperience(in Input) bool { return len(in.Resume.Experiences) > 0 }
func hasSkills(in Input) bool     { return len(in.Resume.Skills) > 0 }
func hasEducation(in Input) bool  { return len(in.Resume.Education) > 0 }

func hasRecentExperience(in Input) bool {
	window := in.RecentMonths
	if window <= 0 {
		window = RecentExperienceMonths
	}
	limit := time.Duration(window) * monthLength
	for _, exp := range in.Resume.Experiences {
		end := in.Now
		if !exp.IsCurrent && has(exp.EndDate) {
			parsed, ok := resume.ParseDate(exp.EndDate)
			if !ok {
				continue
			}
			end = parsed
		}
		if in.Now.Sub(end) <= limit {
			return true
		}
	}
	return false
}

func hasDetailedDescription(in Input) bool {
	for _, exp := range in.Resume.Experiences {
		if utf8.RuneCountInString(exp.Description) > 50 {
			return true
		}
	}
	return false
}

func hasExperienceKeyword(in Input) bool {
	for _, exp := range in.Resume.Experiences {
		for _, kw := range experienceKeywords {
			if strings.Contains(exp.Description, kw) {
				return true
			}
		}
	}
	return false
}

func hasSkillCategory(category string) func(Input) bool {
	return func(in Input) bool {
		for _, s := range in.Resume.Skills {
			if s.Category == category {
				return true
			}
		}
		return false
	}
}

func anyEducation(in Input, pred func(resume.Education) bool) bool {
	for _, e := range in.Resume.Education {
		if pred(e) {
			return true
		}
	}
	return false
}
