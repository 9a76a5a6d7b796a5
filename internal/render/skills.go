package render

import (
	"strings"

	"resume-builder/internal/resume"
)

// SkillGroup is the skills of one category in entry order.
type SkillGroup struct {
	Category string         `json:"category"`
	Label    string         `json:"label"`
	Skills   []resume.Skill `json:"skills"`
}

var categoryLabels = map[string]string{
	resume.CategoryTechnical:     "Technical Skills",
	resume.CategorySoft:          "Soft Skills",
	resume.CategoryLanguage:      "Languages",
	resume.CategoryCertification: "Certifications",
}

// CategoryLabel returns the heading shown for a skill category.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	if category == "" {
		return "Other"
	}
	return strings.ToUpper(category[:1]) + category[1:]
}

// GroupSkills groups skills by category, ordered by the first appearance of each category.
func GroupSkills(skills []resume.Skill) []SkillGroup {
	index := map[string]int{}
	var groups []SkillGroup
	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category, Label: CategoryLabel(s.Category)})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}

// SkillsByCategory is the map view of GroupSkills. Categories with no skills are absent.
func SkillsByCategory(skills []resume.Skill) map[string][]resume.Skill {
	out := make(map[string][]resume.Skill)
	for _, s := range skills {
		out[s.Category] = append(out[s.Category], s)
	}
	return out
}

// LevelDots renders a 1-5 level as filled and empty dots.
func LevelDots(level int) string {
	if level < 0 {
		level = 0
	}
	if level > 5 {
		level = 5
	}
	return strings.Repeat("●", level) + strings.Repeat("○", 5-level)
}
