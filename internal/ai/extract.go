package ai

import (
	"strings"

	"github.com/tidwall/gjson"
)

const generateFallbackRecommendation = "Please review the generated content and make manual adjustments as needed."

// TailorSuggestions is the structured answer of a tailoring request.
type TailorSuggestions struct {
	MissingKeywords           []string `json:"missingKeywords"`
	SummarySuggestions        string   `json:"summarySuggestions"`
	ExperienceRecommendations string   `json:"experienceRecommendations"`
	SkillEmphasis             []string `json:"skillEmphasis"`
	ATSScore                  string   `json:"atsScore,omitempty"`
	ImprovementAreas          []string `json:"improvementAreas,omitempty"`
	IndustryKeywords          []string `json:"industryKeywords,omitempty"`
}

// GeneratedExperience is one role of a generated resume.
type GeneratedExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Duration     string   `json:"duration"`
	BulletPoints []string `json:"bulletPoints"`
}

// GeneratedSkills groups generated skills.
type GeneratedSkills struct {
	Technical      []string `json:"technical"`
	Soft           []string `json:"soft"`
	Certifications []string `json:"certifications"`
}

// GeneratedResume is the structured answer of a full resume generation.
type GeneratedResume struct {
	ProfessionalSummary string                `json:"professionalSummary"`
	WorkExperience      []GeneratedExperience `json:"workExperience"`
	Skills              GeneratedSkills       `json:"skills"`
	Education           string                `json:"education"`
	Projects            string                `json:"projects"`
	ATSScore            string                `json:"atsScore"`
	Keywords            []string              `json:"keywords"`
	Recommendations     string                `json:"recommendations"`
}

// ExtractJSON returns the text between the first '{' and the last '}' when it is valid JSON.
func ExtractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	blob := text[start : end+1]
	if !gjson.Valid(blob) {
		return "", false
	}
	return blob, true
}

// ParseTailorSuggestions reads the model answer, falling back to the raw text as the summary suggestion.
func ParseTailorSuggestions(text string) (TailorSuggestions, bool) {
	blob, ok := ExtractJSON(text)
	if !ok {
		return TailorSuggestions{
			MissingKeywords:    []string{},
			SummarySuggestions: text,
			SkillEmphasis:      []string{},
		}, false
	}
	doc := gjson.Parse(blob)
	return TailorSuggestions{
		MissingKeywords:           stringList(doc.Get("missingKeywords")),
		SummarySuggestions:        doc.Get("summarySuggestions").String(),
		ExperienceRecommendations: doc.Get("experienceRecommendations").String(),
		SkillEmphasis:             stringList(doc.Get("skillEmphasis")),
		ATSScore:                  doc.Get("atsScore").String(),
		ImprovementAreas:          optionalList(doc.Get("improvementAreas")),
		IndustryKeywords:          optionalList(doc.Get("industryKeywords")),
	}, true
}

// ParseGeneratedResume reads the model answer, falling back to the raw text as the summary.
func ParseGeneratedResume(text string) (GeneratedResume, bool) {
	blob, ok := ExtractJSON(text)
	if !ok {
		return GeneratedResume{
			ProfessionalSummary: text,
			WorkExperience:      []GeneratedExperience{},
			Skills:              GeneratedSkills{Technical: []string{}, Soft: []string{}, Certifications: []string{}},
			ATSScore:            "N/A",
			Keywords:            []string{},
			Recommendations:     generateFallbackRecommendation,
		}, false
	}
	doc := gjson.Parse(blob)
	out := GeneratedResume{
		ProfessionalSummary: doc.Get("professionalSummary").String(),
		WorkExperience:      []GeneratedExperience{},
		Skills: GeneratedSkills{
			Technical:      stringList(doc.Get("skills.technical")),
			Soft:           stringList(doc.Get("skills.soft")),
			Certifications: stringList(doc.Get("skills.certifications")),
		},
		Education:       doc.Get("education").String(),
		Projects:        doc.Get("projects").String(),
		ATSScore:        doc.Get("atsScore").String(),
		Keywords:        stringList(doc.Get("keywords")),
		Recommendations: doc.Get("recommendations").String(),
	}
	for _, item := range doc.Get("workExperience").Array() {
		if !item.IsObject() {
			continue
		}
		out.WorkExperience = append(out.WorkExperience, GeneratedExperience{
			Company:      item.Get("company").String(),
			Position:     item.Get("position").String(),
			Duration:     item.Get("duration").String(),
			BulletPoints: stringList(item.Get("bulletPoints")),
		})
	}
	return out, true
}

// stringList coerces an array (or a lone scalar) into strings. Missing values yield an empty list.
func stringList(v gjson.Result) []string {
	out := []string{}
	if !v.Exists() || v.Type == gjson.Null {
		return out
	}
	if !v.IsArray() {
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
		return out
	}
	for _, item := range v.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func optionalList(v gjson.Result) []string {
	if !v.Exists() {
		return nil
	}
	return stringList(v)
}
