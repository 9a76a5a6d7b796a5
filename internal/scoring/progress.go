package scoring

import (
	"math"

	"resume-builder/internal/resume"
)

// progressSections is the number of top-level sections counted for completeness.
const progressSections = 5

// ProgressData reports which sections are complete and the overall percentage.
type ProgressData struct {
	PersonalInfo bool `json:"personalInfo"`
	Experiences  bool `json:"experiences"`
	Education    bool `json:"education"`
	Skills       bool `json:"skills"`
	Projects     bool `json:"projects"`
	Total        int  `json:"total"`
}

// Progress evaluates the five sections. There is no partial credit within a section.
func Progress(r resume.Resume) ProgressData {
	p := ProgressData{
		PersonalInfo: r.Info().HasIdentity(),
		Experiences:  len(r.Experiences) > 0,
		Education:    len(r.Education) > 0,
		Skills:       len(r.Skills) > 0,
		Projects:     len(r.Projects) > 0,
	}
	completed := 0
	for _, done := range []bool{p.PersonalInfo, p.Experiences, p.Education, p.Skills, p.Projects} {
		if done {
			completed++
		}
	}
	p.Total = percent(completed, progressSections)
	return p
}

// CalculateProgress returns the 0-100 completion percentage.
func CalculateProgress(r resume.Resume) int {
	return Progress(r).Total
}

// percent rounds part/whole*100 half-up. whole must be positive.
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
