package scoring

import (
	"time"

	"resume-builder/internal/resume"
)

// Review item statuses.
const (
	StatusComplete   = "complete"
	StatusWarning    = "warning"
	StatusIncomplete = "incomplete"
)

// Review item kinds.
const (
	KindContent      = "content"
	KindFormat       = "format"
	KindATS          = "ats"
	KindOptimization = "optimization"
)

// ReviewItem is the scored result of one category.
type ReviewItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Status      string   `json:"status"`
	Score       int      `json:"score"`
	MaxScore    int      `json:"maxScore"`
	Suggestions []string `json:"suggestions"`
	Category    string   `json:"category"`
}

// ReviewResult is the detailed resume review.
type ReviewResult struct {
	OverallScore int          `json:"overallScore"`
	Verdict      string       `json:"verdict"`
	Items        []ReviewItem `json:"items"`
}

// Engine evaluates resumes against a category table.
type Engine struct {
	Categories   []Category
	RecentMonths int
	ActionVerbs  []string
}

// NewEngine returns an engine with the default tables.
func NewEngine() *Engine {
	return &Engine{
		Categories:   DefaultCategories(),
		RecentMonths: RecentExperienceMonths,
		ActionVerbs:  DefaultActionVerbs(),
	}
}

// Review scores every category and derives the overall score.
func (e *Engine) Review(r resume.Resume, now time.Time) ReviewResult {
	in := Input{
		Resume:       r,
		Info:         r.Info(),
		Now:          now,
		RecentMonths: e.RecentMonths,
	}
	items := make([]ReviewItem, 0, len(e.Categories))
	total, maxTotal := 0, 0
	for _, c := range e.Categories {
		score := c.Score(in)
		items = append(items, ReviewItem{
			ID:          c.ID,
			Title:       c.Title,
			Status:      StatusFor(score),
			Score:       score,
			MaxScore:    c.MaxScore,
			Suggestions: c.Suggest(in),
			Category:    c.Kind,
		})
		total += score
		maxTotal += c.MaxScore
	}
	overall := percent(total, maxTotal)
	return ReviewResult{
		OverallScore: overall,
		Verdict:      verdictFor(overall),
		Items:        items,
	}
}

// KeywordDensity uses the engine's verb list.
func (e *Engine) KeywordDensity(r resume.Resume) float64 {
	return KeywordDensity(r, e.ActionVerbs...)
}

// Review runs the default engine.
func Review(r resume.Resume, now time.Time) ReviewResult {
	return NewEngine().Review(r, now)
}

// StatusFor maps a category score to its status.
func StatusFor(score int) string {
	switch {
	case score >= 80:
		return StatusComplete
	case score >= 60:
		return StatusWarning
	default:
		return StatusIncomplete
	}
}

func verdictFor(overall int) string {
	switch {
	case overall >= 80:
		return "Excellent! Your resume is well-optimized."
	case overall >= 60:
		return "Good start! Consider the suggestions below."
	default:
		return "Needs improvement. Focus on the areas below."
	}
}
