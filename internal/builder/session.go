package builder

import (
	"time"

	"resume-builder/internal/resume"
)

// Step is one page of the builder wizard.
type Step struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// Steps lists the wizard pages in order.
var Steps = []Step{
	{Number: 1, Title: "Personal Info"},
	{Number: 2, Title: "Experience"},
	{Number: 3, Title: "Education"},
	{Number: 4, Title: "Skills"},
	{Number: 5, Title: "Projects"},
	{Number: 6, Title: "Preview"},
}

const (
	FirstStep = 1
	LastStep  = 6
)

// AI write-back fields.
const (
	FieldSummary = "summary"
)

// ExperienceField is the write-back field of one experience description.
func ExperienceField(id string) string {
	return "experience:" + id
}

// Session is the builder state of one visitor.
type Session struct {
	ID          string            `json:"id"`
	Resume      resume.Resume     `json:"resume"`
	CurrentStep int               `json:"currentStep"`
	Pending     map[string]string `json:"-"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// NewSession returns a session on the first wizard step with an empty resume.
func NewSession(id string, now time.Time) Session {
	r := resume.New()
	r.ID = resume.NewID()
	r.CreatedAt = &now
	r.UpdatedAt = &now
	return Session{
		ID:          id,
		Resume:      r,
		CurrentStep: FirstStep,
		Pending:     map[string]string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Clone deep copies the session.
func (s Session) Clone() Session {
	out := s
	out.Resume = s.Resume.Clone()
	out.Pending = make(map[string]string, len(s.Pending))
	for k, v := range s.Pending {
		out.Pending[k] = v
	}
	return out
}

// Wizard is the navigation view of a session.
type Wizard struct {
	CurrentStep int    `json:"currentStep"`
	TotalSteps  int    `json:"totalSteps"`
	Title       string `json:"title"`
	Steps       []Step `json:"steps"`
	CanPrev     bool   `json:"canPrev"`
	CanNext     bool   `json:"canNext"`
	Progress    int    `json:"progress"`
}

// WizardOf builds the navigation view. progress is the completeness percentage.
func WizardOf(s Session, progress int) Wizard {
	step := s.CurrentStep
	if step < FirstStep || step > LastStep {
		step = FirstStep
	}
	return Wizard{
		CurrentStep: step,
		TotalSteps:  len(Steps),
		Title:       Steps[step-1].Title,
		Steps:       Steps,
		CanPrev:     step > FirstStep,
		CanNext:     step < LastStep,
		Progress:    progress,
	}
}
