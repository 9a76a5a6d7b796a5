package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"resume-builder/internal/builder"
	"resume-builder/internal/resume"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

// StatusReport describes model service reachability.
type StatusReport struct {
	Status   string `json:"status"`
	Provider string `json:"provider,omitempty"`
}

const (
	statusAvailable   = "available"
	statusUnavailable = "unavailable"
)

// Service builds prompts, calls the generator and interprets its answers.
type Service struct {
	Gen     Generator
	Builder *builder.Service
	Model   string
	Timeout time.Duration
}

// NewService constructs a Service. An empty model uses the generator default.
func NewService(gen Generator, b *builder.Service, model string, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{Gen: gen, Builder: b, Model: model, Timeout: timeout}
}

func (s *Service) generate(ctx context.Context, op, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	start := time.Now()
	metrics.IncAIRequest()
	out, err := s.Gen.Generate(ctx, prompt, s.Model)
	metrics.ObserveAIDurationMs(metrics.SinceMillis(start))
	if err != nil {
		metrics.IncAIFailure()
		telemetry.Warn("ai.generate_failed", map[string]any{
			"op":       op,
			"provider": s.Gen.Name(),
			"error":    err,
		})
		return "", err
	}
	return out, nil
}

// GenerateSummary writes a professional summary from contact details and work history.
func (s *Service) GenerateSummary(ctx context.Context, info resume.PersonalInfo, experiences []resume.Experience) (string, error) {
	out, err := s.generate(ctx, "summary", summaryPrompt(info, experiences))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ImproveBullet rewrites one bullet point. hint describes the role it belongs to.
func (s *Service) ImproveBullet(ctx context.Context, bullet, hint string) (string, error) {
	out, err := s.generate(ctx, "improve_bullet", improveBulletPrompt(bullet, hint))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// TailorResume compares a resume with a job description.
func (s *Service) TailorResume(ctx context.Context, r resume.Resume, jobDescription string) (TailorSuggestions, error) {
	out, err := s.generate(ctx, "tailor", tailorPrompt(r, CleanJobDescription(jobDescription)))
	if err != nil {
		return TailorSuggestions{}, err
	}
	suggestions, structured := ParseTailorSuggestions(out)
	if !structured {
		telemetry.Warn("ai.unstructured_answer", map[string]any{"op": "tailor"})
	}
	return suggestions, nil
}

// GenerateATSResume drafts a full resume from free-form user data.
func (s *Service) GenerateATSResume(ctx context.Context, userData json.RawMessage, jobDescription string) (GeneratedResume, error) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, userData, "", "  "); err != nil {
		return GeneratedResume{}, fmt.Errorf("%w: user data is not valid JSON", builder.ErrInvalidInput)
	}
	out, err := s.generate(ctx, "generate_resume", generateResumePrompt(pretty.String(), CleanJobDescription(jobDescription)))
	if err != nil {
		return GeneratedResume{}, err
	}
	generated, structured := ParseGeneratedResume(out)
	if !structured {
		telemetry.Warn("ai.unstructured_answer", map[string]any{"op": "generate_resume"})
	}
	return generated, nil
}

// Status probes the model service.
func (s *Service) Status(ctx context.Context) StatusReport {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Gen.Ping(ctx); err != nil {
		return StatusReport{Status: statusUnavailable, Provider: s.Gen.Name()}
	}
	return StatusReport{Status: statusAvailable, Provider: s.Gen.Name()}
}

// SummarizeSession generates a summary for the session resume and stores it, unless a newer
// summary request was issued in the meantime.
func (s *Service) SummarizeSession(ctx context.Context, sessionID string) (Result, error) {
	r, err := s.Builder.Resume(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}
	var info resume.PersonalInfo
	if r.PersonalInfo != nil {
		info = *r.PersonalInfo
	}
	field := builder.FieldSummary
	requestID, err := s.Builder.BeginAIRequest(ctx, sessionID, field)
	if err != nil {
		return Result{}, err
	}
	summary, err := s.GenerateSummary(ctx, info, r.Experiences)
	if err != nil {
		s.Builder.CancelAIRequest(ctx, sessionID, field, requestID)
		return Failed(requestID, field, err), err
	}
	return s.apply(ctx, sessionID, field, requestID, summary, func(r *resume.Resume) error {
		if r.PersonalInfo == nil {
			r.PersonalInfo = &resume.PersonalInfo{ID: resume.NewID()}
		}
		r.PersonalInfo.Summary = summary
		return nil
	})
}

// ImproveExperience rewrites the description of one experience entry and stores it, unless a
// newer request for the same entry was issued in the meantime.
func (s *Service) ImproveExperience(ctx context.Context, sessionID, experienceID, hint string) (Result, error) {
	exp, err := builder.Find(ctx, s.Builder, sessionID, builder.ExperienceList, experienceID)
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(exp.Description) == "" {
		return Result{}, fmt.Errorf("%w: experience has no description to improve", builder.ErrInvalidInput)
	}
	if strings.TrimSpace(hint) == "" {
		hint = exp.Position + " at " + exp.Company
	}
	field := builder.ExperienceField(experienceID)
	requestID, err := s.Builder.BeginAIRequest(ctx, sessionID, field)
	if err != nil {
		return Result{}, err
	}
	improved, err := s.ImproveBullet(ctx, exp.Description, hint)
	if err != nil {
		s.Builder.CancelAIRequest(ctx, sessionID, field, requestID)
		return Failed(requestID, field, err), err
	}
	return s.apply(ctx, sessionID, field, requestID, improved, func(r *resume.Resume) error {
		for i := range r.Experiences {
			if r.Experiences[i].ID == experienceID {
				r.Experiences[i].Description = improved
				return nil
			}
		}
		return builder.ErrNotFound
	})
}

func (s *Service) apply(ctx context.Context, sessionID, field, requestID string, value any, mutate func(*resume.Resume) error) (Result, error) {
	_, err := s.Builder.ApplyAIResult(ctx, sessionID, field, requestID, mutate)
	switch {
	case errors.Is(err, builder.ErrStaleResult):
		metrics.IncAIStale()
		telemetry.Info("ai.result_superseded", map[string]any{
			"session_id":    sessionID,
			"field":         field,
			"ai_request_id": requestID,
		})
		return Succeeded(requestID, field, value, false), nil
	case err != nil:
		s.Builder.CancelAIRequest(ctx, sessionID, field, requestID)
		return Failed(requestID, field, err), err
	}
	return Succeeded(requestID, field, value, true), nil
}

// Pending lists the in-flight requests of a session, ordered by field.
func (s *Service) Pending(ctx context.Context, sessionID string) ([]Result, error) {
	sess, err := s.Builder.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(sess.Pending))
	for field, requestID := range sess.Pending {
		out = append(out, Loading(requestID, field))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out, nil
}
