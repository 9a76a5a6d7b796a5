package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"resume-builder/internal/render"
	"resume-builder/internal/resume"
)

// Service applies builder operations to stored sessions.
type Service struct {
	Store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{Store: store}
}

// Session returns the session, creating it when absent.
func (s *Service) Session(ctx context.Context, id string) (Session, error) {
	return s.Store.GetOrCreate(ctx, id)
}

// Resume returns the session resume.
func (s *Service) Resume(ctx context.Context, id string) (resume.Resume, error) {
	sess, err := s.Store.GetOrCreate(ctx, id)
	if err != nil {
		return resume.Resume{}, err
	}
	return sess.Resume, nil
}

// Reset drops the session.
func (s *Service) Reset(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}

// SetResume replaces the whole resume. The stored ID and creation time are kept.
// Entries are not validated here; form-level validation belongs to the per-entry operations.
func (s *Service) SetResume(ctx context.Context, id string, r resume.Resume) (resume.Resume, error) {
	if t := strings.TrimSpace(r.Template); t != "" && !render.KnownTemplate(t) {
		return resume.Resume{}, fmt.Errorf("%w: unknown template %q", ErrInvalidInput, t)
	}
	sess, err := s.Store.Update(ctx, id, func(sess *Session) error {
		next := r.Clone()
		next.Normalize()
		next.ID = sess.Resume.ID
		next.CreatedAt = sess.Resume.CreatedAt
		if strings.TrimSpace(next.Title) == "" {
			next.Title = resume.DefaultTitle
		}
		if next.PersonalInfo == nil {
			next.PersonalInfo = &resume.PersonalInfo{}
		}
		assignIDs(&next)
		sess.Resume = next
		return nil
	})
	return sess.Resume, err
}

// UpdatePersonalInfo replaces the personal info block.
func (s *Service) UpdatePersonalInfo(ctx context.Context, id string, info resume.PersonalInfo) (resume.Resume, error) {
	if err := info.Validate(); err != nil {
		return resume.Resume{}, err
	}
	sess, err := s.Store.Update(ctx, id, func(sess *Session) error {
		if sess.Resume.PersonalInfo != nil && info.ID == "" {
			info.ID = sess.Resume.PersonalInfo.ID
		}
		if info.ID == "" {
			info.ID = resume.NewID()
		}
		sess.Resume.PersonalInfo = &info
		return nil
	})
	return sess.Resume, err
}

// SetTemplate selects the template tag.
func (s *Service) SetTemplate(ctx context.Context, id, template string) (resume.Resume, error) {
	template = strings.TrimSpace(template)
	if !render.KnownTemplate(template) {
		return resume.Resume{}, fmt.Errorf("%w: unknown template %q", ErrInvalidInput, template)
	}
	sess, err := s.Store.Update(ctx, id, func(sess *Session) error {
		sess.Resume.Template = template
		if sess.Resume.TemplateSettings != nil {
			sess.Resume.TemplateSettings.Template = template
		}
		return nil
	})
	return sess.Resume, err
}

// SetTemplateSettings stores the preview settings. Empty values take the defaults.
func (s *Service) SetTemplateSettings(ctx context.Context, id string, settings resume.TemplateSettings) (resume.Resume, error) {
	if settings.Template != "" && !render.KnownTemplate(settings.Template) {
		return resume.Resume{}, fmt.Errorf("%w: unknown template %q", ErrInvalidInput, settings.Template)
	}
	defaults := resume.DefaultTemplateSettings()
	if settings.ColorScheme == "" {
		settings.ColorScheme = defaults.ColorScheme
	}
	if settings.FontSize == "" {
		settings.FontSize = defaults.FontSize
	}
	if settings.FontFamily == "" {
		settings.FontFamily = defaults.FontFamily
	}
	if settings.Layout == "" {
		settings.Layout = defaults.Layout
	}
	if settings.BulletStyle == "" {
		settings.BulletStyle = defaults.BulletStyle
	}
	sess, err := s.Store.Update(ctx, id, func(sess *Session) error {
		if settings.Template == "" {
			settings.Template = sess.Resume.Template
		} else {
			sess.Resume.Template = settings.Template
		}
		sess.Resume.TemplateSettings = &settings
		return nil
	})
	return sess.Resume, err
}

// SetStep jumps to a wizard step.
func (s *Service) SetStep(ctx context.Context, id string, step int) (Session, error) {
	if step < FirstStep || step > LastStep {
		return Session{}, ErrInvalidStep
	}
	return s.Store.Update(ctx, id, func(sess *Session) error {
		sess.CurrentStep = step
		return nil
	})
}

// NextStep advances the wizard, stopping at the last step.
func (s *Service) NextStep(ctx context.Context, id string) (Session, error) {
	return s.Store.Update(ctx, id, func(sess *Session) error {
		if sess.CurrentStep < LastStep {
			sess.CurrentStep++
		}
		return nil
	})
}

// PrevStep goes back one step, stopping at the first step.
func (s *Service) PrevStep(ctx context.Context, id string) (Session, error) {
	return s.Store.Update(ctx, id, func(sess *Session) error {
		if sess.CurrentStep > FirstStep {
			sess.CurrentStep--
		}
		return nil
	})
}

// Add appends an entry to a collection.
func Add[T any](ctx context.Context, s *Service, id string, l List[T], item T) (T, error) {
	var added T
	_, err := s.Store.Update(ctx, id, func(sess *Session) error {
		var err error
		added, err = l.add(&sess.Resume, item)
		return err
	})
	return added, err
}

// Update replaces an entry of a collection.
func Update[T any](ctx context.Context, s *Service, id string, l List[T], entryID string, item T) (T, error) {
	var updated T
	_, err := s.Store.Update(ctx, id, func(sess *Session) error {
		var err error
		updated, err = l.update(&sess.Resume, entryID, item)
		return err
	})
	return updated, err
}

// Delete removes an entry from a collection.
func Delete[T any](ctx context.Context, s *Service, id string, l List[T], entryID string) error {
	_, err := s.Store.Update(ctx, id, func(sess *Session) error {
		return l.remove(&sess.Resume, entryID)
	})
	return err
}

// Move reorders a collection by moving the entry at from to index to.
func Move[T any](ctx context.Context, s *Service, id string, l List[T], from, to int) ([]T, error) {
	var items []T
	_, err := s.Store.Update(ctx, id, func(sess *Session) error {
		if err := l.move(&sess.Resume, from, to); err != nil {
			return err
		}
		items = append(items, *l.items(&sess.Resume)...)
		return nil
	})
	return items, err
}

// Find returns one collection entry.
func Find[T any](ctx context.Context, s *Service, id string, l List[T], entryID string) (T, error) {
	r, err := s.Resume(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	item, ok := l.find(r, entryID)
	if !ok {
		return item, ErrNotFound
	}
	return item, nil
}

// BeginAIRequest records a new request for field and returns its identifier.
// Results of earlier requests for the same field become stale.
func (s *Service) BeginAIRequest(ctx context.Context, id, field string) (string, error) {
	requestID := uuid.NewString()
	_, err := s.Store.Update(ctx, id, func(sess *Session) error {
		if sess.Pending == nil {
			sess.Pending = map[string]string{}
		}
		sess.Pending[field] = requestID
		return nil
	})
	if err != nil {
		return "", err
	}
	return requestID, nil
}

// ApplyAIResult runs mutate only when requestID is still the latest request for field.
func (s *Service) ApplyAIResult(ctx context.Context, id, field, requestID string, mutate func(*resume.Resume) error) (resume.Resume, error) {
	sess, err := s.Store.Update(ctx, id, func(sess *Session) error {
		if sess.Pending[field] != requestID {
			return ErrStaleResult
		}
		if err := mutate(&sess.Resume); err != nil {
			return err
		}
		delete(sess.Pending, field)
		return nil
	})
	return sess.Resume, err
}

// CancelAIRequest clears a pending request that failed. Newer requests are left alone.
func (s *Service) CancelAIRequest(ctx context.Context, id, field, requestID string) {
	_, _ = s.Store.Update(ctx, id, func(sess *Session) error {
		if sess.Pending[field] == requestID {
			delete(sess.Pending, field)
		}
		return nil
	})
}

func assignIDs(r *resume.Resume) {
	if r.PersonalInfo != nil && r.PersonalInfo.ID == "" {
		r.PersonalInfo.ID = resume.NewID()
	}
	for i := range r.Experiences {
		if r.Experiences[i].ID == "" {
			r.Experiences[i].ID = resume.NewID()
		}
	}
	for i := range r.Education {
		if r.Education[i].ID == "" {
			r.Education[i].ID = resume.NewID()
		}
	}
	for i := range r.Skills {
		if r.Skills[i].ID == "" {
			r.Skills[i].ID = resume.NewID()
		}
	}
	for i := range r.Projects {
		if r.Projects[i].ID == "" {
			r.Projects[i].ID = resume.NewID()
		}
	}
}

// PrefillContact copies identity details into empty personal info fields. Values already entered are kept.
func (s *Service) PrefillContact(ctx context.Context, id, firstName, lastName, email string) (resume.Resume, error) {
	sess, err := s.Store.Update(ctx, id, func(sess *Session) error {
		pi := sess.Resume.PersonalInfo
		if pi == nil {
			pi = &resume.PersonalInfo{ID: resume.NewID()}
			sess.Resume.PersonalInfo = pi
		}
		if strings.TrimSpace(pi.FirstName) == "" {
			pi.FirstName = strings.TrimSpace(firstName)
		}
		if strings.TrimSpace(pi.LastName) == "" {
			pi.LastName = strings.TrimSpace(lastName)
		}
		if strings.TrimSpace(pi.Email) == "" {
			pi.Email = strings.TrimSpace(email)
		}
		return nil
	})
	return sess.Resume, err
}
