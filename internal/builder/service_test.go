package builder

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-builder/internal/resume"
)

const sid = "session-test-1"

func newService() *Service {
	return NewService(NewMemoryStore(time.Hour))
}

func TestAddAssignsIDAndOrder(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	for i, name := range []string{"Go", "SQL", "Docker"} {
		added, err := Add(ctx, svc, sid, SkillList, resume.Skill{Name: name, Level: 3, Category: resume.CategoryTechnical})
		if err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
		if added.ID == "" {
			t.Fatalf("expected generated id")
		}
		if added.Order != i {
			t.Fatalf("expected order %d, got %d", i, added.Order)
		}
	}
}

func TestAddRejectsInvalidEntry(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := Add(ctx, svc, sid, ExperienceList, resume.Experience{Company: "Acme"})
	var verrs resume.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if verrs["position"] == "" || verrs["startDate"] == "" {
		t.Fatalf("expected position and startDate errors, got %v", verrs)
	}
	r, _ := svc.Resume(ctx, sid)
	if len(r.Experiences) != 0 {
		t.Fatalf("expected no experience stored after a failed add")
	}
}

func TestDeleteDoesNotRenumber(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		p, err := Add(ctx, svc, sid, ProjectList, resume.Project{Name: name})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		ids = append(ids, p.ID)
	}
	if err := Delete(ctx, svc, sid, ProjectList, ids[1]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	r, _ := svc.Resume(ctx, sid)
	if len(r.Projects) != 2 || r.Projects[0].Order != 0 || r.Projects[1].Order != 2 {
		t.Fatalf("expected orders 0 and 2, got %+v", r.Projects)
	}

	next, err := Add(ctx, svc, sid, ProjectList, resume.Project{Name: "d"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if next.Order != 2 {
		t.Fatalf("expected order to be current length 2, got %d", next.Order)
	}

	if err := Delete(ctx, svc, sid, ProjectList, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateKeepsIDAndOrder(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	first, _ := Add(ctx, svc, sid, EducationList, resume.Education{Institution: "MIT", Degree: "BSc", StartDate: "2015-09"})
	second, _ := Add(ctx, svc, sid, EducationList, resume.Education{Institution: "ETH", Degree: "MSc", StartDate: "2019-09"})

	updated, err := Update(ctx, svc, sid, EducationList, second.ID, resume.Education{
		ID: "ignored", Institution: "ETH Zurich", Degree: "MSc", StartDate: "2019-09", Order: 99,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != second.ID || updated.Order != 1 {
		t.Fatalf("expected id and order preserved, got %+v", updated)
	}
	r, _ := svc.Resume(ctx, sid)
	if r.Education[0].ID != first.ID || r.Education[1].Institution != "ETH Zurich" {
		t.Fatalf("unexpected education %+v", r.Education)
	}

	_, err = Update(ctx, svc, sid, EducationList, "missing", resume.Education{Institution: "X", Degree: "Y", StartDate: "2020-01"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMove(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	for _, name := range []string{"a", "b", "c", "d"} {
		if _, err := Add(ctx, svc, sid, SkillList, resume.Skill{Name: name, Level: 1}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	tests := []struct {
		from, to int
		want     string
	}{
		{from: 0, to: 2, want: "bcad"},
		{from: 3, to: 0, want: "dbca"},
		{from: 1, to: 1, want: "dbca"},
	}
	for _, tt := range tests {
		items, err := Move(ctx, svc, sid, SkillList, tt.from, tt.to)
		if err != nil {
			t.Fatalf("move %d->%d: %v", tt.from, tt.to, err)
		}
		got := ""
		for _, s := range items {
			got += s.Name
		}
		if got != tt.want {
			t.Fatalf("move %d->%d: expected %s, got %s", tt.from, tt.to, tt.want, got)
		}
	}

	if _, err := Move(ctx, svc, sid, SkillList, 0, 4); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
}

func TestWizardSteps(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	sess, _ := svc.PrevStep(ctx, sid)
	if sess.CurrentStep != FirstStep {
		t.Fatalf("expected prev to stop at first step, got %d", sess.CurrentStep)
	}
	for i := 0; i < 10; i++ {
		sess, _ = svc.NextStep(ctx, sid)
	}
	if sess.CurrentStep != LastStep {
		t.Fatalf("expected next to stop at last step, got %d", sess.CurrentStep)
	}
	if w := WizardOf(sess, 0); w.Title != "Preview" || w.CanNext || !w.CanPrev {
		t.Fatalf("unexpected wizard %+v", w)
	}
	if _, err := svc.SetStep(ctx, sid, 7); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
	if sess, _ = svc.SetStep(ctx, sid, 3); sess.CurrentStep != 3 {
		t.Fatalf("expected step 3, got %d", sess.CurrentStep)
	}
}

func TestTemplateSelection(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	if _, err := svc.SetTemplate(ctx, sid, "glitter"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	r, err := svc.SetTemplateSettings(ctx, sid, resume.TemplateSettings{Template: "creative", ColorScheme: "teal"})
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if r.Template != "creative" || r.TemplateSettings.FontSize != "base" || r.TemplateSettings.BulletStyle != resume.BulletDash {
		t.Fatalf("expected defaults filled and template synced, got %+v", r.TemplateSettings)
	}
	r, _ = svc.SetTemplate(ctx, sid, "modern")
	if r.TemplateSettings.Template != "modern" {
		t.Fatalf("expected settings template to follow, got %s", r.TemplateSettings.Template)
	}
}

func TestSetResumeKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	before, _ := svc.Resume(ctx, sid)

	in := resume.Resume{Title: "", Skills: []resume.Skill{{Name: "Go", Level: 4}}}
	after, err := svc.SetResume(ctx, sid, in)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if after.ID != before.ID || after.Title != resume.DefaultTitle || after.Template != resume.DefaultTemplate {
		t.Fatalf("unexpected resume %+v", after)
	}
	if after.Skills[0].ID == "" || after.Experiences == nil || after.PersonalInfo == nil {
		t.Fatalf("expected ids assigned and collections normalized, got %+v", after)
	}
}

func TestAIResultAppliesOnlyLatestRequest(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	first, err := svc.BeginAIRequest(ctx, sid, FieldSummary)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	second, _ := svc.BeginAIRequest(ctx, sid, FieldSummary)

	setSummary := func(text string) func(*resume.Resume) error {
		return func(r *resume.Resume) error {
			r.PersonalInfo.Summary = text
			return nil
		}
	}

	if _, err := svc.ApplyAIResult(ctx, sid, FieldSummary, first, setSummary("old")); !errors.Is(err, ErrStaleResult) {
		t.Fatalf("expected stale result, got %v", err)
	}
	r, err := svc.ApplyAIResult(ctx, sid, FieldSummary, second, setSummary("new"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if r.PersonalInfo.Summary != "new" {
		t.Fatalf("expected new summary, got %q", r.PersonalInfo.Summary)
	}
	if _, err := svc.ApplyAIResult(ctx, sid, FieldSummary, second, setSummary("again")); !errors.Is(err, ErrStaleResult) {
		t.Fatalf("expected applied request to be consumed, got %v", err)
	}

	other, _ := svc.BeginAIRequest(ctx, sid, ExperienceField("e1"))
	svc.CancelAIRequest(ctx, sid, ExperienceField("e1"), other)
	sess, _ := svc.Session(ctx, sid)
	if _, ok := sess.Pending[ExperienceField("e1")]; ok {
		t.Fatalf("expected cancelled request to be cleared")
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	if _, err := store.GetOrCreate(ctx, "old-session"); err != nil {
		t.Fatalf("create: %v", err)
	}
	store.now = func() time.Time { return base.Add(50 * time.Second) }
	if _, err := store.GetOrCreate(ctx, "new-session"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if n := store.Sweep(base.Add(90 * time.Second)); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if _, err := store.Get(ctx, "old-session"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected old session evicted, got %v", err)
	}
	if _, err := store.Get(ctx, "new-session"); err != nil {
		t.Fatalf("expected new session kept, got %v", err)
	}
}

func TestMemoryStoreUpdateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	boom := errors.New("boom")

	_, err := store.Update(ctx, "s", func(sess *Session) error {
		sess.Resume.Title = "changed"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	sess, _ := store.Get(ctx, "s")
	if sess.Resume.Title != resume.DefaultTitle {
		t.Fatalf("expected rollback, got %q", sess.Resume.Title)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := store.Get(cancelled, "s"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
