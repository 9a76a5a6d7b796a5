package builder

import "resume-builder/internal/resume"

// List describes one ordered collection of the resume.
type List[T any] struct {
	Name     string
	items    func(*resume.Resume) *[]T
	id       func(*T) *string
	order    func(*T) *int
	validate func(T) error
}

var (
	ExperienceList = List[resume.Experience]{
		Name:     "experiences",
		items:    func(r *resume.Resume) *[]resume.Experience { return &r.Experiences },
		id:       func(e *resume.Experience) *string { return &e.ID },
		order:    func(e *resume.Experience) *int { return &e.Order },
		validate: resume.Experience.Validate,
	}
	EducationList = List[resume.Education]{
		Name:     "education",
		items:    func(r *resume.Resume) *[]resume.Education { return &r.Education },
		id:       func(e *resume.Education) *string { return &e.ID },
		order:    func(e *resume.Education) *int { return &e.Order },
		validate: resume.Education.Validate,
	}
	SkillList = List[resume.Skill]{
		Name:     "skills",
		items:    func(r *resume.Resume) *[]resume.Skill { return &r.Skills },
		id:       func(s *resume.Skill) *string { return &s.ID },
		order:    func(s *resume.Skill) *int { return &s.Order },
		validate: resume.Skill.Validate,
	}
	ProjectList = List[resume.Project]{
		Name:     "projects",
		items:    func(r *resume.Resume) *[]resume.Project { return &r.Projects },
		id:       func(p *resume.Project) *string { return &p.ID },
		order:    func(p *resume.Project) *int { return &p.Order },
		validate: resume.Project.Validate,
	}
)

// add appends item with order set to the current length. A missing or duplicate ID is replaced.
func (l List[T]) add(r *resume.Resume, item T) (T, error) {
	if err := l.validate(item); err != nil {
		return item, err
	}
	items := l.items(r)
	id := l.id(&item)
	if *id == "" || l.index(*items, *id) >= 0 {
		*id = resume.NewID()
	}
	*l.order(&item) = len(*items)
	*items = append(*items, item)
	return item, nil
}

// update replaces the entry with the given ID, keeping its ID and order.
func (l List[T]) update(r *resume.Resume, id string, item T) (T, error) {
	if err := l.validate(item); err != nil {
		return item, err
	}
	items := l.items(r)
	i := l.index(*items, id)
	if i < 0 {
		return item, ErrNotFound
	}
	*l.id(&item) = id
	*l.order(&item) = *l.order(&(*items)[i])
	(*items)[i] = item
	return item, nil
}

// remove filters out the entry with the given ID. Remaining orders are left as they are.
func (l List[T]) remove(r *resume.Resume, id string) error {
	items := l.items(r)
	i := l.index(*items, id)
	if i < 0 {
		return ErrNotFound
	}
	out := make([]T, 0, len(*items)-1)
	out = append(out, (*items)[:i]...)
	out = append(out, (*items)[i+1:]...)
	*items = out
	return nil
}

// move splices the entry at from into position to.
func (l List[T]) move(r *resume.Resume, from, to int) error {
	items := l.items(r)
	n := len(*items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrInvalidIndex
	}
	if from == to {
		return nil
	}
	out := make([]T, 0, n)
	out = append(out, (*items)[:from]...)
	out = append(out, (*items)[from+1:]...)
	item := (*items)[from]
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	*items = out
	return nil
}

func (l List[T]) find(r resume.Resume, id string) (T, bool) {
	items := l.items(&r)
	i := l.index(*items, id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return (*items)[i], true
}

func (l List[T]) index(items []T, id string) int {
	for i := range items {
		if *l.id(&items[i]) == id {
			return i
		}
	}
	return -1
}
