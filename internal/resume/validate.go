package resume

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	urlPattern   = regexp.MustCompile(`^https?://.+\..+`)
	phoneNoise   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")
)

// ValidationErrors maps a field name to a user-facing message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Details returns the errors as a list of field/issue pairs for API responses.
func (v ValidationErrors) Details() []map[string]string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	out := make([]map[string]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, map[string]string{"field": f, "issue": v[f]})
	}
	return out
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Validate checks the personal info form rules.
func (p PersonalInfo) Validate() error {
	errs := ValidationErrors{}
	if !present(p.FirstName) {
		errs["firstName"] = "This field is required"
	}
	if !present(p.LastName) {
		errs["lastName"] = "This field is required"
	}
	switch {
	case !present(p.Email):
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(p.Email):
		errs["email"] = "Please enter a valid email address"
	}
	if present(p.Phone) && !ValidPhone(p.Phone) {
		errs["phone"] = "Please enter a valid phone number"
	}
	for field, value := range map[string]string{"website": p.Website, "linkedin": p.LinkedIn, "github": p.GitHub} {
		if present(value) && !ValidProfileURL(value) {
			errs[field] = "Please enter a valid URL"
		}
	}
	return errs.orNil()
}

// Validate checks required experience fields.
func (e Experience) Validate() error {
	errs := ValidationErrors{}
	requireField(errs, "company", e.Company)
	requireField(errs, "position", e.Position)
	requireField(errs, "startDate", e.StartDate)
	return errs.orNil()
}

// Validate checks required education fields.
func (e Education) Validate() error {
	errs := ValidationErrors{}
	requireField(errs, "institution", e.Institution)
	requireField(errs, "degree", e.Degree)
	requireField(errs, "startDate", e.StartDate)
	return errs.orNil()
}

// Validate checks the skill name and level range.
func (s Skill) Validate() error {
	errs := ValidationErrors{}
	requireField(errs, "name", s.Name)
	if s.Level < 1 || s.Level > 5 {
		errs["level"] = "Level must be between 1 and 5"
	}
	return errs.orNil()
}

// Validate checks the project name and link formats.
func (p Project) Validate() error {
	errs := ValidationErrors{}
	requireField(errs, "name", p.Name)
	if present(p.URL) && !ValidProfileURL(p.URL) {
		errs["url"] = "Please enter a valid URL"
	}
	if present(p.GitHubURL) && !ValidProfileURL(p.GitHubURL) {
		errs["githubUrl"] = "Please enter a valid URL"
	}
	return errs.orNil()
}

// ValidPhone accepts an optional leading plus and up to 16 digits once
// spaces, dashes and parentheses are removed.
func ValidPhone(raw string) bool {
	return phonePattern.MatchString(phoneNoise.Replace(strings.TrimSpace(raw)))
}

// ValidProfileURL accepts http(s) URLs and bare linkedin.com/ or github.com/ paths.
func ValidProfileURL(raw string) bool {
	v := strings.TrimSpace(raw)
	return urlPattern.MatchString(v) || strings.HasPrefix(v, "linkedin.com/") || strings.HasPrefix(v, "github.com/")
}

func requireField(errs ValidationErrors, field, value string) {
	if !present(value) {
		errs[field] = "This field is required"
	}
}
