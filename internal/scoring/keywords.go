package scoring

import (
	"regexp"
	"strings"

	"resume-builder/internal/resume"
)

const maxExtractedKeywords = 20

var nonWord = regexp.MustCompile(`[^\w\s]`)

// DefaultActionVerbs returns the verbs counted by KeywordDensity.
func DefaultActionVerbs() []string {
	return []string{"managed", "developed", "implemented", "led", "created", "improved", "increased", "reduced", "optimized", "designed"}
}

// KeywordDensity returns the share of action verbs among all words of the summary
// and experience descriptions, as a percentage. A resume without words yields 0.
// When no verbs are given the defaults are used.
func KeywordDensity(r resume.Resume, verbs ...string) float64 {
	if len(verbs) == 0 {
		verbs = DefaultActionVerbs()
	}
	set := make(map[string]struct{}, len(verbs))
	for _, v := range verbs {
		set[strings.ToLower(v)] = struct{}{}
	}

	words := strings.Fields(strings.ToLower(narrative(r)))
	if len(words) == 0 {
		return 0
	}
	matches := 0
	for _, w := range words {
		if _, ok := set[w]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(words)) * 100
}

// ActionVerbsUsed lists the default verbs that appear at least once, in list order.
func ActionVerbsUsed(r resume.Resume) []string {
	seen := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(narrative(r))) {
		seen[w] = true
	}
	out := []string{}
	for _, v := range DefaultActionVerbs() {
		if seen[v] {
			out = append(out, v)
		}
	}
	return out
}

// ExtractKeywords returns up to 20 unique lowercase words longer than three characters.
func ExtractKeywords(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), "")
	seen := map[string]bool{}
	out := []string{}
	for _, w := range strings.Fields(cleaned) {
		if len(w) <= 3 || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
		if len(out) == maxExtractedKeywords {
			break
		}
	}
	return out
}

func narrative(r resume.Resume) string {
	parts := []string{r.Info().Summary}
	for _, exp := range r.Experiences {
		parts = append(parts, exp.Description)
	}
	return strings.Join(parts, " ")
}
