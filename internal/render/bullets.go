package render

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"resume-builder/internal/resume"
)

const (
	minFragmentLength = 15
	bisectWordCount   = 10
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	clauseSplit   = regexp.MustCompile(`[,;]+`)
	leadingMarker = regexp.MustCompile(`^[-—•→\d+.\s]+`)
)

// BulletGlyph returns the prefix for the i-th (zero based) bullet of a style.
// Unknown styles use the dash glyph.
func BulletGlyph(style resume.BulletStyle, i int) string {
	switch style {
	case resume.BulletDot:
		return "•"
	case resume.BulletArrow:
		return "→"
	case resume.BulletNumber:
		return strconv.Itoa(i+1) + "."
	default:
		return "—"
	}
}

// ConvertToBulletPoints splits a free-text description into prefixed bullet lines.
// Sentences are preferred, then comma/semicolon clauses; a long run-on text is
// halved and a short one is kept whole.
func ConvertToBulletPoints(description string, style resume.BulletStyle) []string {
	if strings.TrimSpace(description) == "" {
		return nil
	}

	fragments := splitFragments(description, sentenceSplit, true)
	if len(fragments) == 0 {
		fragments = splitFragments(description, clauseSplit, false)
	}
	if len(fragments) == 0 {
		words := strings.Fields(description)
		if len(words) > bisectWordCount {
			mid := len(words) / 2
			fragments = []string{strings.Join(words[:mid], " "), strings.Join(words[mid:], " ")}
		} else {
			fragments = []string{strings.TrimSpace(description)}
		}
	}

	out := make([]string, 0, len(fragments))
	for i, f := range fragments {
		out = append(out, BulletGlyph(style, i)+" "+f)
	}
	return out
}

func splitFragments(text string, sep *regexp.Regexp, stripMarkers bool) []string {
	var out []string
	for _, part := range sep.Split(text, -1) {
		part = strings.TrimSpace(part)
		if stripMarkers {
			part = strings.TrimSpace(leadingMarker.ReplaceAllString(part, ""))
		}
		if utf8.RuneCountInString(part) > minFragmentLength {
			out = append(out, part)
		}
	}
	return out
}
