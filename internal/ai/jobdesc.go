package ai

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	htmlTag    = regexp.MustCompile(`<[a-zA-Z][^>]*>`)
	whitespace = regexp.MustCompile(`\s+`)
)

// CleanJobDescription reduces a pasted job posting to plain text. Plain text passes through trimmed.
func CleanJobDescription(text string) string {
	text = strings.TrimSpace(text)
	if !htmlTag.MatchString(text) {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	doc.Find("script, style, nav, footer, header, iframe, noscript").Remove()

	root := doc.Find("div.job-description, section.job-details, #job-content")
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	var blocks []string
	root.Find("h1, h2, h3, h4, h5, h6, p, li").Each(func(_ int, s *goquery.Selection) {
		line := collapse(s.Text())
		if line == "" {
			return
		}
		if goquery.NodeName(s) == "li" {
			line = "- " + line
		}
		blocks = append(blocks, line)
	})
	if len(blocks) == 0 {
		return collapse(root.Text())
	}
	return strings.Join(blocks, "\n")
}

func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
