package report

import (
	"regexp"
	"strings"
)

const (
	SummaryMarker = "## Summary"
	SourcesMarker = "### Sources:"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

type Report struct {
	Summary []string `json:"summary"`
	Sources []Source `json:"sources"`
}

type Source struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

func (s Source) HasURL() bool {
	return s.URL != ""
}

// Parse splits a research result into summary paragraphs and source entries.
// It never fails; text without markers ends up in the summary.
func Parse(raw string) *Report {
	parts := strings.SplitN(raw, SourcesMarker, 2)

	r := &Report{
		Summary: parseSummary(parts[0]),
		Sources: []Source{},
	}

	if len(parts) > 1 {
		r.Sources = parseSources(parts[1])
	}

	return r
}

func parseSummary(text string) []string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, SummaryMarker)
	text = strings.TrimSpace(text)

	paragraphs := []string{}

	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) == "" {
			continue
		}

		paragraphs = append(paragraphs, p)
	}

	return paragraphs
}

func parseSources(text string) []Source {
	text = strings.TrimSpace(text)

	sources := []Source{}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		line = strings.TrimPrefix(line, "* ")

		sources = append(sources, Source{
			Text: line,
			URL:  urlPattern.FindString(line),
		})
	}

	return sources
}
