package report

import (
	"strings"
)

// String writes the report back in the marker format Parse reads.
func (r *Report) String() string {
	var sb strings.Builder

	sb.WriteString(SummaryMarker)
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(r.Summary, "\n\n"))
	sb.WriteString("\n")

	if len(r.Sources) == 0 {
		return sb.String()
	}

	sb.WriteString(SourcesMarker)
	sb.WriteString("\n")

	for _, s := range r.Sources {
		sb.WriteString("* ")
		sb.WriteString(s.Text)
		sb.WriteString("\n")
	}

	return sb.String()
}

func (r *Report) Text() string {
	var sb strings.Builder

	sb.WriteString(strings.Join(r.Summary, "\n\n"))

	if len(r.Sources) > 0 {
		sb.WriteString("\n\nSources:\n")

		for _, s := range r.Sources {
			sb.WriteString("- ")
			sb.WriteString(s.Text)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
