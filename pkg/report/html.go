package report

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

// HTML renders the report as the summary and sources blocks of the research page.
// Summary paragraphs are markdown; raw HTML inside them is dropped by the renderer.
func (r *Report) HTML() (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<div class="summary">` + "\n")

	for _, p := range r.Summary {
		if err := markdown.Convert([]byte(strings.TrimSpace(p)), &buf); err != nil {
			return "", err
		}
	}

	buf.WriteString("</div>\n")

	if len(r.Sources) == 0 {
		return buf.String(), nil
	}

	buf.WriteString(`<div class="sources">` + "\n")
	buf.WriteString("<h3>Sources:</h3>\n<ul>\n")

	for _, s := range r.Sources {
		text := html.EscapeString(s.Text)

		if s.HasURL() {
			buf.WriteString(`<li><a href="` + html.EscapeString(s.URL) + `" target="_blank">` + text + "</a></li>\n")
			continue
		}

		buf.WriteString("<li>" + text + "</li>\n")
	}

	buf.WriteString("</ul>\n</div>\n")

	return buf.String(), nil
}
