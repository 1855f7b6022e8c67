package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/adrianliechti/wingman-research/pkg/task"

	"github.com/charmbracelet/lipgloss"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatHTML outputFormat = "html"
	formatJSON outputFormat = "json"
	formatRaw  outputFormat = "raw"
)

var (
	accentColor = lipgloss.Color("#00ff9f")
	dimColor    = lipgloss.Color("#6e7681")
	errorColor  = lipgloss.Color("#ff5f87")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	dimStyle    = lipgloss.NewStyle().Foreground(dimColor)
	errorStyle  = lipgloss.NewStyle().Foreground(errorColor)
)

func parseFormat(value string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(value)); f {
	case formatText, formatHTML, formatJSON, formatRaw:
		return f, nil
	}

	return "", fmt.Errorf("unsupported format %q", value)
}

func writeReport(w io.Writer, format outputFormat, result task.Success) error {
	if result.Report == nil {
		return errors.New("empty research result")
	}

	switch format {
	case formatRaw:
		_, err := io.WriteString(w, result.Raw+"\n")
		return err

	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(result.Report)

	case formatHTML:
		html, err := result.Report.HTML()

		if err != nil {
			return err
		}

		_, err = io.WriteString(w, html+"\n")
		return err
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Summary"))
	sb.WriteString("\n\n")

	for _, p := range result.Report.Summary {
		sb.WriteString(strings.TrimSpace(p))
		sb.WriteString("\n\n")
	}

	if len(result.Report.Sources) > 0 {
		sb.WriteString(titleStyle.Render("Sources"))
		sb.WriteString("\n")

		for _, s := range result.Report.Sources {
			sb.WriteString("- ")
			sb.WriteString(s.Text)
			sb.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
