package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const progressWidth = 30

type progressBar struct {
	w     io.Writer
	drawn bool

	fill  lipgloss.Style
	empty lipgloss.Style
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{
		w: w,

		fill:  lipgloss.NewStyle().Foreground(accentColor),
		empty: lipgloss.NewStyle().Foreground(dimColor),
	}
}

// Update redraws the bar in place; progress is expected within 0..100.
func (p *progressBar) Update(progress int) {
	fmt.Fprint(p.w, "\r"+p.render(progress))
	p.drawn = true
}

func (p *progressBar) Clear() {
	if !p.drawn {
		return
	}

	fmt.Fprint(p.w, "\r"+strings.Repeat(" ", progressWidth+16)+"\r")
	p.drawn = false
}

func (p *progressBar) render(progress int) string {
	progress = max(0, min(100, progress))

	filled := progress * progressWidth / 100

	return "Researching " +
		p.fill.Render(strings.Repeat("█", filled)) +
		p.empty.Render(strings.Repeat("░", progressWidth-filled)) +
		fmt.Sprintf(" %3d%%", progress)
}
