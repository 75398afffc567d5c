package terminal

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/justsurfingit/job-tracker/internal/practice"
)

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	help   lipgloss.Style
	err    lipgloss.Style
	bands  map[practice.Band]lipgloss.Style
}

// newStyles binds the palette to out, so colors are dropped when out is not
// a terminal.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		help:   r.NewStyle().Foreground(lipgloss.Color("241")),
		err:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		bands: map[practice.Band]lipgloss.Style{
			practice.BandStrong:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
			practice.BandAdequate: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
			practice.BandWeak:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		},
	}
}

func (s styles) band(b practice.Band) lipgloss.Style {
	return s.bands[b]
}
