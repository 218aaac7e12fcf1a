package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the terminal styles for status output.
// Styles render as plain text when the writer is not a terminal.
type Styles struct {
	Heading lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Value   lipgloss.Style
}

// NewStyles creates styles bound to the color capabilities of w
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Heading: r.NewStyle().Bold(true),
		Success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "82"}),
		Warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("196")),
		Muted:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "240"}),
		Value:   r.NewStyle().Foreground(lipgloss.Color("39")),
	}
}
