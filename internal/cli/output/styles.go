package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the commands.
type Styles struct {
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	Info       lipgloss.Style
	Muted      lipgloss.Style
	Bold       lipgloss.Style
	Header     lipgloss.Style
	FilePath   lipgloss.Style
	Identifier lipgloss.Style
	TypeName   lipgloss.Style
}

func newStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Success:    lr.NewStyle().Foreground(lipgloss.Color("42")),
		Warning:    lr.NewStyle().Foreground(lipgloss.Color("214")),
		Error:      lr.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Info:       lr.NewStyle().Foreground(lipgloss.Color("39")),
		Muted:      lr.NewStyle().Foreground(lipgloss.Color("245")),
		Bold:       lr.NewStyle().Bold(true),
		Header:     lr.NewStyle().Bold(true).Underline(true),
		FilePath:   lr.NewStyle().Foreground(lipgloss.Color("75")),
		Identifier: lr.NewStyle().Foreground(lipgloss.Color("114")),
		TypeName:   lr.NewStyle().Foreground(lipgloss.Color("180")),
	}
}
