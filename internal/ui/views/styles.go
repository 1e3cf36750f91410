package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Blurb       lipgloss.Style
	Panel       lipgloss.Style
	CharCount   lipgloss.Style
	Handle      lipgloss.Style
	Task        lipgloss.Style
	Delete      lipgloss.Style
	Separator   lipgloss.Style
	SelectionBg lipgloss.Style
	Floating    lipgloss.Style
	Placeholder lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
	Dim         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Blurb: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false).
			BorderForeground(lipgloss.Color("241")),
		CharCount:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Handle:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		Task:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Delete:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), // red
		Separator:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Floating: lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Bold(true),
		Placeholder: lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
		Dim:         lipgloss.NewStyle().Faint(true),
	}
}
