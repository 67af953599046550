package views

import (
	"github.com/charmbracelet/lipgloss"

	"distrimed/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Logo        lipgloss.Style
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Main        lipgloss.Style
	Popup       lipgloss.Style
	Section     lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Highlight   lipgloss.Style
	Warning     lipgloss.Style
	Backdrop    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Logo: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginBottom(1),
		Tab:         lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("241")),
		ActiveTab:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).MarginTop(1), // red
		Main:        lipgloss.NewStyle().Padding(1, 2),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2),
		Section:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Backdrop:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// StatusColor returns the color used for a distribution status
func StatusColor(status domain.DistributionStatus) string {
	switch status {
	case domain.StatusDelivered:
		return "78" // green
	case domain.StatusPending:
		return "214" // yellow
	case domain.StatusReturned:
		return "33" // blue
	case domain.StatusCancelled:
		return "203" // red
	default:
		return "241"
	}
}

// RenderStatus renders a status label in its color
func RenderStatus(status domain.DistributionStatus) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(StatusColor(status))).Render(status.Label())
}
