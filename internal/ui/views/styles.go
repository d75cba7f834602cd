package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Header        lipgloss.Style
	Item          lipgloss.Style
	Selected      lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	Count         lipgloss.Style
	Help          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		Item:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected:      lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Dim:           lipgloss.NewStyle().Faint(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Count:         lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Help:          lipgloss.NewStyle().Faint(true),
	}
}

// RatingColor returns the display color for a problem rating, following the
// usual competitive-programming color bands.
func RatingColor(rating int) string {
	switch {
	case rating == 0:
		return "241" // unrated, gray
	case rating < 1200:
		return "245"
	case rating < 1400:
		return "78" // green
	case rating < 1600:
		return "51" // cyan
	case rating < 1900:
		return "33" // blue
	case rating < 2100:
		return "135" // violet
	case rating < 2400:
		return "214" // orange
	default:
		return "203" // red
	}
}
