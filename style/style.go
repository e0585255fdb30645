// Package style provides render functions over lipgloss for CLI output.
package style

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopfetch/shopfetch/color"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a function rendering its argument in the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Status renders an HTTP status code colored by its class.
func Status(code int) string {
	text := strconv.Itoa(code)
	switch {
	case code == 0:
		return Faint("-")
	case code < 300:
		return Fg(color.Green)(text)
	case code < 400:
		return Fg(color.Yellow)(text)
	default:
		return Fg(color.Red)(text)
	}
}
