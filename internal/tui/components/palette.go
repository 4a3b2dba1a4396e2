// Package components holds rendering pieces shared by the TUI widgets.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tokei/internal/models"
)

var tagColors = map[models.ColorTag]lipgloss.Color{
	models.ColorRed:    lipgloss.Color("196"),
	models.ColorOrange: lipgloss.Color("208"),
	models.ColorYellow: lipgloss.Color("220"),
	models.ColorGreen:  lipgloss.Color("42"),
	models.ColorBlue:   lipgloss.Color("39"),
	models.ColorPurple: lipgloss.Color("135"),
	models.ColorPink:   lipgloss.Color("213"),
}

// TagColor returns the terminal color for a tag.
func TagColor(tag models.ColorTag) lipgloss.Color {
	if c, ok := tagColors[tag]; ok {
		return c
	}
	return tagColors[models.DefaultColor]
}

// TagStyle is a foreground style in the tag's color.
func TagStyle(tag models.ColorTag) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TagColor(tag))
}
