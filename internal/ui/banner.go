package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerColor = lipgloss.Color("39")
	mutedColor  = lipgloss.Color("245")
)

// Banner frames title and the optional lines below it in a rounded box.
// The box is drawn without color when the no-color theme is active.
func Banner(title string, lines ...string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)
	head := lipgloss.NewStyle().Bold(true)
	body := lipgloss.NewStyle()

	if GetCurrentTheme().Name != NoColorTheme.Name {
		box = box.BorderForeground(bannerColor)
		head = head.Foreground(bannerColor)
		body = body.Foreground(mutedColor)
	}

	content := head.Render(title)
	if len(lines) > 0 {
		content += "\n" + body.Render(strings.Join(lines, "\n"))
	}
	return box.Render(content)
}
