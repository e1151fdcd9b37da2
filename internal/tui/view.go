package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/render"
)

var (
	accentFg  = lipgloss.Color("#7C3AED")
	dimFg     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	borderCol = lipgloss.Color("#243141")

	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(dimFg)
	mapBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
)

const helpText = "+/- zoom · tab cycle attribute · n neutral · ? help · q quit"

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}
	if m.err != nil {
		return titleStyle.Render("urbanai") + "\n\n" +
			dimStyle.Render("could not load scene: "+m.err.Error()) + "\n"
	}

	layers, camera, ext, framed, message := m.surf.snapshot()

	mapW := m.width - 4
	mapH := m.height - 6
	if mapW < 10 || mapH < 4 {
		return dimStyle.Render("terminal too small")
	}

	var body string
	if !framed || len(layers) == 0 {
		body = dimStyle.Render("nothing to display")
	} else {
		body = strings.Join(drawScene(layers, ext, camera, m.zoom, mapW, mapH), "\n")
	}

	header := titleStyle.Render("urbanai") + "  " + dimStyle.Render(m.legend(layers))

	status := m.status
	if message != "" {
		status += " · " + message
	}
	footer := dimStyle.Render(fmt.Sprintf("%s · zoom %.0f · %s", status, m.zoom, m.controller.Session().DetailState()))
	if m.helpVisible {
		footer += "\n" + dimStyle.Render(helpText)
	}

	return header + "\n" + mapBoxStyle.Render(body) + "\n" + footer
}

// legend lists the visible layers in their colors.
func (m Model) legend(layers []render.Layer) string {
	if len(layers) == 0 {
		return ""
	}
	parts := make([]string, 0, len(layers))
	for _, l := range layers {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color.Hex()))
		parts = append(parts, style.Render("■")+" "+l.Title)
	}
	return strings.Join(parts, "  ")
}
