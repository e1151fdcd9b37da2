package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Zoom bounds for interactive navigation; the camera heuristic never frames
// outside this range either.
const (
	minViewZoom = 3.0
	maxViewZoom = 21.0
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "+", "=":
			return m.zoomTo(m.zoom + 1), nil

		case "-", "_":
			return m.zoomTo(m.zoom - 1), nil

		case "tab":
			return m.cycleAttribute(1), nil

		case "shift+tab":
			return m.cycleAttribute(-1), nil

		case "n":
			return m.selectAttribute(-1), nil

		case "?", "h":
			m.helpVisible = !m.helpVisible
			return m, nil
		}
	}
	return m, nil
}

func (m Model) zoomTo(zoom float64) Model {
	if zoom < minViewZoom {
		zoom = minViewZoom
	}
	if zoom > maxViewZoom {
		zoom = maxViewZoom
	}
	m.zoom = zoom
	m.controller.OnZoom(zoom)
	m.status = fmt.Sprintf("zoom %.0f (%s)", zoom, m.controller.Session().DetailState())
	return m
}

// cycleAttribute steps through the neutral view and the configured
// attributes in order.
func (m Model) cycleAttribute(step int) Model {
	if len(m.attributes) == 0 {
		return m
	}
	// Positions: -1 (neutral), 0..len-1.
	n := len(m.attributes) + 1
	pos := (m.attrIndex + 1 + step + n) % n
	return m.selectAttribute(pos - 1)
}

func (m Model) selectAttribute(index int) Model {
	m.attrIndex = index
	if index < 0 {
		m.controller.SelectAttribute("")
		m.status = "uncategorized view"
		return m
	}
	attr := m.attributes[index]
	m.controller.SelectAttribute(attr)
	m.status = fmt.Sprintf("categorized by %s", attr)
	return m
}
