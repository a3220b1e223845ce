package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderTitledBox draws content inside a border with the title embedded in
// the top edge. Content lines beyond the box height are dropped.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	title = truncate(title, innerWidth-4)
	titleLen := lipgloss.Width(title)
	leftPad := (innerWidth - titleLen - 2) / 2 // -2 for spaces around title
	if leftPad < 0 {
		leftPad = 0
	}
	rightPad := innerWidth - titleLen - 2 - leftPad
	if rightPad < 0 {
		rightPad = 0
	}

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

// panelStyles returns styles whose background matches a focused box.
func (m Model) panelStyles() (Styles, BgStyle) {
	return m.theme.Styles().WithBackground(m.theme.FocusBg), NewBgStyle(m.theme.FocusBg)
}
