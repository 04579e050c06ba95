package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// renderBox draws lines inside a rounded border of exactly width x height
// cells with title set into the top edge. Lines must already be clipped to
// width-2 columns; missing lines are blank.
func renderBox(title string, lines []string, width, height int, active bool) string {
	if width < 2 || height < 2 {
		return ""
	}
	border := lipgloss.RoundedBorder()
	edge := PaneBorderStyle
	if active {
		edge = PaneBorderActiveStyle
	}
	inner := width - 2

	var b strings.Builder

	// ╭─ Title ────╮
	top := strings.Repeat(border.Top, inner)
	if title != "" && inner >= 4 {
		label := runewidth.Truncate(title, inner-4, "…")
		fill := inner - 3 - runewidth.StringWidth(label)
		top = edge.Render(border.Top+" ") + PaneTitleStyle.Render(label) +
			edge.Render(" "+strings.Repeat(border.Top, fill))
		b.WriteString(edge.Render(border.TopLeft))
		b.WriteString(top)
		b.WriteString(edge.Render(border.TopRight))
	} else {
		b.WriteString(edge.Render(border.TopLeft + top + border.TopRight))
	}
	b.WriteString("\n")

	left := edge.Render(border.Left)
	right := edge.Render(border.Right)
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		pad := inner - lipgloss.Width(line)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(left)
		b.WriteString(line)
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(right)
		b.WriteString("\n")
	}

	b.WriteString(edge.Render(border.BottomLeft + strings.Repeat(border.Bottom, inner) + border.BottomRight))
	return b.String()
}

// clipLine cuts s to width terminal columns without an ellipsis, expanding
// tabs first so the width is predictable.
func clipLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\t", "    ")
	return runewidth.Truncate(s, width, "")
}
