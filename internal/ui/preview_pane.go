package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// PreviewPane is the titled, scrollable text area on the right. Its text is
// replaced wholesale by SetText; lines are clipped, never wrapped.
type PreviewPane struct {
	title    string
	text     string
	viewport viewport.Model
	width    int
	height   int
}

// NewPreviewPane creates an empty preview pane.
func NewPreviewPane(title string) *PreviewPane {
	return &PreviewPane{
		title:    title,
		viewport: viewport.New(0, 0),
	}
}

// Text returns the current preview text.
func (p *PreviewPane) Text() string { return p.text }

// SetText replaces the preview text and scrolls back to the top.
func (p *PreviewPane) SetText(text string) {
	p.text = text
	p.refresh()
	p.viewport.GotoTop()
}

// UpdateText replaces the preview text but keeps the scroll position,
// clamped to the new content.
func (p *PreviewPane) UpdateText(text string) {
	offset := p.viewport.YOffset
	p.text = text
	p.refresh()
	p.viewport.SetYOffset(offset)
}

// SetSize sets the outer size including the border.
func (p *PreviewPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.Width = max(width-2, 0)
	p.viewport.Height = max(height-2, 0)
	p.refresh()
}

// refresh re-clips the text to the current width.
func (p *PreviewPane) refresh() {
	lines := strings.Split(strings.TrimRight(p.text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = clipLine(line, p.viewport.Width)
	}
	p.viewport.SetContent(strings.Join(lines, "\n"))
}

// YOffset returns the first visible line.
func (p *PreviewPane) YOffset() int { return p.viewport.YOffset }

func (p *PreviewPane) ScrollUp()   { p.viewport.LineUp(1) }
func (p *PreviewPane) ScrollDown() { p.viewport.LineDown(1) }
func (p *PreviewPane) PageUp()     { p.viewport.PageUp() }
func (p *PreviewPane) PageDown()   { p.viewport.PageDown() }
func (p *PreviewPane) Top()        { p.viewport.GotoTop() }
func (p *PreviewPane) Bottom()     { p.viewport.GotoBottom() }

// View renders the bordered pane.
func (p *PreviewPane) View(active bool) string {
	var lines []string
	if p.text != "" {
		lines = strings.Split(p.viewport.View(), "\n")
		for i, line := range lines {
			lines[i] = PreviewContentStyle.Render(line)
		}
	}
	return renderBox(p.title, lines, p.width, p.height, active)
}
