package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// FocusListener is notified before the list moves focus to a new row.
type FocusListener interface {
	OnFocusChange(row *Option)
}

// FocusListenerFunc adapts a function to FocusListener.
type FocusListenerFunc func(row *Option)

// OnFocusChange implements FocusListener.
func (f FocusListenerFunc) OnFocusChange(row *Option) { f(row) }

const (
	checkboxOn  = "[X] "
	checkboxOff = "[ ] "
)

// FocusList is a scrollable list of options with a single focused row.
// Every focus transition calls the listener with the row about to become
// focused, then moves the focus pointer.
type FocusList struct {
	rows     []*Option
	cursor   int
	offset   int
	height   int
	listener FocusListener
}

// NewFocusList creates a list focused on its first row.
func NewFocusList(rows []*Option, listener FocusListener) *FocusList {
	return &FocusList{
		rows:     rows,
		listener: listener,
		height:   1,
	}
}

// Len returns the number of rows.
func (l *FocusList) Len() int { return len(l.rows) }

// Rows returns the rows in construction order.
func (l *FocusList) Rows() []*Option { return l.rows }

// Focus returns the focused index, or -1 for an empty list.
func (l *FocusList) Focus() int {
	if len(l.rows) == 0 {
		return -1
	}
	return l.cursor
}

// Focused returns the focused row, or nil for an empty list.
func (l *FocusList) Focused() *Option {
	if len(l.rows) == 0 {
		return nil
	}
	return l.rows[l.cursor]
}

// Offset returns the index of the first visible row.
func (l *FocusList) Offset() int { return l.offset }

// SetFocus moves focus to row i. Out-of-range indexes and the current row
// are ignored. Returns true if focus moved.
func (l *FocusList) SetFocus(i int) bool {
	if i < 0 || i >= len(l.rows) || i == l.cursor {
		return false
	}
	if l.listener != nil {
		l.listener.OnFocusChange(l.rows[i])
	}
	l.cursor = i
	l.clampOffset()
	return true
}

// MoveBy moves focus by delta rows, stopping at either end.
func (l *FocusList) MoveBy(delta int) bool {
	if len(l.rows) == 0 {
		return false
	}
	target := l.cursor + delta
	clampIndex(&target, len(l.rows))
	return l.SetFocus(target)
}

// ToggleFocused flips the focused row. It never notifies the listener.
func (l *FocusList) ToggleFocused() {
	if row := l.Focused(); row != nil {
		row.Toggle()
	}
}

// SetHeight sets how many rows are visible.
func (l *FocusList) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	l.height = h
	l.clampOffset()
}

// PageSize returns the number of visible rows.
func (l *FocusList) PageSize() int { return l.height }

func (l *FocusList) clampOffset() {
	total := len(l.rows)
	if total <= l.height {
		l.offset = 0
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
	maxOffset := total - l.height
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// Lines renders the visible rows, each clipped to width columns.
func (l *FocusList) Lines(width int) []string {
	if width <= 0 {
		return nil
	}
	end := l.offset + l.height
	if end > len(l.rows) {
		end = len(l.rows)
	}
	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderRow(i, width))
	}
	return lines
}

func (l *FocusList) renderRow(i, width int) string {
	row := l.rows[i]
	box := checkboxOff
	if row.Checked() {
		box = checkboxOn
	}
	text := runewidth.Truncate(box+row.Label(), width, "…")

	if i == l.cursor {
		// The focused row is reversed across the full pane width.
		pad := width - runewidth.StringWidth(text)
		if pad > 0 {
			text += strings.Repeat(" ", pad)
		}
		return RowFocusedStyle.Render(text)
	}
	if row.Checked() {
		label := strings.TrimPrefix(text, checkboxOn)
		return CheckboxOnStyle.Render(checkboxOn) + RowStyle.Render(label)
	}
	return RowStyle.Render(text)
}

func clampIndex(idx *int, total int) {
	if total <= 0 {
		*idx = 0
		return
	}
	if *idx < 0 {
		*idx = 0
	}
	if *idx >= total {
		*idx = total - 1
	}
}
