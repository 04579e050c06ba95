package ui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tchow/pickview/internal/logging"
)

var uiLog = logging.ForComponent(logging.CompUI)

// Split weights of the options and preview panes.
const (
	optionsWeight = 3
	previewWeight = 7
	dividerWidth  = 1
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// PreviewFunc maps an option label to the text shown in the preview pane.
type PreviewFunc func(label string) string

// RefreshMsg asks the widget to re-run the preview for the focused option.
type RefreshMsg struct{}

// Setting customizes a SelectionWithPreview at construction.
type Setting func(*SelectionWithPreview)

// WithOptionsTitle sets the options pane caption.
func WithOptionsTitle(title string) Setting {
	return func(s *SelectionWithPreview) { s.optionsTitle = title }
}

// WithPreviewTitle sets the preview pane caption.
func WithPreviewTitle(title string) Setting {
	return func(s *SelectionWithPreview) { s.previewTitle = title }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km KeyMap) Setting {
	return func(s *SelectionWithPreview) { s.keys = km }
}

type pane int

const (
	paneOptions pane = iota
	panePreview
)

// SelectionWithPreview is a checkbox list on the left and a preview of the
// focused option on the right. The preview function runs synchronously on
// every focus change, and once at construction for the first option.
type SelectionWithPreview struct {
	list         *FocusList
	preview      *PreviewPane
	previewFn    PreviewFunc
	optionsTitle string
	previewTitle string

	keys   KeyMap
	help   help.Model
	active pane
	jump   jumpQuery

	width  int
	height int
}

// New builds the widget. options may be empty or contain duplicates.
func New(options []string, preview PreviewFunc, settings ...Setting) *SelectionWithPreview {
	s := &SelectionWithPreview{
		previewFn:    preview,
		optionsTitle: "Options",
		previewTitle: "Preview",
		keys:         DefaultKeyMap(),
		help:         help.New(),
	}
	for _, set := range settings {
		set(s)
	}

	rows := make([]*Option, len(options))
	for i, label := range options {
		rows[i] = NewOption(label)
	}
	s.preview = NewPreviewPane(s.previewTitle)
	s.list = NewFocusList(rows, FocusListenerFunc(s.onFocusChange))
	s.SetSize(defaultWidth, defaultHeight)

	if len(rows) > 0 {
		s.onFocusChange(rows[0])
	}
	return s
}

func (s *SelectionWithPreview) onFocusChange(row *Option) {
	s.preview.SetText(s.previewFn(row.Label()))
	uiLog.Debug("preview_updated", slog.String("label", row.Label()))
}

// Selected returns the labels of checked options in construction order.
func (s *SelectionWithPreview) Selected() []string {
	selected := []string{}
	for _, row := range s.list.Rows() {
		if row.Checked() {
			selected = append(selected, row.Label())
		}
	}
	return selected
}

// Options returns every label in construction order.
func (s *SelectionWithPreview) Options() []string {
	labels := make([]string, 0, s.list.Len())
	for _, row := range s.list.Rows() {
		labels = append(labels, row.Label())
	}
	return labels
}

// Focused returns the focused label; ok is false for an empty list.
func (s *SelectionWithPreview) Focused() (label string, ok bool) {
	row := s.list.Focused()
	if row == nil {
		return "", false
	}
	return row.Label(), true
}

// FocusIndex returns the focused row index, or -1 for an empty list.
func (s *SelectionWithPreview) FocusIndex() int { return s.list.Focus() }

// PreviewText returns the text currently held by the preview pane.
func (s *SelectionWithPreview) PreviewText() string { return s.preview.Text() }

// Jumping reports whether a "/" jump query is being typed.
func (s *SelectionWithPreview) Jumping() bool { return s.jump.active }

// PreviewActive reports whether navigation keys go to the preview pane.
func (s *SelectionWithPreview) PreviewActive() bool { return s.active == panePreview }

// Refresh re-runs the preview for the focused option, keeping the preview
// scroll position.
func (s *SelectionWithPreview) Refresh() {
	row := s.list.Focused()
	if row == nil {
		return
	}
	s.preview.UpdateText(s.previewFn(row.Label()))
	uiLog.Debug("preview_refreshed", slog.String("label", row.Label()))
}

// SetSize lays out both panes and the help line within width x height.
func (s *SelectionWithPreview) SetSize(width, height int) {
	s.width = width
	s.height = height

	paneHeight := max(height-1, 3)
	_, right := s.PaneWidths()
	s.list.SetHeight(paneHeight - 2)
	s.preview.SetSize(right, paneHeight)
	s.help.Width = width
}

// PaneWidths returns the outer widths of the options and preview panes.
func (s *SelectionWithPreview) PaneWidths() (left, right int) {
	avail := max(s.width-dividerWidth, 0)
	left = avail * optionsWeight / (optionsWeight + previewWeight)
	return left, avail - left
}

// Init implements the Bubble Tea component contract.
func (s *SelectionWithPreview) Init() tea.Cmd {
	return nil
}

// Update handles window size, refresh and key messages.
func (s *SelectionWithPreview) Update(msg tea.Msg) (*SelectionWithPreview, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
	case RefreshMsg:
		s.Refresh()
	case tea.KeyMsg:
		s.HandleKey(msg)
	}
	return s, nil
}

// HandleKey applies msg and reports whether the widget consumed it. Keys
// that are not consumed belong to the host.
func (s *SelectionWithPreview) HandleKey(msg tea.KeyMsg) bool {
	if s.jump.active {
		if consumed := s.handleJumpKey(msg); consumed {
			return true
		}
	}
	if s.active == panePreview {
		return s.handlePreviewKey(msg)
	}
	return s.handleListKey(msg)
}

func (s *SelectionWithPreview) handleListKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, s.keys.Up):
		s.list.MoveBy(-1)
	case key.Matches(msg, s.keys.Down):
		s.list.MoveBy(1)
	case key.Matches(msg, s.keys.PageUp):
		s.list.MoveBy(-s.list.PageSize())
	case key.Matches(msg, s.keys.PageDown):
		s.list.MoveBy(s.list.PageSize())
	case key.Matches(msg, s.keys.Home):
		s.list.SetFocus(0)
	case key.Matches(msg, s.keys.End):
		s.list.SetFocus(s.list.Len() - 1)
	case key.Matches(msg, s.keys.Toggle):
		s.list.ToggleFocused()
	case key.Matches(msg, s.keys.FocusRight):
		s.active = panePreview
	case key.Matches(msg, s.keys.Jump):
		s.jump.start()
	default:
		return false
	}
	return true
}

func (s *SelectionWithPreview) handlePreviewKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, s.keys.FocusLeft):
		s.active = paneOptions
	case key.Matches(msg, s.keys.Up):
		s.preview.ScrollUp()
	case key.Matches(msg, s.keys.Down):
		s.preview.ScrollDown()
	case key.Matches(msg, s.keys.PageUp):
		s.preview.PageUp()
	case key.Matches(msg, s.keys.PageDown):
		s.preview.PageDown()
	case key.Matches(msg, s.keys.Home):
		s.preview.Top()
	case key.Matches(msg, s.keys.End):
		s.preview.Bottom()
	default:
		return false
	}
	return true
}

// handleJumpKey edits the jump query. Keys it does not understand end the
// query and fall through to normal handling.
func (s *SelectionWithPreview) handleJumpKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		s.jump.stop()
		return true
	case tea.KeyBackspace:
		s.jump.pop()
		s.jumpToMatch()
		return true
	case tea.KeySpace:
		s.jump.push(" ")
		s.jumpToMatch()
		return true
	case tea.KeyRunes:
		s.jump.push(string(msg.Runes))
		s.jumpToMatch()
		return true
	}
	s.jump.stop()
	return false
}

func (s *SelectionWithPreview) jumpToMatch() {
	if idx := bestMatch(s.Options(), s.jump.buf, s.list.Focus()); idx >= 0 {
		s.list.SetFocus(idx)
	}
}

// View renders both panes side by side with the help line underneath.
func (s *SelectionWithPreview) View() string {
	paneHeight := max(s.height-1, 3)
	left, _ := s.PaneWidths()

	lines := s.list.Lines(left - 2)
	if s.list.Len() == 0 {
		lines = []string{EmptyStyle.Render(clipLine("no options", left-2))}
	}
	optionsBox := renderBox(s.optionsTitle, lines, left, paneHeight, s.active == paneOptions)
	previewBox := s.preview.View(s.active == panePreview)

	body := lipgloss.JoinHorizontal(lipgloss.Top, optionsBox, " ", previewBox)
	return body + "\n" + s.footer()
}

func (s *SelectionWithPreview) footer() string {
	if s.jump.active {
		return JumpPromptStyle.Render(clipLine("/"+s.jump.buf, s.width))
	}
	if s.active == panePreview {
		return s.help.View(previewHelp{km: s.keys})
	}
	return s.help.View(listHelp{km: s.keys})
}
