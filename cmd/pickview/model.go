package main

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tchow/pickview/internal/clipboard"
	"github.com/tchow/pickview/internal/ui"
)

// copiedMsg reports the outcome of a ctrl+y copy.
type copiedMsg struct {
	result *clipboard.Result
	err    error
}

// pickerModel hosts the selection widget and owns the keys it leaves alone.
type pickerModel struct {
	sel      *ui.SelectionWithPreview
	accepted bool
	done     bool
}

func newPickerModel(sel *ui.SelectionWithPreview) *pickerModel {
	return &pickerModel{sel: sel}
}

func (m *pickerModel) Init() tea.Cmd {
	return m.sel.Init()
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.sel.HandleKey(msg) {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			m.accepted = true
			m.done = true
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			m.done = true
			return m, tea.Quit
		case "ctrl+y":
			return m, copyCmd(m.copyText())
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			cliLog.Warn("copy_failed", slog.String("error", msg.err.Error()))
		} else {
			cliLog.Info("copied",
				slog.String("method", msg.result.Method),
				slog.Int("lines", msg.result.LineCount))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.sel, cmd = m.sel.Update(msg)
	return m, cmd
}

// copyText is the checked labels, or the focused label when none are checked.
func (m *pickerModel) copyText() string {
	labels := m.sel.Selected()
	if len(labels) == 0 {
		if label, ok := m.sel.Focused(); ok {
			labels = []string{label}
		}
	}
	if len(labels) == 0 {
		return ""
	}
	return strings.Join(labels, "\n") + "\n"
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		res, err := clipboard.Copy(text, true)
		return copiedMsg{result: res, err: err}
	}
}

func (m *pickerModel) View() string {
	if m.done {
		return ""
	}
	return m.sel.View()
}
