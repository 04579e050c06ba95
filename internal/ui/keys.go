package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the widget's key bindings. Keys not listed here (enter, q,
// ctrl+c) are left for the host program.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Toggle     key.Binding
	FocusRight key.Binding
	FocusLeft  key.Binding
	Jump       key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		FocusRight: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "preview"),
		),
		FocusLeft: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "h", "esc"),
			key.WithHelp("tab", "options"),
		),
		Jump: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "jump"),
		),
	}
}

// listHelp implements help.KeyMap for the options pane.
type listHelp struct{ km KeyMap }

func (h listHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.km.Up, h.km.Down, h.km.Toggle, h.km.Jump, h.km.FocusRight}
}

func (h listHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.km.Up, h.km.Down, h.km.PageUp, h.km.PageDown, h.km.Home, h.km.End},
		{h.km.Toggle, h.km.Jump, h.km.FocusRight},
	}
}

// previewHelp implements help.KeyMap for the preview pane.
type previewHelp struct{ km KeyMap }

func (h previewHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.km.Up, h.km.Down, h.km.PageUp, h.km.PageDown, h.km.FocusLeft}
}

func (h previewHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
