package ui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents the current color scheme
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type palette struct {
	Border, BorderActive, Text, TextDim lipgloss.Color
	Accent, Checked, Title              lipgloss.Color
}

// Dark Theme - Tokyo Night
var darkColors = palette{
	Border:       lipgloss.Color("#414868"),
	BorderActive: lipgloss.Color("#7aa2f7"),
	Text:         lipgloss.Color("#c0caf5"),
	TextDim:      lipgloss.Color("#787fa0"),
	Accent:       lipgloss.Color("#7dcfff"),
	Checked:      lipgloss.Color("#9ece6a"),
	Title:        lipgloss.Color("#bb9af7"),
}

// Light Theme - Tokyo Night Light variant
var lightColors = palette{
	Border:       lipgloss.Color("#9699a3"),
	BorderActive: lipgloss.Color("#34548a"),
	Text:         lipgloss.Color("#343b58"),
	TextDim:      lipgloss.Color("#6a6d7c"),
	Accent:       lipgloss.Color("#166775"),
	Checked:      lipgloss.Color("#485e30"),
	Title:        lipgloss.Color("#7847bd"),
}

// Active color variables (set by InitTheme)
var (
	ColorBorder       lipgloss.Color
	ColorBorderActive lipgloss.Color
	ColorText         lipgloss.Color
	ColorTextDim      lipgloss.Color
	ColorAccent       lipgloss.Color
	ColorChecked      lipgloss.Color
	ColorTitle        lipgloss.Color
)

// themeMu guards the color and style variables during InitTheme.
var themeMu sync.Mutex

// InitTheme sets the active color palette based on theme name.
// Anything other than "light" selects the dark palette.
func InitTheme(theme string) {
	themeMu.Lock()
	defer themeMu.Unlock()

	p := darkColors
	if theme == string(ThemeLight) {
		p = lightColors
	}
	ColorBorder = p.Border
	ColorBorderActive = p.BorderActive
	ColorText = p.Text
	ColorTextDim = p.TextDim
	ColorAccent = p.Accent
	ColorChecked = p.Checked
	ColorTitle = p.Title

	initStyles()
}

func init() {
	InitTheme(string(ThemeDark))
}

// Pane and row styles
var (
	PaneBorderStyle       lipgloss.Style
	PaneBorderActiveStyle lipgloss.Style
	PaneTitleStyle        lipgloss.Style

	RowStyle        lipgloss.Style
	RowFocusedStyle lipgloss.Style
	CheckboxOnStyle lipgloss.Style

	PreviewContentStyle lipgloss.Style
	EmptyStyle          lipgloss.Style
	JumpPromptStyle     lipgloss.Style
)

func initStyles() {
	PaneBorderStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	PaneBorderActiveStyle = lipgloss.NewStyle().Foreground(ColorBorderActive)
	PaneTitleStyle = lipgloss.NewStyle().Foreground(ColorTitle).Bold(true)

	RowStyle = lipgloss.NewStyle().Foreground(ColorText)
	// Reverse video marks the focused row.
	RowFocusedStyle = lipgloss.NewStyle().Foreground(ColorText).Reverse(true)
	CheckboxOnStyle = lipgloss.NewStyle().Foreground(ColorChecked).Bold(true)

	PreviewContentStyle = lipgloss.NewStyle().Foreground(ColorText)
	EmptyStyle = lipgloss.NewStyle().Foreground(ColorTextDim).Italic(true)
	JumpPromptStyle = lipgloss.NewStyle().Foreground(ColorAccent)
}
