package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tchow/pickview/internal/config"
	"github.com/tchow/pickview/internal/ui"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{
		"-options-title", "Files",
		"-preview-cmd", "head -n 20 {}",
		"-watch",
		"a.txt", "b.txt",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "Files", opts.optionsTitle)
	assert.Equal(t, "", opts.previewTitle)
	assert.Equal(t, "head -n 20 {}", opts.previewCmd)
	assert.True(t, opts.watch)
	assert.Equal(t, []string{"a.txt", "b.txt"}, opts.labels)
}

func TestParseFlags_Unknown(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseFlags([]string{"-nope"}, &stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "Usage: pickview")
}

func TestResolve_FlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.UI.OptionsTitle = "From config"
	cfg.Preview.Command = "cat {}"
	cfg.Preview.Watch = true

	s := resolve(cfg, &cliOptions{previewTitle: "Flag title", theme: "light"})
	assert.Equal(t, "From config", s.optionsTitle)
	assert.Equal(t, "Flag title", s.previewTitle)
	assert.Equal(t, "cat {}", s.previewCmd)
	assert.Equal(t, "light", s.theme)
	assert.Equal(t, cfg.Preview.MaxBytes, s.maxBytes)
	assert.True(t, s.watch)

	s = resolve(config.Default(), &cliOptions{previewCmd: "bat {}"})
	assert.Equal(t, "bat {}", s.previewCmd)
	assert.Equal(t, "Options", s.optionsTitle)
	assert.False(t, s.watch)
}

func TestReadOptions(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		stdin  string
		tty    bool
		want   []string
	}{
		{"args win", []string{"x"}, "a\nb\n", false, []string{"x"}},
		{"stdin lines", nil, "a\n\nb c\r\n  \n", false, []string{"a", "b c"}},
		{"terminal stdin is not read", nil, "a\n", true, nil},
		{"empty stdin", nil, "", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readOptions(tt.labels, strings.NewReader(tt.stdin), tt.tty)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun_VersionAndInitConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitOK, run([]string{"-version"}, os.Stdin, &stdout, &stderr))
	assert.Equal(t, "pickview v"+Version+"\n", stdout.String())

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	stdout.Reset()
	assert.Equal(t, exitOK, run([]string{"-config", path, "-init-config"}, os.Stdin, &stdout, &stderr))
	assert.Equal(t, path+"\n", stdout.String())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	assert.Equal(t, exitUsage, run([]string{"-bogus"}, os.Stdin, &stdout, &stderr))
}

func TestPickerModel_HostKeys(t *testing.T) {
	newModel := func() *pickerModel {
		return newPickerModel(ui.New([]string{"a", "b", "c"}, func(string) string { return "" }))
	}

	t.Run("enter accepts", func(t *testing.T) {
		m := newModel()
		m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		assert.True(t, m.accepted)
		assert.Equal(t, []string{"a", "c"}, m.sel.Selected())
		assert.Empty(t, m.View())
	})

	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(k.String()+" cancels", func(t *testing.T) {
			m := newModel()
			_, cmd := m.Update(k)
			require.NotNil(t, cmd)
			assert.False(t, m.accepted)
			assert.True(t, m.done)
		})
	}

	t.Run("esc in preview pane returns to list", func(t *testing.T) {
		m := newModel()
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		require.True(t, m.sel.PreviewActive())

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		assert.Nil(t, cmd)
		assert.False(t, m.done)
		assert.False(t, m.sel.PreviewActive())
	})

	t.Run("enter while jumping ends the query", func(t *testing.T) {
		m := newModel()
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.False(t, m.done)
		assert.Equal(t, 2, m.sel.FocusIndex())
	})

	t.Run("ctrl+y copies without quitting", func(t *testing.T) {
		m := newModel()
		assert.Equal(t, "a\n", m.copyText(), "focused label when nothing is checked")

		m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		assert.Equal(t, "b\nc\n", m.copyText())

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
		assert.NotNil(t, cmd)
		assert.False(t, m.done)
	})
}

func TestPickerModel_EmptyCopyText(t *testing.T) {
	m := newPickerModel(ui.New(nil, func(string) string { return "" }))
	assert.Equal(t, "", m.copyText())
}

// fakeTTY stands in for /dev/tty: keys come from keys, frames go to screen.
type fakeTTY struct {
	io.Reader
	io.Writer
	closed bool
}

func (f *fakeTTY) Close() error {
	f.closed = true
	return nil
}

func stubTTY(t *testing.T, keys string) (*fakeTTY, *bytes.Buffer) {
	t.Helper()
	screen := &bytes.Buffer{}
	tty := &fakeTTY{Reader: strings.NewReader(keys), Writer: screen}

	old := openTTY
	openTTY = func() (io.ReadWriteCloser, error) { return tty, nil }
	t.Cleanup(func() { openTTY = old })
	return tty, screen
}

func TestTerminalIO_RedirectedStreamsUseTTY(t *testing.T) {
	tty, _ := stubTTY(t, "")
	var stdout bytes.Buffer

	in, out, closeFn, err := terminalIO(strings.NewReader("a\n"), &stdout)
	require.NoError(t, err)
	assert.Same(t, tty, in)
	assert.Same(t, tty, out)

	closeFn()
	assert.True(t, tty.closed)
}

func TestTerminalIO_NoTerminal(t *testing.T) {
	old := openTTY
	openTTY = func() (io.ReadWriteCloser, error) { return nil, os.ErrNotExist }
	t.Cleanup(func() { openTTY = old })

	_, _, _, err := terminalIO(strings.NewReader(""), io.Discard)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_StdoutCarriesOnlyLabels(t *testing.T) {
	t.Setenv("PICKVIEW_DEBUG", "")
	// Runes typed back to back arrive as one key, so arrows separate them.
	_, screen := stubTTY(t, "x\x1b[B\x1b[Bx\r")

	stdin, err := os.Open(writeTemp(t, "alpha\nbeta\ngamma\n"))
	require.NoError(t, err)
	defer stdin.Close()

	var stdout, stderr bytes.Buffer
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	code := run([]string{"-config", cfgPath}, stdin, &stdout, &stderr)

	require.Equal(t, exitOK, code, "stderr: %s", stderr.String())
	assert.Equal(t, "alpha\ngamma\n", stdout.String())
	assert.NotZero(t, screen.Len(), "frames are drawn on the terminal")
}

func TestRun_CancelPrintsNothing(t *testing.T) {
	t.Setenv("PICKVIEW_DEBUG", "")
	stubTTY(t, "q")

	var stdout, stderr bytes.Buffer
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	code := run([]string{"-config", cfgPath, "a", "b"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, exitCanceled, code)
	assert.Empty(t, stdout.String())
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
