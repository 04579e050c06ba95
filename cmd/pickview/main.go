package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tchow/pickview/internal/config"
	"github.com/tchow/pickview/internal/logging"
	"github.com/tchow/pickview/internal/preview"
	"github.com/tchow/pickview/internal/ui"
)

const Version = "0.1.0"

// Exit codes
const (
	exitOK       = 0
	exitError    = 1
	exitUsage    = 2
	exitCanceled = 130
)

var cliLog = logging.ForComponent(logging.CompCLI)

// init sets up color profile for consistent terminal colors across environments
func init() {
	initColorProfile()
}

// initColorProfile picks the lipgloss color profile.
// PICKVIEW_COLOR: truecolor, 256, 16, none
func initColorProfile() {
	switch strings.ToLower(os.Getenv("PICKVIEW_COLOR")) {
	case "truecolor", "true", "24bit":
		lipgloss.SetColorProfile(termenv.TrueColor)
		return
	case "256", "ansi256":
		lipgloss.SetColorProfile(termenv.ANSI256)
		return
	case "16", "ansi", "basic":
		lipgloss.SetColorProfile(termenv.ANSI)
		return
	case "none", "off", "ascii":
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	colorTerm := os.Getenv("COLORTERM")
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		lipgloss.SetColorProfile(termenv.TrueColor)
		return
	}

	// Fallback: Use ANSI256 for maximum compatibility
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// openTTY opens the controlling terminal. Swapped in tests.
var openTTY = func() (io.ReadWriteCloser, error) {
	return os.OpenFile("/dev/tty", os.O_RDWR, 0)
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalIO picks where the picker reads keys and draws frames. Stdout
// carries only the picked labels, so a redirected stdout is never drawn on;
// the terminal is used instead, as it is for keys when stdin is a pipe.
func terminalIO(stdin io.Reader, stdout io.Writer) (in io.Reader, out io.Writer, closeFn func(), err error) {
	in, out, closeFn = stdin, stdout, func() {}
	stdinTTY, stdoutTTY := isTerminal(stdin), isTerminal(stdout)
	if stdinTTY && stdoutTTY {
		return in, out, closeFn, nil
	}

	tty, err := openTTY()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open terminal: %w", err)
	}
	if !stdinTTY {
		in = tty
	}
	if !stdoutTTY {
		out = tty
	}
	return in, out, func() { _ = tty.Close() }, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}
	if opts.version {
		fmt.Fprintf(stdout, "pickview v%s\n", Version)
		return exitOK
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		if cfgPath, err = config.Path(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}

	if opts.initConfig {
		if err := config.Save(cfgPath, config.Default()); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		fmt.Fprintln(stdout, cfgPath)
		return exitOK
	}

	// Load falls back to defaults on a parse error.
	cfg, loadErr := config.Load(cfgPath)
	if loadErr != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", loadErr)
	}
	settings := resolve(cfg, opts)

	// When PICKVIEW_DEBUG is set, logs go to ~/.pickview/debug.log
	// When not set, logs are discarded to avoid TUI interference
	if baseDir, err := config.Dir(); err == nil {
		logging.Init(logging.Config{
			Debug:      os.Getenv("PICKVIEW_DEBUG") != "",
			LogDir:     baseDir,
			Level:      cfg.Logs.Level,
			Format:     cfg.Logs.Format,
			MaxSizeMB:  cfg.Logs.MaxMB,
			MaxBackups: cfg.Logs.Backups,
			MaxAgeDays: cfg.Logs.RetentionDays,
			Compress:   cfg.Logs.Compress,
		})
		defer logging.Shutdown()
	}

	configLog := logging.ForComponent(logging.CompConfig)
	if loadErr != nil {
		configLog.Warn("config_load_failed",
			slog.String("path", cfgPath),
			slog.String("error", loadErr.Error()))
	} else {
		configLog.Info("config_loaded",
			slog.String("path", cfgPath),
			slog.String("theme", settings.theme))
	}

	options, err := readOptions(opts.labels, stdin, isTerminal(stdin))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	in, out, closeTTY, err := terminalIO(stdin, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer closeTTY()

	ui.InitTheme(config.ResolveTheme(settings.theme))

	cliLog.Info("picker_started",
		slog.Int("options", len(options)),
		slog.String("preview_cmd", settings.previewCmd),
		slog.Bool("watch", settings.watch))

	selected, ok, err := pick(options, settings, in, out)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if !ok {
		return exitCanceled
	}
	for _, label := range selected {
		fmt.Fprintln(stdout, label)
	}
	return exitOK
}

// pick runs the TUI on in/out and returns the checked labels. ok is false
// when the user canceled.
func pick(options []string, s settings, in io.Reader, out io.Writer) ([]string, bool, error) {
	source := preview.File(s.maxBytes)
	if s.previewCmd != "" {
		source = preview.Command(s.previewCmd, s.maxBytes)
	}

	var p *tea.Program
	var watcher *preview.Watcher
	if s.watch {
		// The callback only fires once Start runs, after p is set.
		w, err := preview.NewWatcher(func(path string) {
			p.Send(ui.RefreshMsg{})
		})
		if err != nil {
			cliLog.Warn("watcher_unavailable", slog.String("error", err.Error()))
		} else {
			watcher = w
			defer watcher.Stop()
		}
	}

	// Every focus change passes through here, so the watcher always follows
	// the focused label.
	previewFn := func(label string) string {
		if watcher != nil {
			if err := watcher.Track(label); err != nil {
				cliLog.Debug("watch_track_failed",
					slog.String("label", label),
					slog.String("error", err.Error()))
			}
		}
		return source(label)
	}

	sel := ui.New(options, previewFn,
		ui.WithOptionsTitle(s.optionsTitle),
		ui.WithPreviewTitle(s.previewTitle))
	m := newPickerModel(sel)

	p = tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithInput(in),
		tea.WithOutput(out))

	if watcher != nil {
		go watcher.Start()
	}

	final, err := p.Run()
	if err != nil {
		return nil, false, fmt.Errorf("run picker: %w", err)
	}
	fm := final.(*pickerModel)
	if !fm.accepted {
		return nil, false, nil
	}
	return fm.sel.Selected(), true, nil
}
