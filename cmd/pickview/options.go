package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/tchow/pickview/internal/config"
)

// cliOptions holds parsed command-line flags. Empty strings mean "use config".
type cliOptions struct {
	optionsTitle string
	previewTitle string
	previewCmd   string
	configPath   string
	theme        string
	watch        bool
	version      bool
	initConfig   bool
	labels       []string
}

func parseFlags(args []string, stderr io.Writer) (*cliOptions, error) {
	opts := &cliOptions{}
	fs := flag.NewFlagSet("pickview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.optionsTitle, "options-title", "", "list border caption (default from config, else \"Options\")")
	fs.StringVar(&opts.previewTitle, "preview-title", "", "preview border caption (default from config, else \"Preview\")")
	fs.StringVar(&opts.previewCmd, "preview-cmd", "", "shell command template; \"{}\" is replaced by the quoted label")
	fs.StringVar(&opts.configPath, "config", "", "config file path (default ~/.pickview/config.toml, $PICKVIEW_CONFIG)")
	fs.StringVar(&opts.theme, "theme", "", "dark | light | system")
	fs.BoolVar(&opts.watch, "watch", false, "refresh the preview when the focused file changes")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	fs.BoolVar(&opts.initConfig, "init-config", false, "write a default config file and exit")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: pickview [flags] [option ...]")
		fmt.Fprintln(fs.Output(), "")
		fmt.Fprintln(fs.Output(), "Options are read from stdin, one per line, when none are given.")
		fmt.Fprintln(fs.Output(), "Checked options are printed on enter; esc or q cancels.")
		fmt.Fprintln(fs.Output(), "ctrl+y copies the checked options (or the focused one) to the clipboard.")
		fmt.Fprintln(fs.Output(), "")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.labels = fs.Args()
	return opts, nil
}

// settings is the merged view of config and flags.
type settings struct {
	optionsTitle string
	previewTitle string
	previewCmd   string
	theme        string
	maxBytes     int
	watch        bool
}

// resolve applies flags over the loaded config.
func resolve(cfg *config.Config, opts *cliOptions) settings {
	s := settings{
		optionsTitle: cfg.UI.OptionsTitle,
		previewTitle: cfg.UI.PreviewTitle,
		previewCmd:   cfg.Preview.Command,
		theme:        cfg.UI.Theme,
		maxBytes:     cfg.Preview.MaxBytes,
		watch:        cfg.Preview.Watch || opts.watch,
	}
	if opts.optionsTitle != "" {
		s.optionsTitle = opts.optionsTitle
	}
	if opts.previewTitle != "" {
		s.previewTitle = opts.previewTitle
	}
	if opts.previewCmd != "" {
		s.previewCmd = opts.previewCmd
	}
	if opts.theme != "" {
		s.theme = opts.theme
	}
	return s
}

// readOptions returns the positional labels, or the non-blank lines of stdin
// when there are none and stdin is not a terminal.
func readOptions(labels []string, stdin io.Reader, stdinIsTTY bool) ([]string, error) {
	if len(labels) > 0 || stdinIsTTY {
		return labels, nil
	}

	var options []string
	sc := bufio.NewScanner(stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		options = append(options, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read options from stdin: %w", err)
	}
	return options, nil
}
