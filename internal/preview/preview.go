// Package preview produces preview text for option labels.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tchow/pickview/internal/logging"
	"github.com/tchow/pickview/internal/ui"
)

var previewLog = logging.ForComponent(logging.CompPreview)

// ErrBinary is returned by ReadFile for content that is not valid text.
var ErrBinary = errors.New("binary content")

// DefaultMaxBytes caps preview size when the caller passes zero.
const DefaultMaxBytes = 64 * 1024

// CommandTimeout bounds a single preview command run.
var CommandTimeout = 5 * time.Second

// commandWaitDelay is how long output pipes held open by background children
// may outlive a killed command.
const commandWaitDelay = 500 * time.Millisecond

// maxDirEntries limits directory listings.
const maxDirEntries = 500

// File returns a preview that treats labels as paths. Files show their first
// maxBytes bytes, directories a sorted listing, anything else the label.
func File(maxBytes int) ui.PreviewFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return func(label string) string {
		info, err := os.Stat(label)
		if err != nil {
			return label
		}
		if info.IsDir() {
			listing, err := listDir(label)
			if err != nil {
				previewLog.Warn("dir_list_failed", slog.String("path", label), slog.String("error", err.Error()))
				return fmt.Sprintf("cannot list %s: %v", label, err)
			}
			return listing
		}
		text, err := ReadFile(label, maxBytes)
		switch {
		case errors.Is(err, ErrBinary):
			return fmt.Sprintf("%s: binary file (%d bytes)", label, info.Size())
		case err != nil:
			previewLog.Warn("file_read_failed", slog.String("path", label), slog.String("error", err.Error()))
			return fmt.Sprintf("cannot read %s: %v", label, err)
		}
		return text
	}
}

// ReadFile reads at most maxBytes of path. Content containing NUL bytes or
// invalid UTF-8 yields ErrBinary.
func ReadFile(path string, maxBytes int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, maxBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	data := buf[:n]
	if bytes.IndexByte(data, 0) >= 0 {
		return "", ErrBinary
	}
	data = trimPartialRune(data)
	if !utf8.Valid(data) {
		return "", ErrBinary
	}
	return string(data), nil
}

// trimPartialRune drops an incomplete UTF-8 sequence left by truncation.
func trimPartialRune(data []byte) []byte {
	for i := 0; i < utf8.UTFMax && i < len(data); i++ {
		end := len(data) - i
		if utf8.Valid(data[:end]) {
			return data[:end]
		}
	}
	return data
}

func listDir(path string) (string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i == maxDirEntries {
			fmt.Fprintf(&b, "... %d more\n", len(names)-maxDirEntries)
			break
		}
		b.WriteString(name)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// Command returns a preview that runs template through "sh -c" with every "{}"
// replaced by the shell-quoted label. Combined stdout and stderr is shown,
// truncated to maxBytes.
func Command(template string, maxBytes int) ui.PreviewFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return func(label string) string {
		line := Expand(template, label)
		ctx, cancel := context.WithTimeout(context.Background(), CommandTimeout)
		defer cancel()

		cmd := exec.CommandContext(ctx, "sh", "-c", line)
		cmd.WaitDelay = commandWaitDelay
		out, err := cmd.CombinedOutput()
		if len(out) > maxBytes {
			out = trimPartialRune(out[:maxBytes])
		}
		text := strings.TrimRight(string(out), "\n")
		if err != nil {
			previewLog.Debug("preview_command_failed",
				slog.String("command", line),
				slog.String("error", err.Error()))
			if ctx.Err() != nil {
				return text + fmt.Sprintf("\n[timed out after %s]", CommandTimeout)
			}
			if text == "" {
				return fmt.Sprintf("[%s: %v]", line, err)
			}
		}
		return text
	}
}

// Expand substitutes "{}" in template with the shell-quoted label. A template
// without a placeholder gets the label appended as the last argument.
func Expand(template, label string) string {
	q := ShellQuote(label)
	if !strings.Contains(template, "{}") {
		return template + " " + q
	}
	return strings.ReplaceAll(template, "{}", q)
}

// ShellQuote quotes s for POSIX sh.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
