// Package clipboard copies picked labels to the system clipboard.
package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrEmpty is returned when there is nothing to copy.
var ErrEmpty = errors.New("no content to copy")

// Result describes a successful copy.
type Result struct {
	Method    string // "native" or "osc52"
	ByteSize  int
	LineCount int
}

// Swapped in tests.
var (
	nativeUnsupported = func() bool { return clipboard.Unsupported }
	writeNative       = clipboard.WriteAll
	writeTTY          = writeToTTY
)

// Copy puts text on the clipboard. The platform clipboard is tried first;
// if it is missing or fails and allowOSC52 is set, an OSC 52 escape is sent
// to the controlling terminal instead.
func Copy(text string, allowOSC52 bool) (*Result, error) {
	if text == "" {
		return nil, ErrEmpty
	}
	res := &Result{ByteSize: len(text), LineCount: countLines(text)}

	var nativeErr error
	if nativeUnsupported() {
		nativeErr = errors.New("no platform clipboard")
	} else if nativeErr = writeNative(text); nativeErr == nil {
		res.Method = "native"
		return res, nil
	}

	if !allowOSC52 {
		return nil, fmt.Errorf("clipboard: %w", nativeErr)
	}
	seq := osc52(base64.StdEncoding.EncodeToString([]byte(text)), os.Getenv("TMUX") != "")
	if err := writeTTY(seq); err != nil {
		return nil, fmt.Errorf("OSC 52 clipboard failed: %w", err)
	}
	res.Method = "osc52"
	return res, nil
}

// writeToTTY bypasses stdout, which carries the picked labels.
func writeToTTY(seq string) error {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("cannot open /dev/tty: %w", err)
	}
	defer tty.Close()
	_, err = tty.WriteString(seq)
	return err
}

// osc52 builds the escape sequence, wrapped in a DCS passthrough inside tmux.
func osc52(encoded string, inTmux bool) string {
	seq := "\x1b]52;c;" + encoded + "\x07"
	if inTmux {
		return "\x1bPtmux;\x1b" + seq + "\x1b\\"
	}
	return seq
}

// countLines counts lines; a trailing newline does not add one.
func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
