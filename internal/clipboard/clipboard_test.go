package clipboard

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stub replaces the clipboard backends for one test.
func stub(t *testing.T, unsupported bool, nativeErr error) (native, tty *[]string) {
	t.Helper()
	native, tty = &[]string{}, &[]string{}

	oldUnsupported, oldNative, oldTTY := nativeUnsupported, writeNative, writeTTY
	t.Cleanup(func() {
		nativeUnsupported, writeNative, writeTTY = oldUnsupported, oldNative, oldTTY
	})

	nativeUnsupported = func() bool { return unsupported }
	writeNative = func(s string) error {
		*native = append(*native, s)
		return nativeErr
	}
	writeTTY = func(s string) error {
		*tty = append(*tty, s)
		return nil
	}
	return native, tty
}

func TestCopy_Empty(t *testing.T) {
	_, err := Copy("", true)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestCopy_Native(t *testing.T) {
	native, tty := stub(t, false, nil)

	res, err := Copy("a\nb\n", true)
	require.NoError(t, err)
	assert.Equal(t, &Result{Method: "native", ByteSize: 4, LineCount: 2}, res)
	assert.Equal(t, []string{"a\nb\n"}, *native)
	assert.Empty(t, *tty)
}

func TestCopy_FallsBackToOSC52(t *testing.T) {
	t.Setenv("TMUX", "")
	native, tty := stub(t, false, errors.New("xclip missing"))

	res, err := Copy("hello", true)
	require.NoError(t, err)
	assert.Equal(t, "osc52", res.Method)
	assert.Len(t, *native, 1)

	encoded := base64.StdEncoding.EncodeToString([]byte("hello"))
	assert.Equal(t, []string{"\x1b]52;c;" + encoded + "\x07"}, *tty)
}

func TestCopy_NoFallback(t *testing.T) {
	native, tty := stub(t, true, nil)

	_, err := Copy("hello", false)
	require.Error(t, err)
	assert.Empty(t, *native, "unsupported platform skips the native writer")
	assert.Empty(t, *tty)
}

func TestOSC52_Tmux(t *testing.T) {
	assert.Equal(t, "\x1bPtmux;\x1b\x1b]52;c;aGk=\x07\x1b\\", osc52("aGk=", true))
}

func TestCountLines(t *testing.T) {
	tests := map[string]int{
		"":                    0,
		"hello world":         1,
		"line1\nline2\nline3": 3,
		"line1\nline2\n":      2,
		"\n\n\n":              3,
	}
	for in, want := range tests {
		assert.Equal(t, want, countLines(in), "countLines(%q)", in)
	}
}
