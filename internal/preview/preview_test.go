package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tchow/pickview/internal/ui"
)

func TestFile_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0o644))

	assert.Equal(t, "line one\nline two\n", File(0)(path))
}

func TestFile_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 100)), 0o644))

	assert.Equal(t, strings.Repeat("x", 10), File(10)(path))
}

func TestFile_TruncationKeepsRunesWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "utf8.txt")
	require.NoError(t, os.WriteFile(path, []byte("aé"), 0o644)) // 'é' is two bytes

	assert.Equal(t, "a", File(2)(path))
}

func TestFile_Binary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x7f, 'E', 'L', 'F', 0, 1, 2}, 0o644))

	got := File(0)(path)
	assert.Contains(t, got, "binary file (7 bytes)")

	_, err := ReadFile(path, 64)
	assert.ErrorIs(t, err, ErrBinary)
}

func TestFile_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	assert.Equal(t, "a.txt\nb.txt\nsub/", File(0)(dir))
}

func TestFile_NotAPathEchoesLabel(t *testing.T) {
	assert.Equal(t, "just a label", File(0)("just a label"))
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "''"},
		{"plain", "'plain'"},
		{"with space", "'with space'"},
		{"it's", `'it'\''s'`},
		{"$(rm -rf /)", "'$(rm -rf /)'"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShellQuote(tt.in), "quote %q", tt.in)
	}
}

func TestExpand(t *testing.T) {
	assert.Equal(t, "head -n 5 'a b.txt'", Expand("head -n 5 {}", "a b.txt"))
	assert.Equal(t, "diff 'x' 'x'", Expand("diff {} {}", "x"))
	assert.Equal(t, "cat 'x'", Expand("cat", "x"))
}

func TestCommand_Output(t *testing.T) {
	got := Command("printf 'hello %s\\n' {}", 0)("it's me")
	assert.Equal(t, "hello it's me", got)
}

func TestCommand_FailureWithoutOutput(t *testing.T) {
	got := Command("exit 3 # {}", 0)("x")
	assert.Equal(t, "[exit 3 # 'x': exit status 3]", got)
}

func TestCommand_Truncates(t *testing.T) {
	got := Command("printf 'abcdefgh' #", 4)("x")
	assert.Equal(t, "abcd", got)
}

func TestCommand_TimeoutWithBackgroundChild(t *testing.T) {
	old := CommandTimeout
	CommandTimeout = 200 * time.Millisecond
	t.Cleanup(func() { CommandTimeout = old })

	// The background sleep keeps the output pipe open after sh is killed.
	start := time.Now()
	got := Command("sleep 5 & wait; echo {}", 0)("x")
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 2*time.Second)
	assert.Contains(t, got, "[timed out after 200ms]")
}

func TestFile_DrivesSelectionWidget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("first file\n"), 0o644))

	sel := ui.New([]string{path, "not-a-path"}, File(0))
	assert.Equal(t, "first file\n", sel.PreviewText())

	sel.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "not-a-path", sel.PreviewText())
}
