package events

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastLine(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		path := writeLog(t, t.TempDir(), "a.jsonl", `{"state":"working","cwd":"/tmp","ts":1000}`)

		line, ok := LastLine(path)
		require.True(t, ok)
		assert.Contains(t, line, `"state":"working"`)
	})

	t.Run("multiple lines returns the last", func(t *testing.T) {
		path := writeLog(t, t.TempDir(), "a.jsonl",
			`{"state":"working","cwd":"/tmp","ts":1000}`,
			`{"state":"idle","cwd":"/tmp","ts":1001}`,
		)

		line, ok := LastLine(path)
		require.True(t, ok)
		assert.Contains(t, line, `"state":"idle"`)
	})

	t.Run("skips trailing blank lines and trims", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.jsonl")
		require.NoError(t, os.WriteFile(path, []byte("first\n  second  \n\n   \n\t\n"), 0o644))

		line, ok := LastLine(path)
		require.True(t, ok)
		assert.Equal(t, "second", line)
	})

	t.Run("last line without newline", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.jsonl")
		require.NoError(t, os.WriteFile(path, []byte("first\nsecond"), 0o644))

		line, ok := LastLine(path)
		require.True(t, ok)
		assert.Equal(t, "second", line)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeLog(t, t.TempDir(), "a.jsonl")

		_, ok := LastLine(path)
		assert.False(t, ok)
	})

	t.Run("whitespace only file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.jsonl")
		require.NoError(t, os.WriteFile(path, []byte("\n\n  \n"), 0o644))

		_, ok := LastLine(path)
		assert.False(t, ok)
	})

	t.Run("missing file", func(t *testing.T) {
		_, ok := LastLine("/nonexistent/test.jsonl")
		assert.False(t, ok)
	})
}

func TestLastLineLargeFile(t *testing.T) {
	t.Run("recovers the true last line after seeking", func(t *testing.T) {
		dir := t.TempDir()
		lines := []string{`{"state":"idle","cwd":"/a","pane_id":"%0","ts":1}`}
		for i := 2; len(strings.Join(lines, "\n")) < 2048; i++ {
			lines = append(lines, fmt.Sprintf(`{"state":"working","cwd":"/project","pane_id":"%%0","ts":%d}`, i))
		}
		want := lines[len(lines)-1]
		path := writeLog(t, dir, "big.jsonl", lines...)

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(tailWindow))

		line, ok := LastLine(path)
		require.True(t, ok)
		assert.Equal(t, want, line)

		rec, err := ParseRecord(line)
		require.NoError(t, err)
		assert.Equal(t, uint64(len(lines)), rec.TS)
	})

	t.Run("drops the fragment the seek lands in", func(t *testing.T) {
		dir := t.TempDir()
		long := `{"state":"working","cwd":"/` + strings.Repeat("x", 1500) + `","pane_id":"%1","ts":1}`
		short := `{"state":"idle","cwd":"/p","pane_id":"%1","ts":2}`
		path := writeLog(t, dir, "a.jsonl", long, short)

		line, ok := LastLine(path)
		require.True(t, ok)
		assert.Equal(t, short, line)
	})

	t.Run("only partial line in window yields nothing", func(t *testing.T) {
		dir := t.TempDir()
		long := `{"state":"working","cwd":"/` + strings.Repeat("x", 1500) + `","ts":1}`
		path := writeLog(t, dir, "a.jsonl", long)

		_, ok := LastLine(path)
		assert.False(t, ok)
	})
}
