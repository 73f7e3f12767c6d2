// Package events reads and maintains the per-session hook event logs.
package events

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// tailWindow is how many bytes from the end of a log LastLine inspects.
// Records are well under 200 bytes, so the final one always fits.
const tailWindow = 1024

// LastLine returns the last non-blank line of the file at path, trimmed.
// It reports false when the file is missing, empty or unreadable.
func LastLine(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.Size() == 0 {
		return "", false
	}

	start := info.Size() - tailWindow
	if start < 0 {
		start = 0
	}
	if _, err := f.Seek(start, io.SeekStart); err != nil {
		return "", false
	}

	r := bufio.NewReader(f)

	// Mid-file seeks land inside a line; drop the fragment.
	if start > 0 {
		if _, err := r.ReadString('\n'); err != nil {
			return "", false
		}
	}

	var last string
	found := false
	for {
		line, err := r.ReadString('\n')
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			last = trimmed
			found = true
		}
		if err != nil {
			break
		}
	}
	return last, found
}
