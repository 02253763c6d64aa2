package commentgen

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// DefaultIgnoreFileName is looked up directly under the scan root.
const DefaultIgnoreFileName = ".commentignore"

// IgnoreMatcher answers whether a root-relative path is excluded.
// The zero value and a nil matcher exclude nothing.
type IgnoreMatcher struct {
	matcher  gitignore.Matcher
	patterns int
}

// NewIgnoreMatcher compiles gitignore-style lines. Blank lines and lines
// starting with '#' are skipped.
func NewIgnoreMatcher(lines []string) *IgnoreMatcher {
	patterns := make([]gitignore.Pattern, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if len(patterns) == 0 {
		return &IgnoreMatcher{}
	}
	return &IgnoreMatcher{
		matcher:  gitignore.NewMatcher(patterns),
		patterns: len(patterns),
	}
}

// LoadIgnoreMatcher reads fileName from root and appends extra patterns.
// A missing or unreadable file contributes no rules.
func LoadIgnoreMatcher(root, fileName string, extra []string) *IgnoreMatcher {
	if fileName == "" {
		fileName = DefaultIgnoreFileName
	}

	var lines []string
	path := filepath.Join(root, fileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		lines = strings.Split(string(data), "\n")
		slog.Debug("loaded ignore file", "path", path)
	case errors.Is(err, fs.ErrNotExist):
	default:
		slog.Warn("ignore file unreadable, continuing without it", "path", path, "error", err)
	}

	lines = append(lines, extra...)
	return NewIgnoreMatcher(lines)
}

// Ignored reports whether relPath (slash-separated, relative to the root)
// matches the effective pattern set. The last matching pattern wins.
func (m *IgnoreMatcher) Ignored(relPath string) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	relPath = strings.TrimPrefix(filepath.ToSlash(relPath), "./")
	if relPath == "" || relPath == "." {
		return false
	}
	return m.matcher.Match(strings.Split(relPath, "/"), false)
}

// Len returns the number of compiled patterns.
func (m *IgnoreMatcher) Len() int {
	if m == nil {
		return 0
	}
	return m.patterns
}
