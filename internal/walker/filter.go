package walker

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude selects Markdown files when no include pattern is given.
var DefaultInclude = []string{"*.md"}

// isHidden reports whether a file name should never be bundled: dot files,
// editor backups and lock files.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasPrefix(name, "~$") ||
		strings.HasSuffix(name, "~")
}

// MatchesInclude returns true if the given file name matches any of the
// include patterns. If patterns is empty, DefaultInclude applies.
func MatchesInclude(name string, patterns []string) bool {
	if len(patterns) == 0 {
		patterns = DefaultInclude
	}
	return matchesAny(name, patterns)
}

// MatchesExclude returns true if the given file name matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(name, patterns)
}

// matchesAny checks if name matches any of the given glob patterns.
// Patterns are doublestar globs; a pattern containing a directory part is
// matched against the base name too so "docs/*.md" still selects "a.md".
func matchesAny(name string, patterns []string) bool {
	normalized := filepath.ToSlash(name)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}

		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}

		base := pattern
		if i := strings.LastIndex(pattern, "/"); i >= 0 {
			base = pattern[i+1:]
		}
		if base != pattern {
			if matched, err := doublestar.Match(base, normalized); err == nil && matched {
				return true
			}
		}
	}
	return false
}
