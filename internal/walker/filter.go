// Package walker discovers candidate files under a search root and decides
// which of them a search should look at.
package walker

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"sift/internal/pattern"
)

// skipDirs are never descended into. The set is fixed.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".venv":        true,
	"venv":         true,
}

// ShouldVisitDir reports whether a directory with the given base name is
// traversed.
func ShouldVisitDir(name string) bool {
	return !skipDirs[name]
}

// MatchesInclude reports whether relPath (slash-separated) passes the
// include filters, which are alternatives produced by pattern.Expand. No
// filters means everything passes. Matching is case-sensitive shell-glob
// (`*`, `?`, `[...]`, `**`); braces, commas and malformed classes in a
// filter are plain characters, so a malformed filter never fails.
//
// A filter without a slash is also tried against the base name, so "*.go"
// selects Go files at any depth. Unlike fnmatch, `*` never crosses a slash:
// "src/*.go" matches src/a.go but not src/x/a.go; use "src/**/*.go" for that.
func MatchesInclude(relPath string, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	base := path.Base(relPath)
	for _, f := range filters {
		p := pattern.Literal(f)
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
		if !strings.Contains(f, "/") {
			if ok, _ := doublestar.Match(p, base); ok {
				return true
			}
		}
	}
	return false
}
