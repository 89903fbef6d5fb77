// Package grep implements recursive regular-expression content search: it
// walks a directory tree, streams matching lines out of every candidate file
// under a global result cap, ranks them by file recency and renders a
// grouped text report.
package grep

import (
	"os"
	"regexp"

	"sift/internal/errs"
	"sift/internal/logger"
	"sift/internal/pattern"
)

const (
	// DefaultLimit is used when a request does not set a positive limit.
	DefaultLimit = 100
	// MaxFileSize is the largest file, in bytes, that is scanned.
	MaxFileSize = 2_000_000
	// MaxLineLength is the number of characters kept from a matching line.
	MaxLineLength = 2000
	// Ellipsis is appended to lines cut at MaxLineLength.
	Ellipsis = "..."
)

// Request describes one content search.
type Request struct {
	Pattern string // regular expression, RE2 syntax
	Root    string // directory to search
	Include string // optional brace-shorthand glob filter, e.g. "*.{ts,tsx}"
	Limit   int    // global cap on returned matches; <= 0 means DefaultLimit

	// Log receives per-file diagnostics. Nil means silent.
	Log logger.Logger
}

// query is a validated, compiled Request.
type query struct {
	re      *regexp.Regexp
	root    string
	filters []string
	limit   int
	log     logger.Logger
}

func (r Request) compile() (*query, error) {
	if r.Pattern == "" {
		return nil, errs.Required("pattern")
	}
	root := r.Root
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errs.NotADirectory(root)
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return nil, errs.InvalidPattern(err)
	}
	filters := pattern.Expand(r.Include)
	limit := r.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &query{
		re:      re,
		root:    root,
		filters: filters,
		limit:   limit,
		log:     logger.OrNop(r.Log),
	}, nil
}
