// Package glob finds files by name pattern under a root directory and
// returns them newest first.
package glob

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"sift/internal/errs"
	"sift/internal/logger"
	"sift/internal/pattern"
)

// DefaultLimit is used when a request does not set a positive limit.
const DefaultLimit = 100

// NoResults is the output of a glob without matches.
const NoResults = "No files found"

// Request describes one discovery call.
type Request struct {
	Pattern string // brace-shorthand glob; "**" crosses directories
	Root    string // directory the pattern is evaluated against
	Limit   int    // <= 0 means DefaultLimit

	Log logger.Logger
}

// File is one discovered regular file.
type File struct {
	Path    string // cleaned absolute path
	RelPath string // relative to the root as given
	ModTime int64  // Unix nanoseconds, 0 if unknown
}

// Result holds discovered files, newest first.
type Result struct {
	Root      string
	Files     []File
	Truncated bool // more than Limit files matched
}

// Find validates req, evaluates every brace alternative of the pattern
// against the root and returns the regular files it matched, deduplicated by
// absolute path and sorted by modification time, newest first.
func Find(req Request) (*Result, error) {
	if req.Pattern == "" {
		return nil, errs.Required("pattern")
	}
	root := req.Root
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errs.NotADirectory(root)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errs.NotADirectory(root)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	log := logger.OrNop(req.Log)

	seen := make(map[string]bool)
	var files []File
	for _, p := range pattern.Expand(req.Pattern) {
		base, pat := splitPattern(absRoot, p)
		matches, err := doublestar.Glob(os.DirFS(base), pat)
		if err != nil {
			log.Debugf("glob %s in %s: %v", pat, base, err)
			continue
		}
		for _, m := range matches {
			full := filepath.Clean(filepath.Join(base, filepath.FromSlash(m)))
			if seen[full] {
				continue
			}
			fi, err := os.Stat(full)
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
			seen[full] = true
			files = append(files, File{
				Path:    full,
				RelPath: relTo(absRoot, full),
				ModTime: fi.ModTime().UnixNano(),
			})
		}
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].ModTime > files[j].ModTime
	})

	res := &Result{Root: root}
	if len(files) > limit {
		files = files[:limit]
		res.Truncated = true
	}
	res.Files = files
	return res, nil
}

// splitPattern resolves the alternative p against root. Absolute patterns
// carry their own base directory. Braces left in p are literal. The returned
// pattern is slash-separated and unrooted, as fs.FS requires.
func splitPattern(root, p string) (string, string) {
	p = pattern.Literal(filepath.ToSlash(p))
	if filepath.IsAbs(p) {
		base, pat := doublestar.SplitPattern(p)
		return filepath.FromSlash(base), pat
	}
	joined := filepath.ToSlash(filepath.Join(root, p))
	base, pat := doublestar.SplitPattern(joined)
	return filepath.FromSlash(base), pat
}

func relTo(root, full string) string {
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return full
	}
	return rel
}

// Paths returns the relative paths of the result in order.
func (r *Result) Paths() []string {
	out := make([]string, len(r.Files))
	for i, f := range r.Files {
		out[i] = f.RelPath
	}
	return out
}

// Output renders the result as newline-separated relative paths.
func (r *Result) Output() string {
	if len(r.Files) == 0 {
		return NoResults
	}
	return strings.Join(r.Paths(), "\n")
}
