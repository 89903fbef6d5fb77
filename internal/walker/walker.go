package walker

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"sift/internal/logger"
)

// Candidate is a regular file discovered under the walk root.
type Candidate struct {
	Path    string // root as given, a separator, then RelPath
	RelPath string // slash-separated, relative to the root
}

// ErrStop is returned by a VisitFunc to end the walk early. Walk reports it
// as a normal completion.
var ErrStop = errors.New("walker: stop")

// VisitFunc receives each candidate. Returning ErrStop ends the walk; any
// other non-nil error aborts it and is returned from Walk.
type VisitFunc func(c Candidate) error

// Walk traverses the tree rooted at root depth-first in lexical order and
// calls fn for every regular file. Directories rejected by ShouldVisitDir are
// pruned. Symlinks are not descended into; a symlink that resolves to a
// regular file is reported like one. Unreadable entries are skipped and only
// logged at debug level.
func Walk(root string, log logger.Logger, fn VisitFunc) error {
	log = logger.OrNop(log)

	walkRoot := root
	if fi, err := os.Lstat(root); err == nil && fi.Mode()&fs.ModeSymlink != 0 {
		// Follow a symlinked root the way a shell `cd` would.
		walkRoot = root + string(filepath.Separator)
	}

	err := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debugf("skip %s: %v", path, err)
			if d != nil && d.IsDir() && path != walkRoot {
				return filepath.SkipDir
			}
			return nil // skip errors, keep walking
		}

		if d.IsDir() {
			if path == walkRoot {
				return nil
			}
			if !ShouldVisitDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			if d.Type()&fs.ModeSymlink == 0 {
				return nil // sockets, devices, pipes
			}
			target, err := os.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				return nil
			}
		}

		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return nil
		}
		return fn(Candidate{
			Path:    joinRoot(root, rel),
			RelPath: filepath.ToSlash(rel),
		})
	})
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

// joinRoot appends rel to root without cleaning root, so "./src" stays
// "./src/a.go" in reports.
func joinRoot(root, rel string) string {
	if root == "" {
		return rel
	}
	if strings.HasSuffix(root, string(filepath.Separator)) || strings.HasSuffix(root, "/") {
		return root + rel
	}
	return root + string(filepath.Separator) + rel
}
