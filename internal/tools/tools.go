// Package tools exposes grep, glob and read as request/response calls with
// the field names hosting surfaces (CLI, MCP, TUI) speak. It applies the
// per-capability limit bounds and records successful calls to history.
package tools

import (
	"sift/internal/errs"
	"sift/internal/glob"
	"sift/internal/grep"
	"sift/internal/logger"
	"sift/internal/reader"
	"sift/internal/store"
)

// Upper bounds on caller-supplied limits. A limit outside [1, max] is
// rejected; zero selects the capability's default.
const (
	MaxSearchLimit = 500
	MaxGlobLimit   = 5000
	MaxReadLimit   = 10_000
)

// SearchParams is a content search request.
type SearchParams struct {
	Pattern string `json:"pattern"`
	Path    string `json:"path,omitempty"`
	Include string `json:"include,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// SearchResponse is the result of a content search.
type SearchResponse struct {
	Path      string `json:"path"`
	Count     int    `json:"count"`
	Truncated bool   `json:"truncated"`
	Output    string `json:"output"`
}

// GlobParams is a discovery request.
type GlobParams struct {
	Pattern string `json:"pattern"`
	Path    string `json:"path,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// GlobResponse is the result of a discovery call.
type GlobResponse struct {
	Path      string   `json:"path"`
	Count     int      `json:"count"`
	Truncated bool     `json:"truncated"`
	Output    string   `json:"output"`
	Matches   []string `json:"matches"`
}

// ReadParams is a windowed read request.
type ReadParams struct {
	Path   string `json:"path"`
	Offset int    `json:"offset,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// ReadResponse is the window that was read.
type ReadResponse = reader.Window

// Service runs the three capabilities. The zero value is usable.
type Service struct {
	// Log receives skipped-file diagnostics and history write failures.
	Log logger.Logger
	// History, when set, records every successful call.
	History store.History
}

// Search runs a content search.
func (s *Service) Search(p SearchParams) (*SearchResponse, error) {
	limit, err := bound(p.Limit, grep.DefaultLimit, MaxSearchLimit)
	if err != nil {
		return nil, err
	}
	rep, err := grep.Search(grep.Request{
		Pattern: p.Pattern,
		Root:    defaultPath(p.Path),
		Include: p.Include,
		Limit:   limit,
		Log:     s.Log,
	})
	if err != nil {
		return nil, err
	}
	s.record(store.Entry{
		Kind:      store.KindGrep,
		Pattern:   p.Pattern,
		Path:      rep.Path,
		Include:   p.Include,
		Count:     rep.Count,
		Truncated: rep.Truncated,
	})
	return &SearchResponse{
		Path:      rep.Path,
		Count:     rep.Count,
		Truncated: rep.Truncated,
		Output:    rep.Output,
	}, nil
}

// Glob runs a file discovery.
func (s *Service) Glob(p GlobParams) (*GlobResponse, error) {
	limit, err := bound(p.Limit, glob.DefaultLimit, MaxGlobLimit)
	if err != nil {
		return nil, err
	}
	res, err := glob.Find(glob.Request{
		Pattern: p.Pattern,
		Root:    defaultPath(p.Path),
		Limit:   limit,
		Log:     s.Log,
	})
	if err != nil {
		return nil, err
	}
	matches := res.Paths()
	s.record(store.Entry{
		Kind:      store.KindGlob,
		Pattern:   p.Pattern,
		Path:      res.Root,
		Count:     len(matches),
		Truncated: res.Truncated,
	})
	return &GlobResponse{
		Path:      res.Root,
		Count:     len(matches),
		Truncated: res.Truncated,
		Output:    res.Output(),
		Matches:   matches,
	}, nil
}

// Read returns a window of a file.
func (s *Service) Read(p ReadParams) (*ReadResponse, error) {
	limit, err := bound(p.Limit, reader.DefaultLimit, MaxReadLimit)
	if err != nil {
		return nil, err
	}
	w, err := reader.Read(reader.Request{
		Path:   p.Path,
		Offset: p.Offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	s.record(store.Entry{
		Kind:    store.KindRead,
		Pattern: p.Path,
		Path:    p.Path,
		Count:   w.LinesReturned,
	})
	return w, nil
}

func (s *Service) record(e store.Entry) {
	if s.History == nil {
		return
	}
	if err := s.History.Record(e); err != nil {
		logger.OrNop(s.Log).Warnf("record history: %v", err)
	}
}

func defaultPath(p string) string {
	if p == "" {
		return "."
	}
	return p
}

// bound maps an unset limit to def and rejects one outside [1, ceil].
func bound(limit, def, ceil int) (int, error) {
	if limit == 0 {
		return def, nil
	}
	if limit < 1 || limit > ceil {
		return 0, errs.OutOfRange("limit", limit, 1, ceil)
	}
	return limit, nil
}
