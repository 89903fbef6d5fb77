// Package reader returns a window of lines from a text file.
package reader

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"sift/internal/errs"
)

// DefaultLimit is the window size used when a request does not set one.
const DefaultLimit = 200

// Request selects lines [Offset, Offset+Limit) of a file.
type Request struct {
	Path   string
	Offset int // 0-based; negative clamps to 0
	Limit  int // <= 0 means DefaultLimit
}

// Window is the slice of the file that was read.
type Window struct {
	Path          string `json:"path"`
	TotalLines    int    `json:"totalLines"`
	Offset        int    `json:"offset"`
	LinesReturned int    `json:"linesReturned"`
	Content       string `json:"content"`
}

// Read loads the file and returns the requested window with line endings
// kept verbatim. An offset past the end yields an empty window, not an error.
func Read(req Request) (*Window, error) {
	if req.Path == "" {
		return nil, errs.Required("path")
	}
	info, err := os.Stat(req.Path)
	if err != nil || info.IsDir() {
		return nil, errs.FileNotFound(req.Path)
	}

	lines, err := readLines(req.Path)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	total := len(lines)
	start := min(max(req.Offset, 0), total)
	end := min(total, start+limit)

	return &Window{
		Path:          req.Path,
		TotalLines:    total,
		Offset:        start,
		LinesReturned: end - start,
		Content:       strings.Join(lines[start:end], ""),
	}, nil
}

// readLines splits the file after every '\n', keeping terminators. A final
// line without one is still a line.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.FileNotFound(path)
	}
	defer f.Close()

	br := bufio.NewReader(transform.NewReader(f, unicode.UTF8.NewDecoder()))
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
