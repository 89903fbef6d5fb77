package grep

import (
	"bufio"
	"bytes"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"sift/internal/walker"
)

// Match is one matching line.
type Match struct {
	Path      string // search root joined with the file's relative path
	ModTime   int64  // file modification time in Unix nanoseconds, 0 if unknown
	Line      int    // 1-based
	Text      string // line text without its terminator, possibly cut
	Truncated bool   // Text was cut at MaxLineLength
}

// ResultSet is the outcome of a scan. Matches are in encounter order until
// Rank is applied.
type ResultSet struct {
	Root      string
	Matches   []Match
	Truncated bool // more matches existed than Limit allowed
}

// Scan validates req and collects matching lines from every candidate file
// under req.Root. Collection stops once req.Limit matches are held and one
// more qualifying line has been seen; that line sets Truncated and is
// dropped. Files that cannot be stat'ed, opened or read are skipped.
func Scan(req Request) (*ResultSet, error) {
	q, err := req.compile()
	if err != nil {
		return nil, err
	}

	rs := &ResultSet{Root: q.root}
	err = walker.Walk(q.root, q.log, func(c walker.Candidate) error {
		if !walker.MatchesInclude(c.RelPath, q.filters) {
			return nil
		}
		if q.scanFile(c.Path, rs) {
			return walker.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// scanFile appends the file's matching lines to rs and reports whether the
// global limit was exceeded.
func (q *query) scanFile(path string, rs *ResultSet) (stop bool) {
	info, err := os.Stat(path)
	if err != nil {
		q.log.Debugf("skip %s: %v", path, err)
		return false
	}
	if info.Size() > MaxFileSize {
		q.log.Debugf("skip %s: %d bytes exceeds size ceiling", path, info.Size())
		return false
	}
	modTime := info.ModTime().UnixNano()

	f, err := os.Open(path)
	if err != nil {
		q.log.Debugf("skip %s: %v", path, err)
		return false
	}
	defer f.Close()

	// Invalid UTF-8 becomes U+FFFD instead of failing the file.
	decoded := transform.NewReader(f, unicode.UTF8.NewDecoder())
	sc := bufio.NewScanner(decoded)
	sc.Buffer(make([]byte, 0, 64*1024), 4*MaxFileSize)
	sc.Split(scanLines)

	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		if !q.re.MatchString(line) {
			continue
		}
		if len(rs.Matches) >= q.limit {
			rs.Truncated = true
			return true
		}
		text, cut := clipLine(line)
		rs.Matches = append(rs.Matches, Match{
			Path:      path,
			ModTime:   modTime,
			Line:      lineNum,
			Text:      text,
			Truncated: cut,
		})
	}
	if err := sc.Err(); err != nil {
		q.log.Debugf("read %s: %v", path, err)
	}
	return false
}

// scanLines is bufio.ScanLines that also ends a line at a lone '\r', so
// "\n", "\r\n" and "\r" are all terminators.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			// need the next byte to tell "\r" from "\r\n"
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// clipLine cuts s to MaxLineLength characters and marks the cut.
func clipLine(s string) (string, bool) {
	if len(s) <= MaxLineLength || utf8.RuneCountInString(s) <= MaxLineLength {
		return s, false
	}
	n := 0
	for i := range s {
		if n == MaxLineLength {
			return s[:i] + Ellipsis, true
		}
		n++
	}
	return s, false
}
