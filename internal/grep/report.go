package grep

import (
	"fmt"
	"strings"
)

const (
	// NoResults is the whole output of a search without matches.
	NoResults = "No files found"
	// TruncatedNotice closes the output of a search that hit its limit.
	TruncatedNotice = "(Results are truncated. Consider using a more specific path or pattern.)"
)

// Report is the rendered result of a search.
type Report struct {
	Path      string `json:"path"`
	Count     int    `json:"count"`
	Truncated bool   `json:"truncated"`
	Output    string `json:"output"`
}

// Format renders ranked matches grouped by file. Consecutive matches from
// the same file share one header.
func Format(rs *ResultSet) Report {
	rep := Report{
		Path:      rs.Root,
		Count:     len(rs.Matches),
		Truncated: rs.Truncated,
	}
	if len(rs.Matches) == 0 {
		rep.Output = NoResults
		return rep
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d matches", len(rs.Matches))
	current := ""
	for i, m := range rs.Matches {
		if i == 0 || m.Path != current {
			if i > 0 {
				sb.WriteString("\n")
			}
			current = m.Path
			fmt.Fprintf(&sb, "\n%s:", m.Path)
		}
		fmt.Fprintf(&sb, "\n  Line %d: %s", m.Line, m.Text)
	}
	if rs.Truncated {
		sb.WriteString("\n\n" + TruncatedNotice)
	}
	rep.Output = sb.String()
	return rep
}

// Search runs Scan, Rank and Format.
func Search(req Request) (*Report, error) {
	rs, err := Scan(req)
	if err != nil {
		return nil, err
	}
	Rank(rs.Matches)
	rep := Format(rs)
	return &rep, nil
}
