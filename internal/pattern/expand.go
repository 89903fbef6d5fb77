// Package pattern expands the brace shorthand used by include filters and
// glob patterns.
package pattern

import "strings"

// Expand replaces the first {a,b,c} group in s with each of its options and
// returns one string per option, in order. Only the first group is expanded
// and groups do not nest. A string without a complete group is returned as
// the only element. An empty string yields no patterns at all, which callers
// treat as "no filter".
func Expand(s string) []string {
	if s == "" {
		return nil
	}
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return []string{s}
	}
	end := strings.IndexByte(s[start+1:], '}')
	if end < 0 {
		return []string{s}
	}
	end += start + 1

	prefix, suffix := s[:start], s[end+1:]
	options := strings.Split(s[start+1:end], ",")
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, prefix+opt+suffix)
	}
	return out
}
