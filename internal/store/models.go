package store

import "time"

// Kind names the capability that produced a history entry.
type Kind string

const (
	KindGrep Kind = "grep"
	KindGlob Kind = "glob"
	KindRead Kind = "read"
)

// Entry is one recorded call. Only the query and its counts are kept, never
// file contents.
type Entry struct {
	ID        string
	Kind      Kind
	Pattern   string // regex for grep, glob for glob, file path for read
	Path      string
	Include   string
	Count     int
	Truncated bool
	CreatedAt time.Time
}
