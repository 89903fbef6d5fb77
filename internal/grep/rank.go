package grep

import "sort"

// Rank orders matches by file modification time, newest first. The sort is
// stable, so files with equal times keep their encounter order and lines
// within a file stay ascending.
func Rank(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].ModTime > matches[j].ModTime
	})
}
