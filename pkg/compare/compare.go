// Package compare holds line-level helpers for comparing configuration text.
package compare

import "strings"

// LineSet answers exact membership queries over a line sequence.
type LineSet map[string]struct{}

func NewLineSet(lines []string) LineSet {
	set := make(LineSet, len(lines))
	for _, l := range lines {
		set[l] = struct{}{}
	}
	return set
}

func (s LineSet) Contains(line string) bool {
	_, ok := s[line]
	return ok
}

// FirstToken returns the leading whitespace-delimited token of line, or "" when
// the line has none.
func FirstToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// SameCommandFamily reports whether two lines start with the same keyword.
// Two token-less lines are considered the same family.
func SameCommandFamily(a, b string) bool {
	return FirstToken(a) == FirstToken(b)
}
