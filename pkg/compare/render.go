package compare

import "github.com/carlmontanari/difflibgo/difflibgo"

// Diff line prefixes produced by RenderDiff.
const (
	DiffSubtraction = "- "
	DiffAddition    = "+ "
	DiffUnchanged   = "  "
	DiffHint        = "? "
)

// RenderDiff renders an ndiff-style line diff from a to b. Lines only in a are
// prefixed with "- ", lines only in b with "+ ", and intraline hints with "? ".
func RenderDiff(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	d := difflibgo.Differ{}
	return d.Compare(a, b)
}
