// Package textdiff renders unified diffs, used to preview what formatting a
// style file would change.
package textdiff

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// Diff is the unified diff between two versions of a file.
type Diff struct {
	// Name is the file name used in the a/ and b/ headers, without a
	// leading slash.
	Name string

	// Text is the rendered diff, empty when both sides are equal.
	Text string

	Hunks   int
	Added   int
	Removed int
}

// Compute diffs before against after with three lines of context.
func Compute(name string, before, after []byte) *Diff {
	diff := &Diff{Name: name}
	if string(before) == string(after) {
		return diff
	}

	label := strings.TrimPrefix(name, "/")
	diff.Text = udiff.Unified("a/"+label, "b/"+label, string(before), string(after))
	diff.count()
	return diff
}

// count tallies hunks and changed lines. File headers precede the first
// hunk, so they are skipped.
func (d *Diff) count() {
	inHunk := false
	for _, line := range strings.Split(d.Text, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			inHunk = true
			d.Hunks++
		case !inHunk:
		case strings.HasPrefix(line, "+"):
			d.Added++
		case strings.HasPrefix(line, "-"):
			d.Removed++
		}
	}
}

// Empty reports whether the two sides were identical.
func (d *Diff) Empty() bool {
	return d == nil || d.Text == ""
}

// String returns the unified diff text.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.Text
}
