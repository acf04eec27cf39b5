package textdiff_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdlstyle/pkg/textdiff"
)

func TestCompute_Equal(t *testing.T) {
	t.Parallel()

	diff := textdiff.Compute("style.rb", []byte("all\n"), []byte("all\n"))

	assert.True(t, diff.Empty())
	assert.Empty(t, diff.String())
	assert.Zero(t, diff.Hunks)
	assert.Zero(t, diff.Added)
	assert.Zero(t, diff.Removed)
}

func TestCompute_Unified(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		before      string
		after       string
		contains    []string
		added       int
		removed     int
		notContains string
	}{
		{
			name:     "changed line",
			before:   "a\nb\nc\n",
			after:    "a\nB\nc\n",
			contains: []string{"--- a/f\n+++ b/f\n", "\n a\n-b\n+B\n c\n"},
			added:    1,
			removed:  1,
		},
		{
			name:     "missing final newline",
			before:   "all",
			after:    "all\n",
			contains: []string{"-all\n", `\ No newline at end of file`, "+all\n"},
			added:    1,
			removed:  1,
		},
		{
			name:        "removed blank lines",
			before:      "all\n\n\n\nexclude_rule 'MD041'\n",
			after:       "all\n\nexclude_rule 'MD041'\n",
			contains:    []string{" exclude_rule 'MD041'\n"},
			removed:     2,
			notContains: "\n+",
		},
		{
			name:     "header-like content is counted",
			before:   "-- a\n",
			after:    "++ b\n",
			contains: []string{"\n--- a\n+++ b\n"},
			added:    1,
			removed:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diff := textdiff.Compute("f", []byte(tt.before), []byte(tt.after))

			assert.False(t, diff.Empty())
			assert.Equal(t, 1, diff.Hunks)
			for _, want := range tt.contains {
				assert.Contains(t, diff.String(), want)
			}
			if tt.notContains != "" {
				body := diff.String()[strings.Index(diff.String(), "@@"):]
				assert.NotContains(t, body, tt.notContains)
			}
			assert.Equal(t, tt.added, diff.Added)
			assert.Equal(t, tt.removed, diff.Removed)
		})
	}
}

func TestCompute_SeparateHunks(t *testing.T) {
	t.Parallel()

	var before, after strings.Builder
	for i := 1; i <= 20; i++ {
		line := fmt.Sprintf("l%d\n", i)
		before.WriteString(line)
		switch i {
		case 2:
			after.WriteString("X\n")
		case 19:
			after.WriteString("Y\n")
		default:
			after.WriteString(line)
		}
	}

	diff := textdiff.Compute("f", []byte(before.String()), []byte(after.String()))

	assert.Equal(t, 2, diff.Hunks)
	assert.Equal(t, 2, diff.Added)
	assert.Equal(t, 2, diff.Removed)
	assert.NotContains(t, diff.String(), " l10\n")
}

func TestCompute_NearbyChangesShareHunk(t *testing.T) {
	t.Parallel()

	before := "a\nb\nc\nd\ne\nf\ng\n"
	after := "A\nb\nc\nd\ne\nf\nG\n"

	diff := textdiff.Compute("f", []byte(before), []byte(after))

	assert.Equal(t, 1, diff.Hunks)
}

func TestCompute_AbsolutePath(t *testing.T) {
	t.Parallel()

	diff := textdiff.Compute("/tmp/style.rb", []byte("a\n"), []byte("b\n"))
	assert.True(t, strings.HasPrefix(diff.String(), "--- a/tmp/style.rb\n+++ b/tmp/style.rb\n"))
}

func TestDiff_NilIsEmpty(t *testing.T) {
	t.Parallel()

	var diff *textdiff.Diff
	assert.True(t, diff.Empty())
	assert.Empty(t, diff.String())
}
