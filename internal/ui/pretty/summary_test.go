package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
)

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats pretty.ProfileStats
		want  string
	}{
		{
			name:  "clean",
			stats: pretty.ProfileStats{Rules: 41, Enabled: 38, Parameterized: 6},
			want:  "38 of 41 rules enabled, 6 parameterized, no problems\n",
		},
		{
			name:  "one warning",
			stats: pretty.ProfileStats{Rules: 41, Enabled: 41, Warnings: 1},
			want:  "41 of 41 rules enabled, 0 parameterized, 1 warning\n",
		},
		{
			name:  "errors win",
			stats: pretty.ProfileStats{Rules: 41, Errors: 2, Warnings: 3},
			want:  "2 errors\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	clean := styles.FormatSummary(pretty.ProfileStats{Rules: 2, Enabled: 1})
	assert.Contains(t, clean, "Style file OK")
	assert.NotContains(t, clean, "Warnings:")

	warned := styles.FormatSummary(pretty.ProfileStats{Rules: 2, Enabled: 1, Warnings: 2})
	assert.Contains(t, warned, "Warnings:          2")
	assert.Contains(t, warned, "loaded with warnings")

	failed := styles.FormatSummary(pretty.ProfileStats{Errors: 1})
	assert.Contains(t, failed, "Style file is invalid")
}
