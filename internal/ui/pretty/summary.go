package pretty

import (
	"fmt"
	"strconv"
	"strings"
)

const summaryDividerWidth = 40

// ProfileStats summarizes a checked style profile.
type ProfileStats struct {
	Rules         int // rules in the catalog plus any unknown ones mentioned
	Enabled       int
	Parameterized int
	Warnings      int
	Errors        int
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatSummaryOneLine formats profile statistics as a single line.
// Example: "38 of 41 rules enabled, 6 parameterized, 1 warning".
func (s *Styles) FormatSummaryOneLine(stats ProfileStats) string {
	if stats.Errors > 0 {
		return s.Failure.Render(plural(stats.Errors, "error")) + "\n"
	}

	parts := []string{
		fmt.Sprintf("%d of %d rules enabled", stats.Enabled, stats.Rules),
		fmt.Sprintf("%d parameterized", stats.Parameterized),
	}

	if stats.Warnings > 0 {
		parts = append(parts, s.Warning.Render(plural(stats.Warnings, "warning")))
	} else {
		parts = append(parts, s.Success.Render("no problems"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats profile statistics as a summary block.
func (s *Styles) FormatSummary(stats ProfileStats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Rules:             " + strconv.Itoa(stats.Rules) + "\n")
	builder.WriteString("  Enabled:           " + s.Enabled.Render(strconv.Itoa(stats.Enabled)) + "\n")
	builder.WriteString("  Parameterized:     " + s.Param.Render(strconv.Itoa(stats.Parameterized)) + "\n")
	if stats.Warnings > 0 {
		builder.WriteString("  Warnings:          " + s.Warning.Render(strconv.Itoa(stats.Warnings)) + "\n")
	}
	if stats.Errors > 0 {
		builder.WriteString("  Errors:            " + s.Error.Render(strconv.Itoa(stats.Errors)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.Errors > 0:
		builder.WriteString(s.Failure.Render("Style file is invalid"))
	case stats.Warnings > 0:
		builder.WriteString(s.Warning.Render("Style file loaded with warnings"))
	default:
		builder.WriteString(s.Success.Render("Style file OK"))
	}
	builder.WriteString("\n")

	return builder.String()
}
