package pretty

import "strings"

// FormatDiff colors a unified diff line by line.
func (s *Styles) FormatDiff(diff string) string {
	if diff == "" {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	var builder strings.Builder
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
			builder.WriteString(s.DiffHeader.Render(line))
		case strings.HasPrefix(line, "@@"):
			builder.WriteString(s.DiffHunk.Render(line))
		case strings.HasPrefix(line, "+"):
			builder.WriteString(s.DiffAdd.Render(line))
		case strings.HasPrefix(line, "-"):
			builder.WriteString(s.DiffRemove.Render(line))
		default:
			builder.WriteString(line)
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
