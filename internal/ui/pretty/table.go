package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minColumnWidth   = 4
	minLastWidth     = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	ellipsis         = "..."
)

// RowKind selects the style applied to a table row.
type RowKind int

const (
	RowPlain RowKind = iota
	RowEnabled
	RowDisabled
	RowUnknown
)

// TableRow is one row of cells. Rows with Group set start a new group and
// are preceded by a light separator.
type TableRow struct {
	Cells []string
	Kind  RowKind
	Group bool
}

// TableFormatter formats rows as a styled fixed-width table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
	legend    string
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// WithLegend sets a line printed below the table.
func (t *TableFormatter) WithLegend(legend string) *TableFormatter {
	t.legend = legend
	return t
}

// Format renders headers and rows. The last column absorbs any width
// reduction needed to fit the terminal.
func (t *TableFormatter) Format(headers []string, rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.columnWidths(headers, rows)

	var builder strings.Builder

	builder.WriteString(t.styles.TableHeader.Render(formatCells(headers, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.separator(widths, heavySeparator))
	builder.WriteString("\n")

	for i, row := range rows {
		if row.Group && i > 0 {
			builder.WriteString(t.separator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		cells := make([]string, len(widths))
		for col := range widths {
			if col < len(row.Cells) {
				cells[col] = truncateString(row.Cells[col], widths[col])
			}
		}
		builder.WriteString(t.rowStyle(row.Kind).Render(formatCells(cells, widths)))
		builder.WriteString("\n")
	}

	builder.WriteString(t.separator(widths, heavySeparator))
	builder.WriteString("\n")

	if t.legend != "" {
		builder.WriteString(t.styles.TableLegend.Render(t.legend))
		builder.WriteString("\n")
	}

	return builder.String()
}

func (t *TableFormatter) columnWidths(headers []string, rows []TableRow) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = max(minColumnWidth, len(header))
	}
	for _, row := range rows {
		for i := range widths {
			if i < len(row.Cells) && len(row.Cells[i]) > widths[i] {
				widths[i] = len(row.Cells[i])
			}
		}
	}

	if total := totalWidth(widths); total > t.termWidth && len(widths) > 0 {
		last := len(widths) - 1
		widths[last] = max(minLastWidth, widths[last]-(total-t.termWidth))
	}
	return widths
}

func totalWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}
	return total
}

func formatCells(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = fmt.Sprintf("%-*s", width, cell)
	}
	return strings.TrimRight(" "+strings.Join(parts, "  "), " ")
}

func (t *TableFormatter) separator(widths []int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, totalWidth(widths)))
}

func (t *TableFormatter) rowStyle(kind RowKind) lipgloss.Style {
	switch kind {
	case RowEnabled:
		return t.styles.Enabled
	case RowDisabled:
		return t.styles.Disabled
	case RowUnknown:
		return t.styles.Unknown
	default:
		return lipgloss.NewStyle()
	}
}

// truncateString truncates a string to maxLen, adding ellipsis if needed.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return str[:maxLen]
	}
	return str[:maxLen-len(ellipsis)] + ellipsis
}
