package markdown

import (
	"strings"
)

var (
	tableRowPattern       = compile(`^\|(.+)\|$`)
	tableSeparatorPattern = compile(`^\|[-| :]+\|$`)
)

// convertTable converts buffered Markdown table rows. Rows before the first
// separator row become header rows (||a||b||), rows after it body rows
// (|1|2|). Without a separator every row is a body row.
func convertTable(rows []string) []string {
	sep := -1
	for i, row := range rows {
		if tableSeparatorPattern.MatchString(row) {
			sep = i
			break
		}
	}

	result := make([]string, 0, len(rows))
	if sep < 0 {
		for _, row := range rows {
			result = append(result, formatTableRow(row, false))
		}
		return result
	}

	for _, row := range rows[:sep] {
		result = append(result, formatTableRow(row, true))
	}
	for _, row := range rows[sep+1:] {
		if tableSeparatorPattern.MatchString(row) {
			continue
		}
		result = append(result, formatTableRow(row, false))
	}
	return result
}

// formatTableRow trims the outer pipes of row and every cell, then joins
// the cells with "||" for a header row or "|" otherwise.
func formatTableRow(row string, header bool) string {
	inner := trimSpace(row)
	inner = strings.TrimPrefix(inner, "|")
	inner = strings.TrimSuffix(inner, "|")

	cells := strings.Split(inner, "|")
	for i, cell := range cells {
		cells[i] = trimSpace(cell)
	}

	delim := "|"
	if header {
		delim = "||"
	}
	return delim + strings.Join(cells, delim) + delim
}
