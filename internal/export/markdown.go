package export

import "strings"

// MarkdownTable renders header and rows as a GitHub-flavored markdown table.
func MarkdownTable(header []string, rows [][]string) string {
	if len(header) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString("| " + strings.Join(header, " | ") + " |\n")

	separators := make([]string, len(header))
	for i := range separators {
		separators[i] = "---"
	}
	b.WriteString("| " + strings.Join(separators, " | ") + " |\n")

	for _, row := range rows {
		cells := make([]string, len(header))
		for i := range header {
			if i < len(row) {
				cells[i] = row[i]
			}
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return b.String()
}
