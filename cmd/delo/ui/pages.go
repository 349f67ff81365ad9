package ui

import "strings"

// highlightRow marks the cursor row of a rendered SimpleTable. The
// first two lines of a titleless table are the header and the divider.
func highlightRow(table string, row int, styles Styles) string {
	lines := strings.Split(table, "\n")
	idx := 2 + row
	for i := range lines {
		prefix := "  "
		if i > 1 && i < len(lines)-2 {
			if i == idx {
				prefix = styles.Selected.Render(">") + " "
			}
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
