// Package report renders run summaries as aligned markdown tables.
package report

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"sitegen/internal/pipeline"
)

// Status labels used in the summary table.
const (
	StatusWritten = "written"
	StatusFailed  = "failed"
)

// maxTitleWidth caps the title column so long titles do not blow up the table.
const maxTitleWidth = 48

// Table renders one row per processed record.
func Table(result *pipeline.Result) string {
	rows := [][]string{{"#", "File", "Title", "Status"}}

	for _, e := range result.Entries {
		status := StatusWritten
		if e.Err != nil {
			status = StatusFailed
		}

		rows = append(rows, []string{
			strconv.Itoa(e.Index),
			escapeCell(e.File),
			escapeCell(runewidth.Truncate(e.Title, maxTitleWidth, "...")),
			status,
		})
	}

	return strings.Join(alignRows(rows), "\n") + "\n"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Summary renders a one-line count of the result.
func Summary(result *pipeline.Result) string {
	return result.Kind.Collection() + ": " +
		strconv.Itoa(result.Generated()) + " written, " +
		strconv.Itoa(result.Failed()) + " failed"
}

// alignRows pads every cell to its column's display width and inserts a
// separator row after the header.
func alignRows(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}

	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)

	for _, row := range rows {
		for i, cell := range row {
			width := runewidth.StringWidth(cell)
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	// Separator needs at least "---"
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	result := make([]string, 0, len(rows)+1)

	for i, row := range rows {
		result = append(result, renderRow(row, colWidths))

		if i == 0 {
			sep := make([]string, colCount)
			for j := range sep {
				sep[j] = strings.Repeat("-", colWidths[j])
			}

			result = append(result, renderRow(sep, colWidths))
		}
	}

	return result
}

func renderRow(row []string, colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		content := ""
		if j < len(row) {
			content = row[j]
		}

		sb.WriteString(" ")
		sb.WriteString(content)

		// Pad with spaces based on display width
		if padding := width - runewidth.StringWidth(content); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}
