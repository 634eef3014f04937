// Package report renders pipeline run summaries as aligned markdown.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Table is a markdown table under construction.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a row. Short rows pad with empty cells on render.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render returns the table as aligned markdown. Cells pad by display width
// so wide characters line up.
func (t *Table) Render() string {
	colCount := len(t.headers)
	for _, row := range t.rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	if colCount == 0 {
		return ""
	}

	widths := make([]int, colCount)

	measure := func(row []string) {
		for i := 0; i < len(row) && i < colCount; i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}

	// Keep room for the "---" separator.
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	var sb strings.Builder

	writeRow := func(row []string) {
		sb.WriteString("|")

		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			sb.WriteString(" ")
			sb.WriteString(cell)

			if padding := widths[i] - runewidth.StringWidth(cell); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}

			sb.WriteString(" |")
		}

		sb.WriteString("\n")
	}

	writeRow(t.headers)

	sb.WriteString("|")
	for i := 0; i < colCount; i++ {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", widths[i]))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")

	for _, row := range t.rows {
		writeRow(row)
	}

	return sb.String()
}

// Artifact is one file a pipeline run produced.
type Artifact struct {
	Name    string
	Path    string
	Records int
}

// Summary describes one pipeline run.
type Summary struct {
	Title       string
	Artifacts   []Artifact
	CacheHits   int
	CacheMisses int
	Duration    time.Duration
}

// Render builds the markdown report for the run.
func (s *Summary) Render() string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(s.Title)
	sb.WriteString("\n\n")

	table := NewTable("Artifact", "Path", "Records")
	for _, artifact := range s.Artifacts {
		table.AddRow(artifact.Name, artifact.Path, strconv.Itoa(artifact.Records))
	}

	sb.WriteString(table.Render())
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Cache: %d hits, %d misses.\n", s.CacheHits, s.CacheMisses))

	if s.Duration > 0 {
		sb.WriteString(fmt.Sprintf("Completed in %s.\n", s.Duration.Round(time.Millisecond)))
	}

	return sb.String()
}
