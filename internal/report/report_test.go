package report

import (
	"strings"
	"testing"
	"time"
)

func TestTableRender(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		rows     [][]string
		expected string
	}{
		{
			name:    "Aligns columns by display width",
			headers: []string{"Name", "Qty"},
			rows: [][]string{
				{"Padmé", "1"},
				{"R2-D2", "12"},
			},
			expected: "| Name  | Qty |\n" +
				"| ----- | --- |\n" +
				"| Padmé | 1   |\n" +
				"| R2-D2 | 12  |\n",
		},
		{
			name:    "Enforces minimum column width",
			headers: []string{"A", "B"},
			rows: [][]string{
				{"x", "y"},
			},
			expected: "| A   | B   |\n" +
				"| --- | --- |\n" +
				"| x   | y   |\n",
		},
		{
			name:    "Pads short rows with empty cells",
			headers: []string{"Artifact", "Path", "Records"},
			rows: [][]string{
				{"tatooine"},
			},
			expected: "| Artifact | Path | Records |\n" +
				"| -------- | ---- | ------- |\n" +
				"| tatooine |      |         |\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable(tt.headers...)
			for _, row := range tt.rows {
				table.AddRow(row...)
			}

			if got := table.Render(); got != tt.expected {
				t.Errorf("Render() = \n%v\nwant \n%v", got, tt.expected)
			}
		})
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable().Render(); got != "" {
		t.Errorf("Render() = %q, want empty string", got)
	}
}

func TestSummaryRender(t *testing.T) {
	summary := &Summary{
		Title: "Pipeline Run",
		Artifacts: []Artifact{
			{Name: "tatooine", Path: "output/tatooine.json", Records: 1},
			{Name: "planets_sorted_name", Path: "output/planets_sorted_name.json", Records: 13},
		},
		CacheHits:   3,
		CacheMisses: 14,
		Duration:    1500 * time.Millisecond,
	}

	got := summary.Render()

	for _, want := range []string{
		"# Pipeline Run",
		"| Artifact            | Path                            | Records |",
		"| tatooine            | output/tatooine.json            | 1       |",
		"| planets_sorted_name | output/planets_sorted_name.json | 13      |",
		"Cache: 3 hits, 14 misses.",
		"Completed in 1.5s.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q in:\n%v", want, got)
		}
	}
}

func TestSummaryRenderWithoutDuration(t *testing.T) {
	summary := &Summary{Title: "Pipeline Run", CacheHits: 1, CacheMisses: 2}

	got := summary.Render()

	if strings.Contains(got, "Completed in") {
		t.Errorf("Expected no duration line, got:\n%v", got)
	}
}
