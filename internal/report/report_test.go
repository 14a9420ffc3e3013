package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
	"github.com/pratikkkbhere/DataPilot/internal/profile"
)

func TestBuildMarkdown(t *testing.T) {
	tbl := dataset.NewTable([]string{"city", "pop"}, []dataset.Row{
		{"city": core.Text("Oslo"), "pop": core.Number(700)},
		{"city": core.Text("Lima"), "pop": core.Number(9500)},
	})
	summary := profile.ProfileTable(tbl)
	actions := []dataset.CleaningAction{
		{Column: "All", Action: "Remove duplicates", AffectedRows: 0, Details: "Removed 0 duplicate rows"},
	}

	md := BuildMarkdown("cities.csv", summary, actions)

	assert.Contains(t, md, "# Data Quality Report")
	assert.Contains(t, md, "cities.csv")
	assert.Contains(t, md, "| Rows | 2 |")
	assert.Contains(t, md, "| pop | number |")
	assert.Contains(t, md, "## Numeric Columns")
	assert.Contains(t, md, "Remove duplicates")
}

func TestBuildMarkdown_NoActions(t *testing.T) {
	tbl := dataset.NewTable([]string{"city"}, []dataset.Row{
		{"city": core.Text("Oslo")},
	})
	md := BuildMarkdown("x.csv", profile.ProfileTable(tbl), nil)
	assert.Contains(t, md, "No cleaning actions were applied.")
	assert.NotContains(t, md, "## Numeric Columns")
}

func TestRenderHTML(t *testing.T) {
	out := string(RenderHTML("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"))
	assert.True(t, strings.Contains(out, "<h1"))
	assert.Contains(t, out, "<table>")
}
