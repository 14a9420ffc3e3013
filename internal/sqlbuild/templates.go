package sqlbuild

import (
	"fmt"
	"strings"

	"github.com/pratikkkbhere/DataPilot/domain/query"
)

// Templates returns the canned queries offered by the SQL editor, with
// column placeholders resolved against the loaded dataset. Column picks
// are heuristic: the first column, a column whose name suggests a date,
// and a column whose name suggests a category.
func Templates(columns []string) []query.Template {
	first := pick(columns, 0, "column_name")
	second := pick(columns, 1, "second_column")
	numeric := findColumn(columns, second, "amount", "count", "total", "price", "value")
	date := findColumn(columns, first, "date", "time")
	category := findColumn(columns, first, "category", "type")

	return []query.Template{
		{
			ID:          "view_sample",
			Name:        "View Sample Data",
			Description: "Preview first 10 rows of the dataset",
			Category:    "basic",
			Query:       "SELECT *\nFROM dataset\nLIMIT 10",
		},
		{
			ID:          "count_rows",
			Name:        "Count Total Rows",
			Description: "Get the total number of rows",
			Category:    "basic",
			Query:       "SELECT COUNT(*) AS total_rows\nFROM dataset",
		},
		{
			ID:          "count_distinct",
			Name:        "Count Distinct Values",
			Description: "Find number of unique values in a column",
			Category:    "basic",
			Query:       fmt.Sprintf("SELECT COUNT(DISTINCT [%s]) AS unique_count\nFROM dataset", first),
		},
		{
			ID:          "value_frequency",
			Name:        "Column Value Frequency",
			Description: "Count how often each value appears",
			Category:    "basic",
			Query:       fmt.Sprintf("SELECT [%s], COUNT(*) AS frequency\nFROM dataset\nGROUP BY [%s]\nORDER BY frequency DESC", first, first),
		},
		{
			ID:          "top_n",
			Name:        "Top N Records",
			Description: "Get top 10 records by a column",
			Category:    "basic",
			Query:       fmt.Sprintf("SELECT *\nFROM dataset\nORDER BY [%s] DESC\nLIMIT 10", first),
		},
		{
			ID:          "missing_values",
			Name:        "Check Missing Values",
			Description: "Find rows with NULL values in a column",
			Category:    "analysis",
			Query:       fmt.Sprintf("SELECT *\nFROM dataset\nWHERE [%s] IS NULL\n   OR [%s] = ''", first, first),
		},
		{
			ID:          "duplicates",
			Name:        "Find Duplicates",
			Description: "Identify duplicate records",
			Category:    "analysis",
			Query:       fmt.Sprintf("SELECT [%s], COUNT(*) AS count\nFROM dataset\nGROUP BY [%s]\nHAVING COUNT(*) > 1\nORDER BY count DESC", first, first),
		},
		{
			ID:          "invalid_values",
			Name:        "Invalid Value Check",
			Description: "Negative values where not allowed",
			Category:    "analysis",
			Query:       fmt.Sprintf("SELECT *\nFROM dataset\nWHERE [%s] < 0", numeric),
		},
		{
			ID:          "category_agg",
			Name:        "Category Aggregation",
			Description: "Group by category with counts and sums",
			Category:    "aggregation",
			Query:       fmt.Sprintf("SELECT [%s],\n       COUNT(*) AS count,\n       SUM([%s]) AS total\nFROM dataset\nGROUP BY [%s]\nORDER BY count DESC", category, numeric, category),
		},
		{
			ID:          "date_trends",
			Name:        "Date-wise Trends",
			Description: "Analyze trends over time",
			Category:    "aggregation",
			Query:       fmt.Sprintf("SELECT [%s],\n       COUNT(*) AS count\nFROM dataset\nGROUP BY [%s]\nORDER BY [%s] ASC", date, date, date),
		},
	}
}

func pick(columns []string, i int, fallback string) string {
	if i < len(columns) {
		return columns[i]
	}
	return fallback
}

func findColumn(columns []string, fallback string, hints ...string) string {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, hint := range hints {
			if strings.Contains(lower, hint) {
				return col
			}
		}
	}
	return fallback
}
