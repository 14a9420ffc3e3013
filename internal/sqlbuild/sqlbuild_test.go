package sqlbuild

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/query"
)

func TestBuildQueryFromVisual(t *testing.T) {
	columns := []string{"city", "pop"}

	tests := []struct {
		name     string
		config   query.VisualQueryConfig
		expected string
	}{
		{
			name:     "empty config selects everything",
			config:   query.VisualQueryConfig{},
			expected: "SELECT *\nFROM dataset",
		},
		{
			name: "explicit columns are bracket quoted",
			config: query.VisualQueryConfig{
				SelectColumns: []string{"city", "pop"},
			},
			expected: "SELECT [city], [pop]\nFROM dataset",
		},
		{
			name: "bare wildcard stays a wildcard",
			config: query.VisualQueryConfig{
				SelectColumns: []string{"*"},
			},
			expected: "SELECT *\nFROM dataset",
		},
		{
			// Wildcard alongside an aggregation expands to every known
			// column not used by an aggregation. Group-by columns stay in
			// the expansion: city appears both grouped and selected.
			name: "wildcard with aggregation expands to non-aggregated columns",
			config: query.VisualQueryConfig{
				SelectColumns:  []string{"*"},
				GroupByColumns: []string{"city"},
				Aggregations: []query.Aggregation{
					{Column: "*", Function: query.FuncCount, Alias: "n"},
				},
			},
			expected: "SELECT COUNT(*) AS n, [city], [pop]\nFROM dataset\nGROUP BY [city]",
		},
		{
			// Explicit columns listed next to a wildcard are superseded by
			// the expansion rather than emitted twice.
			name: "wildcard supersedes explicit columns",
			config: query.VisualQueryConfig{
				SelectColumns: []string{"city", "*"},
				Aggregations: []query.Aggregation{
					{Column: "pop", Function: query.FuncSum, Alias: "total"},
				},
			},
			expected: "SELECT SUM([pop]) AS [total], [city]\nFROM dataset",
		},
		{
			name: "aggregation without alias derives one",
			config: query.VisualQueryConfig{
				Aggregations: []query.Aggregation{
					{Column: "pop", Function: query.FuncSum},
				},
			},
			expected: "SELECT SUM([pop]) AS [sum_pop]\nFROM dataset",
		},
		{
			name: "full clause order",
			config: query.VisualQueryConfig{
				SelectColumns:  []string{"city"},
				GroupByColumns: []string{"city"},
				Having:         "COUNT(*) > 1",
				OrderByColumns: []query.OrderByConfig{{Column: "city", Direction: "ASC"}},
				Limit:          5,
				Aggregations: []query.Aggregation{
					{Column: "pop", Function: query.FuncAvg, Alias: "avg pop"},
				},
				WhereConditions: []query.WhereCondition{
					{Column: "pop", Operator: query.WhereGreaterThan, Value: "100"},
				},
			},
			expected: "SELECT AVG([pop]) AS [avg pop], [city]\n" +
				"FROM dataset\n" +
				"WHERE [pop] > 100\n" +
				"GROUP BY [city]\n" +
				"HAVING COUNT(*) > 1\n" +
				"ORDER BY [city] ASC\n" +
				"LIMIT 5",
		},
		{
			name: "where connectors join conditions",
			config: query.VisualQueryConfig{
				WhereConditions: []query.WhereCondition{
					{Column: "city", Operator: query.WhereEquals, Value: "Oslo", Connector: query.ConnectorAnd},
					{Column: "pop", Operator: query.WhereLessThan, Value: "50", Connector: query.ConnectorOr},
					{Column: "city", Operator: query.WhereIsNotNull, Connector: query.ConnectorAnd},
				},
			},
			expected: "SELECT *\nFROM dataset\nWHERE [city] = 'Oslo' OR [pop] < 50 AND [city] IS NOT NULL",
		},
		{
			name: "in splits a comma list into quoted values",
			config: query.VisualQueryConfig{
				WhereConditions: []query.WhereCondition{
					{Column: "city", Operator: query.WhereIn, Value: "Oslo, Lima,Pune"},
				},
			},
			expected: "SELECT *\nFROM dataset\nWHERE [city] IN ('Oslo', 'Lima', 'Pune')",
		},
		{
			name: "between and contains",
			config: query.VisualQueryConfig{
				WhereConditions: []query.WhereCondition{
					{Column: "pop", Operator: query.WhereBetween, Value: "10", Value2: "99", Connector: query.ConnectorAnd},
					{Column: "city", Operator: query.WhereContains, Value: "os", Connector: query.ConnectorAnd},
				},
			},
			expected: "SELECT *\nFROM dataset\nWHERE [pop] BETWEEN 10 AND 99 AND [city] LIKE '%os%'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildQueryFromVisual(tt.config, columns))
		})
	}
}

func TestValidateQueryText(t *testing.T) {
	assert.NoError(t, ValidateQueryText("SELECT * FROM dataset"))
	assert.NoError(t, ValidateQueryText("  select city from dataset  "))

	for _, sql := range []string{
		"DROP TABLE dataset",
		"DELETE FROM dataset",
		"UPDATE dataset SET city = 'x'",
		"INSERT INTO dataset VALUES (1)",
		"",
	} {
		err := ValidateQueryText(sql)
		assert.ErrorIs(t, err, core.ErrDisallowedQuery, "query %q", sql)
	}
}

func TestTemplates(t *testing.T) {
	templates := Templates([]string{"order_date", "category", "amount"})
	assert.NotEmpty(t, templates)

	byID := make(map[string]string, len(templates))
	for _, tpl := range templates {
		byID[tpl.ID] = tpl.Query
		assert.NoError(t, ValidateQueryText(tpl.Query), "template %s", tpl.ID)
	}

	assert.Contains(t, byID["date_trends"], "[order_date]")
	assert.Contains(t, byID["category_agg"], "[category]")
	assert.Contains(t, byID["category_agg"], "SUM([amount])")

	// No columns loaded: placeholders keep queries well formed.
	for _, tpl := range Templates(nil) {
		assert.False(t, strings.Contains(tpl.Query, "[]"), "template %s", tpl.ID)
	}
}
