// Package sqlbuild compiles the visual query builder's structured config
// into SQL text for the embedded query engine. It is pure string
// construction: nothing here executes a query or checks that the produced
// text parses — syntax faults surface when the engine runs it.
package sqlbuild

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/query"
)

// BuildQueryFromVisual renders config as SQL against the workbench's single
// table. Clause order is fixed: SELECT, FROM, WHERE, GROUP BY, HAVING,
// ORDER BY, LIMIT. Column identifiers are bracket-quoted so names with
// spaces or keywords survive. knownColumns drives wildcard expansion when
// "*" is selected alongside aggregations: the wildcard becomes every known
// column not consumed by an aggregation. Group-by columns are NOT excluded
// from the expansion.
func BuildQueryFromVisual(config query.VisualQueryConfig, knownColumns []string) string {
	var parts []string

	parts = append(parts, "SELECT "+strings.Join(selectList(config, knownColumns), ", "))
	parts = append(parts, "FROM "+query.TableName)

	if len(config.WhereConditions) > 0 {
		parts = append(parts, "WHERE "+whereClause(config.WhereConditions))
	}

	if len(config.GroupByColumns) > 0 {
		parts = append(parts, "GROUP BY "+strings.Join(quoteAll(config.GroupByColumns), ", "))
	}

	// HAVING is a verbatim passthrough. An intentional escape hatch for
	// fragments the builder cannot express; not sanitized.
	if config.Having != "" {
		parts = append(parts, "HAVING "+config.Having)
	}

	if len(config.OrderByColumns) > 0 {
		orderParts := make([]string, len(config.OrderByColumns))
		for i, o := range config.OrderByColumns {
			orderParts[i] = quote(o.Column) + " " + o.Direction
		}
		parts = append(parts, "ORDER BY "+strings.Join(orderParts, ", "))
	}

	if config.Limit > 0 {
		parts = append(parts, "LIMIT "+strconv.Itoa(config.Limit))
	}

	return strings.Join(parts, "\n")
}

// selectList assembles the SELECT expressions: aggregations first, then
// explicit columns, then wildcard handling.
func selectList(config query.VisualQueryConfig, knownColumns []string) []string {
	var selectParts []string

	for _, agg := range config.Aggregations {
		alias := agg.Alias
		if alias == "" {
			alias = strings.ToLower(string(agg.Function)) + "_" + agg.Column
		}
		if agg.Column == "*" {
			selectParts = append(selectParts, fmt.Sprintf("%s(*) AS %s", agg.Function, alias))
		} else {
			selectParts = append(selectParts, fmt.Sprintf("%s(%s) AS %s", agg.Function, quote(agg.Column), quote(alias)))
		}
	}

	hasWildcard := false
	for _, col := range config.SelectColumns {
		if col == "*" {
			hasWildcard = true
			break
		}
	}

	if hasWildcard {
		// A wildcard supersedes any explicit columns alongside it.
		if len(selectParts) == 0 {
			return []string{"*"}
		}
		// Mixing aggregates with a literal * is ambiguous, so the
		// wildcard expands to every known column no aggregation uses.
		aggCols := make(map[string]bool, len(config.Aggregations))
		for _, agg := range config.Aggregations {
			aggCols[agg.Column] = true
		}
		for _, col := range knownColumns {
			if !aggCols[col] {
				selectParts = append(selectParts, quote(col))
			}
		}
	} else {
		for _, col := range config.SelectColumns {
			selectParts = append(selectParts, quote(col))
		}
	}

	if len(selectParts) == 0 {
		return []string{"*"}
	}
	return selectParts
}

// whereClause joins conditions with each condition's own stored connector.
// The first condition's connector is ignored.
func whereClause(conditions []query.WhereCondition) string {
	parts := make([]string, 0, len(conditions))
	for i, cond := range conditions {
		rendered := renderCondition(cond)
		if i > 0 && cond.Connector != "" {
			rendered = string(cond.Connector) + " " + rendered
		}
		parts = append(parts, rendered)
	}
	return strings.Join(parts, " ")
}

// renderCondition renders one WHERE condition. Text literals are
// single-quote wrapped with no escaping of embedded quotes; numeric
// operands are interpolated verbatim.
func renderCondition(cond query.WhereCondition) string {
	col := quote(cond.Column)
	switch cond.Operator {
	case query.WhereEquals:
		return fmt.Sprintf("%s = '%s'", col, cond.Value)
	case query.WhereNotEquals:
		return fmt.Sprintf("%s != '%s'", col, cond.Value)
	case query.WhereContains:
		return fmt.Sprintf("%s LIKE '%%%s%%'", col, cond.Value)
	case query.WhereLike:
		return fmt.Sprintf("%s LIKE '%s'", col, cond.Value)
	case query.WhereGreaterThan:
		return fmt.Sprintf("%s > %s", col, cond.Value)
	case query.WhereLessThan:
		return fmt.Sprintf("%s < %s", col, cond.Value)
	case query.WhereGreaterEqual:
		return fmt.Sprintf("%s >= %s", col, cond.Value)
	case query.WhereLessEqual:
		return fmt.Sprintf("%s <= %s", col, cond.Value)
	case query.WhereBetween:
		return fmt.Sprintf("%s BETWEEN %s AND %s", col, cond.Value, cond.Value2)
	case query.WhereIsNull:
		return col + " IS NULL"
	case query.WhereIsNotNull:
		return col + " IS NOT NULL"
	case query.WhereIn:
		raw := strings.Split(cond.Value, ",")
		quoted := make([]string, len(raw))
		for i, v := range raw {
			quoted[i] = "'" + strings.TrimSpace(v) + "'"
		}
		return fmt.Sprintf("%s IN (%s)", col, strings.Join(quoted, ", "))
	default:
		return ""
	}
}

// ValidateQueryText enforces the SELECT-only contract before any text
// reaches the engine. Everything else is a validation fault, caught here
// rather than trusted to the engine.
func ValidateQueryText(sql string) error {
	normalized := strings.ToUpper(strings.TrimSpace(sql))
	if normalized == "" {
		return fmt.Errorf("empty query: %w", core.ErrDisallowedQuery)
	}
	if !strings.HasPrefix(normalized, "SELECT") {
		return fmt.Errorf("only SELECT queries are allowed for data analysis: %w", core.ErrDisallowedQuery)
	}
	return nil
}

func quote(col string) string {
	return "[" + col + "]"
}

func quoteAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = quote(c)
	}
	return out
}
