// Package frame is the row-set engine: predicate filtering, multi-key
// ordering, and group-by aggregation over the current dataset.
package frame

import (
	"strconv"
	"strings"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
)

// ApplyFilters returns the rows surviving every filter in the list.
// Filters compose with an implicit AND; OR expressiveness lives only in
// the visual query builder. The input table is never mutated.
func ApplyFilters(t *dataset.Table, filters []dataset.FilterConfig) *dataset.Table {
	kept := make([]dataset.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		passes := true
		for _, f := range filters {
			if !evaluateFilter(t, row, f) {
				passes = false
				break
			}
		}
		if passes {
			kept = append(kept, row)
		}
	}
	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)
	return dataset.NewTable(columns, kept)
}

func evaluateFilter(t *dataset.Table, row dataset.Row, f dataset.FilterConfig) bool {
	value := t.Cell(row, f.Column)
	strValue := strings.ToLower(value.String())
	filterValue := strings.ToLower(f.Value)

	switch f.Operator {
	case dataset.OpEquals:
		return strValue == filterValue
	case dataset.OpNotEquals:
		return strValue != filterValue
	case dataset.OpContains:
		return strings.Contains(strValue, filterValue)
	case dataset.OpGreaterThan:
		left, right, ok := numericOperands(value, f.Value)
		return ok && left > right
	case dataset.OpLessThan:
		left, right, ok := numericOperands(value, f.Value)
		return ok && left < right
	case dataset.OpBetween:
		left, low, ok := numericOperands(value, f.Value)
		if !ok {
			return false
		}
		high, err := strconv.ParseFloat(strings.TrimSpace(f.Value2), 64)
		if err != nil {
			return false
		}
		return left >= low && left <= high
	case dataset.OpIsNull:
		return value.IsMissing()
	case dataset.OpIsNotNull:
		return !value.IsMissing()
	default:
		// Unknown operators pass the row: the permissive default keeps a
		// stale UI from silently hiding data.
		return true
	}
}

// numericOperands reads both sides of a numeric comparison. Either side
// failing to read as a number makes every comparison false, mirroring NaN
// comparison semantics. Known weak spot: non-numeric operands silently
// fail the row rather than raising.
func numericOperands(value core.Value, literal string) (float64, float64, bool) {
	left, ok := value.Float()
	if !ok {
		return 0, 0, false
	}
	right, err := strconv.ParseFloat(strings.TrimSpace(literal), 64)
	if err != nil {
		return 0, 0, false
	}
	return left, right, true
}
