package frame

import (
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
)

// groupKeySeparator joins group-by values into a map key. Multi-character
// sentinel so natural data cannot collide with a composed key.
const groupKeySeparator = "|||"

// PerformAggregation groups rows by the configured columns and computes
// the requested summaries. Output groups follow first-encountered order of
// the group keys, not sorted order; callers wanting sorted output sort the
// result afterward. At least one of groupByColumns or aggregations must be
// non-empty.
func PerformAggregation(t *dataset.Table, config dataset.AggregationConfig) (*dataset.Table, error) {
	if len(config.GroupByColumns) == 0 && len(config.Aggregations) == 0 {
		return nil, core.ErrInvalidAggregation
	}

	groups := make(map[string][]dataset.Row)
	var keyOrder []string
	for _, row := range t.Rows {
		parts := make([]string, len(config.GroupByColumns))
		for i, col := range config.GroupByColumns {
			parts[i] = t.Cell(row, col).String()
		}
		key := strings.Join(parts, groupKeySeparator)
		if _, seen := groups[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		groups[key] = append(groups[key], row)
	}

	columns := make([]string, 0, len(config.GroupByColumns)+len(config.Aggregations))
	columns = append(columns, config.GroupByColumns...)
	for _, agg := range config.Aggregations {
		columns = append(columns, string(agg.Function)+"_"+agg.Column)
	}

	result := make([]dataset.Row, 0, len(keyOrder))
	for _, key := range keyOrder {
		rows := groups[key]
		out := make(dataset.Row, len(columns))

		keyParts := strings.Split(key, groupKeySeparator)
		for i, col := range config.GroupByColumns {
			out[col] = core.Text(keyParts[i])
		}

		for _, agg := range config.Aggregations {
			out[string(agg.Function)+"_"+agg.Column] = core.Number(aggregateColumn(t, rows, agg))
		}
		result = append(result, out)
	}

	return dataset.NewTable(columns, result), nil
}

// aggregateColumn computes one summary over a group. An empty numeric set
// resolves to the documented fallback of 0 rather than propagating a
// computation fault.
func aggregateColumn(t *dataset.Table, rows []dataset.Row, agg dataset.Aggregation) float64 {
	nonMissing := 0
	var nums []float64
	for _, row := range rows {
		v := t.Cell(row, agg.Column)
		if v.IsMissing() {
			continue
		}
		nonMissing++
		if f, ok := v.Float(); ok {
			nums = append(nums, f)
		}
	}

	if agg.Function == dataset.AggCount {
		return float64(nonMissing)
	}
	if len(nums) == 0 {
		return 0
	}

	var result float64
	switch agg.Function {
	case dataset.AggSum:
		result, _ = stats.Sum(nums)
	case dataset.AggAvg:
		result, _ = stats.Mean(nums)
	case dataset.AggMedian:
		result, _ = stats.Median(nums)
	case dataset.AggMin:
		result, _ = stats.Min(nums)
	case dataset.AggMax:
		result, _ = stats.Max(nums)
	default:
		return 0
	}
	return core.Round2(result)
}
