// Package profile computes per-column and dataset-level descriptive
// statistics: the read-only snapshot every downstream cleaning decision is
// based on.
package profile

import (
	"sort"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
	"github.com/pratikkkbhere/DataPilot/internal/infer"
)

// ProfileTable profiles every column and the dataset as a whole. Columns
// are profiled concurrently; that is safe because every order-sensitive
// rule (the mode tie-break) is row order within a single column, and the
// output order is fixed by the table's column list.
func ProfileTable(t *dataset.Table) *dataset.DatasetSummary {
	if t == nil || t.IsEmpty() {
		return &dataset.DatasetSummary{ColumnStats: []dataset.ColumnStats{}}
	}

	columnStats := make([]dataset.ColumnStats, len(t.Columns))
	g := new(errgroup.Group)
	for i, col := range t.Columns {
		i, col := i, col
		g.Go(func() error {
			columnStats[i] = ProfileColumn(t, col)
			return nil
		})
	}
	g.Wait()

	totalMissing := 0
	for _, cs := range columnStats {
		totalMissing += cs.MissingCount
	}

	totalCells := t.NumRows() * t.NumColumns()
	overallMissing := 0.0
	if totalCells > 0 {
		overallMissing = core.Round2(float64(totalMissing) / float64(totalCells) * 100)
	}

	return &dataset.DatasetSummary{
		TotalRows:                t.NumRows(),
		TotalColumns:             t.NumColumns(),
		OverallMissingPercentage: overallMissing,
		DuplicateRowCount:        CountDuplicateRows(t),
		ColumnStats:              columnStats,
	}
}

// ProfileColumn computes the statistical snapshot of one column.
func ProfileColumn(t *dataset.Table, column string) dataset.ColumnStats {
	values := t.ColumnValues(column)

	var nonMissing []core.Value
	for _, v := range values {
		if !v.IsMissing() {
			nonMissing = append(nonMissing, v)
		}
	}
	missingCount := len(values) - len(nonMissing)

	// Unique count over stringified values: the number 1 and the string
	// "1" collide here intentionally.
	unique := make(map[string]struct{}, len(nonMissing))
	for _, v := range nonMissing {
		unique[v.String()] = struct{}{}
	}

	cs := dataset.ColumnStats{
		Name:              column,
		Type:              infer.DetectColumnType(values),
		TotalCount:        len(values),
		MissingCount:      missingCount,
		MissingPercentage: core.Round2(float64(missingCount) / float64(len(values)) * 100),
		UniqueCount:       len(unique),
		Mode:              columnMode(nonMissing),
	}

	switch cs.Type {
	case dataset.TypeNumber:
		fillNumericStats(&cs, nonMissing)
	case dataset.TypeString, dataset.TypeDate:
		fillLexicographicExtremes(&cs, nonMissing)
	}
	return cs
}

// columnMode returns the most frequent non-missing value. Ties break to
// the first value that reached the running maximum in row order, which
// keeps the result deterministic for a given dataset.
func columnMode(nonMissing []core.Value) core.Value {
	frequency := make(map[string]int, len(nonMissing))
	maxFreq := 0
	mode := core.Null()
	for _, v := range nonMissing {
		key := v.String()
		frequency[key]++
		if frequency[key] > maxFreq {
			maxFreq = frequency[key]
			mode = v
		}
	}
	return mode
}

func fillNumericStats(cs *dataset.ColumnStats, nonMissing []core.Value) {
	var nums []float64
	for _, v := range nonMissing {
		if f, ok := v.Float(); ok {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return
	}

	// Population statistics throughout: divisor N, not N-1.
	mean, err := stats.Mean(nums)
	if err != nil {
		return
	}
	median, err := stats.Median(nums)
	if err != nil {
		return
	}
	stdDev, err := stats.StandardDeviationPopulation(nums)
	if err != nil {
		return
	}
	min, _ := stats.Min(nums)
	max, _ := stats.Max(nums)

	cs.Min = core.Number(min)
	cs.Max = core.Number(max)
	cs.Mean = round2Ptr(mean)
	cs.Median = round2Ptr(median)
	cs.StandardDev = round2Ptr(stdDev)
}

func fillLexicographicExtremes(cs *dataset.ColumnStats, nonMissing []core.Value) {
	if len(nonMissing) == 0 {
		return
	}
	strs := make([]string, len(nonMissing))
	for i, v := range nonMissing {
		strs[i] = v.String()
	}
	sort.Strings(strs)
	if cs.Type == dataset.TypeDate {
		cs.Min = core.Date(strs[0])
		cs.Max = core.Date(strs[len(strs)-1])
		return
	}
	cs.Min = core.Text(strs[0])
	cs.Max = core.Text(strs[len(strs)-1])
}

// CountDuplicateRows counts rows whose canonical serialization is not
// unique: totalRows minus distinct canonical keys.
func CountDuplicateRows(t *dataset.Table) int {
	seen := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		seen[t.CanonicalKey(row)] = struct{}{}
	}
	return len(t.Rows) - len(seen)
}

func round2Ptr(v float64) *float64 {
	r := core.Round2(v)
	return &r
}
