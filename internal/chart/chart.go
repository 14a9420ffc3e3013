// Package chart shapes table data for the visualization panel. Category
// charts collapse rows per x value with a count/sum/avg aggregation,
// scatter plots cap the point cloud, and histograms bin one numeric
// column.
package chart

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
)

const (
	// maxCategories keeps bar/pie/line charts readable.
	maxCategories = 20
	// maxScatterPoints caps the point cloud sent to the renderer.
	maxScatterPoints = 500
	defaultBins      = 10
)

// CategoryPoint is one rendered bar/slice/line point.
type CategoryPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ScatterPoint is one x/y pair.
type ScatterPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HistogramBin is one bucket of a numeric column's distribution.
type HistogramBin struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// PrepareCategoryData groups rows by their x-axis value and collapses each
// group with the requested aggregation. Without a y-axis every row counts
// as 1, so count/sum both yield group sizes. Output is sorted by value
// descending and truncated to the top categories; a missing x value lands
// in the "Unknown" bucket.
func PrepareCategoryData(t *dataset.Table, xAxis, yAxis string, aggregation dataset.AggregateFunc) []CategoryPoint {
	groups := make(map[string][]float64)
	var order []string

	for _, row := range t.Rows {
		x := t.Cell(row, xAxis)
		name := x.String()
		if x.IsMissing() {
			name = "Unknown"
		}
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		if yAxis != "" {
			if y, ok := t.Cell(row, yAxis).Float(); ok {
				groups[name] = append(groups[name], y)
			} else if _, seen := groups[name]; !seen {
				groups[name] = []float64{}
			}
		} else {
			groups[name] = append(groups[name], 1)
		}
	}

	points := make([]CategoryPoint, 0, len(order))
	for _, name := range order {
		values := groups[name]
		var value float64
		switch aggregation {
		case dataset.AggSum:
			value = floats.Sum(values)
		case dataset.AggAvg:
			if len(values) > 0 {
				value = floats.Sum(values) / float64(len(values))
			}
		default:
			value = float64(len(values))
		}
		points = append(points, CategoryPoint{Name: name, Value: core.Round2(value)})
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Value > points[j].Value })
	if len(points) > maxCategories {
		points = points[:maxCategories]
	}
	return points
}

// PrepareScatterData pairs two numeric columns, dropping rows where either
// side has no numeric reading.
func PrepareScatterData(t *dataset.Table, xAxis, yAxis string) []ScatterPoint {
	points := make([]ScatterPoint, 0, len(t.Rows))
	for _, row := range t.Rows {
		x, okX := t.Cell(row, xAxis).Float()
		y, okY := t.Cell(row, yAxis).Float()
		if !okX || !okY {
			continue
		}
		points = append(points, ScatterPoint{X: x, Y: y})
		if len(points) == maxScatterPoints {
			break
		}
	}
	return points
}

// PrepareHistogramData bins one column's numeric values into equal-width
// buckets spanning the observed range. The last bucket includes the
// maximum. No numeric values yields no bins.
func PrepareHistogramData(t *dataset.Table, column string, bins int) []HistogramBin {
	if bins <= 0 {
		bins = defaultBins
	}

	var values []float64
	for _, row := range t.Rows {
		if v, ok := t.Cell(row, column).Float(); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil
	}

	sort.Float64s(values)
	min, max := values[0], values[len(values)-1]
	if min == max {
		// Degenerate range: everything lands in one bucket.
		return []HistogramBin{{Range: binLabel(min, max), Count: len(values)}}
	}

	dividers := make([]float64, bins+1)
	floats.Span(dividers, min, max)
	counts := stat.Histogram(nil, dividers, values, nil)

	out := make([]HistogramBin, bins)
	for i := 0; i < bins; i++ {
		out[i] = HistogramBin{
			Range: binLabel(dividers[i], dividers[i+1]),
			Count: int(counts[i]),
		}
	}
	return out
}

func binLabel(start, end float64) string {
	return round1(start) + " - " + round1(end)
}

func round1(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
