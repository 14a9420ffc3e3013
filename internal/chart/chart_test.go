package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
)

func chartTable() *dataset.Table {
	return dataset.NewTable([]string{"dept", "salary"}, []dataset.Row{
		{"dept": core.Text("eng"), "salary": core.Number(100)},
		{"dept": core.Text("eng"), "salary": core.Number(200)},
		{"dept": core.Text("ops"), "salary": core.Number(50)},
		{"dept": core.Null(), "salary": core.Number(10)},
	})
}

func TestPrepareCategoryData_Count(t *testing.T) {
	points := PrepareCategoryData(chartTable(), "dept", "", dataset.AggCount)

	require.Len(t, points, 3)
	// Sorted by value descending; missing x lands in Unknown.
	assert.Equal(t, CategoryPoint{Name: "eng", Value: 2}, points[0])
	assert.Contains(t, points, CategoryPoint{Name: "Unknown", Value: 1})
}

func TestPrepareCategoryData_SumAndAvg(t *testing.T) {
	sum := PrepareCategoryData(chartTable(), "dept", "salary", dataset.AggSum)
	assert.Equal(t, CategoryPoint{Name: "eng", Value: 300}, sum[0])

	avg := PrepareCategoryData(chartTable(), "dept", "salary", dataset.AggAvg)
	require.Len(t, avg, 3)
	assert.Equal(t, CategoryPoint{Name: "eng", Value: 150}, avg[0])
}

func TestPrepareCategoryData_TopCategoriesCapped(t *testing.T) {
	rows := make([]dataset.Row, 0, 30)
	for i := 0; i < 30; i++ {
		rows = append(rows, dataset.Row{"k": core.Number(float64(i))})
	}
	tbl := dataset.NewTable([]string{"k"}, rows)

	points := PrepareCategoryData(tbl, "k", "", dataset.AggCount)
	assert.Len(t, points, 20)
}

func TestPrepareScatterData(t *testing.T) {
	tbl := dataset.NewTable([]string{"x", "y"}, []dataset.Row{
		{"x": core.Number(1), "y": core.Number(2)},
		{"x": core.Text("nope"), "y": core.Number(3)},
		{"x": core.Number(4), "y": core.Null()},
		{"x": core.Number(5), "y": core.Number(6)},
	})

	points := PrepareScatterData(tbl, "x", "y")
	assert.Equal(t, []ScatterPoint{{X: 1, Y: 2}, {X: 5, Y: 6}}, points)
}

func TestPrepareScatterData_Cap(t *testing.T) {
	rows := make([]dataset.Row, 600)
	for i := range rows {
		rows[i] = dataset.Row{"x": core.Number(float64(i)), "y": core.Number(1)}
	}
	tbl := dataset.NewTable([]string{"x", "y"}, rows)

	assert.Len(t, PrepareScatterData(tbl, "x", "y"), 500)
}

func TestPrepareHistogramData(t *testing.T) {
	rows := make([]dataset.Row, 0, 10)
	for _, v := range []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10} {
		rows = append(rows, dataset.Row{"v": core.Number(v)})
	}
	tbl := dataset.NewTable([]string{"v"}, rows)

	bins := PrepareHistogramData(tbl, "v", 5)
	require.Len(t, bins, 5)
	assert.Equal(t, "0 - 2", bins[0].Range)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	// Every value lands in exactly one bucket, the max inclusively.
	assert.Equal(t, 10, total)
	assert.Equal(t, 2, bins[4].Count)
}

func TestPrepareHistogramData_Degenerate(t *testing.T) {
	tbl := dataset.NewTable([]string{"v"}, []dataset.Row{
		{"v": core.Number(7)},
		{"v": core.Number(7)},
	})
	bins := PrepareHistogramData(tbl, "v", 10)
	require.Len(t, bins, 1)
	assert.Equal(t, 2, bins[0].Count)

	empty := dataset.NewTable([]string{"v"}, []dataset.Row{{"v": core.Text("x")}})
	assert.Empty(t, PrepareHistogramData(empty, "v", 10))
}
