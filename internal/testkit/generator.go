// Package testkit generates deterministic messy datasets: typed columns
// seeded with the defects the cleaning pipeline exists to fix, so tests
// and demos exercise the full upload-to-export path without fixture files.
package testkit

import (
	"fmt"
	"math/rand"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
)

// GeneratorConfig configures the messy dataset generator.
type GeneratorConfig struct {
	RowCount      int     `json:"row_count"`
	MissingRate   float64 `json:"missing_rate"`   // fraction of cells blanked
	DuplicateRate float64 `json:"duplicate_rate"` // fraction of rows duplicated
	PaddingRate   float64 `json:"padding_rate"`   // fraction of text cells whitespace-padded
	Seed          int64   `json:"seed"`
}

// DefaultGeneratorConfig returns a config producing a modestly dirty
// dataset.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		RowCount:      200,
		MissingRate:   0.08,
		DuplicateRate: 0.05,
		PaddingRate:   0.1,
		Seed:          42,
	}
}

var (
	regions  = []string{"North", "South", "East", "West"}
	products = []string{"Widget", "Gadget", "Doohickey", "Gizmo", "Sprocket"}
)

// GenerateSalesTable produces a sales-shaped table with string, number,
// date, and boolean columns. The same config always yields the same
// table.
func GenerateSalesTable(cfg GeneratorConfig) *dataset.Table {
	rng := rand.New(rand.NewSource(cfg.Seed))
	columns := []string{"order_id", "region", "product", "amount", "order_date", "priority"}

	rows := make([]dataset.Row, 0, cfg.RowCount)
	for i := 0; i < cfg.RowCount; i++ {
		row := dataset.Row{
			"order_id":   core.Number(float64(1000 + i)),
			"region":     messyText(rng, regions[rng.Intn(len(regions))], cfg.PaddingRate),
			"product":    messyText(rng, products[rng.Intn(len(products))], cfg.PaddingRate),
			"amount":     core.Number(float64(rng.Intn(95000)+500) / 100),
			"order_date": core.Date(randomDate(rng)),
			"priority":   core.Boolean(rng.Float64() < 0.3),
		}
		for _, col := range columns[1:] {
			if rng.Float64() < cfg.MissingRate {
				row[col] = core.Null()
			}
		}
		rows = append(rows, row)
	}

	// Duplicates are exact copies of earlier rows, appended at the end
	// so the keep-first rule is observable.
	dupes := int(float64(cfg.RowCount) * cfg.DuplicateRate)
	for i := 0; i < dupes && len(rows) > 0; i++ {
		src := rows[rng.Intn(cfg.RowCount)]
		dup := make(dataset.Row, len(src))
		for k, v := range src {
			dup[k] = v
		}
		rows = append(rows, dup)
	}

	return dataset.NewTable(columns, rows)
}

func messyText(rng *rand.Rand, s string, paddingRate float64) core.Value {
	if rng.Float64() < paddingRate {
		return core.Text("  " + s + " ")
	}
	return core.Text(s)
}

func randomDate(rng *rand.Rand) string {
	return fmt.Sprintf("2024-%02d-%02d", rng.Intn(12)+1, rng.Intn(28)+1)
}
