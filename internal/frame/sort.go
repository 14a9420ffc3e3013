package frame

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
)

// ApplySort orders rows by the given keys, each key a tiebreaker for the
// previous one. When both compared cells are numbers the comparison is
// numeric; otherwise both sides are stringified and compared with a
// locale-aware collator. The sort is stable and returns a new table.
func ApplySort(t *dataset.Table, sorts []dataset.SortConfig) *dataset.Table {
	rows := make([]dataset.Row, len(t.Rows))
	copy(rows, t.Rows)

	collator := collate.New(language.English)

	sort.SliceStable(rows, func(i, j int) bool {
		for _, s := range sorts {
			cmp := compareCells(collator, t.Cell(rows[i], s.Column), t.Cell(rows[j], s.Column))
			if s.Direction == dataset.SortDesc {
				cmp = -cmp
			}
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})

	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)
	return dataset.NewTable(columns, rows)
}

func compareCells(collator *collate.Collator, a, b core.Value) int {
	if a.Kind == core.KindNumber && b.Kind == core.KindNumber {
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		default:
			return 0
		}
	}
	return collator.CompareString(a.String(), b.String())
}
