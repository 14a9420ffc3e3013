// Package dataset defines the tabular data model shared by every stage of
// the workbench pipeline: upload, profiling, cleaning, filtering, querying,
// aggregation, and export.
package dataset

import (
	"strings"

	"github.com/pratikkkbhere/DataPilot/domain/core"
)

// Row maps a column name to a scalar cell. A key absent from the map is a
// missing value, never an error.
type Row map[string]core.Value

// Table is a dataset with an explicit column order. Go maps do not iterate
// deterministically, so every ordering guarantee in the pipeline (canonical
// row serialization, mode tie-breaks, column-wise cleaning order) hangs off
// Columns rather than map iteration.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable builds a table from an ordered column list and row data.
func NewTable(columns []string, rows []Row) *Table {
	return &Table{Columns: columns, Rows: rows}
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// IsEmpty reports whether the table holds no rows.
func (t *Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Cell returns the value at (row, column); missing keys read as null.
func (t *Table) Cell(row Row, column string) core.Value {
	if v, ok := row[column]; ok {
		return v
	}
	return core.Null()
}

// ColumnValues collects the column's cells across all rows in row order.
func (t *Table) ColumnValues(column string) []core.Value {
	values := make([]core.Value, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = t.Cell(row, column)
	}
	return values
}

// HasColumn reports whether the column exists.
func (t *Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Clone deep-copies the table. Mutation stages work on a clone so the
// previous snapshot stays intact for undo.
func (t *Table) Clone() *Table {
	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)
	rows := make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		clone := make(Row, len(row))
		for k, v := range row {
			clone[k] = v
		}
		rows[i] = clone
	}
	return &Table{Columns: columns, Rows: rows}
}

// CanonicalKey serializes a row into a deterministic string used for
// duplicate detection. Cells are emitted in column order with their kind
// tag so that the number 1 and the string "1" never collide as rows.
func (t *Table) CanonicalKey(row Row) string {
	var b strings.Builder
	for i, col := range t.Columns {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		v := t.Cell(row, col)
		b.WriteString(string(v.Kind))
		b.WriteByte(':')
		b.WriteString(v.String())
	}
	return b.String()
}

// ColumnType is the inferred dominant type of a column.
type ColumnType string

const (
	TypeNumber  ColumnType = "number"
	TypeString  ColumnType = "string"
	TypeDate    ColumnType = "date"
	TypeBoolean ColumnType = "boolean"
	TypeMixed   ColumnType = "mixed"
)

// Kind maps a column type to its native cell representation.
func (ct ColumnType) Kind() core.Kind {
	switch ct {
	case TypeNumber:
		return core.KindNumber
	case TypeBoolean:
		return core.KindBool
	case TypeDate:
		return core.KindDate
	default:
		return core.KindText
	}
}

// ColumnStats is the read-only statistical snapshot of one column.
// Numeric central-tendency fields are only set for number columns;
// Min/Max hold lexicographic extremes for string and date columns.
type ColumnStats struct {
	Name              string     `json:"name"`
	Type              ColumnType `json:"type"`
	TotalCount        int        `json:"totalCount"`
	MissingCount      int        `json:"missingCount"`
	MissingPercentage float64    `json:"missingPercentage"`
	UniqueCount       int        `json:"uniqueCount"`
	Mode              core.Value `json:"mode"`
	Min               core.Value `json:"min"`
	Max               core.Value `json:"max"`
	Mean              *float64   `json:"mean,omitempty"`
	Median            *float64   `json:"median,omitempty"`
	StandardDev       *float64   `json:"standardDev,omitempty"`
}

// DatasetSummary is the dataset-level profile.
type DatasetSummary struct {
	TotalRows                int           `json:"totalRows"`
	TotalColumns             int           `json:"totalColumns"`
	OverallMissingPercentage float64       `json:"overallMissingPercentage"`
	DuplicateRowCount        int           `json:"duplicateRowCount"`
	ColumnStats              []ColumnStats `json:"columnStats"`
}

// StatsFor finds the snapshot for a named column, nil when absent.
func (s *DatasetSummary) StatsFor(column string) *ColumnStats {
	for i := range s.ColumnStats {
		if s.ColumnStats[i].Name == column {
			return &s.ColumnStats[i]
		}
	}
	return nil
}
