// Package sqlengine executes SQL against the session's dataset through an
// in-memory SQLite database. Each QueryContext owns exactly one table named
// by the query domain; loading a new dataset replaces the previous one.
// SQLite accepts the bracket-quoted identifiers the visual query compiler
// emits, so compiled and hand-written queries run through the same path.
package sqlengine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
	"github.com/pratikkkbhere/DataPilot/domain/query"
	apperrors "github.com/pratikkkbhere/DataPilot/internal/errors"
)

// QueryContext wraps one in-memory database holding at most one loaded
// table. It is not safe for concurrent use; callers serialize access the
// same way they serialize dataset mutations.
type QueryContext struct {
	db      *sqlx.DB
	columns []string
	loaded  bool
}

// NewQueryContext opens a fresh in-memory database with no table loaded.
func NewQueryContext() (*QueryContext, error) {
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open in-memory query engine")
	}
	// A :memory: database exists per connection. Pin the pool to one
	// connection so every statement sees the same table.
	db.SetMaxOpenConns(1)
	return &QueryContext{db: db}, nil
}

// Close releases the underlying database.
func (qc *QueryContext) Close() error {
	return qc.db.Close()
}

// Loaded reports whether a table is currently queryable.
func (qc *QueryContext) Loaded() bool {
	return qc.loaded
}

// Columns returns the loaded table's column names in dataset order.
func (qc *QueryContext) Columns() []string {
	return qc.columns
}

// Load replaces the context's table with t. An empty table drops any
// previous data and leaves the context with nothing loaded; queries then
// fail at execution time, mirroring an engine with no table.
func (qc *QueryContext) Load(ctx context.Context, t *dataset.Table) error {
	if _, err := qc.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS [%s]", query.TableName)); err != nil {
		return apperrors.Wrap(err, "failed to reset query table")
	}
	qc.loaded = false
	qc.columns = nil

	if t == nil || t.IsEmpty() {
		return nil
	}

	// Columns are declared without a type name so SQLite stores each
	// bound value with its natural representation.
	quoted := make([]string, len(t.Columns))
	placeholders := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		quoted[i] = "[" + col + "]"
		placeholders[i] = "?"
	}
	createStmt := fmt.Sprintf("CREATE TABLE [%s] (%s)", query.TableName, strings.Join(quoted, ", "))
	if _, err := qc.db.ExecContext(ctx, createStmt); err != nil {
		return apperrors.Wrap(err, "failed to create query table")
	}

	tx, err := qc.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(err, "failed to begin load transaction")
	}
	defer tx.Rollback()

	insertStmt := fmt.Sprintf("INSERT INTO [%s] (%s) VALUES (%s)",
		query.TableName, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	stmt, err := tx.PreparexContext(ctx, insertStmt)
	if err != nil {
		return apperrors.Wrap(err, "failed to prepare row insert")
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		args := make([]interface{}, len(t.Columns))
		for i, col := range t.Columns {
			args[i] = bindValue(t.Cell(row, col))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return apperrors.Wrap(err, "failed to insert row")
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(err, "failed to commit loaded rows")
	}

	qc.columns = append([]string(nil), t.Columns...)
	qc.loaded = true
	return nil
}

// Query runs sqlText against the loaded table. Engine faults never return
// a Go error: they are surfaced as Result.Error text with an empty row
// set, never partial rows. Callers enforce the SELECT-only contract before
// calling; this boundary trusts its input.
func (qc *QueryContext) Query(ctx context.Context, sqlText string) query.Result {
	start := time.Now()

	rows, err := qc.db.QueryxContext(ctx, sqlText)
	if err != nil {
		return errorResult(start, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return errorResult(start, err)
	}

	var out []dataset.Row
	for rows.Next() {
		raw := make(map[string]interface{}, len(columns))
		if err := rows.MapScan(raw); err != nil {
			return errorResult(start, err)
		}
		row := make(dataset.Row, len(columns))
		for _, col := range columns {
			row[col] = scanValue(raw[col])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return errorResult(start, err)
	}

	return query.Result{
		Rows:            out,
		Columns:         columns,
		RowCount:        len(out),
		ExecutionMillis: float64(time.Since(start).Microseconds()) / 1000,
	}
}

// SampleInfo returns the loaded columns and the first n rows, used by the
// SQL editor's schema sidebar.
func (qc *QueryContext) SampleInfo(ctx context.Context, n int) query.Result {
	if !qc.loaded {
		return query.Result{}
	}
	return qc.Query(ctx, fmt.Sprintf("SELECT * FROM [%s] LIMIT %d", query.TableName, n))
}

func errorResult(start time.Time, err error) query.Result {
	return query.Result{
		Rows:            []dataset.Row{},
		Columns:         []string{},
		ExecutionMillis: float64(time.Since(start).Microseconds()) / 1000,
		Error:           err.Error(),
	}
}

// bindValue converts a cell to its driver representation. Missing cells
// become SQL NULL; dates travel as their literal strings.
func bindValue(v core.Value) interface{} {
	switch v.Kind {
	case core.KindNull:
		return nil
	case core.KindNumber:
		return v.Num
	case core.KindBool:
		return v.Bool
	default:
		return v.Str
	}
}

// scanValue converts a driver value back into a cell.
func scanValue(raw interface{}) core.Value {
	switch t := raw.(type) {
	case nil:
		return core.Null()
	case int64:
		return core.Number(float64(t))
	case float64:
		return core.Number(t)
	case bool:
		return core.Boolean(t)
	case []byte:
		return core.Text(string(t))
	case string:
		return core.Text(t)
	default:
		return core.Text(fmt.Sprintf("%v", t))
	}
}
