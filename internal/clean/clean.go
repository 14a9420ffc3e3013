// Package clean implements the mutation stages of the workbench: the
// automatic post-upload pipeline, the user-directed missing-value
// resolver, and find & replace. Every entry point returns a fresh table
// and an action log; inputs are never mutated, so the caller's previous
// snapshot stays valid for undo.
package clean

import (
	"fmt"
	"strings"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
)

// CleanTable runs the automatic cleaning pipeline against a table and the
// profile snapshot taken BEFORE cleaning, in fixed order: duplicate
// removal, per-column missing-value fills, string trimming, and silent
// numeric coercion. Fill values come from the pre-cleaning snapshot so
// they reflect the original distribution.
func CleanTable(t *dataset.Table, columnStats []dataset.ColumnStats) (*dataset.Table, dataset.CleaningSummary) {
	cleaned := t.Clone()
	totalRowsBefore := cleaned.NumRows()
	var actions []dataset.CleaningAction

	cleaned, duplicatesRemoved := removeDuplicates(cleaned)
	if duplicatesRemoved > 0 {
		actions = append(actions, dataset.CleaningAction{
			Column:       "All",
			Action:       "Remove duplicates",
			AffectedRows: duplicatesRemoved,
			Details:      fmt.Sprintf("Removed %d duplicate rows", duplicatesRemoved),
		})
	}

	// Columns are visited in snapshot order; each column contributes at
	// most a fill action and a trim action.
	for _, cs := range columnStats {
		if cs.MissingCount > 0 {
			if action := fillMissing(cleaned, cs); action != nil {
				actions = append(actions, *action)
			}
		}
		if cs.Type == dataset.TypeString {
			if action := trimStrings(cleaned, cs.Name); action != nil {
				actions = append(actions, *action)
			}
		}
		if cs.Type == dataset.TypeNumber {
			// Silent normalization: numeric-looking text cells become
			// numbers without an action entry.
			coerceNumeric(cleaned, cs.Name)
		}
	}

	return cleaned, dataset.CleaningSummary{
		TotalRowsBefore:   totalRowsBefore,
		TotalRowsAfter:    cleaned.NumRows(),
		DuplicatesRemoved: duplicatesRemoved,
		Actions:           actions,
	}
}

// removeDuplicates keeps the first occurrence of each canonical row, in
// original order.
func removeDuplicates(t *dataset.Table) (*dataset.Table, int) {
	seen := make(map[string]struct{}, len(t.Rows))
	unique := make([]dataset.Row, 0, len(t.Rows))
	removed := 0
	for _, row := range t.Rows {
		key := t.CanonicalKey(row)
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, row)
	}
	t.Rows = unique
	return t, removed
}

// fillMissing fills the column's missing cells from the snapshot: median
// (falling back to mean, then 0) for numbers, mode (falling back to the
// empty string) for everything else.
func fillMissing(t *dataset.Table, cs dataset.ColumnStats) *dataset.CleaningAction {
	var fill core.Value
	var method string
	if cs.Type == dataset.TypeNumber {
		switch {
		case cs.Median != nil:
			fill = core.Number(*cs.Median)
		case cs.Mean != nil:
			fill = core.Number(*cs.Mean)
		default:
			fill = core.Number(0)
		}
		method = "median"
	} else {
		if !cs.Mode.IsMissing() {
			fill = cs.Mode
		} else {
			fill = core.Text("")
		}
		method = "mode"
	}

	filled := 0
	for _, row := range t.Rows {
		if t.Cell(row, cs.Name).IsMissing() {
			row[cs.Name] = fill
			filled++
		}
	}
	if filled == 0 {
		return nil
	}
	return &dataset.CleaningAction{
		Column:       cs.Name,
		Action:       "Fill missing with " + method,
		AffectedRows: filled,
		Details:      fmt.Sprintf("Filled %d missing values with %s", filled, fill.String()),
	}
}

// trimStrings strips leading/trailing whitespace from every text cell.
func trimStrings(t *dataset.Table, column string) *dataset.CleaningAction {
	trimmed := 0
	for _, row := range t.Rows {
		v, ok := row[column]
		if !ok || v.Kind != core.KindText {
			continue
		}
		clean := strings.TrimSpace(v.Str)
		if clean != v.Str {
			row[column] = core.Text(clean)
			trimmed++
		}
	}
	if trimmed == 0 {
		return nil
	}
	return &dataset.CleaningAction{
		Column:       column,
		Action:       "Trim whitespace",
		AffectedRows: trimmed,
		Details:      fmt.Sprintf("Trimmed whitespace from %d values", trimmed),
	}
}

// coerceNumeric converts numeric-looking text cells in a number column to
// their native representation.
func coerceNumeric(t *dataset.Table, column string) {
	for _, row := range t.Rows {
		v, ok := row[column]
		if !ok || v.Kind != core.KindText || v.Str == "" {
			continue
		}
		if f, numeric := v.Float(); numeric {
			row[column] = core.Number(f)
		}
	}
}
