package clean

import (
	"fmt"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
)

// ApplyMissingValueConfigs applies the user's per-column fill/drop
// policies to the current snapshot. Columns are processed strictly in
// config order: a later column's drop_rows runs against the rows produced
// by earlier fills, so configuration order determines the final row set.
// Zero-effect columns yield no action.
func ApplyMissingValueConfigs(t *dataset.Table, summary *dataset.DatasetSummary, configs []dataset.MissingValueConfig) (*dataset.Table, []dataset.CleaningAction) {
	cleaned := t.Clone()
	var actions []dataset.CleaningAction

	for _, cfg := range configs {
		if cfg.Strategy == dataset.StrategyLeaveNull {
			continue
		}
		cs := summary.StatsFor(cfg.Column)
		if cs == nil {
			continue
		}

		if cfg.Strategy == dataset.StrategyDropRows {
			if action := dropMissingRows(cleaned, cfg.Column); action != nil {
				actions = append(actions, *action)
			}
			continue
		}

		fill, method, ok := fillValueFor(cfg, cs)
		if !ok {
			continue
		}
		filled := 0
		for _, row := range cleaned.Rows {
			if cleaned.Cell(row, cfg.Column).IsMissing() {
				row[cfg.Column] = fill
				filled++
			}
		}
		if filled > 0 {
			actions = append(actions, dataset.CleaningAction{
				Column:       cfg.Column,
				Action:       "Fill missing with " + method,
				AffectedRows: filled,
				Details:      fmt.Sprintf("Filled %d missing values with %s", filled, fill.String()),
			})
		}
	}

	return cleaned, actions
}

// fillValueFor resolves the strategy's fill value against the snapshot,
// applying the documented fallback chain per strategy.
func fillValueFor(cfg dataset.MissingValueConfig, cs *dataset.ColumnStats) (core.Value, string, bool) {
	switch cfg.Strategy {
	case dataset.StrategyFillMean:
		if cs.Mean != nil {
			return core.Number(*cs.Mean), "Mean", true
		}
		return core.Number(0), "Mean", true
	case dataset.StrategyFillMedian:
		if cs.Median != nil {
			return core.Number(*cs.Median), "Median", true
		}
		return core.Number(0), "Median", true
	case dataset.StrategyFillMode:
		if !cs.Mode.IsMissing() {
			return cs.Mode, "Mode", true
		}
		return core.Text(""), "Mode", true
	case dataset.StrategyFillCustom:
		// The literal is whatever the user typed, unvalidated; it is
		// coerced to the column's native representation when possible.
		return core.CoerceTo(cs.Type.Kind(), cfg.CustomValue), "Custom value", true
	case dataset.StrategyFillEarliest:
		return cs.Min, "Earliest date", true
	case dataset.StrategyFillLatest:
		return cs.Max, "Latest date", true
	}
	return core.Null(), "", false
}

// dropMissingRows removes every row where the column is missing.
func dropMissingRows(t *dataset.Table, column string) *dataset.CleaningAction {
	kept := make([]dataset.Row, 0, len(t.Rows))
	dropped := 0
	for _, row := range t.Rows {
		if t.Cell(row, column).IsMissing() {
			dropped++
			continue
		}
		kept = append(kept, row)
	}
	t.Rows = kept
	if dropped == 0 {
		return nil
	}
	return &dataset.CleaningAction{
		Column:       column,
		Action:       "Drop rows with missing",
		AffectedRows: dropped,
		Details:      fmt.Sprintf("Removed %d rows with missing values", dropped),
	}
}

// PreviewConfigs describes what applying each configured strategy would
// do, without touching the data.
func PreviewConfigs(summary *dataset.DatasetSummary, configs []dataset.MissingValueConfig) []dataset.MissingValuePreview {
	previews := make([]dataset.MissingValuePreview, 0, len(configs))
	for _, cfg := range configs {
		if cfg.Strategy == dataset.StrategyLeaveNull {
			continue
		}
		cs := summary.StatsFor(cfg.Column)
		if cs == nil {
			continue
		}

		affected := cs.MissingCount
		var description string
		switch cfg.Strategy {
		case dataset.StrategyFillMean:
			description = fmt.Sprintf("%d missing values will be filled with Mean (%s)", affected, statOrNA(cs.Mean))
		case dataset.StrategyFillMedian:
			description = fmt.Sprintf("%d missing values will be filled with Median (%s)", affected, statOrNA(cs.Median))
		case dataset.StrategyFillMode:
			description = fmt.Sprintf("%d missing values will be filled with Mode (%q)", affected, cs.Mode.String())
		case dataset.StrategyFillCustom:
			description = fmt.Sprintf("%d missing values will be filled with %q", affected, cfg.CustomValue)
		case dataset.StrategyFillEarliest:
			description = fmt.Sprintf("%d missing values will be filled with earliest date (%s)", affected, cs.Min.String())
		case dataset.StrategyFillLatest:
			description = fmt.Sprintf("%d missing values will be filled with latest date (%s)", affected, cs.Max.String())
		case dataset.StrategyDropRows:
			description = fmt.Sprintf("%d rows will be removed due to missing values", affected)
		}

		previews = append(previews, dataset.MissingValuePreview{
			Column:       cfg.Column,
			Strategy:     cfg.Strategy,
			AffectedRows: affected,
			Description:  description,
		})
	}
	return previews
}

func statOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}
