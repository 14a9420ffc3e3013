// Package session owns the per-upload workbench state: the immutable
// original dataset, the cleaned working copy, the cleaning evidence trail,
// the undo window, and the query engine holding the current data. All
// pipeline stages are invoked through a workbench so mutations stay
// serialized against one dataset version.
package session

import (
	"context"
	"log"
	"time"

	"github.com/pratikkkbhere/DataPilot/adapters/sqlengine"
	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
	"github.com/pratikkkbhere/DataPilot/domain/query"
	"github.com/pratikkkbhere/DataPilot/internal/clean"
	apperrors "github.com/pratikkkbhere/DataPilot/internal/errors"
	"github.com/pratikkkbhere/DataPilot/internal/frame"
	"github.com/pratikkkbhere/DataPilot/internal/profile"
	"github.com/pratikkkbhere/DataPilot/internal/sqlbuild"
	"github.com/pratikkkbhere/DataPilot/internal/undo"
)

// Workbench is one upload's full working state. Methods are not safe for
// concurrent use; the Store serializes access per session.
type Workbench struct {
	ID        core.SessionID
	Filename  string
	CreatedAt time.Time

	original *dataset.Table
	cleaned  *dataset.Table
	summary  *dataset.DatasetSummary
	cleaning dataset.CleaningSummary
	actions  []dataset.CleaningAction

	undoMgr *undo.Manager
	engine  *sqlengine.QueryContext
}

// NewWorkbench captures the uploaded table, runs the automatic cleaning
// pipeline against the pre-clean profile, and loads the result into a
// fresh query context. The uploaded table is held immutably as the
// original; every later stage works on copies.
func NewWorkbench(ctx context.Context, filename string, uploaded *dataset.Table, undoWindow time.Duration) (*Workbench, error) {
	if uploaded == nil || uploaded.IsEmpty() {
		return nil, core.ErrEmptyDataset
	}

	engine, err := sqlengine.NewQueryContext()
	if err != nil {
		return nil, err
	}

	w := &Workbench{
		ID:        core.NewSessionID(),
		Filename:  filename,
		CreatedAt: time.Now(),
		original:  uploaded.Clone(),
		undoMgr:   undo.NewManager(undoWindow),
		engine:    engine,
	}

	// Fill values must reflect the original distribution, so the profile
	// feeding the pipeline is taken before cleaning.
	preClean := profile.ProfileTable(uploaded)
	cleaned, cleaningSummary := clean.CleanTable(uploaded, preClean.ColumnStats)
	w.cleaned = cleaned
	w.cleaning = cleaningSummary
	w.actions = append(w.actions, cleaningSummary.Actions...)
	w.summary = profile.ProfileTable(cleaned)

	if err := engine.Load(ctx, cleaned); err != nil {
		engine.Close()
		return nil, err
	}

	log.Printf("[Workbench] session %s created from %s (%d rows, %d columns, %d cleaning actions)",
		w.ID, filename, cleaned.NumRows(), cleaned.NumColumns(), len(cleaningSummary.Actions))
	return w, nil
}

// Close releases the session's query engine.
func (w *Workbench) Close() error {
	return w.engine.Close()
}

// Data returns the current cleaned table.
func (w *Workbench) Data() *dataset.Table {
	return w.cleaned
}

// Original returns the immutable as-uploaded table.
func (w *Workbench) Original() *dataset.Table {
	return w.original
}

// Summary returns the profile of the current cleaned data.
func (w *Workbench) Summary() *dataset.DatasetSummary {
	return w.summary
}

// CleaningSummary reports the automatic pipeline's outcome.
func (w *Workbench) CleaningSummary() dataset.CleaningSummary {
	return w.cleaning
}

// Actions returns the full cleaning evidence trail.
func (w *Workbench) Actions() []dataset.CleaningAction {
	return w.actions
}

// UndoPending reports whether the last mutation is still revertible.
func (w *Workbench) UndoPending() bool {
	return w.undoMgr.Pending()
}

// ApplyMissingValues runs the user-directed resolver over the current
// data. The pre-mutation state is armed for undo before anything changes;
// a validation failure leaves both data and undo state untouched.
func (w *Workbench) ApplyMissingValues(ctx context.Context, configs []dataset.MissingValueConfig) ([]dataset.CleaningAction, error) {
	if err := w.validateConfigs(configs); err != nil {
		return nil, err
	}

	w.undoMgr.Arm(w.cleaned, w.actions)
	next, applied := clean.ApplyMissingValueConfigs(w.cleaned, w.summary, configs)
	return applied, w.commit(ctx, next, applied)
}

// PreviewMissingValues describes what each config would do without
// mutating anything.
func (w *Workbench) PreviewMissingValues(configs []dataset.MissingValueConfig) ([]dataset.MissingValuePreview, error) {
	if err := w.validateConfigs(configs); err != nil {
		return nil, err
	}
	return clean.PreviewConfigs(w.summary, configs), nil
}

// FindReplace applies a find-and-replace mutation under an undo window.
func (w *Workbench) FindReplace(ctx context.Context, opts clean.FindReplaceOptions) (*dataset.CleaningAction, error) {
	w.undoMgr.Arm(w.cleaned, w.actions)
	next, action, err := clean.FindReplace(w.cleaned, opts)
	if err != nil {
		w.undoMgr.Cancel()
		return nil, err
	}
	var applied []dataset.CleaningAction
	if action != nil {
		applied = []dataset.CleaningAction{*action}
	}
	return action, w.commit(ctx, next, applied)
}

// PreviewFindReplace counts occurrences without mutating.
func (w *Workbench) PreviewFindReplace(opts clean.FindReplaceOptions) (int, error) {
	return clean.PreviewFindReplace(w.cleaned, opts)
}

// Undo restores the data and action log to the exact pre-mutation
// snapshot, then re-profiles and reloads the query engine.
func (w *Workbench) Undo(ctx context.Context) error {
	snap, err := w.undoMgr.Undo()
	if err != nil {
		return err
	}

	w.cleaned = snap.Data
	w.actions = snap.Actions
	w.summary = profile.ProfileTable(w.cleaned)
	if err := w.engine.Load(ctx, w.cleaned); err != nil {
		return err
	}

	log.Printf("[Workbench] session %s undo restored %d rows, %d actions", w.ID, w.cleaned.NumRows(), len(w.actions))
	return nil
}

// View applies stateless filters and sorts over the current data. Nothing
// is mutated; the same configs re-evaluate against whatever the data is
// now.
func (w *Workbench) View(filters []dataset.FilterConfig, sorts []dataset.SortConfig) (*dataset.Table, error) {
	for _, f := range filters {
		if !w.cleaned.HasColumn(f.Column) {
			return nil, apperrors.ValidationError("unknown filter column: " + f.Column)
		}
	}
	view := frame.ApplyFilters(w.cleaned, filters)
	if len(sorts) > 0 {
		view = frame.ApplySort(view, sorts)
	}
	return view, nil
}

// Aggregate groups and summarizes the current data.
func (w *Workbench) Aggregate(config dataset.AggregationConfig) (*dataset.Table, error) {
	return frame.PerformAggregation(w.cleaned, config)
}

// ExecuteSQL runs raw query text against the loaded data. Only SELECT text
// ever reaches the engine; anything else fails validation here.
func (w *Workbench) ExecuteSQL(ctx context.Context, sqlText string) (query.Result, error) {
	if err := sqlbuild.ValidateQueryText(sqlText); err != nil {
		return query.Result{}, apperrors.ValidationError(err.Error())
	}
	return w.engine.Query(ctx, sqlText), nil
}

// RunVisualQuery compiles the visual config and executes it, returning
// the generated SQL alongside the result.
func (w *Workbench) RunVisualQuery(ctx context.Context, config query.VisualQueryConfig) (string, query.Result, error) {
	sqlText := sqlbuild.BuildQueryFromVisual(config, w.cleaned.Columns)
	result, err := w.ExecuteSQL(ctx, sqlText)
	return sqlText, result, err
}

// Templates returns the canned SQL offers for the current columns.
func (w *Workbench) Templates() []query.Template {
	return sqlbuild.Templates(w.cleaned.Columns)
}

// SampleInfo exposes the engine's schema sidebar data.
func (w *Workbench) SampleInfo(ctx context.Context, n int) query.Result {
	return w.engine.SampleInfo(ctx, n)
}

// commit installs a mutated table: append actions, re-profile, reload the
// engine.
func (w *Workbench) commit(ctx context.Context, next *dataset.Table, applied []dataset.CleaningAction) error {
	w.cleaned = next
	w.actions = append(w.actions, applied...)
	w.summary = profile.ProfileTable(next)
	return w.engine.Load(ctx, next)
}

func (w *Workbench) validateConfigs(configs []dataset.MissingValueConfig) error {
	for _, cfg := range configs {
		cs := w.summary.StatsFor(cfg.Column)
		if cs == nil {
			return apperrors.ValidationError("unknown column: " + cfg.Column)
		}
		if !dataset.ValidStrategy(cs.Type, cfg.Strategy) {
			return apperrors.ValidationError("strategy " + string(cfg.Strategy) + " does not apply to " + string(cs.Type) + " column " + cfg.Column)
		}
	}
	return nil
}
