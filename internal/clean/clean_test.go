package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
	"github.com/pratikkkbhere/DataPilot/internal/profile"
)

func TestCleanTable_RemovesDuplicatesKeepingFirst(t *testing.T) {
	tbl := dataset.NewTable([]string{"a", "b"}, []dataset.Row{
		{"a": core.Number(1), "b": core.Text("x")},
		{"a": core.Number(1), "b": core.Text("x")},
		{"a": core.Number(2), "b": core.Text("y")},
		{"a": core.Number(1), "b": core.Text("x")},
	})
	summary := profile.ProfileTable(tbl)

	cleaned, cleanSummary := CleanTable(tbl, summary.ColumnStats)

	assert.Equal(t, 4, cleanSummary.TotalRowsBefore)
	assert.Equal(t, 2, cleanSummary.TotalRowsAfter)
	assert.Equal(t, 2, cleanSummary.DuplicatesRemoved)
	require.NotEmpty(t, cleanSummary.Actions)
	assert.Equal(t, "Remove duplicates", cleanSummary.Actions[0].Action)
	assert.Equal(t, 2, cleanSummary.Actions[0].AffectedRows)
	// First occurrences survive in original order.
	assert.Equal(t, core.Number(1), cleaned.Rows[0]["a"])
	assert.Equal(t, core.Number(2), cleaned.Rows[1]["a"])
	// Input untouched.
	assert.Equal(t, 4, tbl.NumRows())
}

func TestCleanTable_FillsNumericWithPreCleanMedian(t *testing.T) {
	tbl := dataset.NewTable([]string{"v"}, []dataset.Row{
		{"v": core.Number(10)},
		{"v": core.Number(20)},
		{"v": core.Number(30)},
		{"v": core.Null()},
	})
	summary := profile.ProfileTable(tbl)

	cleaned, cleanSummary := CleanTable(tbl, summary.ColumnStats)

	assert.Equal(t, core.Number(20), cleaned.Rows[3]["v"])
	require.Len(t, cleanSummary.Actions, 1)
	assert.Equal(t, "Fill missing with median", cleanSummary.Actions[0].Action)
	assert.Equal(t, 1, cleanSummary.Actions[0].AffectedRows)
}

func TestCleanTable_FillsStringWithMode(t *testing.T) {
	tbl := dataset.NewTable([]string{"s"}, []dataset.Row{
		{"s": core.Text("red")},
		{"s": core.Text("red")},
		{"s": core.Text("blue")},
		{"s": core.Text("")},
	})
	summary := profile.ProfileTable(tbl)

	cleaned, cleanSummary := CleanTable(tbl, summary.ColumnStats)

	assert.Equal(t, "red", cleaned.Rows[3]["s"].String())
	require.Len(t, cleanSummary.Actions, 1)
	assert.Equal(t, "Fill missing with mode", cleanSummary.Actions[0].Action)
}

func TestCleanTable_TrimsWhitespaceWithAction(t *testing.T) {
	tbl := dataset.NewTable([]string{"s"}, []dataset.Row{
		{"s": core.Text("  padded  ")},
		{"s": core.Text("clean")},
		{"s": core.Text("tail ")},
	})
	summary := profile.ProfileTable(tbl)

	cleaned, cleanSummary := CleanTable(tbl, summary.ColumnStats)

	assert.Equal(t, "padded", cleaned.Rows[0]["s"].String())
	assert.Equal(t, "clean", cleaned.Rows[1]["s"].String())
	require.Len(t, cleanSummary.Actions, 1)
	assert.Equal(t, "Trim whitespace", cleanSummary.Actions[0].Action)
	assert.Equal(t, 2, cleanSummary.Actions[0].AffectedRows)
}

func TestCleanTable_SilentNumericCoercion(t *testing.T) {
	tbl := dataset.NewTable([]string{"v"}, []dataset.Row{
		{"v": core.Number(1)},
		{"v": core.Number(2)},
		{"v": core.Number(3)},
		{"v": core.Number(4)},
		{"v": core.Text("5")},
	})
	summary := profile.ProfileTable(tbl)

	cleaned, cleanSummary := CleanTable(tbl, summary.ColumnStats)

	assert.Equal(t, core.KindNumber, cleaned.Rows[4]["v"].Kind)
	assert.Equal(t, 5.0, cleaned.Rows[4]["v"].Num)
	// Coercion is silent: no action entry.
	assert.Empty(t, cleanSummary.Actions)
}

func TestCleanTable_Idempotent(t *testing.T) {
	tbl := dataset.NewTable([]string{"v", "s"}, []dataset.Row{
		{"v": core.Number(1), "s": core.Text(" a ")},
		{"v": core.Number(1), "s": core.Text(" a ")},
		{"v": core.Null(), "s": core.Text("b")},
		{"v": core.Number(3), "s": core.Text("")},
	})
	summary := profile.ProfileTable(tbl)
	once, _ := CleanTable(tbl, summary.ColumnStats)

	// Cleaning the cleaned output with a fresh profile is a no-op.
	twiceSummary := profile.ProfileTable(once)
	twice, cleanSummary := CleanTable(once, twiceSummary.ColumnStats)

	assert.Empty(t, cleanSummary.Actions)
	assert.Equal(t, once.NumRows(), twice.NumRows())
	assert.Equal(t, 0, cleanSummary.DuplicatesRemoved)
}

func TestApplyMissingValueConfigs(t *testing.T) {
	build := func() (*dataset.Table, *dataset.DatasetSummary) {
		tbl := dataset.NewTable([]string{"v", "s"}, []dataset.Row{
			{"v": core.Number(10), "s": core.Text("x")},
			{"v": core.Null(), "s": core.Text("y")},
			{"v": core.Number(30), "s": core.Null()},
			{"v": core.Null(), "s": core.Null()},
		})
		return tbl, profile.ProfileTable(tbl)
	}

	t.Run("fill mean", func(t *testing.T) {
		tbl, summary := build()
		cleaned, actions := ApplyMissingValueConfigs(tbl, summary, []dataset.MissingValueConfig{
			{Column: "v", Strategy: dataset.StrategyFillMean},
		})
		assert.Equal(t, core.Number(20), cleaned.Rows[1]["v"])
		assert.Equal(t, core.Number(20), cleaned.Rows[3]["v"])
		require.Len(t, actions, 1)
		assert.Equal(t, 2, actions[0].AffectedRows)
	})

	t.Run("drop rows", func(t *testing.T) {
		tbl, summary := build()
		cleaned, actions := ApplyMissingValueConfigs(tbl, summary, []dataset.MissingValueConfig{
			{Column: "s", Strategy: dataset.StrategyDropRows},
		})
		assert.Equal(t, 2, cleaned.NumRows())
		require.Len(t, actions, 1)
		assert.Equal(t, "Drop rows with missing", actions[0].Action)
		assert.Equal(t, 2, actions[0].AffectedRows)
	})

	t.Run("config order determines final row set", func(t *testing.T) {
		tbl, summary := build()
		// Fill v first, then drop on s: the filled row 3 is still dropped
		// by the s policy because it runs after.
		cleaned, actions := ApplyMissingValueConfigs(tbl, summary, []dataset.MissingValueConfig{
			{Column: "v", Strategy: dataset.StrategyFillMedian},
			{Column: "s", Strategy: dataset.StrategyDropRows},
		})
		assert.Equal(t, 2, cleaned.NumRows())
		require.Len(t, actions, 2)
		assert.Equal(t, 2, actions[0].AffectedRows)
		assert.Equal(t, 2, actions[1].AffectedRows)
	})

	t.Run("leave_null and zero-effect columns yield no action", func(t *testing.T) {
		tbl, summary := build()
		_, actions := ApplyMissingValueConfigs(tbl, summary, []dataset.MissingValueConfig{
			{Column: "v", Strategy: dataset.StrategyLeaveNull},
		})
		assert.Empty(t, actions)

		full := dataset.NewTable([]string{"v"}, []dataset.Row{{"v": core.Number(1)}})
		fullSummary := profile.ProfileTable(full)
		_, actions = ApplyMissingValueConfigs(full, fullSummary, []dataset.MissingValueConfig{
			{Column: "v", Strategy: dataset.StrategyFillMean},
		})
		assert.Empty(t, actions)
	})

	t.Run("custom fill coerced to native representation", func(t *testing.T) {
		tbl, summary := build()
		cleaned, _ := ApplyMissingValueConfigs(tbl, summary, []dataset.MissingValueConfig{
			{Column: "v", Strategy: dataset.StrategyFillCustom, CustomValue: "42"},
		})
		assert.Equal(t, core.Number(42), cleaned.Rows[1]["v"])
	})

	t.Run("custom fill with empty literal is permitted", func(t *testing.T) {
		tbl, summary := build()
		cleaned, actions := ApplyMissingValueConfigs(tbl, summary, []dataset.MissingValueConfig{
			{Column: "s", Strategy: dataset.StrategyFillCustom, CustomValue: ""},
		})
		// The empty literal lands as an empty text cell; the cells were
		// still written, so the action reports them.
		require.Len(t, actions, 1)
		assert.Equal(t, 2, actions[0].AffectedRows)
		assert.Equal(t, core.KindText, cleaned.Rows[2]["s"].Kind)
	})
}

func TestApplyMissingValueConfigs_DateStrategies(t *testing.T) {
	tbl := dataset.NewTable([]string{"d"}, []dataset.Row{
		{"d": core.Date("2024-06-15")},
		{"d": core.Date("2023-01-01")},
		{"d": core.Null()},
	})
	summary := profile.ProfileTable(tbl)

	earliest, _ := ApplyMissingValueConfigs(tbl, summary, []dataset.MissingValueConfig{
		{Column: "d", Strategy: dataset.StrategyFillEarliest},
	})
	assert.Equal(t, "2023-01-01", earliest.Rows[2]["d"].String())

	latest, _ := ApplyMissingValueConfigs(tbl, summary, []dataset.MissingValueConfig{
		{Column: "d", Strategy: dataset.StrategyFillLatest},
	})
	assert.Equal(t, "2024-06-15", latest.Rows[2]["d"].String())
}

func TestFindReplace(t *testing.T) {
	build := func() *dataset.Table {
		return dataset.NewTable([]string{"s"}, []dataset.Row{
			{"s": core.Text("alpha beta")},
			{"s": core.Text("Beta gamma")},
			{"s": core.Text("betamax")},
			{"s": core.Null()},
		})
	}

	t.Run("case-insensitive substring", func(t *testing.T) {
		cleaned, action, err := FindReplace(build(), FindReplaceOptions{
			Column: "s", Find: "beta", Replace: "delta",
		})
		require.NoError(t, err)
		assert.Equal(t, 3, action.AffectedRows)
		assert.Equal(t, "alpha delta", cleaned.Rows[0]["s"].String())
		assert.Equal(t, "delta gamma", cleaned.Rows[1]["s"].String())
		assert.Equal(t, "deltamax", cleaned.Rows[2]["s"].String())
	})

	t.Run("whole word", func(t *testing.T) {
		cleaned, action, err := FindReplace(build(), FindReplaceOptions{
			Column: "s", Find: "beta", Replace: "delta", WholeWord: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, action.AffectedRows)
		assert.Equal(t, "betamax", cleaned.Rows[2]["s"].String())
	})

	t.Run("case sensitive", func(t *testing.T) {
		_, action, err := FindReplace(build(), FindReplaceOptions{
			Column: "s", Find: "beta", Replace: "delta", MatchCase: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, action.AffectedRows)
	})

	t.Run("metacharacters are escaped", func(t *testing.T) {
		tbl := dataset.NewTable([]string{"s"}, []dataset.Row{
			{"s": core.Text("price (usd)")},
			{"s": core.Text("price in usd")},
		})
		cleaned, action, err := FindReplace(tbl, FindReplaceOptions{
			Column: "s", Find: "(usd)", Replace: "(eur)",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, action.AffectedRows)
		assert.Equal(t, "price (eur)", cleaned.Rows[0]["s"].String())
	})

	t.Run("missing column or term is a validation error", func(t *testing.T) {
		_, _, err := FindReplace(build(), FindReplaceOptions{Column: "s"})
		assert.Error(t, err)
	})
}

func TestPreviewFindReplace_CountsOccurrences(t *testing.T) {
	tbl := dataset.NewTable([]string{"s"}, []dataset.Row{
		{"s": core.Text("aa aa")},
		{"s": core.Text("aa")},
	})
	count, err := PreviewFindReplace(tbl, FindReplaceOptions{Column: "s", Find: "aa"})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
