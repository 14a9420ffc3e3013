package dataset

// CleaningAction is one immutable entry in the cleaning evidence trail.
// AffectedRows is always the literal count of cells or rows mutated by the
// action, never an estimate.
type CleaningAction struct {
	Column       string `json:"column"`
	Action       string `json:"action"`
	AffectedRows int    `json:"affectedRows"`
	Details      string `json:"details"`
}

// CleaningSummary reports the outcome of the automatic cleaning pipeline.
type CleaningSummary struct {
	TotalRowsBefore   int              `json:"totalRowsBefore"`
	TotalRowsAfter    int              `json:"totalRowsAfter"`
	DuplicatesRemoved int              `json:"duplicatesRemoved"`
	Actions           []CleaningAction `json:"actions"`
}

// MissingValueStrategy enumerates the user-selectable fill/drop policies.
type MissingValueStrategy string

const (
	StrategyLeaveNull    MissingValueStrategy = "leave_null"
	StrategyFillMean     MissingValueStrategy = "fill_mean"
	StrategyFillMedian   MissingValueStrategy = "fill_median"
	StrategyFillMode     MissingValueStrategy = "fill_mode"
	StrategyFillCustom   MissingValueStrategy = "fill_custom"
	StrategyFillEarliest MissingValueStrategy = "fill_earliest"
	StrategyFillLatest   MissingValueStrategy = "fill_latest"
	StrategyDropRows     MissingValueStrategy = "drop_rows"
)

// MissingValueConfig is one column's chosen policy. Configs are ephemeral:
// held until applied, then discarded.
type MissingValueConfig struct {
	Column      string               `json:"column"`
	Strategy    MissingValueStrategy `json:"strategy"`
	CustomValue string               `json:"customValue,omitempty"`
}

// MissingValuePreview describes what applying one config would do.
type MissingValuePreview struct {
	Column       string               `json:"column"`
	Strategy     MissingValueStrategy `json:"strategy"`
	AffectedRows int                  `json:"affectedRows"`
	Description  string               `json:"description"`
}

// StrategiesForType lists the strategies applicable to a column type.
func StrategiesForType(t ColumnType) []MissingValueStrategy {
	common := []MissingValueStrategy{StrategyLeaveNull, StrategyDropRows}
	switch t {
	case TypeNumber:
		return append(common, StrategyFillMean, StrategyFillMedian, StrategyFillMode, StrategyFillCustom)
	case TypeDate:
		return append(common, StrategyFillEarliest, StrategyFillLatest, StrategyFillCustom)
	default:
		return append(common, StrategyFillMode, StrategyFillCustom)
	}
}

// ValidStrategy reports whether the strategy applies to the column type.
func ValidStrategy(t ColumnType, s MissingValueStrategy) bool {
	for _, allowed := range StrategiesForType(t) {
		if allowed == s {
			return true
		}
	}
	return false
}
