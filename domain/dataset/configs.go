package dataset

// FilterOperator enumerates the row-predicate operators.
type FilterOperator string

const (
	OpEquals      FilterOperator = "equals"
	OpNotEquals   FilterOperator = "not_equals"
	OpContains    FilterOperator = "contains"
	OpGreaterThan FilterOperator = "greater_than"
	OpLessThan    FilterOperator = "less_than"
	OpBetween     FilterOperator = "between"
	OpIsNull      FilterOperator = "is_null"
	OpIsNotNull   FilterOperator = "is_not_null"
)

// FilterConfig is a stateless row predicate: column + operator + literals.
// It holds no row references and is re-evaluated against the current
// dataset on every application.
type FilterConfig struct {
	Column   string         `json:"column"`
	Operator FilterOperator `json:"operator"`
	Value    string         `json:"value,omitempty"`
	Value2   string         `json:"value2,omitempty"`
}

// SortDirection is the ordering direction for one sort key.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortConfig is one key of a multi-key sort.
type SortConfig struct {
	Column    string        `json:"column"`
	Direction SortDirection `json:"direction"`
}

// AggregateFunc enumerates the group summarization functions.
type AggregateFunc string

const (
	AggCount  AggregateFunc = "count"
	AggSum    AggregateFunc = "sum"
	AggAvg    AggregateFunc = "avg"
	AggMedian AggregateFunc = "median"
	AggMin    AggregateFunc = "min"
	AggMax    AggregateFunc = "max"
)

// Aggregation requests one summarized column within a grouping.
type Aggregation struct {
	Column   string        `json:"column"`
	Function AggregateFunc `json:"function"`
}

// AggregationConfig describes a grouping request. Precondition: at least
// one of GroupByColumns or Aggregations is non-empty.
type AggregationConfig struct {
	GroupByColumns []string      `json:"groupByColumns"`
	Aggregations   []Aggregation `json:"aggregations"`
}

// ChartKind enumerates the supported visualization shapes.
type ChartKind string

const (
	ChartBar       ChartKind = "bar"
	ChartLine      ChartKind = "line"
	ChartPie       ChartKind = "pie"
	ChartHistogram ChartKind = "histogram"
	ChartScatter   ChartKind = "scatter"
)

// ChartConfig selects axes and the aggregation used to collapse groups.
type ChartConfig struct {
	Type        ChartKind     `json:"type"`
	XAxis       string        `json:"xAxis,omitempty"`
	YAxis       string        `json:"yAxis,omitempty"`
	Aggregation AggregateFunc `json:"aggregation,omitempty"`
	Bins        int           `json:"bins,omitempty"`
}
