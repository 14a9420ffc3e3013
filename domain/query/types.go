// Package query defines the visual query configuration compiled into SQL
// text, and the result shape returned by the embedded query engine.
package query

import (
	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
)

// TableName is the single table the workbench exposes to SQL. The query
// context owns exactly one loaded table under this name.
const TableName = "dataset"

// WhereOperator enumerates the condition operators of the visual builder.
// This is a wider set than the filter engine's: the extra expressiveness
// (OR connectors, in, like) lives only here.
type WhereOperator string

const (
	WhereEquals       WhereOperator = "equals"
	WhereNotEquals    WhereOperator = "not_equals"
	WhereContains     WhereOperator = "contains"
	WhereLike         WhereOperator = "like"
	WhereGreaterThan  WhereOperator = "greater_than"
	WhereLessThan     WhereOperator = "less_than"
	WhereGreaterEqual WhereOperator = "greater_equal"
	WhereLessEqual    WhereOperator = "less_equal"
	WhereBetween      WhereOperator = "between"
	WhereIsNull       WhereOperator = "is_null"
	WhereIsNotNull    WhereOperator = "is_not_null"
	WhereIn           WhereOperator = "in"
)

// Connector joins a condition to the one before it.
type Connector string

const (
	ConnectorAnd Connector = "AND"
	ConnectorOr  Connector = "OR"
)

// WhereCondition is one row of the visual WHERE builder. The first
// condition's connector is ignored by the compiler.
type WhereCondition struct {
	ID        core.ConditionID `json:"id"`
	Column    string           `json:"column"`
	Operator  WhereOperator    `json:"operator"`
	Value     string           `json:"value"`
	Value2    string           `json:"value2,omitempty"`
	Connector Connector        `json:"connector,omitempty"`
}

// AggregateFunc enumerates SQL aggregate functions of the visual builder.
type AggregateFunc string

const (
	FuncCount AggregateFunc = "COUNT"
	FuncSum   AggregateFunc = "SUM"
	FuncAvg   AggregateFunc = "AVG"
	FuncMin   AggregateFunc = "MIN"
	FuncMax   AggregateFunc = "MAX"
)

// Aggregation is one aggregate expression in the SELECT list.
type Aggregation struct {
	ID       core.ConditionID `json:"id"`
	Column   string           `json:"column"`
	Function AggregateFunc    `json:"function"`
	Alias    string           `json:"alias,omitempty"`
}

// OrderByConfig is one ORDER BY key.
type OrderByConfig struct {
	Column    string `json:"column"`
	Direction string `json:"direction"` // "ASC" or "DESC"
}

// VisualQueryConfig is the structured query the UI assembles. The compiler
// turns it into SQL text; it is never executed directly.
type VisualQueryConfig struct {
	SelectColumns   []string         `json:"selectColumns"`
	WhereConditions []WhereCondition `json:"whereConditions"`
	GroupByColumns  []string         `json:"groupByColumns"`
	OrderByColumns  []OrderByConfig  `json:"orderByColumns"`
	Aggregations    []Aggregation    `json:"aggregations"`
	Limit           int              `json:"limit,omitempty"`
	Having          string           `json:"having,omitempty"`
}

// Result is the engine's answer to one query. Error is surfaced as text;
// on error the row set is empty, never partial.
type Result struct {
	Rows            []dataset.Row `json:"rows"`
	Columns         []string      `json:"columns"`
	RowCount        int           `json:"rowCount"`
	ExecutionMillis float64       `json:"executionTime"`
	Error           string        `json:"error,omitempty"`
}

// Template is a canned query offered by the SQL editor.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Query       string `json:"query"`
}
