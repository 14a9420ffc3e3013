// Package infer classifies a column's dominant data type from its values.
package infer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
)

// Threshold is the share of non-missing values that must classify as a
// candidate type. Real-world spreadsheet columns are rarely 100% clean; 80%
// tolerates stray typos without misclassifying the column.
const Threshold = 0.8

var datePatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02"},
	{regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), "01/02/2006"},
	{regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`), "01-02-2006"},
}

// DetectColumnType classifies the dominant type of a column. Missing
// values are discarded first; a column of only missing values types as
// string. Each remaining value is tallied against one candidate type in
// priority order (boolean, then number, then date), and the column takes
// the first candidate whose tally reaches the threshold.
func DetectColumnType(values []core.Value) dataset.ColumnType {
	var nonMissing []string
	for _, v := range values {
		if !v.IsMissing() {
			nonMissing = append(nonMissing, strings.TrimSpace(v.String()))
		}
	}
	if len(nonMissing) == 0 {
		return dataset.TypeString
	}

	var booleanCount, numberCount, dateCount int
	for _, s := range nonMissing {
		switch {
		case IsBooleanLiteral(s):
			booleanCount++
		case IsNumberLiteral(s):
			numberCount++
		case IsDateLiteral(s):
			dateCount++
		}
	}

	threshold := float64(len(nonMissing)) * Threshold
	switch {
	case float64(booleanCount) >= threshold:
		return dataset.TypeBoolean
	case float64(numberCount) >= threshold:
		return dataset.TypeNumber
	case float64(dateCount) >= threshold:
		return dataset.TypeDate
	}
	return dataset.TypeString
}

// IsBooleanLiteral reports whether s reads as a boolean, case-insensitive.
func IsBooleanLiteral(s string) bool {
	lower := strings.ToLower(s)
	return lower == "true" || lower == "false"
}

// IsNumberLiteral reports whether s parses as a finite number.
func IsNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// IsDateLiteral reports whether s matches one of the accepted date
// patterns and names a real calendar date.
func IsDateLiteral(s string) bool {
	for _, p := range datePatterns {
		if p.re.MatchString(s) {
			if _, err := time.Parse(p.layout, s); err == nil {
				return true
			}
		}
	}
	return false
}
