package clean

import (
	"fmt"
	"regexp"

	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
	"github.com/pratikkkbhere/DataPilot/internal/errors"
)

// FindReplaceOptions configures a find & replace over one string-like
// column.
type FindReplaceOptions struct {
	Column    string `json:"column"`
	Find      string `json:"find"`
	Replace   string `json:"replace"`
	MatchCase bool   `json:"matchCase"`
	WholeWord bool   `json:"wholeWord"`
}

// buildPattern escapes regex metacharacters in the search term before
// constructing the pattern, so the user's input is always treated
// literally.
func buildPattern(opts FindReplaceOptions) (*regexp.Regexp, error) {
	expr := regexp.QuoteMeta(opts.Find)
	if opts.WholeWord {
		expr = `\b` + expr + `\b`
	}
	if !opts.MatchCase {
		expr = `(?i)` + expr
	}
	return regexp.Compile(expr)
}

// FindReplace replaces occurrences of the search term in one column.
// AffectedRows counts rows where the output differs from the input.
func FindReplace(t *dataset.Table, opts FindReplaceOptions) (*dataset.Table, *dataset.CleaningAction, error) {
	if opts.Column == "" || opts.Find == "" {
		return nil, nil, errors.ValidationError("find and replace requires a column and a search term")
	}
	pattern, err := buildPattern(opts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "invalid find pattern")
	}

	cleaned := t.Clone()
	replaced := 0
	for _, row := range cleaned.Rows {
		cell := cleaned.Cell(row, opts.Column).String()
		next := pattern.ReplaceAllString(cell, opts.Replace)
		if next != cell {
			row[opts.Column] = core.Text(next)
			replaced++
		}
	}

	action := &dataset.CleaningAction{
		Column:       opts.Column,
		Action:       "Find and Replace",
		AffectedRows: replaced,
		Details:      fmt.Sprintf("Replaced %q with %q in %d rows", opts.Find, opts.Replace, replaced),
	}
	return cleaned, action, nil
}

// PreviewFindReplace counts total occurrences of the search term without
// mutating anything.
func PreviewFindReplace(t *dataset.Table, opts FindReplaceOptions) (int, error) {
	if opts.Column == "" || opts.Find == "" {
		return 0, errors.ValidationError("find and replace requires a column and a search term")
	}
	pattern, err := buildPattern(opts)
	if err != nil {
		return 0, errors.Wrap(err, "invalid find pattern")
	}

	count := 0
	for _, row := range t.Rows {
		count += len(pattern.FindAllStringIndex(t.Cell(row, opts.Column).String(), -1))
	}
	return count, nil
}
