package engine

import (
	"cmp"
	"slices"
	"strings"
)

// ============================================================================
// SORTING: Stable column ordering with missing values last
// ============================================================================
// Missing values always sort after present ones, whatever the direction.
// Direction only reverses the relative order of present values. Ties keep
// the input order (stable), so re-filtering yields reproducible rows.
// ============================================================================

// SortView returns a new view ordered by state. The input view is unchanged.
// ColumnNone sorts ascending by binding energy.
func SortView(view ResultView, state SortState) ResultView {
	col, asc := state.Column, state.Ascending
	if col == ColumnNone {
		col, asc = ColumnBindingEnergy, true
	}

	records := view.dataset.records
	indices := slices.Clone(view.indices)
	slices.SortStableFunc(indices, func(a, b int) int {
		return compareRecords(records[a], records[b], col, asc)
	})
	return newResultView(view.dataset, indices)
}

// SortRecords sorts a record slice in place with the same rules as SortView.
func SortRecords(records []Record, state SortState) {
	col, asc := state.Column, state.Ascending
	if col == ColumnNone {
		col, asc = ColumnBindingEnergy, true
	}
	slices.SortStableFunc(records, func(a, b Record) int {
		return compareRecords(a, b, col, asc)
	})
}

// compareRecords orders two records on one column.
func compareRecords(a, b Record, col Column, ascending bool) int {
	if col == ColumnBindingEnergy {
		return compareNullable(a.BindingEnergy.Valid, b.BindingEnergy.Valid, ascending, func() int {
			return cmp.Compare(a.BindingEnergy.Value, b.BindingEnergy.Value)
		})
	}

	av, bv := textField(a, col), textField(b, col)
	return compareNullable(av.Valid, bv.Valid, ascending, func() int {
		return strings.Compare(av.Value, bv.Value)
	})
}

// compareNullable places missing values last and applies the direction to
// present values only.
func compareNullable(aValid, bValid, ascending bool, present func() int) int {
	switch {
	case !aValid && !bValid:
		return 0
	case !aValid:
		return 1
	case !bValid:
		return -1
	}
	c := present()
	if !ascending {
		c = -c
	}
	return c
}

func textField(r Record, col Column) NullString {
	switch col {
	case ColumnElement:
		return String(r.Element)
	case ColumnLine:
		return String(r.Line)
	case ColumnFormula:
		return r.Formula
	case ColumnName:
		return r.Name
	case ColumnJournal:
		return r.Journal
	default:
		return NullString{}
	}
}
