package engine

import (
	"strings"

	"golang.org/x/text/cases"
)

// ============================================================================
// FILTERS: Element/line equality + literal substring search
// ============================================================================
// Equality constraints are resolved first by intersecting the dataset's
// posting lists. Only the surviving candidates are scanned for the formula
// and name substrings. Search terms are plain text: the containment test is
// a literal substring match, so no character in a term has pattern meaning.
// ============================================================================

// ApplyFilters returns the records of ds matching all criteria, in dataset
// order. Empty criteria return the whole dataset.
func ApplyFilters(ds *Dataset, criteria FilterCriteria) ResultView {
	candidates := ds.candidates(criteria)

	m := newMatcher(criteria)
	indices := make([]int, 0, candidates.GetCardinality())
	it := candidates.Iterator()
	for it.HasNext() {
		idx := int(it.Next())
		if m.matchText(ds.records[idx]) {
			indices = append(indices, idx)
		}
	}
	return newResultView(ds, indices)
}

// Matches reports whether a single record satisfies the criteria.
func Matches(r Record, criteria FilterCriteria) bool {
	if criteria.Element != "" && r.Element != criteria.Element {
		return false
	}
	if criteria.HasLine() && r.Line != criteria.Line {
		return false
	}
	return newMatcher(criteria).matchText(r)
}

// matcher holds the folded search terms for one filter pass.
type matcher struct {
	fold    cases.Caser
	formula string
	name    string
}

func newMatcher(c FilterCriteria) *matcher {
	m := &matcher{fold: cases.Fold()}
	if t := normalizeTerm(c.FormulaSearch); t != "" {
		m.formula = m.fold.String(t)
	}
	if t := normalizeTerm(c.NameSearch); t != "" {
		m.name = m.fold.String(t)
	}
	return m
}

func (m *matcher) matchText(r Record) bool {
	if m.formula != "" && !m.contains(r.Formula, m.formula) {
		return false
	}
	if m.name != "" && !m.contains(r.Name, m.name) {
		return false
	}
	return true
}

// contains is a case-insensitive literal containment test. A missing value
// never contains a non-empty term.
func (m *matcher) contains(field NullString, term string) bool {
	if !field.Valid {
		return false
	}
	return strings.Contains(m.fold.String(field.Value), term)
}

// normalizeTerm trims surrounding whitespace from a search term.
func normalizeTerm(s string) string {
	return strings.TrimSpace(s)
}
