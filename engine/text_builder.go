package engine

import "fmt"

// ============================================================================
// TEXT BUILDER: Reference strings and record details
// ============================================================================

// FormatReference renders a record as a one-line citation:
//
//	Cu 2p3/2 - 932.50 eV - CuO - Copper Oxide - J. Phys. Chem.
//
// Missing values render empty, matching the table cells.
func FormatReference(r Record) string {
	cells := FormatRow(r)
	return fmt.Sprintf("%s %s - %s eV - %s - %s - %s",
		cells[0], cells[1], cells[2], cells[3], cells[4], cells[5])
}

// Detail is a label-value pair for the full information view.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Details lists the present fields of a record in column order. Missing
// values are omitted rather than shown blank.
func Details(r Record) []Detail {
	out := make([]Detail, 0, len(Columns))
	out = append(out,
		Detail{Label: ColumnElement.Label(), Value: r.Element},
		Detail{Label: ColumnLine.Label(), Value: r.Line},
	)
	if r.BindingEnergy.Valid {
		// Full precision here; the table rounds to two decimals.
		out = append(out, Detail{Label: ColumnBindingEnergy.Label(), Value: r.BindingEnergy.Format(-1)})
	}
	for _, f := range []struct {
		col Column
		val NullString
	}{
		{ColumnFormula, r.Formula},
		{ColumnName, r.Name},
		{ColumnJournal, r.Journal},
	} {
		if f.val.Valid {
			out = append(out, Detail{Label: f.col.Label(), Value: f.val.Value})
		}
	}
	return out
}
