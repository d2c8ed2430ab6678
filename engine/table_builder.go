package engine

// ============================================================================
// TABLE BUILDER: Produces TableData from a ResultView
// ============================================================================
// Formatting lives here so renderers stay dumb: binding energies carry two
// decimals and missing values render blank.
// ============================================================================

// Sort indicators attached to the active column.
const (
	SortIndicatorAsc  = "▲"
	SortIndicatorDesc = "▼"
)

// TableData defines how to render the result table.
type TableData struct {
	Columns []TableColumn `json:"columns"`
	Rows    [][]string    `json:"rows"`
	Status  string        `json:"status"`
}

// TableColumn describes a table column.
type TableColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
	Sort  string `json:"sort,omitempty"`
}

// Headers returns the column labels followed by their sort indicator.
func (t *TableData) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Label
		if c.Sort != "" {
			out[i] += " " + c.Sort
		}
	}
	return out
}

// BuildTable produces render-ready rows for a view. state marks the active
// sort column; ColumnNone marks nothing.
func BuildTable(view ResultView, state SortState) *TableData {
	columns := make([]TableColumn, 0, len(Columns))
	for _, col := range Columns {
		tc := TableColumn{
			Key:   col.Key(),
			Label: col.Label(),
			Type:  "text",
			Align: "left",
		}
		if col.IsNumeric() {
			tc.Type = "number"
			tc.Align = "right"
		}
		if state.Column == col {
			tc.Sort = SortIndicatorDesc
			if state.Ascending {
				tc.Sort = SortIndicatorAsc
			}
		}
		columns = append(columns, tc)
	}

	rows := make([][]string, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		rows = append(rows, FormatRow(view.Record(i)))
	}

	return &TableData{
		Columns: columns,
		Rows:    rows,
		Status:  StatusText(view.Len()),
	}
}

// FormatRow renders a record as table cells in Columns order.
func FormatRow(r Record) []string {
	return []string{
		r.Element,
		r.Line,
		r.BindingEnergy.Format(2),
		r.Formula.Text(),
		r.Name.Text(),
		r.Journal.Text(),
	}
}
