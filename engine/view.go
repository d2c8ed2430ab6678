package engine

import "slices"

// ============================================================================
// RESULT VIEW: Index list into a Dataset (zero-copy)
// ============================================================================
// Filtering and sorting only ever produce or permute indices, so a view is
// always a selection of dataset records with no duplicates or insertions.
// ============================================================================

// RecordView provides indexed read access to records.
type RecordView interface {
	Len() int
	Record(i int) Record
}

var (
	_ RecordView = (*Dataset)(nil)
	_ RecordView = ResultView{}
)

// ResultView is an ordered selection of Dataset records.
type ResultView struct {
	dataset *Dataset
	indices []int
}

func newResultView(ds *Dataset, indices []int) ResultView {
	return ResultView{dataset: ds, indices: indices}
}

// Len returns the number of records in the view.
func (v ResultView) Len() int { return len(v.indices) }

// Record returns the i-th record of the view.
func (v ResultView) Record(i int) Record { return v.dataset.records[v.indices[i]] }

// Index returns the dataset position of the i-th record of the view.
func (v ResultView) Index(i int) int { return v.indices[i] }

// Indices returns a copy of the dataset positions in view order.
func (v ResultView) Indices() []int { return slices.Clone(v.indices) }

// Dataset returns the dataset the view selects from.
func (v ResultView) Dataset() *Dataset { return v.dataset }

// Records materializes the view in order.
func (v ResultView) Records() []Record {
	out := make([]Record, len(v.indices))
	for i, idx := range v.indices {
		out[i] = v.dataset.records[idx]
	}
	return out
}

// BindingEnergies returns the present binding energies in view order.
// Missing values are skipped, never coerced to zero.
func (v ResultView) BindingEnergies() []float64 {
	out := make([]float64, 0, len(v.indices))
	for _, idx := range v.indices {
		if be := v.dataset.records[idx].BindingEnergy; be.Valid {
			out = append(out, be.Value)
		}
	}
	return out
}
