package engine

import (
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// ============================================================================
// DATASET: Immutable reference table with cached lookups
// ============================================================================
// Built once from loaded records. Distinct elements, lines per element and
// the roaring posting lists used by the equality filters are computed here
// and never change afterwards.
// ============================================================================

// Dataset is an ordered, read-only sequence of Records.
type Dataset struct {
	records        []Record
	elements       []string
	linesByElement map[string][]string

	byElement map[string]*roaring.Bitmap
	byLine    map[string]*roaring.Bitmap
	all       *roaring.Bitmap
}

// NewDataset copies records into a new Dataset and builds its caches.
func NewDataset(records []Record) *Dataset {
	ds := &Dataset{
		records:        slices.Clone(records),
		linesByElement: make(map[string][]string),
		byElement:      make(map[string]*roaring.Bitmap),
		byLine:         make(map[string]*roaring.Bitmap),
		all:            roaring.New(),
	}

	lineSeen := make(map[string]map[string]bool)
	for i, r := range ds.records {
		id := uint32(i)
		ds.all.Add(id)

		eb, ok := ds.byElement[r.Element]
		if !ok {
			eb = roaring.New()
			ds.byElement[r.Element] = eb
			ds.elements = append(ds.elements, r.Element)
			lineSeen[r.Element] = make(map[string]bool)
		}
		eb.Add(id)

		lb, ok := ds.byLine[r.Line]
		if !ok {
			lb = roaring.New()
			ds.byLine[r.Line] = lb
		}
		lb.Add(id)

		if !lineSeen[r.Element][r.Line] {
			lineSeen[r.Element][r.Line] = true
			ds.linesByElement[r.Element] = append(ds.linesByElement[r.Element], r.Line)
		}
	}

	slices.Sort(ds.elements)
	for el := range ds.linesByElement {
		slices.Sort(ds.linesByElement[el])
	}
	for _, b := range ds.byElement {
		b.RunOptimize()
	}
	for _, b := range ds.byLine {
		b.RunOptimize()
	}
	return ds
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Record returns the record at position i.
func (d *Dataset) Record(i int) Record { return d.records[i] }

// Records returns a copy of all records in dataset order.
func (d *Dataset) Records() []Record { return slices.Clone(d.records) }

// Elements returns the sorted distinct element symbols.
func (d *Dataset) Elements() []string { return slices.Clone(d.elements) }

// HasElement reports whether any record carries the element.
func (d *Dataset) HasElement(element string) bool {
	_, ok := d.byElement[element]
	return ok
}

// LinesFor returns the sorted distinct lines observed for an element.
func (d *Dataset) LinesFor(element string) []string {
	return slices.Clone(d.linesByElement[element])
}

// LineChoices returns the line picker entries for an element: AllLines
// followed by the element's lines.
func (d *Dataset) LineChoices(element string) []string {
	lines := d.linesByElement[element]
	out := make([]string, 0, len(lines)+1)
	out = append(out, AllLines)
	return append(out, lines...)
}

// View returns the whole dataset as a ResultView in dataset order.
func (d *Dataset) View() ResultView {
	indices := make([]int, len(d.records))
	for i := range indices {
		indices[i] = i
	}
	return newResultView(d, indices)
}

// energyMatchTolerance is the BE distance under which Find treats two
// energies as the same displayed value.
const energyMatchTolerance = 0.01

// Find returns the first record matching element, line and formula whose
// binding energy is within 0.01 eV of energy. A missing energy matches only
// records with no binding energy.
func (d *Dataset) Find(element, line string, energy NullFloat, formula NullString) (Record, bool) {
	candidates, ok := d.byElement[element]
	if !ok {
		return Record{}, false
	}
	it := candidates.Iterator()
	for it.HasNext() {
		r := d.records[it.Next()]
		if r.Line != line || r.Formula != formula {
			continue
		}
		if energy.Valid {
			if r.BindingEnergy.Valid && math.Abs(r.BindingEnergy.Value-energy.Value) < energyMatchTolerance {
				return r, true
			}
			continue
		}
		if !r.BindingEnergy.Valid {
			return r, true
		}
	}
	return Record{}, false
}

// candidates intersects the equality posting lists for the criteria.
// The returned bitmap is owned by the caller.
func (d *Dataset) candidates(c FilterCriteria) *roaring.Bitmap {
	var out *roaring.Bitmap
	if c.Element != "" {
		b, ok := d.byElement[c.Element]
		if !ok {
			return roaring.New()
		}
		out = b.Clone()
	}
	if c.HasLine() {
		b, ok := d.byLine[c.Line]
		if !ok {
			return roaring.New()
		}
		if out == nil {
			out = b.Clone()
		} else {
			out.And(b)
		}
	}
	if out == nil {
		out = d.all.Clone()
	}
	return out
}
