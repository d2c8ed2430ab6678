// Package xpsref is a reference-data browser core for binding-energy tables.
//
// Usage:
//
//	import "github.com/spektr-org/xpsref/engine"
//
//	ds := engine.NewDataset(records)
//	view := engine.Rebuild(ds,
//	    engine.FilterCriteria{Element: "Cu", NameSearch: "oxide"},
//	    engine.DefaultSort(),
//	)
//	hist, err := engine.BuildHistogram(view.BindingEnergies(), 0.1)
//
// The engine takes an already loaded Dataset and returns render-ready output
// (ordered rows, table data, histogram bins with a density curve).
//
// Loading is handled separately by the helpers package, and the column layout
// of source tables by the schema package. The engine never performs I/O.
package xpsref
