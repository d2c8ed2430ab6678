package engine

// --- Test Fixtures ---

func rec(element, line string, be NullFloat, formula, name, journal NullString) Record {
	return Record{
		Element:       element,
		Line:          line,
		BindingEnergy: be,
		Formula:       formula,
		Name:          name,
		Journal:       journal,
	}
}

// copperIron is the three-record scenario used throughout the engine tests.
func copperIron() *Dataset {
	return NewDataset([]Record{
		rec("Cu", "2p3/2", Float(932.5), String("CuO"), String("Copper Oxide"), String("J1")),
		rec("Cu", "2p3/2", Float(933.6), String("Cu2O"), String("Cuprous Oxide"), String("J2")),
		rec("Fe", "2p3/2", Float(711.0), String("Fe2O3"), String("Iron Oxide"), String("J3")),
	})
}

// mixedReferences has missing values, several lines and regex
// metacharacters in formulas.
func mixedReferences() *Dataset {
	return NewDataset([]Record{
		rec("C", "1s", Float(284.8), String("C"), String("Graphite"), String("Surf. Sci.")),
		rec("C", "1s", Float(288.5), String("C(O)O"), String("Carboxyl"), NullString{}),
		rec("O", "1s", Float(530.0), String("CuO"), String("Copper Oxide"), String("J. Phys.")),
		rec("C", "1s", NullFloat{}, String("C.H"), NullString{}, String("Anon")),
		rec("Cu", "2p3/2", Float(932.7), String("Cu"), String("Copper metal"), String("J. Phys.")),
		rec("Cu", "2p1/2", Float(952.5), String("Cu"), String("Copper metal"), String("J. Phys.")),
		rec("Cu", "3d", NullFloat{}, NullString{}, String("copper [valence]"), NullString{}),
		rec("O", "1s", Float(531.2), String("Fe2O3"), String("Iron Oxide"), NullString{}),
	})
}

func energies(view ResultView) []float64 {
	out := make([]float64, view.Len())
	for i := range out {
		out[i] = view.Record(i).BindingEnergy.Value
	}
	return out
}

// isSubsequence reports whether indices are strictly increasing positions
// below n.
func isSubsequence(indices []int, n int) bool {
	prev := -1
	for _, idx := range indices {
		if idx <= prev || idx >= n {
			return false
		}
		prev = idx
	}
	return true
}
