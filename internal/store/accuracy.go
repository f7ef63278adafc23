package store

import "sort"

// sortWeakestFirst orders by accuracy ascending, then by attempts
// descending so frequently missed notes lead, then by note name.
func sortWeakestFirst(acc []NoteAccuracy) {
	sort.SliceStable(acc, func(i, j int) bool {
		ai, aj := acc[i].Accuracy(), acc[j].Accuracy()
		if ai != aj {
			return ai < aj
		}
		if acc[i].Attempts != acc[j].Attempts {
			return acc[i].Attempts > acc[j].Attempts
		}
		return acc[i].Note < acc[j].Note
	})
}
