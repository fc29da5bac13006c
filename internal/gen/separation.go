package gen

import "github.com/elektrokombinacija/utm-bench/internal/core"

// DefaultMinSeparation is the reference per-node separation in seconds.
const DefaultMinSeparation = 28.0

// SeparationNodes returns the minimum separation requirement for every
// distinct node appearing on any reference path. A node visited by more
// than one flight keeps the value assigned on first encounter.
func SeparationNodes(refs *core.ReferenceFlightSet, minSep float64) map[core.NodeID]float64 {
	sep := make(map[core.NodeID]float64)
	for i := 0; i < refs.Len(); i++ {
		ref, err := refs.Flight(i)
		if err != nil {
			continue
		}
		for _, node := range ref.Path {
			if _, ok := sep[node]; !ok {
				sep[node] = minSep
			}
		}
	}
	return sep
}
