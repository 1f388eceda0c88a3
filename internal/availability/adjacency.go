package availability

import (
	"sort"

	"seatwise/internal/model"
)

// findAdjacentRun returns the first run of n seats with strictly
// consecutive positions among the given seats, or nil. Seats without a
// position are excluded. Candidates are ordered by position ascending, so
// the lowest-position qualifying run always wins; the tie-break is
// deterministic.
func findAdjacentRun(seats []model.Seat, n int) []model.Seat {
	if n <= 0 {
		return nil
	}

	positioned := make([]model.Seat, 0, len(seats))
	for _, s := range seats {
		if s.Position != nil {
			positioned = append(positioned, s)
		}
	}
	if len(positioned) < n {
		return nil
	}

	sort.Slice(positioned, func(i, j int) bool {
		return *positioned[i].Position < *positioned[j].Position
	})

	for start := 0; start+n <= len(positioned); start++ {
		run := true
		for k := 1; k < n; k++ {
			if *positioned[start+k].Position != *positioned[start+k-1].Position+1 {
				run = false
				break
			}
		}
		if run {
			return positioned[start : start+n]
		}
	}
	return nil
}
