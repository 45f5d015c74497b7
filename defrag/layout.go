package defrag

import "math"

// LayoutParams describes a disk to generate.
type LayoutParams struct {
	Width       int
	Height      int
	Fill        float64 // fraction of clusters holding fragmented data
	BadFraction float64 // fraction of clusters marked defective
}

// seedOperations is the number of transient Reading/Writing clusters placed by Generate.
const seedOperations = 2

// Generate builds a randomized initial layout and returns it with the number of
// clusters the run has to defragment (pending clusters plus the two seed operations).
//
// Bad blocks are inserted into an already full sequence which is then truncated, so
// entries pushed past the end are dropped and the final bad count may be lower than
// requested.
func Generate(p LayoutParams, r Rand) (Grid, int) {
	w, h := max(p.Width, 0), max(p.Height, 0)
	total := w * h
	numPending := fractionOf(total, p.Fill)
	numBad := fractionOf(total, p.BadFraction)

	cells := make([]ClusterState, 0, total+numBad)
	for i := 0; i < numPending-seedOperations; i++ {
		cells = append(cells, Pending)
	}
	cells = append(cells, Writing, Reading)
	for len(cells) < total-numBad {
		cells = append(cells, Unused)
	}

	r.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

	if numBad > 0 {
		positions := make([]int, len(cells))
		for i := range positions {
			positions[i] = i
		}
		r.Shuffle(len(positions), func(i, j int) { positions[i], positions[j] = positions[j], positions[i] })
		for _, pos := range positions[:min(numBad, len(positions))] {
			pos = min(pos, len(cells))
			cells = append(cells, 0)
			copy(cells[pos+1:], cells[pos:])
			cells[pos] = Bad
		}
	}

	cells = cells[:total]
	if total > 0 {
		cells[0] = Unmovable
	}

	g := NewGrid(w, h, cells)
	return g, g.Count(Pending) + seedOperations
}

// fractionOf returns floor(total*f) clamped to [0, total].
func fractionOf(total int, f float64) int {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	n := int(math.Floor(float64(total) * f))
	return min(max(n, 0), total)
}
