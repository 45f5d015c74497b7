// Package defrag implements the disk model and simulation engine behind the retro
// defragmenter: cluster grid, randomized layout, free-space and pending indexes,
// drive profiles, statistics and the tick-driven phase machine.
package defrag

// ClusterState is the state of one grid cell.
type ClusterState uint8

// Cluster states
const (
	Used      ClusterState = iota // defragmented
	Unused                        // free
	Pending                       // fragmented, awaiting move
	Bad                           // defective, never touched
	Unmovable                     // boot-sector-like, never relocated
	Reading                       // transient: read from fragmented location
	Writing                       // transient: written to contiguous location
)

var clusterStateNames = [...]string{
	Used:      "used",
	Unused:    "unused",
	Pending:   "pending",
	Bad:       "bad",
	Unmovable: "unmovable",
	Reading:   "reading",
	Writing:   "writing",
}

func (c ClusterState) String() string {
	if int(c) < len(clusterStateNames) {
		return clusterStateNames[c]
	}
	return "unknown"
}

// AllClusterStates lists every state in declaration order.
var AllClusterStates = []ClusterState{Used, Unused, Pending, Bad, Unmovable, Reading, Writing}

// Grid is the flat, row-major cluster array. Its length is fixed at Width*Height.
type Grid struct {
	Width  int
	Height int
	cells  []ClusterState
}

// NewGrid wraps cells as a width x height grid. It panics when the lengths disagree.
func NewGrid(width, height int, cells []ClusterState) Grid {
	if width < 0 || height < 0 || len(cells) != width*height {
		panic("defrag: grid dimensions do not match cell count")
	}
	return Grid{Width: width, Height: height, cells: cells}
}

// Len returns the number of clusters.
func (g Grid) Len() int { return len(g.cells) }

// At returns the state of cluster i.
func (g Grid) At(i int) ClusterState { return g.cells[i] }

func (g Grid) set(i int, s ClusterState) { g.cells[i] = s }

// Cells returns a copy of the cluster states.
func (g Grid) Cells() []ClusterState {
	out := make([]ClusterState, len(g.cells))
	copy(out, g.cells)
	return out
}

// Count returns how many clusters are in state s.
func (g Grid) Count(s ClusterState) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Histogram counts clusters per state.
func (g Grid) Histogram() map[ClusterState]int {
	h := make(map[ClusterState]int, len(AllClusterStates))
	for _, c := range g.cells {
		h[c]++
	}
	return h
}
