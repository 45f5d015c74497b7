package defrag

import "slices"

// Run is a maximal stretch of contiguous Unused clusters.
type Run struct {
	Start  int
	Length int
}

// End returns the index one past the last cluster of the run.
func (r Run) End() int { return r.Start + r.Length }

// FreeSpaceIndex caches the Unused runs of a grid, largest first.
// The zero value is dirty and rebuilds on first use.
type FreeSpaceIndex struct {
	runs  []Run
	clean bool
}

// Invalidate marks the index stale. Call it after any change to Unused membership.
func (f *FreeSpaceIndex) Invalidate() { f.clean = false }

// Dirty reports whether the next query will rebuild.
func (f *FreeSpaceIndex) Dirty() bool { return !f.clean }

// Rebuild scans g once and records every maximal Unused run.
func (f *FreeSpaceIndex) Rebuild(g Grid) {
	f.runs = f.runs[:0]
	start := -1
	for i, c := range g.cells {
		switch {
		case c == Unused && start < 0:
			start = i
		case c != Unused && start >= 0:
			f.runs = append(f.runs, Run{Start: start, Length: i - start})
			start = -1
		}
	}
	if start >= 0 {
		f.runs = append(f.runs, Run{Start: start, Length: len(g.cells) - start})
	}
	slices.SortStableFunc(f.runs, func(a, b Run) int { return b.Length - a.Length })
	f.clean = true
}

// FindRegion returns the start of the largest run holding at least size clusters.
// It rebuilds from g first when dirty.
func (f *FreeSpaceIndex) FindRegion(g Grid, size int) (int, bool) {
	if f.Dirty() {
		f.Rebuild(g)
	}
	if size <= 0 || len(f.runs) == 0 || f.runs[0].Length < size {
		return 0, false
	}
	return f.runs[0].Start, true
}

// Runs returns the cached runs, largest first. The slice is only valid until the
// next Rebuild.
func (f *FreeSpaceIndex) Runs() []Run { return f.runs }

// PendingIndex caches the positions of Pending clusters in ascending order.
type PendingIndex struct {
	indices []int
	clean   bool
}

// Invalidate marks the index stale.
func (p *PendingIndex) Invalidate() { p.clean = false }

// Dirty reports whether the next query will rebuild.
func (p *PendingIndex) Dirty() bool { return !p.clean }

// Indices returns every Pending position, rescanning g when dirty.
func (p *PendingIndex) Indices(g Grid) []int {
	if p.clean {
		return p.indices
	}
	p.indices = p.indices[:0]
	for i, c := range g.cells {
		if c == Pending {
			p.indices = append(p.indices, i)
		}
	}
	p.clean = true
	return p.indices
}
