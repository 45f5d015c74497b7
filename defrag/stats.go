package defrag

import "time"

// Stats tracks defragmentation progress for one run.
type Stats struct {
	TotalToDefrag     int
	ClustersDefragged int
	StartTime         time.Time
}

// ProgressPercent returns completion in percent; an empty run is complete.
func (s Stats) ProgressPercent() float64 {
	if s.TotalToDefrag == 0 {
		return 100
	}
	return float64(s.ClustersDefragged) / float64(s.TotalToDefrag) * 100
}

// Remaining returns the number of clusters still to move.
func (s Stats) Remaining() int {
	return max(s.TotalToDefrag-s.ClustersDefragged, 0)
}

// EstimatedTimeRemaining extrapolates the observed rate. ok is false until a cluster
// has been moved, outside the Defragmenting phase, or when no time has elapsed.
func (s Stats) EstimatedTimeRemaining(now time.Time, phase Phase) (time.Duration, bool) {
	if s.ClustersDefragged == 0 || phase != Defragmenting {
		return 0, false
	}
	remaining := s.Remaining()
	if remaining == 0 {
		return 0, true
	}
	elapsed := now.Sub(s.StartTime).Seconds()
	if elapsed <= 0 {
		return 0, false
	}
	rate := float64(s.ClustersDefragged) / elapsed
	if rate <= 0 {
		return 0, false
	}
	return time.Duration(float64(remaining) / rate * float64(time.Second)), true
}

// Elapsed returns the time since the run started.
func (s Stats) Elapsed(now time.Time) time.Duration {
	return max(now.Sub(s.StartTime), 0)
}
