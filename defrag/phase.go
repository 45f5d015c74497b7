package defrag

import (
	"fmt"
	"strings"
)

// Phase is the top-level simulation state.
type Phase uint8

// Phases in the order a run visits them.
const (
	Initializing Phase = iota
	Analyzing
	Defragmenting
	Finished
)

func (p Phase) String() string {
	switch p {
	case Initializing:
		return "initializing"
	case Analyzing:
		return "analyzing"
	case Defragmenting:
		return "defragmenting"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// Status returns the status-line text for the phase.
func (p Phase) Status() string {
	switch p {
	case Initializing:
		return "Initializing..."
	case Analyzing:
		return "Analyzing disk..."
	case Defragmenting:
		return "Defragmenting..."
	case Finished:
		return "Complete"
	}
	return ""
}

// ParsePhase parses the lower-case name returned by String.
func ParsePhase(s string) (Phase, error) {
	for p := Initializing; p <= Finished; p++ {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

// FileStage is the sub-state of the file currently being moved.
type FileStage uint8

// File stages
const (
	StageReading FileStage = iota
	StageWriting
	StageCompleted
)

func (s FileStage) String() string {
	switch s {
	case StageReading:
		return "Reading"
	case StageWriting:
		return "Writing"
	default:
		return "Finishing"
	}
}

// InFlightFile describes the simulated multi-cluster move in progress.
type InFlightFile struct {
	Stage    FileStage
	Progress int
	Name     string
	Size     int // clusters requested
	Written  int // clusters marked Writing at the destination
	seed     bool
}
