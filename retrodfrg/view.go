package retrodfrg

import (
	"time"

	"dosdefrag/defrag"
)

// SoundState is the audio indicator shown in the action bar.
type SoundState uint8

// Sound states
const (
	SoundAbsent SoundState = iota // no audio engine yet; S creates one
	SoundOff
	SoundOn
)

// SoundStateOf maps an audio engine onto its indicator.
func SoundStateOf(a defrag.AudioEngine) SoundState {
	switch {
	case a == nil:
		return SoundAbsent
	case a.Enabled():
		return SoundOn
	default:
		if _, ok := a.(defrag.NopAudio); ok {
			return SoundAbsent
		}
		return SoundOff
	}
}

// View is an immutable snapshot of everything a renderer draws.
type View struct {
	Grid     defrag.Grid
	Phase    defrag.Phase
	Status   string
	Filename string
	Drive    defrag.Drive
	Stats    defrag.Stats
	Step     uint64

	Progress      float64 // percent
	Fragmentation float64 // fraction
	Elapsed       time.Duration
	ETA           time.Duration
	HasETA        bool

	Paused bool
	Demo   bool
	Sound  SoundState

	Menu      MenuState
	ShowAbout bool
}

// NewView snapshots the engine together with the UI-owned state.
func NewView(e *defrag.Engine, st *State) View {
	eta, ok := e.EstimatedTimeRemaining()
	v := View{
		Grid:          e.Grid(),
		Phase:         e.Phase(),
		Status:        e.Status(),
		Filename:      e.Filename(),
		Drive:         e.Drive(),
		Stats:         e.Stats(),
		Step:          e.Step(),
		Progress:      e.ProgressPercent(),
		Fragmentation: e.FragmentationPercent(),
		Elapsed:       e.Stats().Elapsed(e.Now()),
		ETA:           eta,
		HasETA:        ok,
		Paused:        e.Paused(),
		Demo:          e.DemoMode(),
		Sound:         SoundStateOf(e.Audio()),
	}
	if st != nil {
		v.Menu = st.Menu
		v.ShowAbout = st.ShowAbout
	}
	return v
}
