package defrag

import "time"

// AudioEngine plays disk sound cues. Implementations are called from the engine's
// goroutine and must not block for longer than a tick.
type AudioEngine interface {
	PlaySeek()
	PlayRead()
	PlayWrite()
	StopAll()
	// SetThroughput adjusts playback speed for a drive's IOPS (see PlaybackRate).
	SetThroughput(iops int)
	Toggle()
	Enabled() bool
}

// NopAudio is the silent AudioEngine used when no audio device is available.
type NopAudio struct{}

var _ AudioEngine = NopAudio{}

func (NopAudio) PlaySeek()         {}
func (NopAudio) PlayRead()         {}
func (NopAudio) PlayWrite()        {}
func (NopAudio) StopAll()          {}
func (NopAudio) SetThroughput(int) {}
func (NopAudio) Toggle()           {}
func (NopAudio) Enabled() bool     { return false }

// Clock supplies the monotonic time used for in-flight operation deadlines.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// Logger is the structured logger used by the engine.
// Arguments after msg are alternating keys and values.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// NopLogger discards everything.
var NopLogger Logger = nopLogger{}

// Metrics receives engine observations. All methods are called synchronously from
// Update and must be cheap.
type Metrics interface {
	// LayoutGenerated is called after every generation with the per-state histogram.
	LayoutGenerated(drive Drive, clusters int, histogram map[ClusterState]int)
	PhaseChanged(from, to Phase)
	// OperationStarted is called when a file move is scheduled for delay.
	OperationStarted(fileSize int, delay time.Duration)
	ClusterDefragged(stats Stats)
	// NoFreeRegion counts moves completed in place for lack of contiguous space.
	NoFreeRegion()
	Restarted()
}

type nopMetrics struct{}

func (nopMetrics) LayoutGenerated(Drive, int, map[ClusterState]int) {}
func (nopMetrics) PhaseChanged(Phase, Phase)                        {}
func (nopMetrics) OperationStarted(int, time.Duration)              {}
func (nopMetrics) ClusterDefragged(Stats)                           {}
func (nopMetrics) NoFreeRegion()                                    {}
func (nopMetrics) Restarted()                                       {}

// NopMetrics records nothing.
var NopMetrics Metrics = nopMetrics{}
