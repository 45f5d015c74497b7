package defrag

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Timing constants, in ticks unless noted.
const (
	InitTicks       = 20 // Initializing lasts until the step counter exceeds this
	FinishWaitTicks = 50 // Finished waits this long before stopping (half in demo mode)

	analyzeStride    = 5 // clusters swept per Analyzing tick
	analyzeSeekEvery = 3 // seek cue cadence while analyzing
	analyzeTailTicks = 10

	minFileSize   = 1
	maxFileSize   = 5
	minOpDuration = 1000 // ms, before IOPS scaling
	maxOpDuration = 3000
)

// Config holds the parameters fixed for the lifetime of an engine. Restart reuses them.
type Config struct {
	Layout LayoutParams
	Drive  Drive
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand injects the random source used for layouts and selections.
func WithRand(r Rand) Option { return func(e *Engine) { e.rng = r } }

// WithClock injects the clock used for operation deadlines and statistics.
func WithClock(c Clock) Option { return func(e *Engine) { e.clock = c } }

// WithAudio sets the audio collaborator. nil means silent.
func WithAudio(a AudioEngine) Option { return func(e *Engine) { e.audio = a } }

// WithLogger sets the structured logger.
func WithLogger(l Logger) Option { return func(e *Engine) { e.log = l } }

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option { return func(e *Engine) { e.metrics = m } }

// WithFileNames replaces the simulated file name catalogue.
func WithFileNames(names []string) Option {
	return func(e *Engine) { e.names = append([]string(nil), names...) }
}

// WithDemoMode starts the engine with automatic restarts enabled.
func WithDemoMode(on bool) Option { return func(e *Engine) { e.demo = on } }

// Engine is the tick-driven defragmentation simulation. It is not safe for concurrent
// use; one goroutine owns it and calls Update once per tick.
type Engine struct {
	cfg     Config
	rng     Rand
	clock   Clock
	audio   AudioEngine
	log     Logger
	metrics Metrics
	names   []string

	grid    Grid
	free    FreeSpaceIndex
	pending PendingIndex
	stats   Stats
	runID   string

	phase    Phase
	step     uint64
	readPos  int // -1 when unset
	writePos int
	file     *InFlightFile
	deadline time.Time
	status   string

	paused  bool
	demo    bool
	running bool
}

// New generates the first layout and returns an engine in the Initializing phase.
func New(cfg Config, opts ...Option) *Engine {
	if cfg.Drive.Letter == 0 {
		cfg.Drive = DefaultDrive
	}
	e := &Engine{
		cfg:     cfg,
		clock:   SystemClock,
		log:     NopLogger,
		metrics: NopMetrics,
		names:   FileNames(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRand(0)
	}
	if e.audio == nil {
		e.audio = NopAudio{}
	}
	e.audio.SetThroughput(cfg.Drive.IOPS)
	e.reset()
	return e
}

func (e *Engine) reset() {
	grid, total := Generate(e.cfg.Layout, e.rng)
	e.grid = grid
	e.free.Invalidate()
	e.pending.Invalidate()
	e.stats = Stats{TotalToDefrag: total, StartTime: e.clock.Now()}
	e.runID = uuid.NewString()
	e.phase = Initializing
	e.step = 0
	e.readPos, e.writePos = -1, -1
	e.file = nil
	e.deadline = time.Time{}
	e.status = Initializing.Status()
	e.paused = false
	e.running = true

	hist := grid.Histogram()
	e.metrics.LayoutGenerated(e.cfg.Drive, grid.Len(), hist)
	e.log.Info("layout generated",
		"run_id", e.runID,
		"width", grid.Width,
		"height", grid.Height,
		"drive", string(e.cfg.Drive.Letter),
		"pending", hist[Pending],
		"bad", hist[Bad],
		"unused", hist[Unused],
		"total_to_defrag", total,
	)
}

// Update advances the simulation by one tick. It does nothing while paused or after
// the engine has stopped.
func (e *Engine) Update() {
	if e.paused || !e.running {
		return
	}
	e.step++
	if e.phase != Defragmenting {
		e.status = e.phase.Status()
	}

	switch e.phase {
	case Initializing:
		if e.step > InitTicks {
			e.setPhase(Analyzing)
		}
	case Analyzing:
		e.analyze()
	case Defragmenting:
		e.defragment(e.clock.Now())
	case Finished:
		e.finish()
	}
}

func (e *Engine) setPhase(p Phase) {
	if p == e.phase {
		e.step = 0
		return
	}
	from := e.phase
	e.phase = p
	e.step = 0
	e.metrics.PhaseChanged(from, p)
	e.log.Info("phase changed", "run_id", e.runID, "from", from.String(), "to", p.String())
}

func (e *Engine) analyze() {
	total := e.grid.Len()
	if total > 0 {
		e.readPos = min(int(e.step)*analyzeStride, total-1)
	}
	if e.step%analyzeSeekEvery == 0 {
		e.audio.PlaySeek()
	}
	if e.step > uint64(total/analyzeStride+analyzeTailTicks) {
		e.readPos = -1
		e.setPhase(Defragmenting)
		e.adoptSeeds()
		e.deadline = e.clock.Now()
	}
}

// adoptSeeds turns the Reading/Writing clusters placed by Generate into the first
// in-flight move, so both seeds complete and count towards TotalToDefrag.
func (e *Engine) adoptSeeds() {
	if e.file != nil {
		return
	}
	r, w := -1, -1
	for i, c := range e.grid.cells {
		switch {
		case c == Reading && r < 0:
			r = i
		case c == Writing && w < 0:
			w = i
		}
	}
	if r < 0 && w < 0 {
		return
	}
	e.readPos, e.writePos = r, w
	e.file = &InFlightFile{
		Stage:   StageReading,
		Name:    pickName(e.names, e.rng),
		Size:    1,
		Written: boolToInt(w >= 0),
		seed:    true,
	}
}

func (e *Engine) defragment(now time.Time) {
	if now.Before(e.deadline) {
		base := "Processing"
		if e.file != nil && e.file.Stage != StageCompleted {
			base = e.file.Stage.String()
		}
		e.status = fmt.Sprintf("%s %s%s", base, e.displayName(), strings.Repeat(".", int(e.step%4)))
		return
	}
	if e.file == nil {
		e.startFile(now)
		return
	}

	switch e.file.Stage {
	case StageReading:
		if e.readPos >= 0 && e.grid.At(e.readPos) == Reading {
			e.grid.set(e.readPos, Unused)
			e.free.Invalidate()
			e.audio.PlayRead()
			if e.file.seed {
				e.defragged()
			}
		}
		e.file.Stage = StageWriting
		e.file.Progress = 0
		e.status = fmt.Sprintf("Writing %s...", e.displayName())
	case StageWriting:
		if e.writePos >= 0 && e.grid.At(e.writePos) == Writing {
			e.grid.set(e.writePos, Used)
			e.defragged()
			e.audio.PlayWrite()
		}
		// The rest of the run settles uncounted, so Count(Used) may exceed
		// ClustersDefragged once files span more than one cluster.
		for i := e.writePos + 1; e.writePos >= 0 && i < e.writePos+e.file.Written && i < e.grid.Len(); i++ {
			if e.grid.At(i) == Writing {
				e.grid.set(i, Used)
			}
		}
		e.file.Stage = StageCompleted
		e.status = fmt.Sprintf("Finishing %s...", e.displayName())
	case StageCompleted:
		e.log.Debug("file moved", "run_id", e.runID, "file", e.file.Name, "size", e.file.Size)
		e.file = nil
		e.deadline = now
		e.status = "Looking for next file..."
	}
}

// startFile draws the next pending cluster and schedules its move.
func (e *Engine) startFile(now time.Time) {
	pending := e.pending.Indices(e.grid)
	if len(pending) == 0 {
		e.readPos, e.writePos = -1, -1
		e.setPhase(Finished)
		e.status = Finished.Status()
		e.log.Info("defragmentation complete",
			"run_id", e.runID,
			"clusters_defragged", e.stats.ClustersDefragged,
			"total_to_defrag", e.stats.TotalToDefrag,
		)
		return
	}

	idx := pending[e.rng.IntN(len(pending))]
	name := pickName(e.names, e.rng)
	size := intRange(e.rng, minFileSize, maxFileSize)
	base := time.Duration(intRange(e.rng, minOpDuration, maxOpDuration)) * time.Millisecond
	delay := base / time.Duration(max(e.cfg.Drive.IOPS, 1))
	e.deadline = now.Add(delay)

	e.grid.set(idx, Reading)
	e.pending.Invalidate()
	e.readPos = idx
	e.audio.PlaySeek()

	start, ok := e.free.FindRegion(e.grid, size)
	if !ok {
		e.grid.set(idx, Used)
		e.defragged()
		e.readPos, e.writePos = -1, -1
		e.audio.PlayWrite()
		e.deadline = now
		e.metrics.NoFreeRegion()
		e.log.Debug("no contiguous free space, moved in place", "run_id", e.runID, "cluster", idx, "size", size)
		return
	}

	n := min(size, e.clustersPerOperation())
	written := 0
	for i := 0; i < n && start+i < e.grid.Len(); i++ {
		e.grid.set(start+i, Writing)
		written++
	}
	e.free.Invalidate()
	e.writePos = start
	e.file = &InFlightFile{Stage: StageReading, Name: name, Size: size, Written: written}
	e.status = fmt.Sprintf("Reading %s...", e.displayName())
	e.metrics.OperationStarted(size, delay)
	e.log.Debug("file move started",
		"run_id", e.runID,
		"file", name,
		"from", idx,
		"to", start,
		"size", size,
		"delay", delay,
	)
}

func (e *Engine) clustersPerOperation() int { return max(e.cfg.Drive.IOPS, 1) }

func (e *Engine) defragged() {
	if e.stats.ClustersDefragged < e.stats.TotalToDefrag {
		e.stats.ClustersDefragged++
	}
	e.metrics.ClusterDefragged(e.stats)
}

func (e *Engine) finish() {
	switch {
	case e.demo && e.step > FinishWaitTicks/2:
		e.Restart()
	case !e.demo && e.step > FinishWaitTicks:
		e.running = false
		e.log.Info("simulation stopped", "run_id", e.runID)
	}
}

// abortInFlight returns the clusters of an unfinished move to their prior states.
// Seed moves put their clusters back to Pending so they are still counted.
func (e *Engine) abortInFlight() {
	f := e.file
	if f == nil {
		return
	}
	e.file = nil
	if f.Stage == StageCompleted {
		return
	}
	restore := Unused
	if f.seed {
		restore = Pending
	}
	if e.writePos >= 0 {
		for i := e.writePos; i < e.writePos+f.Written && i < e.grid.Len(); i++ {
			if e.grid.At(i) == Writing {
				e.grid.set(i, restore)
			}
		}
	}
	if e.readPos >= 0 {
		switch c := e.grid.At(e.readPos); {
		case c == Reading:
			e.grid.set(e.readPos, Pending)
		case c == Unused && f.Stage == StageWriting && !f.seed:
			e.grid.set(e.readPos, Pending)
		}
	}
	e.free.Invalidate()
	e.pending.Invalidate()
	e.log.Debug("in-flight move aborted", "run_id", e.runID, "file", f.Name)
}

// TogglePause pauses or resumes the run. It is only accepted while analyzing or
// defragmenting and reports whether the request was applied.
func (e *Engine) TogglePause() bool {
	if e.phase != Analyzing && e.phase != Defragmenting {
		return false
	}
	e.paused = !e.paused
	if e.paused {
		e.audio.StopAll()
	}
	e.log.Info("pause toggled", "run_id", e.runID, "paused", e.paused)
	return true
}

// Restart regenerates the disk with the same parameters and fresh randomness.
func (e *Engine) Restart() {
	e.metrics.Restarted()
	e.log.Info("restart", "previous_run_id", e.runID)
	e.reset()
}

// ToggleDemoMode flips automatic restarting after completion.
func (e *Engine) ToggleDemoMode() bool {
	e.demo = !e.demo
	return e.demo
}

// ForcePhase jumps to p, aborting any move in progress. Forcing the current phase
// is a no-op.
func (e *Engine) ForcePhase(p Phase) {
	if p == e.phase || p > Finished {
		return
	}
	e.abortInFlight()
	e.readPos, e.writePos = -1, -1
	e.paused = false
	e.setPhase(p)
	e.status = p.Status()
	if p == Defragmenting {
		e.adoptSeeds()
		e.deadline = e.clock.Now()
	}
}

// Stop ends the run as if the finish wait had elapsed.
func (e *Engine) Stop() { e.running = false }

// SetAudio replaces the audio collaborator and tunes it to the current drive.
func (e *Engine) SetAudio(a AudioEngine) {
	if a == nil {
		a = NopAudio{}
	}
	a.SetThroughput(e.cfg.Drive.IOPS)
	e.audio = a
}

func (e *Engine) displayName() string {
	if e.file == nil || e.file.Name == "" {
		return "file"
	}
	return e.file.Name
}

// Accessors

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Step returns the animation counter of the current phase.
func (e *Engine) Step() uint64 { return e.step }

// Grid returns the live grid. Callers must treat it as read-only.
func (e *Engine) Grid() Grid { return e.grid }

// Stats returns a copy of the run statistics.
func (e *Engine) Stats() Stats { return e.stats }

// ReadPos returns the read cursor.
func (e *Engine) ReadPos() (int, bool) { return e.readPos, e.readPos >= 0 }

// WritePos returns the write cursor.
func (e *Engine) WritePos() (int, bool) { return e.writePos, e.writePos >= 0 }

// File returns the move in progress.
func (e *Engine) File() (InFlightFile, bool) {
	if e.file == nil {
		return InFlightFile{}, false
	}
	return *e.file, true
}

// Filename returns the name of the file being moved, or "".
func (e *Engine) Filename() string {
	if e.file == nil {
		return ""
	}
	return e.file.Name
}

// Deadline returns the scheduled completion instant of the current operation.
func (e *Engine) Deadline() time.Time { return e.deadline }

// Status returns the status-line text.
func (e *Engine) Status() string {
	if e.paused {
		return "Paused"
	}
	return e.status
}

func (e *Engine) Paused() bool       { return e.paused }
func (e *Engine) DemoMode() bool     { return e.demo }
func (e *Engine) Running() bool      { return e.running }
func (e *Engine) Drive() Drive       { return e.cfg.Drive }
func (e *Engine) Config() Config     { return e.cfg }
func (e *Engine) RunID() string      { return e.runID }
func (e *Engine) Audio() AudioEngine { return e.audio }
func (e *Engine) Now() time.Time     { return e.clock.Now() }

// CachesDirty reports whether the free-space and pending indexes will rebuild on
// their next query.
func (e *Engine) CachesDirty() (freeSpace, pending bool) {
	return e.free.Dirty(), e.pending.Dirty()
}

// ProgressPercent returns run completion in percent.
func (e *Engine) ProgressPercent() float64 { return e.stats.ProgressPercent() }

// EstimatedTimeRemaining extrapolates the time left from the observed rate.
func (e *Engine) EstimatedTimeRemaining() (time.Duration, bool) {
	return e.stats.EstimatedTimeRemaining(e.clock.Now(), e.phase)
}

// Count returns the number of clusters in state s.
func (e *Engine) Count(s ClusterState) int { return e.grid.Count(s) }

// FragmentationPercent returns pending / (pending + used) as a fraction in [0,1].
func (e *Engine) FragmentationPercent() float64 {
	pending := e.grid.Count(Pending)
	data := pending + e.grid.Count(Used)
	if data == 0 {
		return 0
	}
	return float64(pending) / float64(data)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
