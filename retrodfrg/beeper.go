package retrodfrg

import (
	"sync"
	"time"

	"dosdefrag/defrag"
)

// baseCueGap is the minimum spacing between bells at playback rate 1.
const baseCueGap = 400 * time.Millisecond

// Beeper is an AudioEngine that rings the terminal bell. Seeks and writes ring, reads
// are silent, and bells closer together than the drive-scaled gap are dropped.
type Beeper struct {
	mu      sync.Mutex
	beep    func() error
	now     func() time.Time
	enabled bool
	gap     time.Duration
	last    time.Time
	mute    time.Time
	cues    map[string]int
}

var _ defrag.AudioEngine = (*Beeper)(nil)

// NewBeeper returns an enabled beeper driving beep, usually tcell.Screen.Beep.
func NewBeeper(beep func() error) *Beeper {
	return &Beeper{
		beep:    beep,
		now:     time.Now,
		enabled: true,
		gap:     baseCueGap,
		cues:    make(map[string]int),
	}
}

// PlaySeek rings for a head seek.
func (b *Beeper) PlaySeek() { b.cue("seek", true) }

// PlayRead counts a read cue without ringing.
func (b *Beeper) PlayRead() { b.cue("read", false) }

// PlayWrite rings for a write.
func (b *Beeper) PlayWrite() { b.cue("write", true) }

// StopAll drops cues for one gap.
func (b *Beeper) StopAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mute = b.now().Add(b.gap)
}

// SetThroughput shortens the gap for faster drives.
func (b *Beeper) SetThroughput(iops int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gap = time.Duration(float64(baseCueGap) / defrag.PlaybackRate(iops))
}

// Toggle enables or disables the bell.
func (b *Beeper) Toggle() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = !b.enabled
}

// Enabled reports whether the bell is on.
func (b *Beeper) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// Cues returns how many cues of kind ("seek", "read", "write") were requested.
func (b *Beeper) Cues(kind string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cues[kind]
}

// Gap returns the current minimum spacing between bells.
func (b *Beeper) Gap() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gap
}

func (b *Beeper) cue(kind string, audible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cues[kind]++
	if !b.enabled || !audible || b.beep == nil {
		return
	}
	now := b.now()
	if now.Before(b.mute) || (!b.last.IsZero() && now.Sub(b.last) < b.gap) {
		return
	}
	b.last = now
	_ = b.beep()
}
