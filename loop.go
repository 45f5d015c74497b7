package main

import (
	"context"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"dosdefrag/defrag"
	"dosdefrag/retrodfrg"
)

// pollInterval bounds input latency; the engine itself advances once per tick interval.
const pollInterval = 10 * time.Millisecond

// loop is the single goroutine that owns the engine while the UI is up.
type loop struct {
	ui       *retrodfrg.UI
	engine   *defrag.Engine
	state    *retrodfrg.State
	interval time.Duration
	poll     time.Duration
	log      defrag.Logger

	ticks uint64
}

func newLoop(ui *retrodfrg.UI, e *defrag.Engine, st *retrodfrg.State, interval time.Duration, log defrag.Logger) *loop {
	if log == nil {
		log = defrag.NopLogger
	}
	return &loop{ui: ui, engine: e, state: st, interval: interval, poll: pollInterval, log: log}
}

// run returns nil when the engine stops or the user quits, and
// retrodfrg.ErrInterrupted when a termination signal arrives.
func (l *loop) run(ctx context.Context, sigs <-chan os.Signal) error {
	poll := time.NewTicker(l.poll)
	defer poll.Stop()

	last := time.Now()
	l.draw()
	for l.engine.Running() {
		dirty := false
		select {
		case <-ctx.Done():
			return ctx.Err()

		case sig := <-sigs:
			l.log.Info("signal received", "signal", sig.String())
			l.engine.Stop()
			l.ui.RequestStop()
			return retrodfrg.ErrInterrupted

		case ev, ok := <-l.ui.Events():
			if !ok {
				return nil
			}
			quit := l.handleEvent(ev)
			if quit {
				return nil
			}
			dirty = true

		case now := <-poll.C:
			if now.Sub(last) >= l.interval {
				last = now
				l.engine.Update()
				l.ticks++
				dirty = true
			}
		}
		if dirty {
			l.draw()
		}
	}
	return nil
}

func (l *loop) draw() {
	l.ui.Draw(retrodfrg.NewView(l.engine, l.state))
}

// handleEvent reports whether the event asks to quit.
func (l *loop) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		l.ui.Resize()
	case *tcell.EventKey:
		return l.apply(l.state.HandleKey(ev))
	}
	return false
}

// apply performs a key action on the engine and reports whether it was a quit.
func (l *loop) apply(a retrodfrg.Action) bool {
	if a == retrodfrg.ActionNone {
		return false
	}
	l.log.Debug("key action", "action", a.String(), "phase", l.engine.Phase().String())

	switch a {
	case retrodfrg.ActionQuit:
		l.engine.Stop()
		return true
	case retrodfrg.ActionTogglePause:
		l.engine.TogglePause()
	case retrodfrg.ActionRestart:
		l.engine.Restart()
	case retrodfrg.ActionToggleDemo:
		l.engine.ToggleDemoMode()
	case retrodfrg.ActionToggleSound:
		if _, absent := l.engine.Audio().(defrag.NopAudio); absent {
			l.engine.SetAudio(retrodfrg.NewBeeper(l.ui.Screen().Beep))
		} else {
			l.engine.Audio().Toggle()
		}
	case retrodfrg.ActionAnalyze:
		l.engine.ForcePhase(defrag.Analyzing)
	}
	return false
}
