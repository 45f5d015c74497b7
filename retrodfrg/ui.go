// Package retrodfrg draws the defragmenter in the terminal. It owns the tcell screen,
// turns key presses into actions and renders engine snapshots in MS-DOS or Windows 9x
// style. It never mutates the engine itself.
package retrodfrg

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ErrInterrupted is returned when the user requests to stop the run.
var ErrInterrupted = errors.New("interrupted")

// UI owns the terminal screen and its input channel.
type UI struct {
	s        tcell.Screen
	renderer Renderer
	events   chan tcell.Event
	stopChan chan struct{}
	once     sync.Once
	closed   bool
}

// NewUI initializes the terminal and starts delivering input on Events.
func NewUI(r Renderer) (*UI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewUIWithScreen(s, r)
}

// NewUIWithScreen wraps an uninitialized screen, for example a tcell.SimulationScreen.
func NewUIWithScreen(s tcell.Screen, r Renderer) (*UI, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.DisableMouse()
	s.HideCursor()
	if r == nil {
		r = NewMSDOSRenderer()
	}
	u := &UI{
		s:        s,
		renderer: r,
		events:   make(chan tcell.Event, 16),
		stopChan: make(chan struct{}),
	}
	go s.ChannelEvents(u.events, u.stopChan)
	return u, nil
}

// Close restores the terminal. It is safe to call more than once.
func (u *UI) Close() {
	if u.closed {
		return
	}
	u.closed = true
	u.RequestStop()
	u.s.Fini()
	fmt.Print("\033[?1049l\033[?25h")
}

// RequestStop stops input delivery. It can be called multiple times safely.
func (u *UI) RequestStop() {
	u.once.Do(func() {
		close(u.stopChan)
	})
}

// IsStopped reports whether RequestStop has been called.
func (u *UI) IsStopped() bool {
	select {
	case <-u.stopChan:
		return true
	default:
		return false
	}
}

// Events delivers key and resize events until the UI is stopped.
func (u *UI) Events() <-chan tcell.Event { return u.events }

// Screen exposes the underlying screen for audio and tests.
func (u *UI) Screen() tcell.Screen { return u.s }

// Renderer returns the active renderer.
func (u *UI) Renderer() Renderer { return u.renderer }

// Size returns the current screen width and height.
func (u *UI) Size() (width, height int) {
	if u.closed {
		return 0, 0
	}
	return u.s.Size()
}

// Resize resynchronizes the screen after a terminal resize.
func (u *UI) Resize() {
	u.s.Sync()
}

// Draw renders v with the active renderer and shows the frame.
func (u *UI) Draw(v View) {
	if u.closed {
		return
	}
	u.s.Clear()
	u.renderer.Render(u.s, v)
	u.s.Show()
}
