package retrodfrg

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dosdefrag/defrag"
)

func newTestUI(t *testing.T, w, h int) (*UI, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	u, err := NewUIWithScreen(s, nil)
	require.NoError(t, err)
	s.SetSize(w, h)
	t.Cleanup(u.Close)
	return u, s
}

func TestUI_DrawAndEvents(t *testing.T) {
	u, s := newTestUI(t, 90, 30)
	assert.IsType(t, &MSDOSRenderer{}, u.Renderer())

	u.Draw(testView())
	assert.Contains(t, row(s, 0), "Optimize")

	s.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-u.Events():
			if kev, ok := ev.(*tcell.EventKey); ok {
				assert.Equal(t, ActionTogglePause, (&State{}).HandleKey(kev))
				return
			}
		case <-deadline:
			t.Fatal("key event not delivered")
		}
	}
}

func TestUI_StopAndClose(t *testing.T) {
	u, _ := newTestUI(t, 20, 10)
	assert.False(t, u.IsStopped())
	u.RequestStop()
	u.RequestStop()
	assert.True(t, u.IsStopped())

	u.Close()
	w, h := u.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)
	assert.NotPanics(t, func() { u.Draw(testView()) })
}

func TestNewView(t *testing.T) {
	e := defrag.New(defrag.Config{
		Layout: defrag.LayoutParams{Width: 8, Height: 4, Fill: 0.5, BadFraction: 0.1},
		Drive:  defrag.DriveD,
	}, defrag.WithRand(defrag.NewRand(7)))
	st := &State{Menu: MenuState{Open: true, Menu: 2}, ShowAbout: true}

	v := NewView(e, st)
	assert.Equal(t, defrag.Initializing, v.Phase)
	assert.Equal(t, e.Status(), v.Status)
	assert.Equal(t, defrag.DriveD, v.Drive)
	assert.Equal(t, 32, v.Grid.Len())
	assert.Equal(t, SoundAbsent, v.Sound)
	assert.Equal(t, 2, v.Menu.Menu)
	assert.True(t, v.ShowAbout)

	v = NewView(e, nil)
	assert.False(t, v.Menu.Open)
}
