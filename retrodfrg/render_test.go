package retrodfrg

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dosdefrag/config"
	"dosdefrag/defrag"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// row returns the text of screen row y.
func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(s tcell.Screen) string {
	_, h := s.Size()
	lines := make([]string, h)
	for y := range lines {
		lines[y] = row(s, y)
	}
	return strings.Join(lines, "\n")
}

func testView() View {
	cells := []defrag.ClusterState{
		defrag.Unmovable, defrag.Used, defrag.Pending, defrag.Bad,
		defrag.Unused, defrag.Reading, defrag.Writing, defrag.Unused,
	}
	return View{
		Grid:     defrag.NewGrid(4, 2, cells),
		Phase:    defrag.Defragmenting,
		Status:   "Reading DOOM.WAD...",
		Filename: `DOOM\DOOM.WAD`,
		Drive:    defrag.DriveC,
		Stats:    defrag.Stats{TotalToDefrag: 4, ClustersDefragged: 1},
		Progress: 25,
		Elapsed:  75 * time.Second,
		ETA:      225 * time.Second,
		HasETA:   true,
		Sound:    SoundOn,
	}
}

func TestMSDOSRenderer_Layout(t *testing.T) {
	s := newSimScreen(t, 90, 30)
	NewMSDOSRenderer().Render(s, testView())

	header := row(s, 0)
	assert.Contains(t, header, "Optimize")
	assert.Contains(t, header, "Help")
	assert.Contains(t, header, "Esc=Quit")

	assert.Equal(t, '╔', firstRune(s, 0, 1))

	// all 8 clusters fit in the first interior row
	assert.Equal(t, "X••B░rW░", string([]rune(row(s, 2))[1:9]))

	footer := screenText(s)
	assert.Contains(t, footer, "Cluster 1 ")
	assert.Contains(t, footer, " 25% │")
	assert.Contains(t, footer, "Time: 00:01:15 ETA 00:03:45")
	assert.Contains(t, footer, `File: DOOM\DOOM.WAD`)
	assert.Contains(t, footer, "Drive C: ░ = Unused space")

	action := row(s, 29)
	assert.Contains(t, action, "Reading DOOM.WAD...")
	assert.Contains(t, action, "[♪ ON]")
	assert.Contains(t, action, "| MS-DOS defrag")
}

func TestMSDOSRenderer_ClusterStyles(t *testing.T) {
	s := newSimScreen(t, 90, 30)
	NewMSDOSRenderer().Render(s, testView())

	r, _, st, _ := s.GetContent(4, 2)
	assert.Equal(t, 'B', r)
	fg, bg, _ := st.Decompose()
	assert.Equal(t, tcell.ColorRed, fg)
	assert.Equal(t, tcell.ColorBlack, bg)

	r, _, _, _ = s.GetContent(6, 2)
	assert.Equal(t, 'r', r)
	r, _, _, _ = s.GetContent(7, 2)
	assert.Equal(t, 'W', r)
}

func TestMSDOSRenderer_PausedDemoAndMenu(t *testing.T) {
	s := newSimScreen(t, 90, 30)
	v := testView()
	v.Paused = true
	v.Demo = true
	v.Sound = SoundAbsent
	v.Menu = MenuState{Open: true, Menu: 1, Item: 0}
	NewMSDOSRenderer().Render(s, v)

	action := row(s, 29)
	assert.Contains(t, action, "[DEMO] [ PAUSED ]")
	assert.Contains(t, action, "[S=Sound]")

	text := screenText(s)
	assert.Contains(t, text, "Analyze drive")
	assert.Contains(t, text, "File fragmentation...")
	assert.NotContains(t, text, "Begin optimization")
}

func TestMSDOSRenderer_About(t *testing.T) {
	s := newSimScreen(t, 90, 30)
	v := testView()
	v.ShowAbout = true
	NewMSDOSRenderer().Render(s, v)

	text := screenText(s)
	assert.Contains(t, text, "About MS-DOS Defrag")
	assert.Contains(t, text, "[   OK   ]")
}

func TestMSDOSRenderer_TinyScreen(t *testing.T) {
	s := newSimScreen(t, 10, 3)
	assert.NotPanics(t, func() { NewMSDOSRenderer().Render(s, testView()) })
}

func TestWin98Renderer(t *testing.T) {
	s := newSimScreen(t, 100, 30)
	NewWin98Renderer().Render(s, testView())

	text := screenText(s)
	assert.Contains(t, text, "Defragmenting Drive C:")
	assert.Contains(t, text, "25% completed")
	assert.Contains(t, text, "Not defragmented")
	assert.Contains(t, text, "Settings...")
	assert.Contains(t, text, "Pause")
	assert.Contains(t, text, "Reading DOOM.WAD...")

	// desktop is teal outside the centred window
	_, _, st, _ := s.GetContent(0, 0)
	_, bg, _ := st.Decompose()
	assert.Equal(t, winDesktop, bg)
}

func TestWin98Renderer_GradientTitle(t *testing.T) {
	s98 := newSimScreen(t, 80, 24)
	NewWin98Renderer().Render(s98, testView())
	s95 := newSimScreen(t, 80, 24)
	NewWin95Renderer().Render(s95, testView())

	_, _, left, _ := s98.GetContent(1, 1)
	_, _, right, _ := s98.GetContent(70, 1)
	_, lbg, _ := left.Decompose()
	_, rbg, _ := right.Decompose()
	assert.NotEqual(t, lbg, rbg)

	_, _, left, _ = s95.GetContent(1, 1)
	_, _, right, _ = s95.GetContent(70, 1)
	_, lbg, _ = left.Decompose()
	_, rbg, _ = right.Decompose()
	assert.Equal(t, lbg, rbg)
}

func TestWin98Color(t *testing.T) {
	assert.Equal(t, winDone, win98Color(defrag.Used))
	assert.Equal(t, winProgress, win98Color(defrag.Reading))
	assert.Equal(t, winProgress, win98Color(defrag.Writing))
	for _, c := range []defrag.ClusterState{defrag.Pending, defrag.Unused, defrag.Bad, defrag.Unmovable} {
		assert.Equal(t, winIdle, win98Color(c))
	}
}

func TestNewRenderer(t *testing.T) {
	assert.IsType(t, &MSDOSRenderer{}, NewRenderer(config.StyleMSDOS))
	assert.IsType(t, &Win98Renderer{}, NewRenderer(config.StyleWin98))
	assert.IsType(t, &Win98Renderer{}, NewRenderer(config.StyleWin95))
	assert.IsType(t, &MSDOSRenderer{}, NewRenderer("amiga"))
	assert.True(t, SupportsMenus(NewRenderer(config.StyleMSDOS)))
	assert.False(t, SupportsMenus(NewRenderer(config.StyleWin98)))
}

func firstRune(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}
