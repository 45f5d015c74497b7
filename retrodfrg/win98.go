package retrodfrg

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"dosdefrag/defrag"
)

// Windows 9x palette
var (
	winSurface     = tcell.NewRGBColor(192, 192, 192)
	winButtonFace  = tcell.NewRGBColor(223, 223, 223)
	winShadow      = tcell.NewRGBColor(128, 128, 128)
	winFrame       = tcell.NewRGBColor(10, 10, 10)
	winText        = tcell.NewRGBColor(34, 34, 34)
	winDesktop     = tcell.NewRGBColor(0, 128, 128)
	winIdle        = tcell.NewRGBColor(0, 0, 128)
	winProgress    = tcell.NewRGBColor(255, 0, 0)
	winDone        = tcell.NewRGBColor(19, 250, 251)
	winSurfaceText = tcell.StyleDefault.Background(winSurface).Foreground(winText)

	// title bar gradient, navy to light blue
	titleStart = mustHex("#000080")
	titleEnd   = mustHex("#1084d0")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

const (
	winMaxWidth  = 80
	winMaxHeight = 24
	winControls  = " _ □ ×"
)

// Win98Renderer draws the Windows 9x Disk Defragmenter dialog on a teal desktop. The
// cluster map collapses states into not defragmented, in progress and defragmented.
type Win98Renderer struct {
	gradient bool
}

// NewWin98Renderer returns the Windows 98 renderer with a gradient title bar.
func NewWin98Renderer() *Win98Renderer { return &Win98Renderer{gradient: true} }

// NewWin95Renderer returns the Windows 95 variant with a flat title bar.
func NewWin95Renderer() *Win98Renderer { return &Win98Renderer{} }

// win98Color maps a cluster to the three-colour map.
func win98Color(c defrag.ClusterState) tcell.Color {
	switch c {
	case defrag.Used:
		return winDone
	case defrag.Reading, defrag.Writing:
		return winProgress
	default:
		return winIdle
	}
}

// Render implements Renderer.
func (r *Win98Renderer) Render(s tcell.Screen, v View) {
	sw, sh := s.Size()
	fill(s, 0, 0, sw, sh, ' ', tcell.StyleDefault.Background(winDesktop))

	w, h := min(sw, winMaxWidth), min(sh, winMaxHeight)
	x, y := (sw-w)/2, (sh-h)/2
	fill(s, x, y, w, h, ' ', winSurfaceText)
	ix, iy, iw, ih := box(s, x, y, w, h, singleBorder, tcell.StyleDefault.Background(winSurface).Foreground(winFrame))
	if iw <= 0 || ih <= 0 {
		return
	}

	r.titleBar(s, v, ix, iy, iw)
	gridH := max(ih-9, 3)
	r.diskGrid(s, v.Grid, ix, iy+2, iw, gridH)
	row := iy + 2 + gridH
	putStr(s, ix+1, row, truncate(v.Status, iw-2), winSurfaceText)
	r.legend(s, ix, row+1, iw)
	r.progress(s, v.Progress, ix+1, row+3, iw-2)
	putStr(s, ix, row+4, center(fmt.Sprintf("%d%% completed", int(min(v.Progress, 100))), iw), winSurfaceText)
	r.buttons(s, v, ix, row+6, iw)

	if v.ShowAbout {
		drawAbout(s, "About Disk Defragmenter", "Disk Defragmenter Simulator")
	}
}

func (r *Win98Renderer) title(v View) string {
	switch v.Phase {
	case defrag.Defragmenting:
		return fmt.Sprintf("Defragmenting Drive %c:", v.Drive.Letter)
	case defrag.Analyzing:
		return fmt.Sprintf("Defragmenting Drive %c: (analyzing)", v.Drive.Letter)
	default:
		return "Disk Defragmenter"
	}
}

func (r *Win98Renderer) titleBar(s tcell.Screen, v View, x, y, w int) {
	for col := 0; col < w; col++ {
		bg := winIdle
		if r.gradient && w > 1 {
			c := titleStart.BlendRgb(titleEnd, float64(col)/float64(w-1))
			cr, cg, cb := c.RGB255()
			bg = tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
		}
		s.SetContent(x+col, y, ' ', nil, tcell.StyleDefault.Background(bg))
	}
	text := " ▣ " + truncate(r.title(v), max(w-len(winControls)-4, 0))
	col := x
	for _, ch := range text {
		_, _, st, _ := s.GetContent(col, y)
		col = putStr(s, col, y, string(ch), st.Foreground(tcell.ColorWhite).Bold(true))
	}
	if w >= len([]rune(winControls)) {
		putStr(s, x+w-len([]rune(winControls)), y, winControls,
			tcell.StyleDefault.Background(winButtonFace).Foreground(tcell.ColorBlack))
	}
}

// diskGrid draws the sunken panel and its cluster map, one block per cluster.
func (r *Win98Renderer) diskGrid(s tcell.Screen, g defrag.Grid, x, y, w, h int) {
	panel := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(winShadow)
	fill(s, x, y, w, h, ' ', panel)
	ix, iy, iw, ih := box(s, x, y, w, h, singleBorder, panel)
	if iw <= 0 {
		return
	}
	for i := 0; i < g.Len(); i++ {
		row := i / iw
		if row >= ih {
			break
		}
		s.SetContent(ix+i%iw, iy+row, '█', nil,
			tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(win98Color(g.At(i))))
	}
}

func (r *Win98Renderer) legend(s tcell.Screen, x, y, w int) {
	spans := []span{
		{"■", winSurfaceText.Foreground(winIdle)},
		{" Not defragmented   ", winSurfaceText},
		{"■", winSurfaceText.Foreground(winProgress)},
		{" In progress   ", winSurfaceText},
		{"■", winSurfaceText.Foreground(winDone)},
		{" Defragmented", winSurfaceText},
	}
	width := 0
	for _, sp := range spans {
		width += len([]rune(sp.text))
	}
	putSpans(s, x+max(w-width, 0)/2, y, spans...)
}

func (r *Win98Renderer) progress(s tcell.Screen, percent float64, x, y, w int) {
	if w < 4 {
		return
	}
	inner := w - 2
	filled := min(int(min(max(percent, 0), 100)/100*float64(inner)), inner)
	s.SetContent(x, y, '▐', nil, tcell.StyleDefault.Foreground(winShadow).Background(tcell.ColorWhite))
	for i := 0; i < inner; i++ {
		if i < filled {
			s.SetContent(x+1+i, y, '█', nil, tcell.StyleDefault.Foreground(winIdle).Background(tcell.ColorWhite))
		} else {
			s.SetContent(x+1+i, y, ' ', nil, tcell.StyleDefault.Background(tcell.ColorWhite))
		}
	}
	s.SetContent(x+w-1, y, '▌', nil, tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorWhite))
}

func (r *Win98Renderer) buttons(s tcell.Screen, v View, x, y, w int) {
	face := tcell.StyleDefault.Background(winButtonFace).Foreground(winText)
	disabled := face.Foreground(winShadow)

	primary := "Start"
	stop := disabled
	if v.Phase == defrag.Analyzing || v.Phase == defrag.Defragmenting {
		primary = "Pause"
		if v.Paused {
			primary = "Resume"
		}
		stop = face
	}
	putStr(s, x+2, y, center("Settings...", 12), face)
	putStr(s, x+w-23, y, center(primary, 10), face)
	putStr(s, x+w-12, y, center("Stop", 10), stop)
}
