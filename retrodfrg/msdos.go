package retrodfrg

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"dosdefrag/defrag"
)

const (
	footerRows   = 7
	statusWidth  = 38
	menuBarQuit  = "Esc=Quit"
	versionLabel = "| MS-DOS defrag "
)

var (
	dosBlue     = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	dosMenuBar  = tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorBlack)
	dosHotkey   = dosMenuBar.Foreground(tcell.ColorMaroon)
	dosSelected = tcell.StyleDefault.Background(tcell.ColorTeal).Foreground(tcell.ColorBlack)
	dosAction   = tcell.StyleDefault.Background(tcell.ColorMaroon).Foreground(tcell.ColorWhite).Bold(true)

	optimizedFg = tcell.NewRGBColor(0, 200, 0)
	optimizedBg = tcell.NewRGBColor(0, 100, 0)
	activeBg    = tcell.NewRGBColor(0, 0, 139)
)

type glyph struct {
	r     rune
	style tcell.Style
}

var dosGlyphs = map[defrag.ClusterState]glyph{
	defrag.Used:      {'•', tcell.StyleDefault.Foreground(optimizedFg).Background(optimizedBg)},
	defrag.Unused:    {'░', tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)},
	defrag.Pending:   {'•', tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)},
	defrag.Bad:       {'B', tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)},
	defrag.Unmovable: {'X', tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)},
	defrag.Reading:   {'r', tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(activeBg)},
	defrag.Writing:   {'W', tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(activeBg)},
}

// MSDOSRenderer draws the blue full-screen MS-DOS 6 DEFRAG look with a menu bar,
// status and legend boxes and an action bar.
type MSDOSRenderer struct{}

// NewMSDOSRenderer returns the MS-DOS renderer.
func NewMSDOSRenderer() *MSDOSRenderer { return &MSDOSRenderer{} }

// Render implements Renderer.
func (r *MSDOSRenderer) Render(s tcell.Screen, v View) {
	w, h := s.Size()
	fill(s, 0, 0, w, h, ' ', dosBlue)

	r.header(s, v, w)
	if h > footerRows+1 {
		ix, iy, iw, ih := box(s, 0, 1, w, h-footerRows-1, doubleBorder, dosBlue)
		drawDOSGrid(s, v.Grid, ix, iy, iw, ih)
	}
	r.footer(s, v, w, max(h-footerRows, 1))
	r.dropdown(s, v.Menu)
	if v.ShowAbout {
		drawAbout(s, "About MS-DOS Defrag", "MS-DOS Defrag Simulator")
	}
}

// drawDOSGrid lays clusters out row-major, wrapping at the window width.
func drawDOSGrid(s tcell.Screen, g defrag.Grid, x, y, w, h int) {
	if w <= 0 {
		return
	}
	for i := 0; i < g.Len(); i++ {
		row := i / w
		if row >= h {
			break
		}
		gl := dosGlyphs[g.At(i)]
		s.SetContent(x+i%w, y+row, gl.r, nil, gl.style)
	}
}

func (r *MSDOSRenderer) header(s tcell.Screen, v View, w int) {
	fill(s, 0, 0, w, 1, ' ', dosMenuBar)
	x := 1
	for i, name := range menuNames {
		if v.Menu.Open && v.Menu.Menu == i {
			x = putStr(s, x, 0, " "+name+" ", dosSelected)
		} else {
			x = putSpans(s, x, 0,
				span{" ", dosMenuBar},
				span{name[:1], dosHotkey},
				span{name[1:], dosMenuBar},
			)
		}
		x = putStr(s, x, 0, "  ", dosMenuBar)
	}
	putStr(s, w-len(menuBarQuit)-1, 0, menuBarQuit, dosMenuBar)
}

// menuX returns the column of menu i's title in the menu bar.
func menuX(i int) int {
	x := 1
	for _, name := range menuNames[:i] {
		x += len(name) + 3
	}
	return x
}

func (r *MSDOSRenderer) dropdown(s tcell.Screen, m MenuState) {
	if !m.Open || m.Menu < 0 || m.Menu >= len(menuItems) {
		return
	}
	items := menuItems[m.Menu]
	width := 0
	for _, it := range items {
		width = max(width, len(it))
	}
	width += 4
	x, y := menuX(m.Menu), 1
	fill(s, x, y, width, len(items)+2, ' ', dosMenuBar)
	ix, iy, iw, _ := box(s, x, y, width, len(items)+2, singleBorder, dosMenuBar)
	for i, it := range items {
		switch {
		case it == "":
			putStr(s, ix, iy+i, strings.Repeat("─", iw), dosMenuBar.Foreground(tcell.ColorGray))
		case i == m.Item:
			putStr(s, ix, iy+i, padRight(" "+it, iw), tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
		default:
			putStr(s, ix, iy+i, " "+it, dosMenuBar)
		}
	}
}

func (r *MSDOSRenderer) footer(s tcell.Screen, v View, w, y int) {
	edge := strings.Repeat("─", 16)
	putStr(s, 0, y, "┌"+edge+" Status "+edge+"┐┌"+edge+" Legend "+edge+"┐", dosBlue)

	pct := int(min(v.Progress, 100))
	putSpans(s, 0, y+1,
		span{fmt.Sprintf("│ Cluster %-6d                    %3d%% │", v.Stats.ClustersDefragged, pct), dosBlue},
		span{"│ ", dosBlue},
		span{"•", dosBlue.Foreground(optimizedFg)},
		span{" - Optimized    ", dosBlue},
		span{"•", dosBlue.Foreground(tcell.ColorWhite)},
		span{" - Fragmented        │", dosBlue},
	)

	putSpans(s, 0, y+2,
		span{"│ " + progressBar(v.Progress, statusWidth) + " │", dosBlue},
		span{"│ ", dosBlue},
		span{"r", dosBlue.Foreground(tcell.ColorYellow)},
		span{" - Reading      ", dosBlue},
		span{"W", dosBlue.Foreground(tcell.ColorGreen)},
		span{" - Writing           │", dosBlue},
	)

	timeText := "Time: " + clock(v.Elapsed)
	if v.HasETA {
		timeText += " ETA " + clock(v.ETA)
	}
	putSpans(s, 0, y+3,
		span{"│ " + center(timeText, statusWidth) + " │", dosBlue},
		span{"│ ", dosBlue},
		span{"B", tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)},
		span{" - Bad block    ", dosBlue},
		span{"X", dosBlue},
		span{" - Unmovable         │", dosBlue},
	)

	fileText := "Full optimization"
	if v.Filename != "" {
		fileText = "File: " + truncate(v.Filename, statusWidth-len("File: "))
	}
	legend := fmt.Sprintf(" Drive %c: ░ = Unused space", v.Drive.Letter)
	putStr(s, 0, y+4, "│"+center(fileText, statusWidth)+"  ││"+padRight(legend, 40)+"│", dosBlue)
	putStr(s, 0, y+5, "└"+strings.Repeat("─", 40)+"┘└"+strings.Repeat("─", 40)+"┘", dosBlue)

	r.actionBar(s, v, w, y+6)
}

func (r *MSDOSRenderer) actionBar(s tcell.Screen, v View, w, y int) {
	action := v.Status
	if v.Paused {
		action = "[ PAUSED ]"
	}
	demo := ""
	if v.Demo {
		demo = "[DEMO] "
	}
	var sound string
	switch v.Sound {
	case SoundOn:
		sound = " [♪ ON] "
	case SoundOff:
		sound = " [♪ OFF]"
	default:
		sound = " [S=Sound]"
	}
	left := "  " + demo + action
	right := sound + versionLabel
	gap := max(w-runewidth.StringWidth(left)-runewidth.StringWidth(right), 0)
	fill(s, 0, y, w, 1, ' ', dosAction)
	putStr(s, 0, y, left+strings.Repeat(" ", gap)+right, dosAction)
}
