package retrodfrg

import (
	"github.com/gdamore/tcell/v2"

	"dosdefrag/config"
)

// Renderer draws one frame of a View onto a screen. The caller clears and shows.
type Renderer interface {
	Render(s tcell.Screen, v View)
}

// NewRenderer returns the renderer for style. Unknown styles fall back to MS-DOS.
func NewRenderer(style config.Style) Renderer {
	switch style {
	case config.StyleWin98:
		return NewWin98Renderer()
	case config.StyleWin95:
		return NewWin95Renderer()
	default:
		return NewMSDOSRenderer()
	}
}

// SupportsMenus reports whether r draws the menu bar.
func SupportsMenus(r Renderer) bool {
	_, ok := r.(*MSDOSRenderer)
	return ok
}

var aboutBanner = []string{
	`   ____  _____ _____ ____      _    ____`,
	`  |  _ \| ____|  ___|  _ \    / \  / ___|`,
	`  | | | |  _| | |_  | |_) |  / _ \| |  _`,
	`  | |_| | |___|  _| |  _ <  / ___ \ |_| |`,
	`  |____/|_____|_|   |_| \_\/_/   \_\____|`,
}

const (
	aboutWidth  = 52
	aboutHeight = 18
)

// drawAbout draws the centred About box with its drop shadow.
func drawAbout(s tcell.Screen, title, product string) {
	sw, sh := s.Size()
	x := max(sw-aboutWidth, 0) / 2
	y := max(sh-aboutHeight, 0) / 2

	fill(s, x+2, y+1, aboutWidth, aboutHeight, ' ', tcell.StyleDefault.Background(tcell.ColorBlack))
	body := tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorBlack)
	fill(s, x, y, aboutWidth, aboutHeight, ' ', body)
	ix, iy, iw, ih := box(s, x, y, aboutWidth, aboutHeight, doubleBorder, body)
	putStr(s, x+(aboutWidth-len(title)-2)/2, y, " "+title+" ", body)

	row := iy + 1
	for i, line := range aboutBanner {
		c := tcell.ColorNavy
		if i >= 3 {
			c = tcell.ColorTeal
		}
		putStr(s, ix, row, line, body.Foreground(c).Bold(true))
		row++
	}
	row++
	putStr(s, ix, row, "  "+product, body.Bold(true))
	row += 2
	label := body.Foreground(tcell.ColorGray)
	putSpans(s, ix, row, span{"  Keys: ", label}, span{"P pause  R restart  D demo  S sound", body})
	row++
	putSpans(s, ix, row, span{"  Menu: ", label}, span{"F10 or Tab, arrows, Enter", body})

	button := "[   OK   ]"
	putStr(s, ix+(iw-len(button))/2, iy+ih-2, button,
		tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorGray).Bold(true))
}
