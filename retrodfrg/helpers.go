package retrodfrg

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// span is a run of text in one style.
type span struct {
	text  string
	style tcell.Style
}

// putStr writes str at (x, y) and returns the column after it. Output is clipped at the
// right edge of the screen.
func putStr(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	w, h := s.Size()
	if y < 0 || y >= h {
		return x + runewidth.StringWidth(str)
	}
	for _, r := range str {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x >= 0 && x+rw <= w {
			s.SetContent(x, y, r, nil, style)
		}
		x += rw
	}
	return x
}

func putSpans(s tcell.Screen, x, y int, spans ...span) int {
	for _, sp := range spans {
		x = putStr(s, x, y, sp.text, sp.style)
	}
	return x
}

// fill paints a rectangle with r.
func fill(s tcell.Screen, x, y, w, h int, r rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, r, nil, style)
		}
	}
}

type borderSet struct {
	h, v, tl, tr, bl, br rune
}

var (
	singleBorder = borderSet{'─', '│', '┌', '┐', '└', '┘'}
	doubleBorder = borderSet{'═', '║', '╔', '╗', '╚', '╝'}
)

// box draws a border around the rectangle and returns its interior.
func box(s tcell.Screen, x, y, w, h int, b borderSet, style tcell.Style) (ix, iy, iw, ih int) {
	if w < 2 || h < 2 {
		return x, y, 0, 0
	}
	for col := x + 1; col < x+w-1; col++ {
		s.SetContent(col, y, b.h, nil, style)
		s.SetContent(col, y+h-1, b.h, nil, style)
	}
	for row := y + 1; row < y+h-1; row++ {
		s.SetContent(x, row, b.v, nil, style)
		s.SetContent(x+w-1, row, b.v, nil, style)
	}
	s.SetContent(x, y, b.tl, nil, style)
	s.SetContent(x+w-1, y, b.tr, nil, style)
	s.SetContent(x, y+h-1, b.bl, nil, style)
	s.SetContent(x+w-1, y+h-1, b.br, nil, style)
	return x + 1, y + 1, w - 2, h - 2
}

// progressBar renders percent as filled and empty blocks, width cells wide.
func progressBar(percent float64, width int) string {
	percent = min(max(percent, 0), 100)
	filled := min(int(percent/100*float64(width)), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// clock formats d as hh:mm:ss.
func clock(d time.Duration) string {
	secs := int64(max(d, 0) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// truncate cuts str to at most width display cells.
func truncate(str string, width int) string {
	if runewidth.StringWidth(str) <= width {
		return str
	}
	return runewidth.Truncate(str, width, "")
}

// center pads str with spaces to width cells, centring it.
func center(str string, width int) string {
	str = truncate(str, width)
	gap := width - runewidth.StringWidth(str)
	if gap <= 0 {
		return str
	}
	left := gap / 2
	return strings.Repeat(" ", left) + str + strings.Repeat(" ", gap-left)
}

// padRight pads str with spaces to width cells.
func padRight(str string, width int) string {
	return runewidth.FillRight(truncate(str, width), width)
}
