package retrodfrg

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", progressBar(0, 10))
	assert.Equal(t, "█████░░░░░", progressBar(50, 10))
	assert.Equal(t, "██████████", progressBar(100, 10))
	assert.Equal(t, "██████████", progressBar(250, 10))
	assert.Equal(t, "░░░░", progressBar(-3, 4))
}

func TestClock(t *testing.T) {
	assert.Equal(t, "00:00:00", clock(0))
	assert.Equal(t, "00:00:00", clock(-time.Second))
	assert.Equal(t, "00:01:05", clock(65*time.Second+900*time.Millisecond))
	assert.Equal(t, "02:03:04", clock(2*time.Hour+3*time.Minute+4*time.Second))
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, " ab  ", center("ab", 5))
	assert.Equal(t, "abc", center("abcdef", 3))
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abc", padRight("abcdef", 3))
}

func TestPutStrClips(t *testing.T) {
	s := newSimScreen(t, 5, 2)
	end := putStr(s, 3, 0, "hello", tcell.StyleDefault)
	assert.Equal(t, 8, end)
	assert.Equal(t, "   he", row(s, 0))

	// off-screen rows are skipped but still advance
	assert.Equal(t, 5, putStr(s, 0, 7, "hello", tcell.StyleDefault))
}

func TestBox(t *testing.T) {
	s := newSimScreen(t, 6, 4)
	ix, iy, iw, ih := box(s, 0, 0, 6, 4, doubleBorder, tcell.StyleDefault)
	assert.Equal(t, []int{1, 1, 4, 2}, []int{ix, iy, iw, ih})
	assert.Equal(t, "╔════╗", row(s, 0))
	assert.Equal(t, "║    ║", row(s, 1))
	assert.Equal(t, "╚════╝", row(s, 3))

	_, _, iw, ih = box(s, 0, 0, 1, 4, singleBorder, tcell.StyleDefault)
	assert.Zero(t, iw)
	assert.Zero(t, ih)
}
