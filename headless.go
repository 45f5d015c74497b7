package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"dosdefrag/config"
	"dosdefrag/defrag"
)

var errTickLimit = errors.New("simulation did not finish")

// virtualClock advances only when told to, so a headless run does not sleep through
// operation delays.
type virtualClock struct {
	t time.Time
}

func (c *virtualClock) Now() time.Time { return c.t }

func (c *virtualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// runSummary is what gets printed after a run.
type runSummary struct {
	RunID     string
	Seed      uint64
	Drive     defrag.Drive
	Size      string
	Ticks     uint64
	Elapsed   time.Duration
	Total     int
	Defragged int
	Counts    map[defrag.ClusterState]int
	Completed bool
}

func summarize(e *defrag.Engine, cfg config.Config, seed uint64, ticks uint64) runSummary {
	st := e.Stats()
	return runSummary{
		RunID:     e.RunID(),
		Seed:      seed,
		Drive:     e.Drive(),
		Size:      cfg.Size(),
		Ticks:     ticks,
		Elapsed:   st.Elapsed(e.Now()),
		Total:     st.TotalToDefrag,
		Defragged: st.ClustersDefragged,
		Counts:    e.Grid().Histogram(),
		Completed: e.Phase() == defrag.Finished,
	}
}

// simulate runs one pass to completion on a virtual clock. Demo mode is ignored so
// the run terminates.
func simulate(cfg config.Config, seed uint64, maxTicks int, obs *observability) (runSummary, error) {
	clock := &virtualClock{t: time.Date(1993, time.March, 1, 9, 0, 0, 0, time.UTC)}
	e := newEngine(cfg, seed, obs, defrag.WithClock(clock), defrag.WithDemoMode(false))
	interval := cfg.Speed.Interval()

	var ticks uint64
	for e.Running() {
		if maxTicks > 0 && ticks >= uint64(maxTicks) {
			return summarize(e, cfg, seed, ticks), fmt.Errorf("%w after %d ticks", errTickLimit, ticks)
		}
		clock.Advance(interval)
		e.Update()
		ticks++
	}
	return summarize(e, cfg, seed, ticks), nil
}

func runHeadless(ctx context.Context, cfg config.Config, maxTicks int, out io.Writer) error {
	obs, err := setupObservability(ctx, cfg)
	if err != nil {
		return err
	}
	defer obs.Close()

	if cfg.Demo {
		obs.log.Warn("demo mode ignored for headless runs")
	}
	seed := resolveSeed(cfg)
	sum, err := simulate(cfg, seed, maxTicks, obs)
	if perr := printSummary(out, sum, summaryWidth()); perr != nil {
		return perr
	}
	return err
}

/* ===================== summary output ===================== */

// summaryWidth caps the summary box at the terminal width, when there is one.
func summaryWidth() int {
	if w, ok := terminalWidth(os.Stdout); ok {
		return w
	}
	return 0
}

var summaryStates = []defrag.ClusterState{
	defrag.Used, defrag.Pending, defrag.Unused, defrag.Bad, defrag.Unmovable,
}

func printSummary(w io.Writer, s runSummary, maxWidth int) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FBBF24"))
	label := r.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Width(12)
	value := r.NewStyle().Foreground(lipgloss.Color("#E2E8F0"))
	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3F3F46")).
		Padding(0, 1)
	if maxWidth > 0 {
		box = box.MaxWidth(maxWidth)
	}

	heading := "Defragmentation complete"
	if !s.Completed {
		heading = "Defragmentation stopped"
	}
	rows := []string{title.Render(heading), ""}
	add := func(k, v string) {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label.Render(k), value.Render(v)))
	}
	add("Drive", s.Drive.String())
	add("Grid", s.Size)
	add("Moved", fmt.Sprintf("%d of %d clusters", s.Defragged, s.Total))
	add("Ticks", fmt.Sprintf("%d", s.Ticks))
	add("Elapsed", s.Elapsed.Round(time.Second).String())

	counts := make([]string, 0, len(summaryStates))
	for _, st := range summaryStates {
		counts = append(counts, fmt.Sprintf("%s %d", st.String(), s.Counts[st]))
	}
	add("Clusters", strings.Join(counts, ", "))
	add("Seed", fmt.Sprintf("%d", s.Seed))
	add("Run", s.RunID)

	_, err := fmt.Fprintln(w, box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	return err
}

func printDrives(w io.Writer) error {
	r := lipgloss.NewRenderer(w)
	head := r.NewStyle().Bold(true).Underline(true)
	cols := []lipgloss.Style{
		r.NewStyle().Width(7),
		r.NewStyle().Width(30),
		r.NewStyle().Width(10).Align(lipgloss.Right),
		r.NewStyle().Width(10).Align(lipgloss.Right),
		r.NewStyle().Width(6).Align(lipgloss.Right),
		r.NewStyle().Width(7).Align(lipgloss.Right),
	}
	line := func(style func(int) lipgloss.Style, cells ...string) string {
		out := make([]string, len(cells))
		for i, c := range cells {
			out[i] = style(i).Render(c)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, out...)
	}

	lines := []string{line(func(i int) lipgloss.Style { return cols[i].Inherit(head) },
		"Drive", "Name", "Capacity", "Clusters", "IOPS", "Rate")}
	for _, d := range defrag.Drives() {
		def := ""
		if d.Letter == defrag.DefaultDrive.Letter {
			def = " *"
		}
		lines = append(lines, line(func(i int) lipgloss.Style { return cols[i] },
			fmt.Sprintf("%c:%s", d.Letter, def),
			d.Name,
			fmt.Sprintf("%d MB", d.CapacityMB),
			fmt.Sprintf("%d", d.ClusterCount),
			fmt.Sprintf("%d", d.IOPS),
			fmt.Sprintf("%.2fx", d.PlaybackRate()),
		))
	}
	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, lines...))
	return err
}
