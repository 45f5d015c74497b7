package config

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"dosdefrag/defrag"
)

// maxClusters keeps the grid within what a terminal can plausibly show.
const maxClusters = 1 << 20

// Validate checks the configuration and normalizes style and speed spellings.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d must be positive", ErrInvalidSize, c.Width, c.Height)
	}
	if c.Width*c.Height > maxClusters {
		return fmt.Errorf("%w: %dx%d exceeds %d clusters", ErrInvalidSize, c.Width, c.Height, maxClusters)
	}
	if err := checkFraction("fill", c.Fill); err != nil {
		return err
	}
	if err := checkFraction("bad", c.Bad); err != nil {
		return err
	}
	if c.Fill+c.Bad > 1 {
		return fmt.Errorf("%w: fill (%v) + bad (%v) must not exceed 1", ErrInvalidFraction, c.Fill, c.Bad)
	}

	style, err := ParseStyle(string(c.Style))
	if err != nil {
		return err
	}
	c.Style = style

	speed, err := ParseSpeed(string(c.Speed))
	if err != nil {
		return err
	}
	c.Speed = speed

	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Warnings returns advice about valid but unusual settings.
func (c *Config) Warnings() []string {
	var out []string
	if !c.knownDrive() {
		out = append(out, fmt.Sprintf("unknown drive %q; using %c:", c.Drive, defrag.DefaultDrive.Letter))
	}
	if c.Fill < 2.0/float64(max(c.Width*c.Height, 1)) {
		out = append(out, "fill is too low to place both seed operations; progress may not reach 100%")
	}
	if c.Fill > 0.95 {
		out = append(out, "fill above 0.95 leaves almost no free space; most moves will complete in place")
	}
	if c.Metrics.Addr != "" && c.Log.File == "" {
		out = append(out, "metrics exporter enabled without a log file; exporter errors will be silent")
	}
	return out
}

// knownDrive reports whether Drive names a catalogue entry. Anything else resolves to
// the default drive.
func (c *Config) knownDrive() bool {
	r := []rune(strings.TrimSuffix(strings.TrimSpace(c.Drive), ":"))
	if len(r) != 1 {
		return false
	}
	_, ok := defrag.DriveByLetter(r[0])
	return ok
}

// ParseLogLevel maps debug, info, warn and error onto slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w %q", ErrUnknownLogLevel, s)
	}
	return lvl, nil
}

func checkFraction(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s must be within [0,1], got %v", ErrInvalidFraction, name, v)
	}
	return nil
}
