// Package config holds the run configuration of the defragmenter: disk layout, drive,
// presentation and the ambient logging and metrics settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"dosdefrag/defrag"
)

// Sentinel errors returned by parsing and validation.
var (
	// ErrInvalidSize is returned for a grid size that is not WIDTHxHEIGHT with positive parts.
	ErrInvalidSize = errors.New("invalid grid size")

	// ErrInvalidFraction is returned when fill or bad fractions fall outside [0,1].
	ErrInvalidFraction = errors.New("invalid fraction")

	// ErrUnknownStyle is returned for an unrecognised UI style.
	ErrUnknownStyle = errors.New("unknown style")

	// ErrUnknownSpeed is returned for an unrecognised speed preset.
	ErrUnknownSpeed = errors.New("unknown speed")

	// ErrUnknownLogLevel is returned for a log level slog does not know.
	ErrUnknownLogLevel = errors.New("unknown log level")
)

// Style selects the renderer.
type Style string

// Styles
const (
	StyleMSDOS Style = "msdos"
	StyleWin98 Style = "win98"
	StyleWin95 Style = "win95"
)

// ParseStyle accepts the style names plus a few spellings people actually type.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "msdos", "ms-dos", "dos":
		return StyleMSDOS, nil
	case "win98", "windows98", "98":
		return StyleWin98, nil
	case "win95", "windows95", "95":
		return StyleWin95, nil
	}
	return "", fmt.Errorf("%w %q (want msdos, win98 or win95)", ErrUnknownStyle, s)
}

// Speed is a tick-interval preset.
type Speed string

// Speeds
const (
	SpeedFast   Speed = "fast"
	SpeedNormal Speed = "normal"
	SpeedSlow   Speed = "slow"
)

// Interval returns the outer-loop tick interval for the preset.
func (s Speed) Interval() time.Duration {
	switch s {
	case SpeedFast:
		return 40 * time.Millisecond
	case SpeedSlow:
		return 150 * time.Millisecond
	default:
		return 80 * time.Millisecond
	}
}

// ParseSpeed parses fast, normal or slow.
func ParseSpeed(s string) (Speed, error) {
	switch sp := Speed(strings.ToLower(strings.TrimSpace(s))); sp {
	case SpeedFast, SpeedNormal, SpeedSlow:
		return sp, nil
	}
	return "", fmt.Errorf("%w %q (want fast, normal or slow)", ErrUnknownSpeed, s)
}

// ParseSize parses "78x16" into width and height.
func ParseSize(s string) (width, height int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w %q (want WIDTHxHEIGHT)", ErrInvalidSize, s)
	}
	width, err = strconv.Atoi(ws)
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("%w %q: bad width", ErrInvalidSize, s)
	}
	height, err = strconv.Atoi(hs)
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("%w %q: bad height", ErrInvalidSize, s)
	}
	return width, height, nil
}

// LogConfig configures the structured log file.
type LogConfig struct {
	// File receives text log records. Empty disables logging.
	File string `yaml:"file"`

	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// MetricsConfig configures the Prometheus exporter.
type MetricsConfig struct {
	// Addr is the listen address for /metrics, e.g. ":9102". Empty disables the exporter.
	Addr string `yaml:"addr"`
}

// Config is the full run configuration.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Fill is the fraction of clusters generated as fragmented data.
	Fill float64 `yaml:"fill"`

	// Bad is the fraction of clusters generated as defective.
	Bad float64 `yaml:"bad"`

	// Drive is the drive letter, with or without a trailing colon.
	Drive string `yaml:"drive"`

	Sound bool  `yaml:"sound"`
	Style Style `yaml:"style"`
	Speed Speed `yaml:"speed"`

	// Seed fixes the layout and file selection. 0 picks a seed from the clock.
	Seed uint64 `yaml:"seed"`

	// Demo restarts the run automatically after it completes.
	Demo bool `yaml:"demo"`

	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DriveProfile returns the selected drive, or the default drive for an unknown letter.
func (c Config) DriveProfile() defrag.Drive {
	return defrag.LookupDrive(c.Drive)
}

// Layout returns the layout parameters for the engine.
func (c Config) Layout() defrag.LayoutParams {
	return defrag.LayoutParams{Width: c.Width, Height: c.Height, Fill: c.Fill, BadFraction: c.Bad}
}

// Engine returns the engine configuration.
func (c Config) Engine() defrag.Config {
	return defrag.Config{Layout: c.Layout(), Drive: c.DriveProfile()}
}

// Size formats the grid size as WIDTHxHEIGHT.
func (c Config) Size() string {
	return fmt.Sprintf("%dx%d", c.Width, c.Height)
}
