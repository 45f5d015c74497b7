package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dosdefrag/defrag"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 78, cfg.Width)
	assert.Equal(t, 16, cfg.Height)
	assert.Equal(t, 0.65, cfg.Fill)
	assert.Equal(t, 0.02, cfg.Bad)
	assert.Equal(t, defrag.DriveC, cfg.DriveProfile())
	assert.Equal(t, StyleMSDOS, cfg.Style)
	assert.Equal(t, 80*time.Millisecond, cfg.Speed.Interval())
	assert.Equal(t, "78x16", cfg.Size())
	assert.Empty(t, cfg.Warnings())
}

func TestParse_OverridesDefaults(t *testing.T) {
	yamlConfig := `
width: 40
height: 10
fill: 0.5
drive: "f:"
style: Windows98
speed: fast
seed: 1234
demo: true
log:
  file: /tmp/defrag.log
  level: debug
metrics:
  addr: ":9102"
`
	cfg, err := Parse([]byte(yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 10, cfg.Height)
	assert.Equal(t, 0.5, cfg.Fill)
	assert.Equal(t, DefaultBad, cfg.Bad, "unset fields keep their defaults")
	assert.Equal(t, defrag.DriveF, cfg.DriveProfile())
	assert.Equal(t, StyleWin98, cfg.Style)
	assert.Equal(t, 40*time.Millisecond, cfg.Speed.Interval())
	assert.Equal(t, uint64(1234), cfg.Seed)
	assert.True(t, cfg.Demo)
	assert.True(t, cfg.Sound)
	assert.Equal(t, ":9102", cfg.Metrics.Addr)

	ec := cfg.Engine()
	assert.Equal(t, defrag.LayoutParams{Width: 40, Height: 10, Fill: 0.5, BadFraction: DefaultBad}, ec.Layout)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want error
	}{
		{"negative width", "width: -1", ErrInvalidSize},
		{"fill above one", "fill: 1.5", ErrInvalidFraction},
		{"fill plus bad", "fill: 0.9\nbad: 0.2", ErrInvalidFraction},
		{"style", "style: amiga", ErrUnknownStyle},
		{"speed", "speed: ludicrous", ErrUnknownSpeed},
		{"log level", "log:\n  level: chatty", ErrUnknownLogLevel},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.yaml))
			require.ErrorIs(t, err, c.want)
		})
	}

	_, err := Parse([]byte("width: [1, 2"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defrag.yaml")
	require.NoError(t, os.WriteFile(path, []byte("drive: E\nsound: false\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, defrag.DriveE, cfg.DriveProfile())
	assert.False(t, cfg.Sound)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseSize(t *testing.T) {
	w, h, err := ParseSize("78x16")
	require.NoError(t, err)
	assert.Equal(t, 78, w)
	assert.Equal(t, 16, h)

	w, h, err = ParseSize(" 4X4 ")
	require.NoError(t, err)
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)

	for _, bad := range []string{"", "78", "x16", "78x", "0x4", "4x-1", "axb"} {
		_, _, err := ParseSize(bad)
		require.ErrorIs(t, err, ErrInvalidSize, bad)
	}
}

func TestParseStyleAndSpeed(t *testing.T) {
	s, err := ParseStyle("MS-DOS")
	require.NoError(t, err)
	assert.Equal(t, StyleMSDOS, s)
	s, err = ParseStyle("95")
	require.NoError(t, err)
	assert.Equal(t, StyleWin95, s)

	sp, err := ParseSpeed("SLOW")
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, sp.Interval())
	_, err = ParseSpeed("warp")
	require.ErrorIs(t, err, ErrUnknownSpeed)
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)
}

func TestWarnings(t *testing.T) {
	cfg := Default()
	cfg.Width, cfg.Height, cfg.Fill = 2, 2, 0.25
	cfg.Metrics.Addr = ":9102"
	assert.Len(t, cfg.Warnings(), 2)
}

func TestParse_UnknownDriveFallsBack(t *testing.T) {
	for _, drive := range []string{"Z", "CD", "z:"} {
		t.Run(drive, func(t *testing.T) {
			cfg, err := Parse([]byte("drive: \"" + drive + "\""))
			require.NoError(t, err)
			assert.Equal(t, defrag.DriveC, cfg.DriveProfile())
			require.NotEmpty(t, cfg.Warnings())
			assert.Contains(t, cfg.Warnings()[0], "unknown drive")
		})
	}

	cfg, err := Parse([]byte("drive: \"d:\""))
	require.NoError(t, err)
	assert.Equal(t, defrag.DriveD, cfg.DriveProfile())
	for _, w := range cfg.Warnings() {
		assert.NotContains(t, w, "unknown drive")
	}
}
