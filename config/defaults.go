package config

// Default grid and layout values.
const (
	DefaultWidth  = 78
	DefaultHeight = 16
	DefaultFill   = 0.65
	DefaultBad    = 0.02
)

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Fill:   DefaultFill,
		Bad:    DefaultBad,
		Drive:  "C",
		Sound:  true,
		Style:  StyleMSDOS,
		Speed:  SpeedNormal,
		Log:    LogConfig{Level: "info"},
	}
}

// SetDefaults fills zero-valued fields that a YAML file may have cleared.
func SetDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Width == 0 {
		cfg.Width = defaults.Width
	}
	if cfg.Height == 0 {
		cfg.Height = defaults.Height
	}
	if cfg.Drive == "" {
		cfg.Drive = defaults.Drive
	}
	if cfg.Style == "" {
		cfg.Style = defaults.Style
	}
	if cfg.Speed == "" {
		cfg.Speed = defaults.Speed
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}
