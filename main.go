// dosdefrag
// Retro disk defragmenter simulator for the terminal.
// Cobra CLI + tcell fullscreen UI styled like MS-DOS 6 DEFRAG or Windows 98.
// One glyph per CLUSTER. Nothing touches a real disk.
//
// Build:
//
//	go build -o dosdefrag .
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dosdefrag/config"
	"dosdefrag/retrodfrg"
)

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

/* ===================== flags and configuration ===================== */

// cliFlags holds the values of the persistent flags shared by every command.
type cliFlags struct {
	configPath  string
	size        string
	fill, bad   float64
	drive       string
	sound       bool
	style       string
	speed       string
	seed        uint64
	demo        bool
	logFile     string
	logLevel    string
	metricsAddr string
}

// loadConfig layers defaults, the optional YAML file and the flags the user actually set.
func loadConfig(cmd *cobra.Command, f *cliFlags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		w, h, err := config.ParseSize(f.size)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Width, cfg.Height = w, h
	}
	if flags.Changed("fill") {
		cfg.Fill = f.fill
	}
	if flags.Changed("bad") {
		cfg.Bad = f.bad
	}
	if flags.Changed("drive") {
		cfg.Drive = f.drive
	}
	if flags.Changed("sound") {
		cfg.Sound = f.sound
	}
	if flags.Changed("style") {
		cfg.Style = config.Style(f.style)
	}
	if flags.Changed("speed") {
		cfg.Speed = config.Speed(f.speed)
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("demo") {
		cfg.Demo = f.demo
	}
	if flags.Changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = f.metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	for _, w := range cfg.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return cfg, nil
}

/* ===================== commands ===================== */

// newRootCmd builds the command tree. Parsed flag values land in f.
func newRootCmd(f *cliFlags) *cobra.Command {
	root := &cobra.Command{
		Use:           "dosdefrag",
		Short:         "Retro disk defragmenter simulator",
		Long:          "Watch a simulated disk being defragmented, MS-DOS 6 or Windows 98 style",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&f.size, "size", fmt.Sprintf("%dx%d", config.DefaultWidth, config.DefaultHeight), "grid size in clusters (WIDTHxHEIGHT)")
	pf.Float64Var(&f.fill, "fill", config.DefaultFill, "fraction of clusters holding fragmented data")
	pf.Float64Var(&f.bad, "bad", config.DefaultBad, "fraction of bad clusters")
	pf.StringVar(&f.drive, "drive", "C", "drive profile: C, D, E or F (see 'drives')")
	pf.BoolVar(&f.sound, "sound", true, "ring the terminal bell for seeks and writes")
	pf.StringVar(&f.style, "style", string(config.StyleMSDOS), "msdos|win98|win95")
	pf.StringVar(&f.speed, "speed", string(config.SpeedNormal), "fast|normal|slow")
	pf.Uint64Var(&f.seed, "seed", 0, "random seed (0 = time based)")
	pf.BoolVar(&f.demo, "demo", false, "restart automatically after each run")
	pf.StringVar(&f.logFile, "log-file", "", "append structured logs to this file")
	pf.StringVar(&f.logLevel, "log-level", "info", "debug|info|warn|error")
	pf.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9102)")

	runE := func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd, f)
		if err != nil {
			return err
		}
		return runInteractive(cmd.Context(), cfg, cmd.OutOrStdout())
	}
	root.RunE = runE

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full-screen defragmenter (default)",
		RunE:  runE,
	}
	root.AddCommand(runCmd)

	var maxTicks int
	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run headless with a virtual clock and print a summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return runHeadless(cmd.Context(), cfg, maxTicks, cmd.OutOrStdout())
		},
	}
	simulateCmd.Flags().IntVar(&maxTicks, "max-ticks", 0, "give up after this many ticks (0 = no limit)")
	root.AddCommand(simulateCmd)

	drivesCmd := &cobra.Command{
		Use:   "drives",
		Short: "List the simulated drive profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printDrives(cmd.OutOrStdout())
		},
	}
	root.AddCommand(drivesCmd)

	return root
}

func main() {
	var f cliFlags
	err := newRootCmd(&f).ExecuteContext(context.Background())
	if errors.Is(err, retrodfrg.ErrInterrupted) {
		fmt.Fprintf(os.Stderr, "\nInterrupted\n")
		os.Exit(130)
	}
	must(err)
}
