package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"dosdefrag/config"
	"dosdefrag/defrag"
	"dosdefrag/internal/logging"
	"dosdefrag/internal/metrics"
	"dosdefrag/retrodfrg"
)

// observability bundles the logger, the metrics sink and whatever must be released
// when the command returns.
type observability struct {
	log     defrag.Logger
	metrics defrag.Metrics
	server  *metrics.Server
	logFile io.Closer
}

func setupObservability(ctx context.Context, cfg config.Config) (*observability, error) {
	level, err := config.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.OpenFile(cfg.Log.File, level)
	if err != nil {
		return nil, err
	}
	obs := &observability{log: logger, metrics: defrag.NopMetrics, logFile: closer}

	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		obs.metrics = metrics.NewPrometheus(reg, "")
		obs.server = metrics.NewServer(cfg.Metrics.Addr, reg, logger)
		if err := obs.server.Start(ctx); err != nil {
			_ = closer.Close()
			return nil, err
		}
	}
	return obs, nil
}

// Close stops the metrics server and closes the log file.
func (o *observability) Close() error {
	var errs []error
	if o.server != nil {
		errs = append(errs, o.server.Shutdown())
	}
	errs = append(errs, o.logFile.Close())
	return errors.Join(errs...)
}

// resolveSeed returns the configured seed, or a clock-derived one when it is zero.
func resolveSeed(cfg config.Config) uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return uint64(time.Now().UnixNano())
}

func newEngine(cfg config.Config, seed uint64, obs *observability, opts ...defrag.Option) *defrag.Engine {
	base := []defrag.Option{
		defrag.WithRand(defrag.NewRand(seed)),
		defrag.WithLogger(obs.log),
		defrag.WithMetrics(obs.metrics),
		defrag.WithDemoMode(cfg.Demo),
	}
	return defrag.New(cfg.Engine(), append(base, opts...)...)
}

// runInteractive drives the full-screen UI until the run ends, the user quits or a
// termination signal arrives. Without a terminal it falls back to a headless run.
func runInteractive(ctx context.Context, cfg config.Config, out io.Writer) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal; running headless")
		return runHeadless(ctx, cfg, 0, out)
	}

	renderer := retrodfrg.NewRenderer(cfg.Style)
	ui, err := retrodfrg.NewUI(renderer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal unavailable (%v); running headless\n", err)
		return runHeadless(ctx, cfg, 0, out)
	}
	defer ui.Close()

	obs, err := setupObservability(ctx, cfg)
	if err != nil {
		return err
	}
	defer obs.Close()

	var audio defrag.AudioEngine
	if cfg.Sound {
		audio = retrodfrg.NewBeeper(ui.Screen().Beep)
	}
	seed := resolveSeed(cfg)
	e := newEngine(cfg, seed, obs, defrag.WithAudio(audio))

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, terminationSignals()...)
	defer signal.Stop(sigs)

	l := newLoop(ui, e, retrodfrg.NewState(renderer), cfg.Speed.Interval(), obs.log)
	runErr := l.run(ctx, sigs)
	ui.Close()
	if runErr != nil {
		return runErr
	}
	return printSummary(out, summarize(e, cfg, seed, l.ticks), summaryWidth())
}
