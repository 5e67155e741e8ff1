package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"time"

	"liftsim/src/config"
	"liftsim/src/dispatcher"
	"liftsim/src/timer"
	"liftsim/src/types"
	"liftsim/src/utils"

	"github.com/google/uuid"
)

// overrides holds the command-line values that were set explicitly.
type overrides struct {
	Ticks    *int
	Interval *time.Duration
}

func main() {
	configPath := flag.String("config", "", "YAML file with building size and scripted calls")
	envFile := flag.String("env", "", ".env file with LIFTSIM_* overrides")
	ticks := flag.Int("ticks", config.DefaultTicks, "number of ticks to run")
	interval := flag.Duration("interval", 0, "wall-clock time between ticks, 0 runs them back to back")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	logFile := flag.String("log-file", "", "also write log records to this file")
	flag.Parse()

	var flags overrides
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "ticks":
			flags.Ticks = ticks
		case "interval":
			flags.Interval = interval
		}
	})

	level, err := utils.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	closeLog, err := utils.InitLogger(os.Stderr, level, *logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer closeLog()

	if err := run(*configPath, *envFile, flags); err != nil {
		slog.Error("Simulation failed", "err", err)
		closeLog()
		os.Exit(1)
	}
}

func run(configPath, envFile string, flags overrides) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg, err := config.ApplyEnv(cfg, envFile)
	if err != nil {
		return err
	}
	cfg, err = applyOverrides(cfg, flags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return simulate(ctx, os.Stdout, slog.With("run", uuid.NewString()), cfg)
}

// applyOverrides puts explicitly set flags on top of file and environment
// values.
func applyOverrides(cfg config.Config, flags overrides) (config.Config, error) {
	if flags.Ticks != nil {
		cfg.Ticks = *flags.Ticks
	}
	if flags.Interval != nil {
		cfg.TickInterval = *flags.Interval
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

// simulate builds the lift system from cfg, plays the scripted calls and
// writes one status line per tick to w. An interrupted run ends without error.
func simulate(ctx context.Context, w io.Writer, logger *slog.Logger, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Info("Lift system initialized", "floors", cfg.Floors, "lifts", cfg.Lifts, "capacity", cfg.Capacity, "ticks", cfg.Ticks)
	mgr := dispatcher.StartMgr(ctx, dispatcher.New(cfg.Floors, cfg.Lifts, cfg.Capacity))
	tickCh := make(chan int)
	go timer.Clock(ctx, cfg.TickInterval, cfg.Ticks, tickCh)

	step := func(n int) error {
		if n > 0 {
			if err := mgr.Tick(); err != nil {
				return err
			}
		}
		if err := playEvents(logger, mgr, cfg.Events, n); err != nil {
			return err
		}
		return printStatus(ctx, w, logger, mgr)
	}

	err := step(0)
	for n := range tickCh {
		if err != nil {
			break
		}
		err = step(n)
	}
	if err != nil && ctx.Err() != nil {
		logger.Info("Simulation interrupted", "err", err)
		return nil
	}
	return err
}

// playEvents sends the scripted calls due once n ticks have passed. Rejected
// calls are logged and skipped; only a stopped manager aborts the run.
func playEvents(logger *slog.Logger, mgr *dispatcher.Mgr, events []config.Event, n int) error {
	for _, e := range events {
		if e.Tick != n {
			continue
		}
		var err error
		switch e.Kind {
		case config.HallCall:
			var dir types.Direction
			dir, err = types.ParseDirection(e.Dir)
			if err == nil {
				var liftID int
				liftID, err = mgr.RequestLift(e.Floor, dir)
				if err == nil {
					logger.Info("Hall call", "tick", n, "floor", e.Floor, "dir", dir, "lift", liftID)
				}
			}
		case config.CarCall:
			err = mgr.PressFloorButton(e.Lift, e.Floor)
			if err == nil {
				logger.Info("Car call", "tick", n, "lift", e.Lift, "floor", e.Floor)
			}
		}
		if errors.Is(err, types.ErrStopped) {
			return err
		}
		if err != nil {
			logger.Warn("Call rejected", "tick", n, "kind", e.Kind, "floor", e.Floor, "err", err)
		}
	}
	return nil
}

// printStatus writes the status line and, at debug level, each lift's
// pending requests.
func printStatus(ctx context.Context, w io.Writer, logger *slog.Logger, mgr *dispatcher.Mgr) error {
	statuses, elapsed, err := mgr.Statuses()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, utils.FormatStatus(elapsed, statuses)); err != nil {
		return fmt.Errorf("write status: %w", err)
	}

	if !logger.Enabled(ctx, slog.LevelDebug) {
		return nil
	}
	lifts, err := mgr.Snapshot()
	if err != nil {
		return err
	}
	for i, lift := range lifts {
		logger.Debug("Lift requests", "tick", elapsed, "lift", i, "motion", lift.Motion,
			"pickups", slices.Sorted(maps.Keys(lift.Pickups)), "dropoffs", lift.Dropoffs)
	}
	return nil
}
