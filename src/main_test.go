package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"liftsim/src/config"
	"liftsim/src/dispatcher"
	"liftsim/src/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSimulateScriptedRun(t *testing.T) {
	cfg, err := config.Load("../liftsim.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := simulate(context.Background(), &out, discardLogger(), cfg); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != cfg.Ticks+1 {
		t.Fatalf("got %d status lines, want %d:\n%s", len(lines), cfg.Ticks+1, out.String())
	}
	want := map[int]string{
		0:  "t=0 | L0 0-U-0 | L1 0-U-0",
		3:  "t=3 | L0 3-U-0 | L1 3-D-0",
		4:  "t=4 | L0 4-U-0 | L1 3-I-0",
		5:  "t=5 | L0 5-U-1 | L1 3-I-0",
		6:  "t=6 | L0 5-D-1 | L1 3-I-0",
		9:  "t=9 | L0 2-D-1 | L1 3-I-0",
		10: "t=10 | L0 1-I-0 | L1 3-I-0",
		12: "t=12 | L0 1-I-0 | L1 3-I-0",
	}
	for n, line := range want {
		if lines[n] != line {
			t.Errorf("line %d = %q, want %q", n, lines[n], line)
		}
	}
}

func TestSimulateDebugDumpsRequests(t *testing.T) {
	cfg := config.Default()
	cfg.Ticks = 1
	var out, logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if err := simulate(context.Background(), &out, logger, cfg); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs.String(), "msg=\"Lift requests\" tick=0 lift=0 motion=MovingUp pickups=[5]") {
		t.Errorf("missing request dump for lift 0:\n%s", logs.String())
	}
}

func TestSimulateInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := config.Default()
	cfg.TickInterval = time.Hour
	if err := simulate(ctx, io.Discard, discardLogger(), cfg); err != nil {
		t.Errorf("interrupted run returned %v", err)
	}
}

func TestPlayEventsSkipsRejectedCalls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mgr := dispatcher.StartMgr(ctx, dispatcher.New(6, 1, 10))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	events := []config.Event{
		{Tick: 0, Kind: config.HallCall, Floor: 9, Dir: "U"},
		{Tick: 0, Kind: config.CarCall, Lift: 5, Floor: 1},
		{Tick: 0, Kind: config.HallCall, Floor: 2, Dir: "U"},
		{Tick: 1, Kind: config.CarCall, Lift: 0, Floor: 4},
	}
	if err := playEvents(logger, mgr, events, 0); err != nil {
		t.Fatal(err)
	}

	if got := strings.Count(logs.String(), "Call rejected"); got != 2 {
		t.Errorf("logged %d rejected calls, want 2:\n%s", got, logs.String())
	}
	status, err := mgr.LiftState(0)
	if err != nil {
		t.Fatal(err)
	}
	if status != (types.LiftStatus{Floor: 0, Dir: types.Up}) {
		t.Errorf("lift 0 = %s, want 0-U-0", status)
	}
}

func TestPlayEventsStopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mgr := dispatcher.StartMgr(ctx, dispatcher.New(6, 1, 10))
	cancel()
	<-mgr.Done()

	events := []config.Event{{Tick: 0, Kind: config.HallCall, Floor: 2, Dir: "D"}}
	if err := playEvents(discardLogger(), mgr, events, 0); !errors.Is(err, types.ErrStopped) {
		t.Errorf("err = %v, want ErrStopped", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	ticks := 3
	interval := 50 * time.Millisecond
	cfg, err := applyOverrides(config.Default(), overrides{Ticks: &ticks, Interval: &interval})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ticks != 3 || cfg.TickInterval != interval {
		t.Errorf("got ticks %d interval %s", cfg.Ticks, cfg.TickInterval)
	}

	unset, err := applyOverrides(config.Default(), overrides{})
	if err != nil {
		t.Fatal(err)
	}
	if unset.Ticks != config.DefaultTicks {
		t.Errorf("unset flag changed ticks to %d", unset.Ticks)
	}

	bad := -1
	if _, err := applyOverrides(config.Default(), overrides{Ticks: &bad}); err == nil {
		t.Error("negative ticks accepted")
	}
}
