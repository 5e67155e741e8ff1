package utils

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"liftsim/src/types"
)

func TestFormatStatus(t *testing.T) {
	got := FormatStatus(3, []types.LiftStatus{
		{Floor: 5, Dir: types.Up},
		{Floor: 0, Dir: types.Idle, Onboard: 2},
	})
	if want := "t=3 | L0 5-U-0 | L1 0-I-2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseLevel(t *testing.T) {
	if level, err := ParseLevel("debug"); err != nil || level != slog.LevelDebug {
		t.Errorf("debug: got (%v, %v)", level, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestInitLogger(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	var buf bytes.Buffer
	if _, err := InitLogger(&buf, slog.LevelInfo, ""); err != nil {
		t.Fatal(err)
	}

	slog.Debug("hidden")
	slog.Info("shown", "lift", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %s", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "source=utils_test.go:") {
		t.Errorf("unexpected output: %s", out)
	}
	if !regexp.MustCompile(`^time=\d\d:\d\d:\d\d `).MatchString(out) {
		t.Errorf("timestamp not compact: %s", out)
	}
}

func TestInitLoggerWritesLogFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	path := filepath.Join(t.TempDir(), "liftsim.log")
	var buf bytes.Buffer
	closeLog, err := InitLogger(&buf, slog.LevelDebug, path)
	if err != nil {
		t.Fatal(err)
	}
	slog.Debug("to both", "lift", 0)
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "msg=\"to both\"") || string(content) != buf.String() {
		t.Errorf("log file %q differs from writer %q", content, buf.String())
	}
}

func TestInitLoggerBadLogFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	path := filepath.Join(t.TempDir(), "missing", "liftsim.log")
	if _, err := InitLogger(&bytes.Buffer{}, slog.LevelInfo, path); err == nil {
		t.Error("expected error for log file in missing directory")
	}
}
