package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"liftsim/src/types"
)

// InitLogger installs a text handler as the default slog logger. Records go
// to w and, when logFile is set, also to that file, truncated on start.
// The returned func closes the log file.
func InitLogger(w io.Writer, level slog.Level, logFile string) (func() error, error) {
	closeLog := func() error { return nil }
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return closeLog, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(w, file)
		closeLog = file.Close
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		AddSource:   true,
		ReplaceAttr: compactAttr,
	})
	slog.SetDefault(slog.New(handler))
	return closeLog, nil
}

// compactAttr shortens the timestamp to 15:04:05 and the source to file:line.
func compactAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format(time.TimeOnly))
		}
	case slog.SourceKey:
		if source, ok := a.Value.Any().(*slog.Source); ok {
			a.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(source.File), source.Line))
		}
	}
	return a
}

// ParseLevel maps debug, info, warn and error to their slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

// FormatStatus renders one line per tick: "t=3 | L0 5-U-0 | L1 0-I-0".
func FormatStatus(elapsed int, statuses []types.LiftStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "t=%d", elapsed)
	for i, status := range statuses {
		fmt.Fprintf(&b, " | L%d %s", i, status)
	}
	return b.String()
}
