package timer

import (
	"context"
	"log/slog"
	"time"
)

// Clock sends count logical ticks on tickCh, numbered from 1, and closes it
// when done or when ctx is cancelled. With a zero interval ticks are sent
// back to back; otherwise one per interval.
func Clock(ctx context.Context, interval time.Duration, count int, tickCh chan<- int) {
	defer close(tickCh)

	var pace <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		pace = ticker.C
	}

	for n := 1; n <= count; n++ {
		if pace != nil {
			select {
			case <-pace:
			case <-ctx.Done():
				return
			}
		}
		select {
		case tickCh <- n:
		case <-ctx.Done():
			return
		}
	}
	slog.Debug("Clock finished", "ticks", count)
}
