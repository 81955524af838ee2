package widgets

import (
	"context"
	"time"

	"github.com/vito/strut/pkg/strut"
	"github.com/vito/strut/pkg/text"
)

// DefaultClockFormat shows date, weekday, and time to the minute.
const DefaultClockFormat = "02-01-2006 Mon 15:04"

// Clock shows the current time. It wakes exactly once per minute, on the
// minute boundary, instead of ticking on a fixed interval — the display
// only changes when the minute does.
type Clock struct {
	attr   text.Attributes
	format string
}

// NewClock creates a clock using format (a time.Layout string). Empty
// format means DefaultClockFormat.
func NewClock(attr text.Attributes, format string) *Clock {
	if format == "" {
		format = DefaultClockFormat
	}
	return &Clock{attr: attr, format: format}
}

func (c *Clock) Stream(ctx context.Context) (<-chan strut.Update, error) {
	ch := make(chan strut.Update)
	go func() {
		defer close(ch)
		timer := time.NewTimer(0)
		defer timer.Stop()
		for {
			select {
			case <-timer.C:
				now := time.Now()
				select {
				case ch <- strut.Update{Batch: c.render(now)}:
				case <-ctx.Done():
					return
				}
				timer.Reset(nextMinute(now))
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (c *Clock) render(now time.Time) text.Batch {
	return text.New(now.Format(c.format), c.attr)
}

// nextMinute returns how long to sleep from now until the next minute
// boundary.
func nextMinute(now time.Time) time.Duration {
	return now.Truncate(time.Minute).Add(time.Minute).Sub(now)
}
