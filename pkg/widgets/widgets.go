// Package widgets provides the stock information sources for a strut bar:
// clock, battery, CPU load, disk usage, wireless signal, temperature
// sensors, volume, the active window title, and a workspace pager.
//
// Timer-driven widgets share the poll helper; widgets that follow a
// subprocess share streamLines. Every widget emits an update immediately
// on start so the bar never sits empty waiting for the first tick.
package widgets

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/vito/strut/pkg/strut"
	"github.com/vito/strut/pkg/text"
)

// poll calls sample immediately and then on every tick, sending each
// result (or per-sample error) downstream. The channel closes when ctx
// is cancelled.
func poll(ctx context.Context, interval time.Duration, sample func() (text.Batch, error)) <-chan strut.Update {
	ch := make(chan strut.Update)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		emit := func() bool {
			batch, err := sample()
			select {
			case ch <- strut.Update{Batch: batch, Err: err}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}
		for {
			select {
			case <-ticker.C:
				if !emit() {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// streamLines starts a command and emits one update per stdout line,
// using render to turn the line into a batch. The channel closes when
// the command exits, so a crashed helper process retires its slot rather
// than erroring forever.
func streamLines(ctx context.Context, render func(string) (text.Batch, error), name string, args ...string) (<-chan strut.Update, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe %s: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}

	ch := make(chan strut.Update)
	go func() {
		defer close(ch)
		defer func() { _ = cmd.Wait() }()

		sc := bufio.NewScanner(out)
		for sc.Scan() {
			batch, err := render(sc.Text())
			select {
			case ch <- strut.Update{Batch: batch, Err: err}:
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil && ctx.Err() == nil {
			select {
			case ch <- strut.Update{Err: fmt.Errorf("%s output: %w", name, err)}:
			case <-ctx.Done():
			}
		}
	}()
	return ch, nil
}
