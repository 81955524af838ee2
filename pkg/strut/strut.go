// Package strut implements the status bar runtime: it merges an arbitrary
// set of independently paced widget streams and one display-event stream
// into a single ordered sequence of mutations applied to a bar surface.
//
// The design is deliberately single-consumer. Widgets run their own
// goroutines, but every surface mutation happens on the one goroutine
// inside [Strut.Run], so the surface needs no locking and the process
// wakes only when something actually changed — which matters on battery
// power. Widget failures are isolated: a widget that emits an error (or
// stops emitting entirely) never halts the loop or disturbs any other
// widget's slot.
package strut

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// Strut accumulates configuration and an ordered list of widgets, then
// runs the bar. Configuration methods return modified copies, so a fully
// built value can be shared or extended without aliasing surprises.
//
//	bar := strut.New(strut.Top).WithWidth(1920)
//	bar.AddWidget(widgets.NewClock(attr))
//	err := bar.Run(ctx)
type Strut struct {
	position Position
	offset   Offset
	width    int
	widgets  []Widget
	open     OpenSurfaceFunc
	log      *slog.Logger
}

// New returns a bar pinned to the given screen edge. A surface must be
// supplied with [Strut.WithSurface] before Run.
func New(position Position) Strut {
	return Strut{position: position}
}

// WithWidth returns a copy with the bar's width capped at w cells.
// 0 restores the default (full surface width).
func (s Strut) WithWidth(w int) Strut {
	s.width = w
	return s
}

// WithOffset returns a copy with the bar's origin shifted, for running
// several bars across monitors.
func (s Strut) WithOffset(x, y int) Strut {
	s.offset = Offset{X: x, Y: y}
	return s
}

// WithSurface returns a copy using open to establish the render surface.
func (s Strut) WithSurface(open OpenSurfaceFunc) Strut {
	s.open = open
	return s
}

// WithLogger returns a copy that reports per-update failures to log
// instead of [slog.Default].
func (s Strut) WithLogger(log *slog.Logger) Strut {
	s.log = log
	return s
}

// AddWidget appends a widget to the right of any already added. The
// registration order fixes the widget's slot index and its position on
// the bar for the lifetime of the run.
func (s *Strut) AddWidget(w Widget) {
	s.widgets = slices.Clip(s.widgets)
	s.widgets = append(s.widgets, w)
}

// Run opens the surface, converts every widget into its stream, and
// services the merged event sequence until ctx is cancelled.
//
// Only setup can fail fatally: the surface refusing to open, or a
// widget's Stream returning an error. Once running, widget errors,
// content-update errors, and event-handling errors are logged and
// absorbed — the loop never exits on its own.
func (s Strut) Run(ctx context.Context) error {
	if s.open == nil {
		return errors.New("strut: no surface configured")
	}
	log := s.log
	if log == nil {
		log = slog.Default()
	}

	surface, err := s.open(Config{
		Position: s.position,
		Offset:   s.offset,
		Width:    s.width,
	})
	if err != nil {
		return fmt.Errorf("open surface: %w", err)
	}
	defer surface.Close()

	mux := newStreamMux()
	for _, w := range s.widgets {
		slot := surface.AllocateSlot(nil)
		ch, err := w.Stream(ctx)
		if err != nil {
			return fmt.Errorf("widget %d: %w", slot, err)
		}
		mux.insert(slot, ch)
	}

	events := surface.Events()
	mux.start(ctx, log)
	ready := mux.ready()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if err := surface.ProcessEvent(ev); err != nil {
				log.Error("processing surface event", "event", ev.Kind, "err", err)
			}

		case p, ok := <-ready:
			if !ok {
				// Every widget stream has ended. The bar keeps its last
				// content and keeps answering surface events.
				ready = nil
				continue
			}
			if p.update.Err != nil {
				log.Error("widget update failed", "slot", p.slot, "err", p.update.Err)
				continue
			}
			if err := surface.UpdateContent(p.slot, p.update.Batch); err != nil {
				log.Error("updating slot content", "slot", p.slot, "err", err)
			}
		}
	}
}
