package strut

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// pair is one ready item from the multiplexer: which slot produced it and
// what it produced.
type pair struct {
	slot   int
	update Update
}

// streamMux merges independently paced widget streams into a single
// channel of (slot, update) pairs.
//
// One forwarder goroutine relays each stream, so two items from the same
// slot always come out in the order the slot produced them. Ordering
// across different slots is a readiness race on purpose: relative order
// between widgets carries no meaning, only freshness does. The output
// channel is unbuffered, so at most one item per slot is in flight and a
// slow consumer backpressures every producer.
type streamMux struct {
	streams map[int]<-chan Update
	out     chan pair
	started bool
}

func newStreamMux() *streamMux {
	return &streamMux{
		streams: make(map[int]<-chan Update),
		out:     make(chan pair),
	}
}

// insert registers a stream under a slot. Registration-time only; the
// slot must not already be present.
func (m *streamMux) insert(slot int, ch <-chan Update) {
	if m.started {
		panic("strut: insert after mux start")
	}
	if _, dup := m.streams[slot]; dup {
		panic(fmt.Sprintf("strut: slot %d already has a stream", slot))
	}
	m.streams[slot] = ch
}

func (m *streamMux) size() int { return len(m.streams) }

// start launches the forwarders. The output channel closes only once
// every constituent stream has ended. A stream that ends early is dropped
// from the active set without ceremony; its slot's last content stays
// frozen on the surface.
func (m *streamMux) start(ctx context.Context, log *slog.Logger) {
	m.started = true
	eg := new(errgroup.Group)
	for slot, ch := range m.streams {
		eg.Go(func() error {
			for u := range ch {
				select {
				case m.out <- pair{slot: slot, update: u}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			log.Debug("widget stream ended, slot retired", "slot", slot)
			return nil
		})
	}
	go func() {
		_ = eg.Wait()
		close(m.out)
	}()
}

// ready returns the merged output channel. Receiving blocks until some
// constituent has an item; the channel closes when all have ended.
func (m *streamMux) ready() <-chan pair { return m.out }
