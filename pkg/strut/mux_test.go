package strut

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vito/strut/pkg/text"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func plainBatch(s string) text.Batch {
	return text.New(s, text.Attributes{})
}

func TestMuxPerSlotOrder(t *testing.T) {
	m := newStreamMux()
	ch := make(chan Update)
	m.insert(0, ch)
	m.start(context.Background(), discardLogger())

	const n = 50
	go func() {
		for i := range n {
			ch <- Update{Batch: plainBatch(strconv.Itoa(i))}
		}
		close(ch)
	}()

	var got []string
	for p := range m.ready() {
		require.Equal(t, 0, p.slot)
		got = append(got, p.update.Batch[0].Content)
	}
	require.Len(t, got, n)
	for i, s := range got {
		assert.Equal(t, strconv.Itoa(i), s, "item %d out of order", i)
	}
}

func TestMuxMergesAllSlotsPreservingPerSlotOrder(t *testing.T) {
	m := newStreamMux()
	const slots = 3
	const perSlot = 20

	for slot := range slots {
		ch := make(chan Update)
		m.insert(slot, ch)
		go func() {
			for i := range perSlot {
				ch <- Update{Batch: plainBatch(strconv.Itoa(i))}
			}
			close(ch)
		}()
	}
	m.start(context.Background(), discardLogger())

	perSlotSeen := make(map[int][]string)
	for p := range m.ready() {
		perSlotSeen[p.slot] = append(perSlotSeen[p.slot], p.update.Batch[0].Content)
	}

	require.Len(t, perSlotSeen, slots)
	for slot := range slots {
		require.Len(t, perSlotSeen[slot], perSlot, "slot %d item count", slot)
		for i, s := range perSlotSeen[slot] {
			assert.Equal(t, strconv.Itoa(i), s, "slot %d item %d", slot, i)
		}
	}
}

func TestMuxDuplicateSlotPanics(t *testing.T) {
	m := newStreamMux()
	m.insert(0, make(chan Update))
	require.Panics(t, func() {
		m.insert(0, make(chan Update))
	})
}

func TestMuxInsertAfterStartPanics(t *testing.T) {
	m := newStreamMux()
	m.insert(0, make(chan Update))
	m.start(context.Background(), discardLogger())
	require.Panics(t, func() {
		m.insert(1, make(chan Update))
	})
}

func TestMuxRetiresExhaustedStreams(t *testing.T) {
	m := newStreamMux()

	early := make(chan Update)
	late := make(chan Update)
	m.insert(0, early)
	m.insert(1, late)
	require.Equal(t, 2, m.size())

	close(early) // slot 0 ends before ever emitting
	m.start(context.Background(), discardLogger())

	go func() {
		late <- Update{Batch: plainBatch("still here")}
		close(late)
	}()

	var got []pair
	for p := range m.ready() {
		got = append(got, p)
	}
	// Only the live stream's item comes through, and the channel closed
	// once the last stream ended.
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].slot)
	assert.Equal(t, "still here", got[0].update.Batch[0].Content)
}

func TestMuxErrorsPassThrough(t *testing.T) {
	m := newStreamMux()
	ch := make(chan Update)
	m.insert(0, ch)
	m.start(context.Background(), discardLogger())

	go func() {
		ch <- Update{Err: assert.AnError}
		ch <- Update{Batch: plainBatch("recovered")}
		close(ch)
	}()

	p := <-m.ready()
	require.ErrorIs(t, p.update.Err, assert.AnError)

	p = <-m.ready()
	require.NoError(t, p.update.Err)
	assert.Equal(t, "recovered", p.update.Batch[0].Content)
}

func TestMuxCancelUnblocksForwarders(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := newStreamMux()
	ch := make(chan Update)
	m.insert(0, ch)
	m.start(ctx, discardLogger())

	// A producer emits, but nobody ever reads the merged output.
	go func() { ch <- Update{Batch: plainBatch("stuck")} }()

	cancel()

	select {
	case _, ok := <-waitClosed(m.ready()):
		require.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("mux did not shut down after cancellation")
	}
}

// waitClosed drains ch in the background and returns a channel that
// closes when ch does.
func waitClosed(ch <-chan pair) <-chan pair {
	done := make(chan pair)
	go func() {
		for range ch {
		}
		close(done)
	}()
	return done
}
