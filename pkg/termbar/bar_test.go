package termbar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	"github.com/vito/strut/pkg/strut"
	"github.com/vito/strut/pkg/text"
)

// fakeTerminal records writes and simulates a fixed-size terminal.
type fakeTerminal struct {
	cols, rows int
	written    strings.Builder
	onResize   func()
	stopped    bool
}

func newFakeTerminal(cols, rows int) *fakeTerminal {
	return &fakeTerminal{cols: cols, rows: rows}
}

func (f *fakeTerminal) Start(onResize func()) error {
	f.onResize = onResize
	return nil
}
func (f *fakeTerminal) Stop()                { f.stopped = true }
func (f *fakeTerminal) WriteString(s string) { f.written.WriteString(s) }
func (f *fakeTerminal) Columns() int         { return f.cols }
func (f *fakeTerminal) Rows() int            { return f.rows }

func (f *fakeTerminal) reset() { f.written.Reset() }

func plain(s string) text.Batch {
	return text.New(s, text.Attributes{})
}

func TestBarPaintsTopRow(t *testing.T) {
	term := newFakeTerminal(20, 5)
	bar, err := NewBar(term, strut.Config{Position: strut.Top})
	require.NoError(t, err)

	require.Equal(t, 0, bar.AllocateSlot(nil))
	require.Equal(t, 1, bar.AllocateSlot(nil))

	require.NoError(t, bar.UpdateContent(0, plain("cpu 42%")))
	term.reset()
	require.NoError(t, bar.UpdateContent(1, plain("12:34")))

	golden.Assert(t, term.written.String(), "paint_top.golden")
}

func TestBarPaintsBottomRow(t *testing.T) {
	term := newFakeTerminal(20, 5)
	bar, err := NewBar(term, strut.Config{Position: strut.Bottom})
	require.NoError(t, err)

	bar.AllocateSlot(nil)
	require.NoError(t, bar.UpdateContent(0, plain("hi")))

	assert.Contains(t, term.written.String(), "\x1b[5;1H", "bottom bar paints the last row")
}

func TestBarOffsetAndWidth(t *testing.T) {
	term := newFakeTerminal(40, 10)
	bar, err := NewBar(term, strut.Config{
		Position: strut.Top,
		Offset:   strut.Offset{X: 4, Y: 1},
		Width:    10,
	})
	require.NoError(t, err)

	bar.AllocateSlot(nil)
	require.NoError(t, bar.UpdateContent(0, plain("abc")))

	out := term.written.String()
	assert.Contains(t, out, "\x1b[2;5H", "offset shifts the paint origin")
	assert.Contains(t, out, "abc"+strings.Repeat(" ", 7), "line is padded to the configured width")
	assert.NotContains(t, out, strings.Repeat(" ", 8), "padding stops at the width cap")
}

func TestBarTruncatesToWidth(t *testing.T) {
	term := newFakeTerminal(8, 5)
	bar, err := NewBar(term, strut.Config{Position: strut.Top})
	require.NoError(t, err)

	bar.AllocateSlot(nil)
	require.NoError(t, bar.UpdateContent(0, plain("much too long for this bar")))

	assert.Contains(t, term.written.String(), "much too")
	assert.NotContains(t, term.written.String(), "much too ")
}

func TestBarIdempotentOverwrite(t *testing.T) {
	term := newFakeTerminal(20, 5)
	bar, err := NewBar(term, strut.Config{Position: strut.Top})
	require.NoError(t, err)

	bar.AllocateSlot(nil)
	require.NoError(t, bar.UpdateContent(0, plain("same")))
	first := term.written.String()

	term.reset()
	require.NoError(t, bar.UpdateContent(0, plain("same")))
	assert.Empty(t, term.written.String(), "replaying identical content writes nothing")

	term.reset()
	require.NoError(t, bar.UpdateContent(0, plain("changed")))
	assert.NotEmpty(t, term.written.String())
	assert.NotEqual(t, first, term.written.String())
}

func TestBarResizeRepaints(t *testing.T) {
	term := newFakeTerminal(20, 5)
	bar, err := NewBar(term, strut.Config{Position: strut.Top})
	require.NoError(t, err)

	bar.AllocateSlot(nil)
	require.NoError(t, bar.UpdateContent(0, plain("content")))

	// Same content, no resize: expose is a no-op.
	term.reset()
	require.NoError(t, bar.ProcessEvent(strut.SystemEvent{Kind: strut.EventExpose}))
	assert.Empty(t, term.written.String())

	// After a resize the line must be repainted even though the content
	// didn't change.
	term.cols = 30
	term.reset()
	require.NoError(t, bar.ProcessEvent(strut.SystemEvent{Kind: strut.EventResize}))
	assert.Contains(t, term.written.String(), "content")
}

func TestBarQueuesInitialExpose(t *testing.T) {
	term := newFakeTerminal(20, 5)
	bar, err := NewBar(term, strut.Config{Position: strut.Top})
	require.NoError(t, err)

	select {
	case ev := <-bar.Events():
		assert.Equal(t, strut.EventExpose, ev.Kind)
	default:
		t.Fatal("no initial expose event queued")
	}
}

func TestBarCoalescesResizes(t *testing.T) {
	term := newFakeTerminal(20, 5)
	bar, err := NewBar(term, strut.Config{Position: strut.Top})
	require.NoError(t, err)

	<-bar.Events() // drain the initial expose

	term.onResize()
	term.onResize()
	term.onResize()

	ev := <-bar.Events()
	assert.Equal(t, strut.EventResize, ev.Kind)
	select {
	case <-bar.Events():
		t.Fatal("rapid resizes should coalesce into one pending event")
	default:
	}
}

func TestBarRejectsUnknownSlot(t *testing.T) {
	term := newFakeTerminal(20, 5)
	bar, err := NewBar(term, strut.Config{Position: strut.Top})
	require.NoError(t, err)

	require.Error(t, bar.UpdateContent(0, plain("nope")))
}

func TestBarCloseStopsTerminal(t *testing.T) {
	term := newFakeTerminal(20, 5)
	bar, err := NewBar(term, strut.Config{Position: strut.Top})
	require.NoError(t, err)

	bar.Close()
	assert.True(t, term.stopped)
}
