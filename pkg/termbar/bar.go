package termbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/vito/strut/pkg/strut"
	"github.com/vito/strut/pkg/text"
)

// Bar is a strut.Surface that paints the slot contents as one line,
// addressed with ANSI cursor positioning so the rest of the terminal is
// left alone. Painting is skipped when the composed line is identical to
// the last one written, so overwriting a slot with equal content is a
// no-op on the wire.
type Bar struct {
	term   Terminal
	cfg    strut.Config
	slots  []text.Batch
	events chan strut.SystemEvent

	lastPainted string
}

// Open establishes a bar on the process's terminal. This is the
// OpenSurfaceFunc to hand to strut.
func Open(cfg strut.Config) (strut.Surface, error) {
	return NewBar(NewProcessTerminal(), cfg)
}

// NewBar establishes a bar on an arbitrary terminal. An initial expose
// event is queued so the first paint happens once the run loop starts.
func NewBar(term Terminal, cfg strut.Config) (*Bar, error) {
	b := &Bar{
		term:   term,
		cfg:    cfg,
		events: make(chan strut.SystemEvent, 1),
	}
	if err := term.Start(b.notifyResize); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}
	b.events <- strut.SystemEvent{Kind: strut.EventExpose}
	return b, nil
}

// notifyResize queues a resize event. Non-blocking send: rapid resizes
// coalesce into one pending event, which is all a repaint needs.
func (b *Bar) notifyResize() {
	select {
	case b.events <- strut.SystemEvent{Kind: strut.EventResize}:
	default:
	}
}

func (b *Bar) AllocateSlot(initial text.Batch) int {
	b.slots = append(b.slots, initial)
	return len(b.slots) - 1
}

func (b *Bar) UpdateContent(slot int, batch text.Batch) error {
	if slot < 0 || slot >= len(b.slots) {
		return fmt.Errorf("termbar: no slot %d", slot)
	}
	b.slots[slot] = batch
	return b.paint()
}

func (b *Bar) ProcessEvent(ev strut.SystemEvent) error {
	switch ev.Kind {
	case strut.EventResize:
		// Dimensions changed; the previous paint is stale even if the
		// composed content happens to match.
		b.lastPainted = ""
		return b.paint()
	case strut.EventExpose:
		return b.paint()
	default:
		return fmt.Errorf("termbar: unknown event kind %d", ev.Kind)
	}
}

func (b *Bar) Events() <-chan strut.SystemEvent {
	return b.events
}

func (b *Bar) Close() {
	b.term.Stop()
}

// width returns the cell budget for the bar line after offset and the
// configured cap are applied.
func (b *Bar) width() int {
	w := b.term.Columns() - b.cfg.Offset.X
	if b.cfg.Width > 0 && b.cfg.Width < w {
		w = b.cfg.Width
	}
	if w < 0 {
		w = 0
	}
	return w
}

// row returns the 1-based terminal row the bar occupies.
func (b *Bar) row() int {
	if b.cfg.Position == strut.Bottom {
		r := b.term.Rows() - b.cfg.Offset.Y
		if r < 1 {
			r = 1
		}
		return r
	}
	r := 1 + b.cfg.Offset.Y
	if r > b.term.Rows() {
		r = b.term.Rows()
	}
	return r
}

func (b *Bar) paint() error {
	line := b.compose(b.width())
	if line == b.lastPainted {
		return nil
	}

	var buf strings.Builder
	buf.WriteString("\x1b7") // save cursor
	fmt.Fprintf(&buf, "\x1b[%d;%dH", b.row(), b.cfg.Offset.X+1)
	buf.WriteString(line)
	buf.WriteString("\x1b8") // restore cursor
	b.term.WriteString(buf.String())

	b.lastPainted = line
	return nil
}

// compose renders every slot left to right, truncated or space-padded to
// exactly width cells. Padding (rather than erase-line) keeps the paint
// confined to the bar's own span, so offset bars coexist on one screen.
func (b *Bar) compose(width int) string {
	var sb strings.Builder
	for _, batch := range b.slots {
		sb.WriteString(batch.Render())
	}
	line := sb.String()

	if w := ansi.StringWidth(line); w > width {
		line = ansi.Truncate(line, width, "")
	} else if w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}
