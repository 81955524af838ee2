package strut

import "github.com/vito/strut/pkg/text"

// Position pins the bar to the top or bottom edge of the screen.
type Position int

const (
	Top Position = iota
	Bottom
)

// Offset shifts the bar's origin, for multi-monitor or multi-bar setups.
type Offset struct {
	X int
	Y int
}

// Config is the surface configuration fixed at startup. It never changes
// for the lifetime of a run.
type Config struct {
	Position Position
	Offset   Offset
	// Width caps the bar's width in cells. 0 means the full surface width.
	Width int
}

// SystemEventKind discriminates SystemEvent.
type SystemEventKind int

const (
	// EventExpose asks the surface to repaint its current content.
	EventExpose SystemEventKind = iota
	// EventResize reports that the surface's dimensions changed.
	EventResize
)

func (k SystemEventKind) String() string {
	switch k {
	case EventExpose:
		return "expose"
	case EventResize:
		return "resize"
	default:
		return "unknown"
	}
}

// SystemEvent is a notification from the underlying display connection,
// unrelated to any widget's data.
type SystemEvent struct {
	Kind SystemEventKind
}

// Surface owns the visible content slots and the event handling for the
// underlying display connection. It is mutated only by the run loop's
// goroutine; implementations need no internal locking for the slot array.
type Surface interface {
	// AllocateSlot appends a content slot and returns its index. Called
	// once per widget, in registration order, before the run loop starts.
	AllocateSlot(initial text.Batch) int

	// UpdateContent replaces the content of one slot and repaints.
	UpdateContent(slot int, batch text.Batch) error

	// ProcessEvent handles one system event.
	ProcessEvent(ev SystemEvent) error

	// Events returns the system-event stream bound to the same connection
	// this surface draws on.
	Events() <-chan SystemEvent

	// Close releases the connection.
	Close()
}

// OpenSurfaceFunc opens a surface with the given configuration. Failure
// here is fatal to the whole run: no widget is ever polled.
type OpenSurfaceFunc func(cfg Config) (Surface, error)
