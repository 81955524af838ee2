package strut

import (
	"context"

	"github.com/vito/strut/pkg/text"
)

// Update is one emission from a widget's stream: either a batch of styled
// content or a per-item error. An error does not end the stream — the
// widget may recover and produce valid batches afterwards.
type Update struct {
	Batch text.Batch
	Err   error
}

// Widget is the single capability every information source implements.
//
// Stream consumes the widget, converting it into a channel of updates fed
// by the widget's own goroutine. It must be called at most once per
// instance. The widget paces itself however it likes — ticker, subprocess
// output, file watch — the runtime makes no assumption about cadence.
//
// The returned channel must be closed when the widget has nothing more to
// say (including when ctx is cancelled). A non-nil error from Stream
// itself is a setup failure and aborts the whole bar before it starts.
type Widget interface {
	Stream(ctx context.Context) (<-chan Update, error)
}
