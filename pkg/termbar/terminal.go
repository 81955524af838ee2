// Package termbar renders a strut bar onto a terminal, pinning a single
// composed line to the top or bottom row of the screen. The terminal's
// resize signal plays the role of the display's event stream.
package termbar

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// Terminal abstracts tty output and resize notification so the bar can be
// tested with a fake.
type Terminal interface {
	// Start begins watching for size changes. onResize fires whenever the
	// terminal dimensions change.
	Start(onResize func()) error

	// Stop releases the watcher.
	Stop()

	// WriteString sends raw output to the terminal.
	WriteString(s string)

	// Columns returns the current terminal width.
	Columns() int

	// Rows returns the current terminal height.
	Rows() int
}

// ProcessTerminal is a Terminal backed by os.Stdout. Dimensions are
// cached and refreshed on SIGWINCH to avoid repeated ioctl syscalls while
// painting.
type ProcessTerminal struct {
	onResize   func()
	sigCh      chan os.Signal
	stopCtx    context.Context
	stopCancel context.CancelFunc

	sizeMu sync.RWMutex
	cols   int
	rows   int
}

func NewProcessTerminal() *ProcessTerminal {
	return &ProcessTerminal{}
}

func (t *ProcessTerminal) Start(onResize func()) error {
	t.onResize = onResize
	t.stopCtx, t.stopCancel = context.WithCancel(context.Background())

	if err := t.refreshSize(); err != nil {
		return err
	}

	t.sigCh = make(chan os.Signal, 1)
	signal.Notify(t.sigCh, syscall.SIGWINCH)
	go func() {
		for {
			select {
			case <-t.sigCh:
				if err := t.refreshSize(); err == nil && t.onResize != nil {
					t.onResize()
				}
			case <-t.stopCtx.Done():
				return
			}
		}
	}()

	return nil
}

func (t *ProcessTerminal) Stop() {
	if t.stopCancel != nil {
		t.stopCancel()
	}
	if t.sigCh != nil {
		signal.Stop(t.sigCh)
	}
}

func (t *ProcessTerminal) WriteString(s string) {
	_, _ = os.Stdout.WriteString(s)
}

func (t *ProcessTerminal) Columns() int {
	t.sizeMu.RLock()
	c := t.cols
	t.sizeMu.RUnlock()
	if c == 0 {
		return 80
	}
	return c
}

func (t *ProcessTerminal) Rows() int {
	t.sizeMu.RLock()
	r := t.rows
	t.sizeMu.RUnlock()
	if r == 0 {
		return 24
	}
	return r
}

// refreshSize queries the kernel for current terminal dimensions and
// caches them. Called once at Start and on every SIGWINCH.
func (t *ProcessTerminal) refreshSize() error {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return err
	}
	t.sizeMu.Lock()
	if ws.Col > 0 {
		t.cols = int(ws.Col)
	}
	if ws.Row > 0 {
		t.rows = int(ws.Row)
	}
	t.sizeMu.Unlock()
	return nil
}
