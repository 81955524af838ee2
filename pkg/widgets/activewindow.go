package widgets

import (
	"context"

	"github.com/vito/strut/pkg/strut"
	"github.com/vito/strut/pkg/text"
)

// ActiveWindowTitle shows the focused window's title by following the
// line stream of xtitle -s. When xtitle exits the slot freezes on its
// last title; the bar itself is unaffected.
type ActiveWindowTitle struct {
	attr text.Attributes

	command string
	args    []string
}

// NewActiveWindowTitle creates an active-window-title widget.
func NewActiveWindowTitle(attr text.Attributes) *ActiveWindowTitle {
	return &ActiveWindowTitle{
		attr:    attr,
		command: "xtitle",
		args:    []string{"-s"},
	}
}

func (a *ActiveWindowTitle) Stream(ctx context.Context) (<-chan strut.Update, error) {
	return streamLines(ctx, func(line string) (text.Batch, error) {
		return text.New(line, a.attr), nil
	}, a.command, a.args...)
}
