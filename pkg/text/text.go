// Package text defines the styled content widgets emit and the bar paints.
//
// A widget produces a Batch — an ordered run of Segments — each time its
// underlying data changes. Segments carry their own Attributes so a widget
// can mix colors within a single emission (an icon in one color, a value in
// another). The runtime never inspects batches; it only moves them from the
// widget that produced them to the slot they belong to.
package text

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Segment is one styled fragment of bar content.
type Segment struct {
	Content string
	Attr    Attributes
}

// Batch is the ordered content a widget emits at one point in time.
type Batch []Segment

// New returns a single-segment batch.
func New(content string, attr Attributes) Batch {
	return Batch{{Content: content, Attr: attr}}
}

// Render paints every segment in order and concatenates the result.
func (b Batch) Render() string {
	var sb strings.Builder
	for _, seg := range b {
		sb.WriteString(seg.Render())
	}
	return sb.String()
}

// Render paints the segment's content with its attributes applied.
func (s Segment) Render() string {
	return s.Attr.apply(s.Content)
}

// Padding is horizontal whitespace, in columns, added around a segment's
// content before any color styling is applied.
type Padding struct {
	Left  int
	Right int
}

// Pad returns symmetric padding.
func Pad(n int) Padding {
	return Padding{Left: n, Right: n}
}

// Attributes describes how a segment is painted. The zero value renders
// content verbatim with the terminal's default colors.
type Attributes struct {
	// Foreground and Background are colors in any form lipgloss accepts
	// (ANSI index or "#rrggbb"). Empty means terminal default.
	Foreground string
	Background string
	Bold       bool
	Padding    Padding
}

// WithForeground returns a copy with the foreground color replaced.
func (a Attributes) WithForeground(c string) Attributes {
	a.Foreground = c
	return a
}

// WithBackground returns a copy with the background color replaced.
func (a Attributes) WithBackground(c string) Attributes {
	a.Background = c
	return a
}

// WithPadding returns a copy with the padding replaced.
func (a Attributes) WithPadding(p Padding) Attributes {
	a.Padding = p
	return a
}

func (a Attributes) apply(s string) string {
	if a.Padding.Left > 0 {
		s = strings.Repeat(" ", a.Padding.Left) + s
	}
	if a.Padding.Right > 0 {
		s += strings.Repeat(" ", a.Padding.Right)
	}
	if a.Foreground == "" && a.Background == "" && !a.Bold {
		return s
	}
	st := lipgloss.NewStyle()
	if a.Foreground != "" {
		st = st.Foreground(lipgloss.Color(a.Foreground))
	}
	if a.Background != "" {
		st = st.Background(lipgloss.Color(a.Background))
	}
	if a.Bold {
		st = st.Bold(true)
	}
	return st.Render(s)
}
