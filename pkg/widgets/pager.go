package widgets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vito/strut/pkg/strut"
	"github.com/vito/strut/pkg/text"
)

// PagerAttributes styles the four states a workspace tag can be in.
type PagerAttributes struct {
	Focused text.Attributes
	Visible text.Attributes
	Busy    text.Attributes
	Empty   text.Attributes
}

// Pager shows LeftWM workspace tags for one output, following the JSON
// state stream of leftwm-state. Each tag becomes one segment, styled by
// whether it is focused, visible, busy, or empty.
type Pager struct {
	output string
	attrs  PagerAttributes

	command string
	args    []string
}

// NewPager creates a pager for the named output (for example "eDP-1").
func NewPager(output string, attrs PagerAttributes) *Pager {
	return &Pager{
		output:  output,
		attrs:   attrs,
		command: "leftwm-state",
		args:    []string{"-n"},
	}
}

func (p *Pager) Stream(ctx context.Context) (<-chan strut.Update, error) {
	return streamLines(ctx, p.renderState, p.command, p.args...)
}

// leftwmState is the subset of the leftwm-state JSON document the pager
// needs.
type leftwmState struct {
	Workspaces []struct {
		Output string `json:"output"`
		Tags   []struct {
			Name    string `json:"name"`
			Mine    bool   `json:"mine"`
			Busy    bool   `json:"busy"`
			Focused bool   `json:"focused"`
			Visible bool   `json:"visible"`
		} `json:"tags"`
	} `json:"workspaces"`
}

// renderState turns one JSON state line into a batch of tag segments.
func (p *Pager) renderState(line string) (text.Batch, error) {
	var state leftwmState
	if err := json.Unmarshal([]byte(line), &state); err != nil {
		return nil, fmt.Errorf("pager: %w", err)
	}

	for _, ws := range state.Workspaces {
		if ws.Output != p.output {
			continue
		}
		var batch text.Batch
		for _, tag := range ws.Tags {
			attr := p.attrs.Empty
			switch {
			case tag.Focused:
				attr = p.attrs.Focused
			case tag.Visible:
				attr = p.attrs.Visible
			case tag.Busy:
				attr = p.attrs.Busy
			}
			batch = append(batch, text.Segment{Content: tag.Name, Attr: attr})
		}
		return batch, nil
	}
	return nil, fmt.Errorf("pager: no workspace for output %q", p.output)
}
