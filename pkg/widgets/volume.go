package widgets

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"github.com/vito/strut/pkg/strut"
	"github.com/vito/strut/pkg/text"
)

// amixerValue matches the "[42%]" and "[on]"/"[off]" tokens in amixer's
// simple-control output.
var amixerValue = regexp.MustCompile(`\[(\d+)%\].*\[(on|off)\]`)

// Volume polls the ALSA master channel through amixer.
type Volume struct {
	attr text.Attributes

	command  string
	interval time.Duration
}

// NewVolume creates a volume widget.
func NewVolume(attr text.Attributes) *Volume {
	return &Volume{
		attr:     attr,
		command:  "amixer",
		interval: 5 * time.Second,
	}
}

func (v *Volume) Stream(ctx context.Context) (<-chan strut.Update, error) {
	if _, err := exec.LookPath(v.command); err != nil {
		return nil, fmt.Errorf("volume: %w", err)
	}
	sample := func() (text.Batch, error) {
		out, err := exec.CommandContext(ctx, v.command, "get", "Master").Output()
		if err != nil {
			return nil, fmt.Errorf("volume: %w", err)
		}
		percent, muted, err := parseAmixer(string(out))
		if err != nil {
			return nil, err
		}
		if muted {
			return text.New("muted", v.attr), nil
		}
		return text.New(fmt.Sprintf("%d%%", percent), v.attr), nil
	}
	return poll(ctx, v.interval, sample), nil
}

// parseAmixer extracts the volume percentage and mute flag from amixer
// simple-control output.
func parseAmixer(out string) (percent int, muted bool, err error) {
	m := amixerValue.FindStringSubmatch(out)
	if m == nil {
		return 0, false, fmt.Errorf("volume: unrecognized amixer output")
	}
	percent, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, false, fmt.Errorf("volume: %w", err)
	}
	return percent, m[2] == "off", nil
}
