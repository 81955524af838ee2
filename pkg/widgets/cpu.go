package widgets

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vito/strut/pkg/strut"
	"github.com/vito/strut/pkg/text"
)

// CPU shows aggregate CPU load as the busy percentage between two
// consecutive /proc/stat samples.
type CPU struct {
	attr   text.Attributes
	render func(load float64) string

	statPath string
	interval time.Duration
	prev     cpuTimes
}

// NewCPU creates a CPU load widget. render, if non-nil, formats the load
// percentage; the default shows the rounded value.
func NewCPU(attr text.Attributes, render func(float64) string) *CPU {
	return &CPU{
		attr:     attr,
		render:   render,
		statPath: "/proc/stat",
		interval: 5 * time.Second,
	}
}

func (c *CPU) Stream(ctx context.Context) (<-chan strut.Update, error) {
	// Take the baseline sample up front so a missing or malformed
	// /proc/stat is a setup failure, and the first emission already has a
	// delta to report.
	first, err := c.readTimes()
	if err != nil {
		return nil, err
	}
	c.prev = first
	return poll(ctx, c.interval, c.sample), nil
}

func (c *CPU) sample() (text.Batch, error) {
	cur, err := c.readTimes()
	if err != nil {
		return nil, err
	}
	load := cpuLoad(c.prev, cur)
	c.prev = cur

	content := fmt.Sprintf("%.0f%%", load)
	if c.render != nil {
		content = c.render(load)
	}
	return text.New(content, c.attr), nil
}

func (c *CPU) readTimes() (cpuTimes, error) {
	raw, err := os.ReadFile(c.statPath)
	if err != nil {
		return cpuTimes{}, fmt.Errorf("cpu: %w", err)
	}
	return parseCPUTimes(string(raw))
}

// cpuTimes holds the aggregate jiffy counters from the "cpu" line.
type cpuTimes struct {
	busy float64
	idle float64
}

// parseCPUTimes extracts the aggregate "cpu " line. Fields are user,
// nice, system, idle, iowait, irq, softirq, steal; idle and iowait count
// as idle time, everything else as busy.
func parseCPUTimes(stat string) (cpuTimes, error) {
	for _, line := range strings.Split(stat, "\n") {
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}
		fields := strings.Fields(line)[1:]
		if len(fields) < 5 {
			return cpuTimes{}, fmt.Errorf("cpu: malformed stat line %q", line)
		}
		var t cpuTimes
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return cpuTimes{}, fmt.Errorf("cpu: field %d of %q: %w", i, line, err)
			}
			if i == 3 || i == 4 { // idle, iowait
				t.idle += v
			} else {
				t.busy += v
			}
		}
		return t, nil
	}
	return cpuTimes{}, fmt.Errorf("cpu: no aggregate line in stat")
}

// cpuLoad returns the busy percentage across the interval between two
// samples, 0 when the counters did not advance.
func cpuLoad(prev, cur cpuTimes) float64 {
	busy := cur.busy - prev.busy
	total := busy + (cur.idle - prev.idle)
	if total <= 0 {
		return 0
	}
	return busy / total * 100
}
