package widgets

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/vito/strut/pkg/strut"
	"github.com/vito/strut/pkg/text"
)

// DiskInfo is one sample of filesystem usage, in bytes.
type DiskInfo struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// UsedPercent returns used space as a percentage of total.
func (d DiskInfo) UsedPercent() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Used) / float64(d.Total) * 100
}

// DiskUsage polls statfs for the filesystem holding a path.
type DiskUsage struct {
	attr   text.Attributes
	path   string
	render func(DiskInfo) string

	interval time.Duration
	statfs   func(path string, buf *unix.Statfs_t) error
}

// NewDiskUsage creates a disk usage widget for the filesystem mounted at
// path. render, if non-nil, formats a sample; the default shows the used
// percentage.
func NewDiskUsage(attr text.Attributes, path string, render func(DiskInfo) string) *DiskUsage {
	return &DiskUsage{
		attr:     attr,
		path:     path,
		render:   render,
		interval: time.Minute,
		statfs:   unix.Statfs,
	}
}

func (d *DiskUsage) Stream(ctx context.Context) (<-chan strut.Update, error) {
	// Probe once so a bogus path aborts setup instead of erroring on
	// every poll forever.
	if _, err := d.read(); err != nil {
		return nil, err
	}
	return poll(ctx, d.interval, d.sample), nil
}

func (d *DiskUsage) sample() (text.Batch, error) {
	info, err := d.read()
	if err != nil {
		return nil, err
	}
	content := fmt.Sprintf("%.0f%%", info.UsedPercent())
	if d.render != nil {
		content = d.render(info)
	}
	return text.New(content, d.attr), nil
}

func (d *DiskUsage) read() (DiskInfo, error) {
	var fs unix.Statfs_t
	if err := d.statfs(d.path, &fs); err != nil {
		return DiskInfo{}, fmt.Errorf("disk %s: %w", d.path, err)
	}
	total := fs.Blocks * uint64(fs.Bsize)
	free := fs.Bavail * uint64(fs.Bsize)
	return DiskInfo{
		Total: total,
		Used:  total - fs.Bfree*uint64(fs.Bsize),
		Free:  free,
	}, nil
}
