package widgets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vito/strut/pkg/strut"
	"github.com/vito/strut/pkg/text"
)

// BatteryStatus is the charging state reported by the kernel.
type BatteryStatus int

const (
	BatteryUnknown BatteryStatus = iota
	BatteryCharging
	BatteryDischarging
	BatteryFull
)

func (s BatteryStatus) String() string {
	switch s {
	case BatteryCharging:
		return "charging"
	case BatteryDischarging:
		return "discharging"
	case BatteryFull:
		return "full"
	default:
		return "unknown"
	}
}

// BatteryInfo is one sample of battery state.
type BatteryInfo struct {
	// Capacity is the charge percentage, 0-100.
	Capacity float64
	Status   BatteryStatus
}

// Battery polls a power supply under /sys/class/power_supply. Readings at
// or below the warning level are painted with warnAttr.
type Battery struct {
	attr     text.Attributes
	warnAttr text.Attributes
	device   string
	render   func(BatteryInfo) string

	basePath string        // overridable for tests
	interval time.Duration //
}

// NewBattery creates a battery widget for the named supply (for example
// "BAT0"). render, if non-nil, turns a sample into the displayed string;
// the default shows the rounded percentage.
func NewBattery(attr, warnAttr text.Attributes, device string, render func(BatteryInfo) string) *Battery {
	if device == "" {
		device = "BAT0"
	}
	return &Battery{
		attr:     attr,
		warnAttr: warnAttr,
		device:   device,
		render:   render,
		basePath: "/sys/class/power_supply",
		interval: 10 * time.Second,
	}
}

func (b *Battery) Stream(ctx context.Context) (<-chan strut.Update, error) {
	if _, err := os.Stat(filepath.Join(b.basePath, b.device)); err != nil {
		return nil, fmt.Errorf("battery %s: %w", b.device, err)
	}
	return poll(ctx, b.interval, b.sample), nil
}

func (b *Battery) sample() (text.Batch, error) {
	info, err := b.read()
	if err != nil {
		return nil, err
	}

	content := fmt.Sprintf("%.0f%%", info.Capacity)
	if b.render != nil {
		content = b.render(info)
	}

	attr := b.attr
	if info.Status == BatteryDischarging && info.Capacity <= 10 {
		attr = b.warnAttr
	}
	return text.New(content, attr), nil
}

func (b *Battery) read() (BatteryInfo, error) {
	dir := filepath.Join(b.basePath, b.device)

	capRaw, err := os.ReadFile(filepath.Join(dir, "capacity"))
	if err != nil {
		return BatteryInfo{}, fmt.Errorf("battery %s: %w", b.device, err)
	}
	capacity, err := strconv.ParseFloat(strings.TrimSpace(string(capRaw)), 64)
	if err != nil {
		return BatteryInfo{}, fmt.Errorf("battery %s capacity: %w", b.device, err)
	}

	statusRaw, err := os.ReadFile(filepath.Join(dir, "status"))
	if err != nil {
		return BatteryInfo{}, fmt.Errorf("battery %s: %w", b.device, err)
	}

	return BatteryInfo{
		Capacity: capacity,
		Status:   parseBatteryStatus(strings.TrimSpace(string(statusRaw))),
	}, nil
}

func parseBatteryStatus(s string) BatteryStatus {
	switch s {
	case "Charging":
		return BatteryCharging
	case "Discharging":
		return BatteryDischarging
	case "Full":
		return BatteryFull
	default:
		return BatteryUnknown
	}
}
