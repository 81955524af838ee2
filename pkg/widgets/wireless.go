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

// maxLinkQuality is the denominator the kernel uses for the link quality
// column of /proc/net/wireless.
const maxLinkQuality = 70

// Wireless shows the link quality of one wireless interface as a
// percentage, colored through a Threshold.
type Wireless struct {
	iface     string
	threshold text.Threshold

	procPath string
	interval time.Duration
}

// NewWireless creates a wireless widget for iface (for example "wlan0").
func NewWireless(iface string, threshold text.Threshold) *Wireless {
	return &Wireless{
		iface:     iface,
		threshold: threshold,
		procPath:  "/proc/net/wireless",
		interval:  10 * time.Second,
	}
}

func (w *Wireless) Stream(ctx context.Context) (<-chan strut.Update, error) {
	if _, err := os.Stat(w.procPath); err != nil {
		return nil, fmt.Errorf("wireless: %w", err)
	}
	return poll(ctx, w.interval, w.sample), nil
}

func (w *Wireless) sample() (text.Batch, error) {
	raw, err := os.ReadFile(w.procPath)
	if err != nil {
		return nil, fmt.Errorf("wireless: %w", err)
	}
	quality, up := parseWireless(string(raw), w.iface)
	if !up {
		// Interface not associated: show it rather than erroring — being
		// off wifi is a state, not a failure.
		return text.New(w.iface+" down", w.threshold.CriticalAttr), nil
	}
	return text.New(
		fmt.Sprintf("%s %.0f%%", w.iface, quality),
		w.threshold.Pick(quality),
	), nil
}

// parseWireless extracts the link quality percentage for iface from the
// contents of /proc/net/wireless. The second return is false when the
// interface has no entry (down or not associated).
func parseWireless(contents, iface string) (float64, bool) {
	for _, line := range strings.Split(contents, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 || !strings.HasPrefix(fields[0], iface+":") {
			continue
		}
		// Link quality is printed as a float-ish "54." token.
		link, err := strconv.ParseFloat(strings.TrimSuffix(fields[2], "."), 64)
		if err != nil {
			continue
		}
		return link / maxLinkQuality * 100, true
	}
	return 0, false
}
