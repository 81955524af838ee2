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

// Sensors shows hwmon temperature readings whose labels match the
// requested set (for example "Package id 0"). Each matching sensor
// contributes one segment.
type Sensors struct {
	attr   text.Attributes
	labels []string

	basePath string
	interval time.Duration
}

// NewSensors creates a sensors widget for the given hwmon labels.
func NewSensors(attr text.Attributes, labels ...string) *Sensors {
	return &Sensors{
		attr:     attr,
		labels:   labels,
		basePath: "/sys/class/hwmon",
		interval: 30 * time.Second,
	}
}

func (s *Sensors) Stream(ctx context.Context) (<-chan strut.Update, error) {
	if _, err := os.Stat(s.basePath); err != nil {
		return nil, fmt.Errorf("sensors: %w", err)
	}
	return poll(ctx, s.interval, s.sample), nil
}

func (s *Sensors) sample() (text.Batch, error) {
	readings, err := s.read()
	if err != nil {
		return nil, err
	}
	var batch text.Batch
	for _, label := range s.labels {
		temp, ok := readings[label]
		if !ok {
			return nil, fmt.Errorf("sensors: no reading for %q", label)
		}
		batch = append(batch, text.Segment{
			Content: fmt.Sprintf("%.0f°C", temp),
			Attr:    s.attr,
		})
	}
	return batch, nil
}

// read scans every hwmon device for labeled temperature inputs and
// returns degrees Celsius keyed by label.
func (s *Sensors) read() (map[string]float64, error) {
	devices, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("sensors: %w", err)
	}

	readings := make(map[string]float64)
	for _, dev := range devices {
		dir := filepath.Join(s.basePath, dev.Name())
		labels, err := filepath.Glob(filepath.Join(dir, "temp*_label"))
		if err != nil {
			continue
		}
		for _, labelPath := range labels {
			labelRaw, err := os.ReadFile(labelPath)
			if err != nil {
				continue
			}
			inputPath := strings.TrimSuffix(labelPath, "_label") + "_input"
			inputRaw, err := os.ReadFile(inputPath)
			if err != nil {
				continue
			}
			milli, err := strconv.ParseFloat(strings.TrimSpace(string(inputRaw)), 64)
			if err != nil {
				continue
			}
			readings[strings.TrimSpace(string(labelRaw))] = milli / 1000
		}
	}
	return readings, nil
}
