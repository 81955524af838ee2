package widgets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSensor(t *testing.T, base, device, name, label, milli string) {
	t.Helper()
	dir := filepath.Join(base, device)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+"_label"), []byte(label+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+"_input"), []byte(milli+"\n"), 0o644))
}

func TestSensorsRead(t *testing.T) {
	base := t.TempDir()
	writeSensor(t, base, "hwmon0", "temp1", "Package id 0", "52000")
	writeSensor(t, base, "hwmon0", "temp2", "Core 0", "48500")
	writeSensor(t, base, "hwmon1", "temp1", "Composite", "31000")

	s := NewSensors(attrPlain(), "Package id 0")
	s.basePath = base

	readings, err := s.read()
	require.NoError(t, err)
	assert.Equal(t, 52.0, readings["Package id 0"])
	assert.Equal(t, 48.5, readings["Core 0"])
	assert.Equal(t, 31.0, readings["Composite"])
}

func TestSensorsSampleOrdersByRequestedLabel(t *testing.T) {
	base := t.TempDir()
	writeSensor(t, base, "hwmon0", "temp1", "Core 1", "60000")
	writeSensor(t, base, "hwmon0", "temp2", "Core 0", "40000")

	s := NewSensors(attrPlain(), "Core 0", "Core 1")
	s.basePath = base

	batch, err := s.sample()
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "40°C", batch[0].Content)
	assert.Equal(t, "60°C", batch[1].Content)
}

func TestSensorsUnknownLabelIsSampleError(t *testing.T) {
	base := t.TempDir()
	writeSensor(t, base, "hwmon0", "temp1", "Core 0", "40000")

	s := NewSensors(attrPlain(), "Package id 0")
	s.basePath = base

	_, err := s.sample()
	require.Error(t, err)
}

func TestSensorsMissingTreeIsSetupFailure(t *testing.T) {
	s := NewSensors(attrPlain(), "Core 0")
	s.basePath = filepath.Join(t.TempDir(), "missing")

	_, err := s.Stream(context.Background())
	require.Error(t, err)
}
