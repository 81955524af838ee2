package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const amixerOut = `Simple mixer control 'Master',0
  Capabilities: pvolume pswitch pswitch-joined
  Playback channels: Front Left - Front Right
  Limits: Playback 0 - 65536
  Mono:
  Front Left: Playback 27853 [42%] [on]
  Front Right: Playback 27853 [42%] [on]
`

func TestParseAmixer(t *testing.T) {
	percent, muted, err := parseAmixer(amixerOut)
	require.NoError(t, err)
	assert.Equal(t, 42, percent)
	assert.False(t, muted)
}

func TestParseAmixerMuted(t *testing.T) {
	out := "  Front Left: Playback 0 [13%] [off]\n"
	percent, muted, err := parseAmixer(out)
	require.NoError(t, err)
	assert.Equal(t, 13, percent)
	assert.True(t, muted)
}

func TestParseAmixerGarbage(t *testing.T) {
	_, _, err := parseAmixer("amixer: Mixer attach default error")
	require.Error(t, err)
}
