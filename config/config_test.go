package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	assert.Equal(t, 40, cfg.FPS)
	assert.Equal(t, "localhost:9010", cfg.OLAAddress)
	assert.Equal(t, "127.0.0.1:8765", cfg.OSCAddress)
	assert.Equal(t, ":8080", cfg.MonitorAddress)
	assert.NotEmpty(t, cfg.Patch)
	assert.Len(t, cfg.Effects, 2)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverlaysFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lumen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
fps: 60
log_level: debug
dmx_tick: 25ms
osc_address: ""
patch:
  - name: spot
    layer: 3
    universe: 2
    address: 100
    profile: dimmer
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 25*time.Millisecond, cfg.DMXTick)
	assert.Empty(t, cfg.OSCAddress)
	// untouched keys keep their defaults
	assert.Equal(t, "localhost:9010", cfg.OLAAddress)
	require.Len(t, cfg.Patch, 1)
	assert.Equal(t, uint32(3), cfg.Patch[0].Layer)
	assert.Nil(t, cfg.Patch[0].Paint)
}

func TestLoadEmptyPath(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cases := map[string]string{
		"fps":     "fps: 0\n",
		"profile": "patch:\n  - {name: x, layer: 0, universe: 1, address: 1, profile: laser}\n",
		"address": "patch:\n  - {name: x, layer: 0, universe: 1, address: 510, profile: shehds-par}\n",
		"yaml":    "fps: [\n",
		"shape":   "effects:\n  - {id: 0, shape: wobble, beats: 1}\n",
		"beats":   "effects:\n  - {id: 0, shape: sine, beats: 0}\n",
		"twice":   "effects:\n  - {id: 0, shape: sine, beats: 1}\n  - {id: 0, shape: square, beats: 2}\n",
		"unbound": "effects: []\npatch:\n  - {name: x, layer: 0, universe: 1, address: 1, profile: dimmer, effects: [4]}\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := Load(path)
		assert.Error(t, err, name)
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
