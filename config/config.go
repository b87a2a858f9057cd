package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robmorgan/lumen/effect"
	"github.com/robmorgan/lumen/profile"
)

// Config represents options that configure the global behavior of the program
type Config struct {
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`

	// LogFile receives log output while the console is running.
	LogFile string `yaml:"log_file"`

	// FPS is the frame rate of the cue engine.
	FPS int `yaml:"fps"`

	// ShowPath is the cue list file loaded at startup and written on save.
	ShowPath string `yaml:"show"`

	// OLAAddress is the OLA daemon's RPC endpoint. Empty disables DMX output.
	OLAAddress string `yaml:"ola_address"`

	// DMXTick is how often universes are pushed to OLA.
	DMXTick time.Duration `yaml:"dmx_tick"`

	// OSCAddress is the UDP address OSC triggers are received on. Empty disables OSC input.
	OSCAddress string `yaml:"osc_address"`

	// MIDIInPort selects the first MIDI input whose name contains it. Empty disables MIDI input.
	MIDIInPort string `yaml:"midi_in_port"`

	// MonitorAddress is the HTTP address serving the websocket state feed. Empty disables the monitor.
	MonitorAddress string `yaml:"monitor_address"`

	// Console runs the interactive operator console.
	Console bool `yaml:"console"`

	// Patch stores all of the patched layers
	Patch []PatchedLayer `yaml:"patch"`

	// Effects are the oscillators behind the effect IDs cues refer to.
	Effects []EffectSlot `yaml:"effects"`
}

// NewConfig creates a new Config object with reasonable defaults for real usage
func NewConfig() Config {
	return Config{
		LogLevel:       "info",
		LogFile:        "lumen.log",
		FPS:            40,
		ShowPath:       "show.yaml",
		OLAAddress:     "localhost:9010",
		DMXTick:        40 * time.Millisecond,
		OSCAddress:     "127.0.0.1:8765",
		MIDIInPort:     "",
		MonitorAddress: ":8080",
		Console:        true,
		Patch:          PatchLayers(),
		Effects:        DefaultEffects(),
	}
}

// Load overlays the YAML file at path onto the defaults. A missing file is not an error when path is empty.
func Load(path string) (Config, error) {
	cfg := NewConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values a console cannot run with.
func (c Config) Validate() error {
	if c.FPS < 1 || c.FPS > 1000 {
		return fmt.Errorf("fps must be between 1 and 1000, got %d", c.FPS)
	}
	if c.DMXTick <= 0 {
		return fmt.Errorf("dmx_tick must be positive, got %s", c.DMXTick)
	}

	slots := make(map[uint32]bool, len(c.Effects))
	for _, e := range c.Effects {
		if slots[e.ID] {
			return fmt.Errorf("effect %d is defined twice", e.ID)
		}
		slots[e.ID] = true
		if _, err := effect.ParseShape(e.Shape); err != nil {
			return fmt.Errorf("effect %d: %w", e.ID, err)
		}
		if e.Beats <= 0 {
			return fmt.Errorf("effect %d: beats must be positive, got %v", e.ID, e.Beats)
		}
	}

	for _, p := range c.Patch {
		prof, err := profile.Lookup(p.Profile)
		if err != nil {
			return fmt.Errorf("patch %s: %w", p.Name, err)
		}
		if p.Universe < 1 {
			return fmt.Errorf("patch %s: universe must be at least 1", p.Name)
		}
		if p.Address < 1 || p.Address+prof.Footprint()-1 > 512 {
			return fmt.Errorf("patch %s: address %d does not fit %d channels in a universe", p.Name, p.Address, prof.Footprint())
		}
		for _, id := range p.Effects {
			if !slots[id] {
				return fmt.Errorf("patch %s: unknown effect %d", p.Name, id)
			}
		}
	}
	return nil
}
