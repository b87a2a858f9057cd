package main

import (
	"flag"
	"fmt"
	"sort"

	"github.com/nickysemenza/gola"

	"github.com/robmorgan/lumen/config"
	"github.com/robmorgan/lumen/fixture"
	"github.com/robmorgan/lumen/logger"
)

// unidump reads a universe back from OLA and prints the patched channels next to their fixture.
func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	universe := flag.Int("universe", 1, "DMX universe to dump")
	flag.Parse()

	logger := logger.GetProjectLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("could not load config: %v", err)
	}
	fg, err := fixture.NewGroupFromPatch(cfg.Patch, cfg.Effects)
	if err != nil {
		logger.Fatalf("could not patch fixtures: %v", err)
	}

	client, err := gola.New(cfg.OLAAddress)
	if err != nil {
		logger.Fatalf("could not connect to OLA: %v", err)
	}
	defer client.Close()

	x, err := client.GetDmx(*universe)
	if err != nil {
		logger.Fatalf("GetDmx: %d: %v", *universe, err)
	}
	for _, line := range describe(fg, *universe, x.Data) {
		fmt.Println(line)
	}
}

type patchedChannel struct {
	address int
	fixture string
	typ     string
}

// describe labels every patched channel of universe with its fixture and type, in address order.
func describe(fg *fixture.Group, universe int, data []byte) []string {
	var channels []patchedChannel
	for name, f := range fg.Fixtures {
		if f.Universe != universe {
			continue
		}
		for _, c := range f.Channels {
			channels = append(channels, patchedChannel{address: f.Address + c.Offset - 1, fixture: name, typ: c.Type})
		}
	}
	sort.Slice(channels, func(i, j int) bool {
		return channels[i].address < channels[j].address
	})

	lines := make([]string, 0, len(channels))
	for _, c := range channels {
		value := 0
		if c.address-1 < len(data) {
			value = int(data[c.address-1])
		}
		lines = append(lines, fmt.Sprintf("%3d %-16s %-24s %3d", c.address, c.fixture, c.typ, value))
	}
	return lines
}
