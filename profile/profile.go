package profile

import (
	"fmt"
	"sort"
)

const (
	ChannelTypeIntensity = "channel:type:intensity"
	ChannelTypeStrobe    = "channel:type:strobe"

	ChannelTypeRed   = "channel:type:red"
	ChannelTypeGreen = "channel:type:green"
	ChannelTypeBlue  = "channel:type:blue"
	ChannelTypeWhite = "channel:type:white"

	ChannelTypeUnknown = "channel:type:unknown"
)

// Profile holds the channel layout of a DMX device. Channels maps a channel type to its one-based offset from the
// device's start address.
type Profile struct {
	Name string

	// The fixture channels
	Channels map[string]int
}

// Footprint is the number of DMX channels the device occupies.
func (p Profile) Footprint() int {
	n := 0
	for _, offset := range p.Channels {
		if offset > n {
			n = offset
		}
	}
	return n
}

var builtin = map[string]Profile{
	"dimmer": {
		Name: "Generic dimmer",
		Channels: map[string]int{
			ChannelTypeIntensity: 1,
		},
	},
	"rgb": {
		Name: "Generic RGB",
		Channels: map[string]int{
			ChannelTypeRed:   1,
			ChannelTypeGreen: 2,
			ChannelTypeBlue:  3,
		},
	},
	"shehds-par": {
		Name: "Shehds LED Flat PAR 12x3W RGBW",
		Channels: map[string]int{
			ChannelTypeIntensity: 1,
			ChannelTypeRed:       2,
			ChannelTypeGreen:     3,
			ChannelTypeBlue:      4,
			ChannelTypeWhite:     5,
			ChannelTypeStrobe:    6,
			ChannelTypeUnknown:   8,
		},
	},
}

// Lookup returns a built-in profile by key.
func Lookup(key string) (Profile, error) {
	p, ok := builtin[key]
	if !ok {
		return Profile{}, fmt.Errorf("unknown fixture profile %q", key)
	}
	return p, nil
}

// Keys lists the built-in profiles, sorted.
func Keys() []string {
	keys := make([]string, 0, len(builtin))
	for k := range builtin {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
