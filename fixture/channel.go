package fixture

import (
	"math"

	"github.com/robmorgan/lumen/engine/scale"
)

var toDMX = scale.FromUnitClamp(0, 255)

// Channel represents a channel on the fixture
type Channel struct {
	// Type is one of the profile channel types.
	Type string

	// Offset is the one-based position of the channel from the fixture's start address.
	Offset int

	// Lumen stores all fixture values as float64 so the value can be between 0 and 1.
	Value float64
}

func (c *Channel) setValue(value float64) bool {
	if c.Value == value {
		return false
	}
	c.Value = value
	return true
}

// DMX returns the channel value as a DMX level.
func (c *Channel) DMX() byte {
	return byte(math.Round(toDMX(c.Value)))
}
