package effect

import (
	"fmt"
	"math"
	"strings"

	"github.com/fogleman/ease"
)

// Shape is the waveform of an oscillator.
type Shape int

const (
	Sine Shape = iota
	SawtoothUp
	SawtoothDown
	Square
	Triangle
)

var shapeNames = map[Shape]string{
	Sine:         "sine",
	SawtoothUp:   "sawtooth-up",
	SawtoothDown: "sawtooth-down",
	Square:       "square",
	Triangle:     "triangle",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// ParseShape is the inverse of Shape.String. An empty name is Sine.
func ParseShape(name string) (Shape, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Sine, nil
	}
	for s, n := range shapeNames {
		if n == name {
			return s, nil
		}
	}
	return Sine, fmt.Errorf("unknown effect shape %q", name)
}

// Oscillator is a waveform locked to the beat grid. Beats is the period, so 1 pulses every beat and 4 once a bar.
type Oscillator struct {
	Shape Shape
	Beats float64
}

// NewOscillator returns an oscillator, treating a non-positive period as one beat.
func NewOscillator(shape Shape, beats float64) Oscillator {
	if beats <= 0 || math.IsNaN(beats) || math.IsInf(beats, 0) {
		beats = 1
	}
	return Oscillator{Shape: shape, Beats: beats}
}

// Phase maps a beat position onto [0,1) within the oscillator period.
func (o Oscillator) Phase(beat float64) float64 {
	period := o.Beats
	if period <= 0 {
		period = 1
	}
	p := math.Mod(beat/period, 1)
	if p < 0 {
		p++
	}
	return p
}

// Value is the oscillator output in [0,1] at the given beat position.
func (o Oscillator) Value(beat float64) float64 {
	p := o.Phase(beat)
	switch o.Shape {
	case SawtoothUp:
		return p
	case SawtoothDown:
		return 1 - p
	case Square:
		if p < 0.5 {
			return 1
		}
		return 0
	case Triangle:
		return triangle(p)
	default:
		// peaks on the beat and eases through the trough
		return 1 - ease.InOutSine(triangle(p))
	}
}

func triangle(p float64) float64 {
	if p < 0.5 {
		return 2 * p
	}
	return 2 - 2*p
}

// Modulate scales value by the oscillator output, mixed by amount: 0 leaves value alone, 1 applies the full swing.
func Modulate(value, osc, amount float64) float64 {
	if amount <= 0 {
		return value
	}
	if amount > 1 {
		amount = 1
	}
	return value * (1 - amount + amount*osc)
}
