package fade

import (
	"fmt"
	"math"
	"strings"

	"github.com/fogleman/ease"
)

// Curve shapes linear time progress before it is used for interpolation.
type Curve int

const (
	Linear Curve = iota
	EaseIn
	EaseOut
	EaseInOut
	Exponential
)

var curveNames = map[Curve]string{
	Linear:      "linear",
	EaseIn:      "ease-in",
	EaseOut:     "ease-out",
	EaseInOut:   "ease-in-out",
	Exponential: "exponential",
}

// easingFunc maps a curve onto its easing function. InQuad, OutQuad, InOutQuad and InCubic are t², t(2-t),
// the piecewise quadratic and t³ respectively.
func (c Curve) easingFunc() ease.Function {
	switch c {
	case EaseIn:
		return ease.InQuad
	case EaseOut:
		return ease.OutQuad
	case EaseInOut:
		return ease.InOutQuad
	case Exponential:
		return ease.InCubic
	default:
		return ease.Linear
	}
}

// Apply returns the shaped progress for linear progress t. t is clamped to [0,1] and the endpoints are exact.
func (c Curve) Apply(t float64) float64 {
	if math.IsNaN(t) || t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return clamp(c.easingFunc()(t), 0, 1)
}

func (c Curve) String() string {
	if name, ok := curveNames[c]; ok {
		return name
	}
	return fmt.Sprintf("curve(%d)", int(c))
}

// ParseCurve converts a curve name such as "ease-in-out" back into a Curve. An empty name is Linear.
func ParseCurve(name string) (Curve, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Linear, nil
	}
	for c, n := range curveNames {
		if n == name {
			return c, nil
		}
	}
	return Linear, fmt.Errorf("unknown fade curve %q", name)
}

func clamp(t, minVal, maxVal float64) float64 {
	minVal, maxVal = math.Min(minVal, maxVal), math.Max(minVal, maxVal)
	return math.Max(math.Min(t, maxVal), minVal)
}
