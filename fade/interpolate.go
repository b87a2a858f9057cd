package fade

import "golang.org/x/exp/constraints"

// Vec2 is a 2D position.
type Vec2 struct {
	X float32
	Y float32
}

// Interpolate blends from towards to by progress: from + (to-from)*progress.
func Interpolate[T constraints.Float](from, to T, progress float64) T {
	return from + (to-from)*T(progress)
}

// InterpolateVec2 interpolates x and y independently.
func InterpolateVec2(from, to Vec2, progress float64) Vec2 {
	return Vec2{
		X: Interpolate(from.X, to.X, progress),
		Y: Interpolate(from.Y, to.Y, progress),
	}
}
