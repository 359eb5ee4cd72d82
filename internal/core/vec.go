package core

import "math"

// Vec2 is a 2D vector in world units. World space is y-down so it lines up
// with terminal rows; +x is right.
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for constructing a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Det returns the 2D determinant (z of the cross product).
func (v Vec2) Det(o Vec2) float64 {
	return v.X*o.Y - o.X*v.Y
}

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between two points.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Normalize returns the unit vector in v's direction.
// The zero vector normalizes to zero instead of NaN.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Rotate rotates v around the origin by radians.
func (v Vec2) Rotate(radians float64) Vec2 {
	s, c := math.Sincos(radians)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// RotateAround rotates v around pivot by radians.
func (v Vec2) RotateAround(pivot Vec2, radians float64) Vec2 {
	return v.Sub(pivot).Rotate(radians).Add(pivot)
}

// Angle returns the signed angle in degrees from a to b.
func Angle(a, b Vec2) float64 {
	return ToDegrees(math.Atan2(a.Det(b), a.Dot(b)))
}

// LineEnd returns the endpoint of a segment starting at origin with the
// given length, rotated by degrees.
func LineEnd(origin Vec2, length, degrees float64) Vec2 {
	return origin.Add(Vec2{X: length}).RotateAround(origin, ToRadians(degrees))
}

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ToDegrees converts radians to degrees.
func ToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// AlmostEqual reports whether |a-b| <= eps.
func AlmostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// FloatAlpha maps x into [0, 1] relative to [min, max].
func FloatAlpha(x, min, max float64) float64 {
	if max == min {
		if x >= max {
			return 1
		}
		return 0
	}
	return ClampF((x-min)/(max-min), 0, 1)
}
