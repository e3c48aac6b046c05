package move

import "math"

// Vec2 is a vector in world units, y pointing up
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * k
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Dot returns the dot product
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the vector length
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns the unit vector, or the zero vector for a zero input
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// IsZero reports whether both components are zero
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Facing is the side a fighter faces, fixed for one attack activation
type Facing int

const (
	FacingLeft Facing = iota
	FacingRight
)

// Sign returns -1 for left, +1 for right
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

// Mirror maps a vector authored for right-facing into this facing
func (f Facing) Mirror(v Vec2) Vec2 {
	return Vec2{v.X * f.Sign(), v.Y}
}

// Opposite returns the other facing
func (f Facing) Opposite() Facing {
	if f == FacingLeft {
		return FacingRight
	}
	return FacingLeft
}

// String returns the string representation of the facing
func (f Facing) String() string {
	switch f {
	case FacingLeft:
		return "Left"
	case FacingRight:
		return "Right"
	default:
		return "Unknown"
	}
}
