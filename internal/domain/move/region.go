package move

import "math"

// Capsule is a stadium shape relative to the fighter body center.
// Offsets are authored for a right-facing fighter.
type Capsule struct {
	Offset Vec2
	Dims   Vec2 // full width, full height
}

// Mirrored returns the capsule as seen by the given facing
func (c Capsule) Mirrored(f Facing) Capsule {
	return Capsule{Offset: f.Mirror(c.Offset), Dims: c.Dims}
}

// Segment returns the capsule's core segment (body-relative) and radius.
// A square capsule degenerates into a circle (A == B).
func (c Capsule) Segment() (a, b Vec2, radius float64) {
	w, h := c.Dims.X, c.Dims.Y
	switch {
	case w == h:
		return c.Offset, c.Offset, w * 0.5
	case w > h:
		stretch := (w - h) * 0.5
		return Vec2{c.Offset.X - stretch, c.Offset.Y}, Vec2{c.Offset.X + stretch, c.Offset.Y}, h * 0.5
	default:
		stretch := (h - w) * 0.5
		return Vec2{c.Offset.X, c.Offset.Y - stretch}, Vec2{c.Offset.X, c.Offset.Y + stretch}, w * 0.5
	}
}

// Overlaps tests two capsules placed at world positions pa and pb
func (c Capsule) Overlaps(pa Vec2, o Capsule, pb Vec2) bool {
	a1, a2, ra := c.Segment()
	b1, b2, rb := o.Segment()
	d := segmentDistance(a1.Add(pa), a2.Add(pa), b1.Add(pb), b2.Add(pb))
	return d <= ra+rb
}

// Bounds returns the axis-aligned bounds (min, max) of the capsule, body-relative
func (c Capsule) Bounds() (Vec2, Vec2) {
	half := c.Dims.Scale(0.5)
	return c.Offset.Sub(half), c.Offset.Add(half)
}

// HitRegion is the collidable shape set a cast exposes while active.
// The left-facing set is the mirror image of the authored right-facing set.
type HitRegion struct {
	Shapes []Capsule
}

// ShapesFor returns the shape set for one facing
func (r *HitRegion) ShapesFor(f Facing) []Capsule {
	out := make([]Capsule, len(r.Shapes))
	for i, s := range r.Shapes {
		out[i] = s.Mirrored(f)
	}
	return out
}

func segmentDistance(p1, q1, p2, q2 Vec2) float64 {
	const eps = 1e-12
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float64
	switch {
	case a <= eps && e <= eps:
		return r.Len()
	case a <= eps:
		t = clamp01(f / e)
	default:
		c := d1.Dot(r)
		if e <= eps {
			s = clamp01(-c / a)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom > eps {
				s = clamp01((b*f - c*e) / denom)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp01(-c / a)
			} else if t > 1 {
				t = 1
				s = clamp01((b - c) / a)
			}
		}
	}

	c1 := p1.Add(d1.Scale(s))
	c2 := p2.Add(d2.Scale(t))
	return c1.Sub(c2).Len()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
