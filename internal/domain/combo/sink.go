package combo

import "github.com/younwookim/brawl/internal/domain/move"

// BodyID identifies a physics body in the collision space
type BodyID uint64

// Sink receives the side effects of stepping and resolving attacks.
// It is implemented by the collision space; the resolver never touches
// shapes or bodies directly.
type Sink interface {
	CreateRegion(id RegionID)
	DestroyRegion(id RegionID)
	ApplyImpulse(body BodyID, impulse move.Vec2)
	SetVelocity(body BodyID, velocity move.Vec2)
	SuspendGravity(body BodyID, suspended bool)
}

// Target is the struck fighter as seen by hit resolution
type Target interface {
	Body() BodyID
	// Latch marks the target as hit this tick.
	// Returns false if it was already hit this tick.
	Latch() bool
	// AddDamage adds to the damage counter and returns the new total
	AddDamage(amount float64) float64
	SetStun(frames int)
}

// Knockback holds the global knockback scales
type Knockback struct {
	FixedScale float64
	VarScale   float64
}

type nopSink struct{}

func (nopSink) CreateRegion(RegionID)          {}
func (nopSink) DestroyRegion(RegionID)         {}
func (nopSink) ApplyImpulse(BodyID, move.Vec2) {}
func (nopSink) SetVelocity(BodyID, move.Vec2)  {}
func (nopSink) SuspendGravity(BodyID, bool)    {}

func sinkOrNop(s Sink) Sink {
	if s == nil {
		return nopSink{}
	}
	return s
}
