package ecs

import "github.com/younwookim/brawl/internal/domain/move"

// Body represents a fighter's rigid body. Position is the hurtbox center.
// World units, y-up, velocities in units per second.
type Body struct {
	Pos move.Vec2
	Vel move.Vec2

	GravitySuspended bool
}

// Movement represents grounding state
type Movement struct {
	Grounded    bool
	WasGrounded bool // for landing detection
	AirJumps    int  // spare air jumps
}

// Landed returns true on the tick the fighter touched the floor
func (m Movement) Landed() bool {
	return m.Grounded && !m.WasGrounded
}

// Fighter represents fighter-specific combat state
type Fighter struct {
	Name   string
	Facing move.Facing
	Spawn  move.Vec2

	Damage float64 // accumulated damage counter, scales knockback
	Stocks int

	// Timers (ticks)
	Stun         int
	RecoveryLock int // terminal attack recovery

	// HitThisTick is the "already hit" latch, cleared once per tick after collision resolution
	HitThisTick bool
}

// Free returns true if the fighter can act
func (f *Fighter) Free() bool {
	return f.Stun == 0 && f.RecoveryLock == 0
}

// Hurtbox is the capsule a fighter can be struck on, relative to Body.Pos
type Hurtbox struct {
	Shape move.Capsule
}

// HalfHeight returns the distance from the body center to the hurtbox bottom
func (h Hurtbox) HalfHeight() float64 {
	return h.Shape.Dims.Y/2 - h.Shape.Offset.Y
}
