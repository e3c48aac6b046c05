package ecs

import (
	"math"

	"github.com/younwookim/brawl/internal/domain/combo"
	"github.com/younwookim/brawl/internal/domain/input"
	"github.com/younwookim/brawl/internal/domain/move"
)

// Bounds is an axis-aligned rectangle in world units
type Bounds struct {
	Min, Max move.Vec2
}

// Contains reports whether p lies inside the bounds
func (b Bounds) Contains(p move.Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// PhysicsConfig holds physics configuration.
// Speeds are in units/sec, accelerations in units/sec², applied every tick
// scaled by TickSeconds.
type PhysicsConfig struct {
	TickSeconds float64

	// Physics
	Gravity       float64 // units/sec²
	MaxFallSpeed  float64 // units/sec
	FastFallSpeed float64 // units/sec, MoveDown tapped in the air

	// Movement
	RunSpeed       float64 // units/sec
	AirSpeed       float64 // units/sec
	GroundFriction float64 // 0-1, share of horizontal speed lost per tick
	AirFriction    float64 // 0-1

	// Jump
	JumpSpeed float64 // units/sec
	AirJumps  int

	// Stage
	FloorY         float64
	StageHalfWidth float64
	BlastZone      Bounds

	Knockback combo.Knockback
}

// UpdateTimers decrements all tick-based fighter timers
func UpdateTimers(w *World) {
	for _, id := range w.Fighters {
		f := w.Fighter[id]
		if f.Stun > 0 {
			f.Stun--
		}
		w.Fighter[id] = f
	}
}

// UpdateMovement applies run, turn and jump input to fighters that are free to act
func UpdateMovement(w *World, cfg PhysicsConfig) {
	for _, id := range w.Fighters {
		f := w.Fighter[id]
		if !f.Free() || w.Attacking(id) != nil {
			continue
		}
		in := w.Input[id]
		body := w.Body[id]
		mov := w.Movement[id]

		speed := cfg.RunSpeed
		if !mov.Grounded {
			speed = cfg.AirSpeed
		}
		left, right := in.Held(input.MoveLeft), in.Held(input.MoveRight)
		switch {
		case left && !right:
			body.Vel.X = -speed
			f.Facing = move.FacingLeft
		case right && !left:
			body.Vel.X = speed
			f.Facing = move.FacingRight
		}

		if in.Tapped(input.Jump) {
			if mov.Grounded {
				body.Vel.Y = cfg.JumpSpeed
				mov.Grounded = false
			} else if mov.AirJumps > 0 {
				body.Vel.Y = cfg.JumpSpeed
				mov.AirJumps--
			}
		} else if !mov.Grounded && in.Tapped(input.MoveDown) && body.Vel.Y < 0 {
			body.Vel.Y = -cfg.FastFallSpeed
		}

		w.Fighter[id] = f
		w.Body[id] = body
		w.Movement[id] = mov
	}
}

// ApplyGravity applies gravity to airborne fighters whose gravity is not suspended
func ApplyGravity(w *World, cfg PhysicsConfig) {
	for _, id := range w.Fighters {
		body := w.Body[id]
		if body.GravitySuspended || w.Movement[id].Grounded {
			continue
		}
		body.Vel.Y -= cfg.Gravity * cfg.TickSeconds
		if body.Vel.Y < -cfg.MaxFallSpeed && cfg.MaxFallSpeed > 0 {
			body.Vel.Y = -cfg.MaxFallSpeed
		}
		w.Body[id] = body
	}
}

// Integrate moves every fighter, resolves the floor and the blast zone.
// Returns the fighters knocked out this tick; they are already respawned.
func Integrate(w *World, cfg PhysicsConfig) []EntityID {
	var kos []EntityID

	for _, id := range w.Fighters {
		body := w.Body[id]
		mov := w.Movement[id]
		half := w.Hurtbox[id].HalfHeight()

		body.Pos = body.Pos.Add(body.Vel.Scale(cfg.TickSeconds))
		mov.WasGrounded = mov.Grounded

		feet := body.Pos.Y - half
		overStage := math.Abs(body.Pos.X) <= cfg.StageHalfWidth
		if overStage && feet <= cfg.FloorY && feet > cfg.FloorY-half && body.Vel.Y <= 0 {
			body.Pos.Y = cfg.FloorY + half
			body.Vel.Y = 0
			mov.Grounded = true
		} else {
			mov.Grounded = false
		}

		if mov.Landed() {
			mov.AirJumps = cfg.AirJumps
		}

		friction := cfg.AirFriction
		if mov.Grounded {
			friction = cfg.GroundFriction
		}
		body.Vel.X *= 1 - friction

		if !cfg.BlastZone.Contains(body.Pos) {
			f := w.Fighter[id]
			f.Damage = 0
			f.Stun = 0
			f.RecoveryLock = 0
			if f.Stocks > 0 {
				f.Stocks--
			}
			w.Fighter[id] = f
			body = Body{Pos: f.Spawn, GravitySuspended: body.GravitySuspended}
			mov = Movement{AirJumps: cfg.AirJumps}
			kos = append(kos, id)
		}

		w.Body[id] = body
		w.Movement[id] = mov
	}

	return kos
}

// LatchedFighters returns fighters whose hit latch is still set
func LatchedFighters(w *World) []EntityID {
	var out []EntityID
	for _, id := range w.Fighters {
		if w.Fighter[id].HitThisTick {
			out = append(out, id)
		}
	}
	return out
}

// FinishTick runs the end-of-tick bookkeeping: recovery locks count down for
// fighters not hit this tick, hit latches clear and input snapshots advance.
func FinishTick(w *World) {
	for _, id := range w.Fighters {
		f := w.Fighter[id]
		if f.RecoveryLock > 0 && !f.HitThisTick {
			f.RecoveryLock--
		}
		f.HitThisTick = false
		w.Fighter[id] = f
		w.Input[id].Advance()
	}
}
