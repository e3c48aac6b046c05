// Package move defines the authored, immutable frame data of fighter attacks.
//
// An Attack is an ordered sequence of Powers, a Power is an ordered sequence of
// Casts. Templates are shared between every fighter of the same type and are
// never mutated at run time; run-time state lives in package combo.
package move

import "github.com/younwookim/brawl/internal/domain/input"

// HitStrength selects which hit button triggers an attack
type HitStrength int

const (
	Light HitStrength = iota
	Heavy
)

// Button returns the input button bound to the strength
func (h HitStrength) Button() input.Button {
	if h == Heavy {
		return input.HeavyHit
	}
	return input.LightHit
}

// String returns the string representation of the strength
func (h HitStrength) String() string {
	switch h {
	case Light:
		return "Light"
	case Heavy:
		return "Heavy"
	default:
		return "Unknown"
	}
}

// MoveClass is the directional input that must accompany the trigger tap
type MoveClass int

const (
	Neutral MoveClass = iota
	Side
	Down
)

// String returns the string representation of the class
func (m MoveClass) String() string {
	switch m {
	case Neutral:
		return "Neutral"
	case Side:
		return "Side"
	case Down:
		return "Down"
	default:
		return "Unknown"
	}
}

// Cast is one indivisible timed phase: startup followed by an active window
type Cast struct {
	StartupFrames int
	ActiveFrames  int

	BaseDamage float64
	VarForce   float64
	FixedForce float64

	// HitRegion is exposed between the first active tick and cast completion
	HitRegion *HitRegion

	// Velocity is applied to the attacker, mirrored by facing.
	// Only during active ticks unless VelocityAllFrames is set.
	Velocity          *Vec2
	VelocityAllFrames bool

	// KnockbackDir is a unit vector authored for right-facing
	KnockbackDir Vec2

	// SelfVelocityOnHit is set on the attacker when this cast connects;
	// the attacker's gravity is suspended until the attack ends.
	SelfVelocityOnHit *Vec2

	// CancelVictimVelocity zeroes the victim's velocity and suspends its
	// gravity until the attack lands its next hit.
	CancelVictimVelocity bool

	// Charge window appended to startup while the hit button is held
	AdditionalStartupFrames int
	ExtraDamagePerFrame     float64

	// ActiveUntilCancelled keeps the cast running while the hit button is held
	ActiveUntilCancelled bool

	// UseChargedDamage adds (and consumes) the attack's charge total on hit
	UseChargedDamage bool
}

// Power is a branchable phase of an attack
type Power struct {
	Casts []Cast

	CooldownFrames      int
	FixedRecoveryFrames int
	RecoveryFrames      int
	MinChargeFrames     int // informational
	StunFrames          int

	RequiresHit      bool
	RequiresNoHit    bool
	RequiresGrounded bool
	RequiresAirborne bool

	CancelOnHit    bool
	CancelOnGround bool
}

// TotalRecovery returns the recovery applied when the power starts
func (p *Power) TotalRecovery() int {
	return p.RecoveryFrames + p.FixedRecoveryFrames
}

// Admits reports whether the power's branch predicates hold
func (p *Power) Admits(hasHit, grounded bool) bool {
	if p.RequiresHit && !hasHit {
		return false
	}
	if p.RequiresNoHit && hasHit {
		return false
	}
	if p.RequiresGrounded && !grounded {
		return false
	}
	if p.RequiresAirborne && grounded {
		return false
	}
	return true
}

// Attack is a full combo move with its trigger conditions
type Attack struct {
	Name             string
	Powers           []Power
	RequiresGrounded bool
	Strength         HitStrength
	Class            MoveClass

	// AirJumpSubstitute lets a grounded-only attack start in the air by
	// spending a spare air jump.
	AirJumpSubstitute bool
}

// Moveset is the priority-ordered attack list of one fighter type
type Moveset struct {
	Name    string
	Attacks []*Attack
}

// Find returns the attack with the given name
func (m *Moveset) Find(name string) (*Attack, bool) {
	for _, a := range m.Attacks {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}
