package combo

import (
	"github.com/younwookim/brawl/internal/domain/input"
	"github.com/younwookim/brawl/internal/domain/move"
)

// Trigger is the result of evaluating an attack's start conditions
type Trigger struct {
	CanActivate bool
	// NeedsAirJump is set when the attack starts airborne by spending one
	// of the fighter's spare air jumps; the caller decrements its pool.
	NeedsAirJump bool
}

// IsTriggered evaluates whether the attack may start this tick.
// It does not look at the attack's run-time state; cooldown is the caller's check.
func IsTriggered(a *move.Attack, grounded bool, in *input.Snapshot, spareAirJumps int) Trigger {
	if in == nil || !directionMet(a.Class, in) || !in.Tapped(a.Strength.Button()) {
		return Trigger{}
	}
	if a.RequiresGrounded == grounded {
		return Trigger{CanActivate: true}
	}
	if a.AirJumpSubstitute && a.RequiresGrounded && !grounded && spareAirJumps > 0 {
		return Trigger{CanActivate: true, NeedsAirJump: true}
	}
	return Trigger{}
}

func directionMet(class move.MoveClass, in *input.Snapshot) bool {
	switch class {
	case move.Side:
		return in.AnyHeld(input.MoveLeft, input.MoveRight)
	case move.Down:
		return in.Held(input.MoveDown)
	case move.Neutral:
		return true
	default:
		return false
	}
}
