package state

import "github.com/younwookim/brawl/internal/ecs"

// GameState represents the current state of the sandbox
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateReplaying
	StateReplayDone
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateReplaying:
		return "Replaying"
	case StateReplayDone:
		return "ReplayDone"
	default:
		return "Unknown"
	}
}

// FighterState is what a fighter is doing this tick, for the debug overlay
type FighterState int

const (
	Idle FighterState = iota
	Attacking
	Recovering
	Stunned
)

// String returns the string representation of the fighter state
func (s FighterState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Attacking:
		return "Attacking"
	case Recovering:
		return "Recovering"
	case Stunned:
		return "Stunned"
	default:
		return "Unknown"
	}
}

// Of classifies a fighter. Stun wins over a running attack.
func Of(w *ecs.World, id ecs.EntityID) FighterState {
	f := w.Fighter[id]
	switch {
	case f.Stun > 0:
		return Stunned
	case w.Attacking(id) != nil:
		return Attacking
	case f.RecoveryLock > 0:
		return Recovering
	default:
		return Idle
	}
}
