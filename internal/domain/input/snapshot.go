// Package input holds the per-fighter button snapshot consumed by the combo resolver.
package input

import "strings"

// Button is one of the fixed fighter buttons
type Button int

const (
	MoveLeft Button = iota
	MoveRight
	MoveDown
	Jump
	Dodge
	HeavyHit
	LightHit
	Throw

	ButtonCount = int(Throw) + 1
)

// String returns the string representation of the button
func (b Button) String() string {
	switch b {
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case MoveDown:
		return "MoveDown"
	case Jump:
		return "Jump"
	case Dodge:
		return "Dodge"
	case HeavyHit:
		return "HeavyHit"
	case LightHit:
		return "LightHit"
	case Throw:
		return "Throw"
	default:
		return "Unknown"
	}
}

// Buttons is the held state of every button for one tick
type Buttons [ButtonCount]bool

// With returns a copy of b with the given buttons held
func (b Buttons) With(buttons ...Button) Buttons {
	for _, btn := range buttons {
		b[btn] = true
	}
	return b
}

// Snapshot is the current and previous tick's button state of one fighter.
// Previous state only moves forward through Advance, after every consumer
// of the tick has read it.
type Snapshot struct {
	current Buttons
	prev    Buttons
}

// Set replaces the current tick's button state
func (s *Snapshot) Set(b Buttons) {
	s.current = b
}

// Current returns the current tick's button state
func (s *Snapshot) Current() Buttons {
	return s.current
}

// Held reports whether the button is down this tick
func (s *Snapshot) Held(b Button) bool {
	return s.current[b]
}

// Tapped reports whether the button went down this tick
func (s *Snapshot) Tapped(b Button) bool {
	return s.current[b] && !s.prev[b]
}

// Released reports whether the button went up this tick
func (s *Snapshot) Released(b Button) bool {
	return !s.current[b] && s.prev[b]
}

// AnyHeld reports whether at least one of the buttons is down
func (s *Snapshot) AnyHeld(buttons ...Button) bool {
	for _, b := range buttons {
		if s.current[b] {
			return true
		}
	}
	return false
}

// Advance copies the current state into the previous state
func (s *Snapshot) Advance() {
	s.prev = s.current
}

// ParseButton returns the button with the given name, case-insensitive
func ParseButton(name string) (Button, bool) {
	for b := Button(0); int(b) < ButtonCount; b++ {
		if strings.EqualFold(b.String(), name) {
			return b, true
		}
	}
	return 0, false
}
