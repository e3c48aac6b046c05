package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/brawl/internal/domain/input"
)

// KeyMap binds fighter buttons to keyboard keys
type KeyMap map[input.Button][]ebiten.Key

// DefaultKeyMap returns the keyboard bindings for player one
func DefaultKeyMap() KeyMap {
	return KeyMap{
		input.MoveLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
		input.MoveRight: {ebiten.KeyD, ebiten.KeyArrowRight},
		input.MoveDown:  {ebiten.KeyS, ebiten.KeyArrowDown},
		input.Jump:      {ebiten.KeyW, ebiten.KeySpace},
		input.Dodge:     {ebiten.KeyShiftLeft},
		input.LightHit:  {ebiten.KeyJ},
		input.HeavyHit:  {ebiten.KeyK},
		input.Throw:     {ebiten.KeyL},
	}
}

// ParseKeyMap builds a key map from button names to ebiten key names
func ParseKeyMap(bindings map[string][]string) (KeyMap, error) {
	keys := make(KeyMap, len(bindings))
	for name, keyNames := range bindings {
		b, ok := input.ParseButton(name)
		if !ok {
			return nil, fmt.Errorf("unknown button %q", name)
		}
		for _, kn := range keyNames {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(kn)); err != nil {
				return nil, fmt.Errorf("failed to parse key %q for %s: %w", kn, b, err)
			}
			keys[b] = append(keys[b], k)
		}
	}
	return keys, nil
}

// InputSystem reads the keyboard into fighter buttons
type InputSystem struct {
	keys    KeyMap
	pressed func(ebiten.Key) bool
}

// NewInputSystem creates a new input system
func NewInputSystem(keys KeyMap) *InputSystem {
	return &InputSystem{keys: keys, pressed: ebiten.IsKeyPressed}
}

// Read returns the buttons held this tick
func (s *InputSystem) Read() input.Buttons {
	var b input.Buttons
	for btn, keys := range s.keys {
		for _, k := range keys {
			if s.pressed(k) {
				b[btn] = true
				break
			}
		}
	}
	return b
}
