package replay

import (
	"github.com/google/uuid"

	"github.com/younwookim/brawl/internal/domain/input"
)

// Version is written into every saved replay
const Version = "2.0"

// ButtonsInput records one fighter's held buttons for a single frame
type ButtonsInput struct {
	L  bool `json:"l,omitempty"`  // MoveLeft
	R  bool `json:"r,omitempty"`  // MoveRight
	D  bool `json:"d,omitempty"`  // MoveDown
	J  bool `json:"j,omitempty"`  // Jump
	Dg bool `json:"dg,omitempty"` // Dodge
	H  bool `json:"h,omitempty"`  // HeavyHit
	Lt bool `json:"lt,omitempty"` // LightHit
	T  bool `json:"t,omitempty"`  // Throw
}

// FrameInput records every fighter's input for a single frame
type FrameInput struct {
	F int            `json:"f"` // Frame number
	P []ButtonsInput `json:"p"` // Per fighter, in match order
}

// ReplayData contains all data needed to replay a match
type ReplayData struct {
	Version   string       `json:"version"`
	Session   uuid.UUID    `json:"session"`
	Fighters  []string     `json:"fighters"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`

	// Digest is the match digest after the last frame, hex encoded
	Digest string `json:"digest,omitempty"`
}

func fromButtons(b input.Buttons) ButtonsInput {
	return ButtonsInput{
		L:  b[input.MoveLeft],
		R:  b[input.MoveRight],
		D:  b[input.MoveDown],
		J:  b[input.Jump],
		Dg: b[input.Dodge],
		H:  b[input.HeavyHit],
		Lt: b[input.LightHit],
		T:  b[input.Throw],
	}
}

// Buttons converts the recorded input back into fighter buttons
func (bi ButtonsInput) Buttons() input.Buttons {
	var b input.Buttons
	b[input.MoveLeft] = bi.L
	b[input.MoveRight] = bi.R
	b[input.MoveDown] = bi.D
	b[input.Jump] = bi.J
	b[input.Dodge] = bi.Dg
	b[input.HeavyHit] = bi.H
	b[input.LightHit] = bi.Lt
	b[input.Throw] = bi.T
	return b
}
