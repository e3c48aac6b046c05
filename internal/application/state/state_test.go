package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/brawl/internal/domain/move"
	"github.com/younwookim/brawl/internal/ecs"
)

func TestGameState_String(t *testing.T) {
	tests := []struct {
		state    GameState
		expected string
	}{
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateReplaying, "Replaying"},
		{StateReplayDone, "ReplayDone"},
		{GameState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestFighterState_String(t *testing.T) {
	tests := []struct {
		state    FighterState
		expected string
	}{
		{Idle, "Idle"},
		{Attacking, "Attacking"},
		{Recovering, "Recovering"},
		{Stunned, "Stunned"},
		{FighterState(-1), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestOf(t *testing.T) {
	ms := &move.Moveset{Name: "test", Attacks: []*move.Attack{{
		Name:   "jab",
		Powers: []move.Power{{Casts: []move.Cast{{ActiveFrames: 1}}}},
	}}}

	tests := []struct {
		name      string
		stun      int
		lock      int
		attacking bool
		want      FighterState
	}{
		{"idle", 0, 0, false, Idle},
		{"attacking", 0, 0, true, Attacking},
		{"recovering", 0, 5, false, Recovering},
		{"attacking beats recovering", 0, 5, true, Attacking},
		{"stunned", 3, 0, false, Stunned},
		{"stunned beats attacking", 3, 0, true, Stunned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			id := w.CreateFighter(ecs.FighterConfig{Name: "p1", Moveset: ms}, 1)
			f := w.Fighter[id]
			f.Stun = tt.stun
			f.RecoveryLock = tt.lock
			w.Fighter[id] = f
			if tt.attacking {
				require.NoError(t, w.Moveset[id].Attack(0).Activate(move.FacingRight))
			}
			assert.Equal(t, tt.want, Of(w, id))
		})
	}
}
