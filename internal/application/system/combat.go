package system

import (
	"fmt"

	"github.com/younwookim/brawl/internal/domain/combo"
	"github.com/younwookim/brawl/internal/domain/move"
	"github.com/younwookim/brawl/internal/ecs"
	"github.com/younwookim/brawl/internal/infrastructure/space"
)

// CombatSystem drives every fighter's attacks and resolves their hits
type CombatSystem struct {
	world     *ecs.World
	space     *space.Space
	knockback combo.Knockback

	// Event callbacks
	OnActivate func(id ecs.EntityID, attack string, facing move.Facing)
	OnHit      func(attacker, victim ecs.EntityID, out combo.HitOutcome)
}

// NewCombatSystem creates a new combat system
func NewCombatSystem(w *ecs.World, s *space.Space, kb combo.Knockback) *CombatSystem {
	return &CombatSystem{
		world:     w,
		space:     s,
		knockback: kb,
	}
}

// StepAttacks steps every fighter's attacks, then starts a new attack for
// fighters that are idle and free to act. A new attack takes its first
// step on the next tick.
func (s *CombatSystem) StepAttacks() error {
	w := s.world
	for _, id := range w.Fighters {
		ms, ok := w.Moveset[id]
		if !ok {
			continue
		}
		in := w.Input[id]
		mov := w.Movement[id]

		res := ms.Step(s.space, in, mov.Grounded)
		if res.Active {
			s.apply(id, res)
			continue
		}

		f := w.Fighter[id]
		if !f.Free() {
			continue
		}
		a, trig, err := ms.TryTrigger(f.Facing, mov.Grounded, in, mov.AirJumps)
		if err != nil {
			return fmt.Errorf("failed to trigger attack for %s: %w", f.Name, err)
		}
		if a == nil {
			continue
		}
		if trig.NeedsAirJump {
			mov.AirJumps--
			w.Movement[id] = mov
		}
		if s.OnActivate != nil {
			s.OnActivate(id, a.Name(), f.Facing)
		}
	}
	return nil
}

func (s *CombatSystem) apply(id ecs.EntityID, res combo.StepResult) {
	if res.HasVelocity {
		body := s.world.Body[id]
		body.Vel = res.Velocity
		s.world.Body[id] = body
	}
	if res.RecoverFrames > 0 {
		f := s.world.Fighter[id]
		f.RecoveryLock = res.RecoverFrames
		s.world.Fighter[id] = f
	}
}

// ResolveHits applies detected contacts in order. Returns the number of hits that landed.
func (s *CombatSystem) ResolveHits(contacts []space.Contact) int {
	landed := 0
	for _, c := range contacts {
		attacker := ecs.EntityID(c.Ref.Owner)
		ms, ok := s.world.Moveset[attacker]
		if !ok || c.Ref.Attack >= len(ms.Attacks()) {
			continue
		}
		out, ok := ms.Attack(c.Ref.Attack).ResolveHit(s.space, c.Ref, s.world.Target(c.Victim), s.knockback)
		if !ok {
			continue
		}
		landed++
		if s.OnHit != nil {
			s.OnHit(attacker, c.Victim, out)
		}
	}
	return landed
}
