package combo

import (
	"github.com/younwookim/brawl/internal/domain/input"
	"github.com/younwookim/brawl/internal/domain/move"
)

// Moveset is one fighter's run-time view of a move set.
// Attacks keep the template's order, which is their trigger priority.
type Moveset struct {
	name    string
	owner   BodyID
	attacks []*AttackState
}

// NewMoveset creates the run-time state of every attack in tmpl for owner
func NewMoveset(tmpl *move.Moveset, owner BodyID, regions *Regions) *Moveset {
	m := &Moveset{
		name:    tmpl.Name,
		owner:   owner,
		attacks: make([]*AttackState, len(tmpl.Attacks)),
	}
	for i, a := range tmpl.Attacks {
		m.attacks[i] = NewAttackState(a, owner, i, regions)
	}
	return m
}

// Name returns the template's name
func (m *Moveset) Name() string { return m.name }

// Attacks returns the attacks in priority order
func (m *Moveset) Attacks() []*AttackState { return m.attacks }

// Attack returns the attack at index i
func (m *Moveset) Attack(i int) *AttackState { return m.attacks[i] }

// Running returns the active attack, or nil
func (m *Moveset) Running() *AttackState {
	for _, a := range m.attacks {
		if a.Active() {
			return a
		}
	}
	return nil
}

// Step steps every attack once, in priority order, and merges their results
func (m *Moveset) Step(sink Sink, in *input.Snapshot, grounded bool) StepResult {
	var out StepResult
	for _, a := range m.attacks {
		r := a.Step(sink, in, grounded)
		if !r.Active {
			continue
		}
		out.Active = true
		out.RecoverFrames += r.RecoverFrames
		if r.HasVelocity {
			out.Velocity = r.Velocity
			out.HasVelocity = true
		}
	}
	return out
}

// TryTrigger activates the first ready attack whose trigger conditions hold.
// Returns nil if nothing was triggered.
func (m *Moveset) TryTrigger(facing move.Facing, grounded bool, in *input.Snapshot, spareAirJumps int) (*AttackState, Trigger, error) {
	for _, a := range m.attacks {
		if !a.Ready() {
			continue
		}
		t := IsTriggered(a.Template(), grounded, in, spareAirJumps)
		if !t.CanActivate {
			continue
		}
		if err := a.Activate(facing); err != nil {
			return nil, Trigger{}, err
		}
		return a, t, nil
	}
	return nil, Trigger{}, nil
}
