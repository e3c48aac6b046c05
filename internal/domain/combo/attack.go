// Package combo runs attacks: the per-fighter run-time cursor over the
// immutable templates of package move, the per-tick step state machine,
// trigger evaluation and hit resolution.
package combo

import "github.com/younwookim/brawl/internal/domain/move"

type castState struct {
	active        bool
	hasHit        bool
	cancelled     bool
	chargedFrames int
}

type powerState struct {
	active bool
	hasHit bool
}

// AttackState is the run-time state of one attack of one fighter
type AttackState struct {
	tmpl  *move.Attack
	owner BodyID
	index int

	regions [][][2]RegionID
	powers  []powerState
	casts   [][]castState

	active    bool
	powerIdx  int
	castIdx   int
	castFrame int
	facing    move.Facing

	cooldown     int
	recoverTimer int

	hasHit       bool
	chargeDamage float64
	canCharge    bool

	victimHeld    bool
	heldVictim    BodyID
	selfSuspended bool
}

// NewAttackState creates the run-time state for an attack template.
// Region ids for every cast are allocated in regions.
func NewAttackState(tmpl *move.Attack, owner BodyID, index int, regions *Regions) *AttackState {
	a := &AttackState{
		tmpl:    tmpl,
		owner:   owner,
		index:   index,
		regions: regions.registerAttack(owner, index, tmpl),
		powers:  make([]powerState, len(tmpl.Powers)),
		casts:   make([][]castState, len(tmpl.Powers)),
	}
	for i := range tmpl.Powers {
		a.casts[i] = make([]castState, len(tmpl.Powers[i].Casts))
	}
	return a
}

// Activate starts the attack facing the given side.
// Returns an *InvalidStateError if the attack is already running.
func (a *AttackState) Activate(facing move.Facing) error {
	if a.active {
		return &InvalidStateError{Attack: a.tmpl.Name, Op: "activate", Reason: "attack is already running"}
	}

	a.active = true
	a.powerIdx = 0
	a.castIdx = 0
	a.castFrame = 0
	a.facing = facing
	a.cooldown = 0
	a.recoverTimer = 0
	a.hasHit = false
	a.chargeDamage = 0
	a.victimHeld = false

	for i := range a.powers {
		a.powers[i] = powerState{}
		for j := range a.casts[i] {
			a.casts[i][j] = castState{}
		}
	}
	a.canCharge = a.cast().AdditionalStartupFrames > 0
	return nil
}

// Template returns the authored attack
func (a *AttackState) Template() *move.Attack { return a.tmpl }

// Name returns the attack's name
func (a *AttackState) Name() string { return a.tmpl.Name }

// Index returns the attack's position in its moveset
func (a *AttackState) Index() int { return a.index }

// Owner returns the attacking body
func (a *AttackState) Owner() BodyID { return a.owner }

// Active reports whether the attack is running (including inter-power recovery)
func (a *AttackState) Active() bool { return a.active }

// Ready reports whether the attack may be activated
func (a *AttackState) Ready() bool { return !a.active && a.cooldown == 0 }

// Cooldown returns the ticks left before the attack may retrigger
func (a *AttackState) Cooldown() int { return a.cooldown }

// RecoverTimer returns the remaining inter-power recovery
func (a *AttackState) RecoverTimer() int { return a.recoverTimer }

// Cursor returns the current power index, cast index and cast frame
func (a *AttackState) Cursor() (power, cast, frame int) {
	return a.powerIdx, a.castIdx, a.castFrame
}

// Facing returns the side fixed at activation
func (a *AttackState) Facing() move.Facing { return a.facing }

// HasHit reports whether the attack landed a hit since activation
func (a *AttackState) HasHit() bool { return a.hasHit }

// ChargeDamage returns the accumulated, not yet consumed charge damage
func (a *AttackState) ChargeDamage() float64 { return a.chargeDamage }

// Charging reports whether the current cast can still accumulate charge
func (a *AttackState) Charging() bool { return a.active && a.canCharge }

// LiveRegion returns the region currently exposed by the attack, if any
func (a *AttackState) LiveRegion() (RegionID, bool) {
	if !a.active || !a.casts[a.powerIdx][a.castIdx].active {
		return 0, false
	}
	id := a.regions[a.powerIdx][a.castIdx][a.facing]
	return id, id != 0
}

func (a *AttackState) power() *move.Power {
	return &a.tmpl.Powers[a.powerIdx]
}

func (a *AttackState) cast() *move.Cast {
	return &a.tmpl.Powers[a.powerIdx].Casts[a.castIdx]
}

func (a *AttackState) current() *castState {
	return &a.casts[a.powerIdx][a.castIdx]
}
