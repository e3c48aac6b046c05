package combo

import (
	"github.com/younwookim/brawl/internal/domain/input"
	"github.com/younwookim/brawl/internal/domain/move"
)

// StepResult is what one tick of an attack hands back to the fighter
type StepResult struct {
	Active bool

	// Velocity is the attacker's velocity for this tick, already mirrored.
	// Only meaningful when HasVelocity is set.
	Velocity    move.Vec2
	HasVelocity bool

	// RecoverFrames is nonzero on the tick the attack's last power starts
	RecoverFrames int
}

// Step advances the attack by one tick.
// Stepping an idle attack only counts its cooldown down.
func (a *AttackState) Step(sink Sink, in *input.Snapshot, grounded bool) StepResult {
	sink = sinkOrNop(sink)

	if !a.active {
		if a.cooldown > 0 {
			a.cooldown--
		}
		return StepResult{}
	}

	if a.recoverTimer > 0 {
		a.recoverTimer--
		return StepResult{Active: true}
	}

	a.castFrame++
	held := in != nil && in.Held(a.tmpl.Strength.Button())
	cast := a.cast()
	cs := a.current()

	// charge window opens on the last startup tick
	if a.canCharge {
		windowEnd := cast.StartupFrames + cast.AdditionalStartupFrames
		if held && a.castFrame >= cast.StartupFrames && a.castFrame < windowEnd {
			a.chargeDamage += cast.ExtraDamagePerFrame
			cs.chargedFrames++
			return StepResult{Active: true}
		}
		if a.castFrame >= cast.StartupFrames {
			a.canCharge = false
		}
	}

	power := a.power()
	early := (power.CancelOnHit && a.hasHit) || (power.CancelOnGround && grounded)
	runsForever := cast.ActiveUntilCancelled && held
	elapsed := a.castFrame - cs.chargedFrames

	if early || (elapsed > max(cast.StartupFrames-1, 0)+cast.ActiveFrames && !runsForever) {
		if cs.active {
			a.destroyRegion(sink)
		}
		cs.cancelled = early
		a.castIdx++

		if early || a.castIdx >= len(power.Casts) {
			a.castIdx = 0
			next, ok := a.scan(a.powerIdx+1, grounded)
			if !ok {
				a.terminate(sink)
				return StepResult{}
			}
			a.powerIdx = next
		}

		a.castFrame = 1
		power = a.power()
		cast = a.cast()
		cs = a.current()
		a.canCharge = cast.AdditionalStartupFrames > 0
	}

	res := StepResult{Active: true}

	ps := &a.powers[a.powerIdx]
	if !ps.active {
		ps.active = true
		a.cooldown += power.CooldownFrames
		if a.powerIdx == len(a.tmpl.Powers)-1 {
			res.RecoverFrames = power.TotalRecovery()
		} else {
			a.recoverTimer = power.TotalRecovery()
		}
	}

	if a.castFrame >= cast.StartupFrames && !cs.active {
		cs.active = true
		if id := a.regions[a.powerIdx][a.castIdx][a.facing]; id != 0 {
			sink.CreateRegion(id)
		}
	}

	if cast.Velocity != nil && (cs.active || cast.VelocityAllFrames) {
		res.Velocity = a.facing.Mirror(*cast.Velocity)
		res.HasVelocity = true
	}
	return res
}

// scan returns the first power at or after from whose predicates hold
func (a *AttackState) scan(from int, grounded bool) (int, bool) {
	for i := from; i < len(a.tmpl.Powers); i++ {
		if a.tmpl.Powers[i].Admits(a.hasHit, grounded) {
			return i, true
		}
	}
	return 0, false
}

func (a *AttackState) destroyRegion(sink Sink) {
	if id := a.regions[a.powerIdx][a.castIdx][a.facing]; id != 0 {
		sink.DestroyRegion(id)
	}
}

// terminate returns the attack to idle and releases every gravity suspension it holds
func (a *AttackState) terminate(sink Sink) {
	a.active = false
	a.powerIdx = 0
	a.castIdx = 0
	a.castFrame = 0
	a.canCharge = false
	a.recoverTimer = 0

	a.releaseVictim(sink)
	if a.selfSuspended {
		sink.SuspendGravity(a.owner, false)
		a.selfSuspended = false
	}
}

func (a *AttackState) releaseVictim(sink Sink) {
	if a.victimHeld {
		sink.SuspendGravity(a.heldVictim, false)
		a.victimHeld = false
	}
}
