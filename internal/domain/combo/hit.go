package combo

import "github.com/younwookim/brawl/internal/domain/move"

// HitOutcome describes a resolved hit
type HitOutcome struct {
	Attack     string
	Damage     float64 // credited by this hit; zero after the power's first hit
	Total      float64 // victim's damage counter after the hit
	Knockback  move.Vec2
	StunFrames int
}

// ResolveHit applies a detected overlap between the region ref and target.
// It reports false when the hit was dropped: the ref no longer matches the
// running cast, the cast already connected, or the target was already hit
// this tick.
func (a *AttackState) ResolveHit(sink Sink, ref RegionRef, target Target, kb Knockback) (HitOutcome, bool) {
	sink = sinkOrNop(sink)

	if !a.active || ref.Owner != a.owner || ref.Power != a.powerIdx || ref.Cast != a.castIdx {
		return HitOutcome{}, false
	}
	cs := a.current()
	if !cs.active || cs.hasHit {
		return HitOutcome{}, false
	}
	if !target.Latch() {
		return HitOutcome{}, false
	}
	cs.hasHit = true

	cast := a.cast()
	power := a.power()
	ps := &a.powers[a.powerIdx]

	var dmg float64
	if !ps.hasHit {
		dmg = cast.BaseDamage
		if cast.UseChargedDamage {
			dmg += a.chargeDamage
			a.chargeDamage = 0
		}
		ps.hasHit = true
	}
	a.hasHit = true
	total := target.AddDamage(dmg)

	victim := target.Body()
	a.releaseVictim(sink)
	target.SetStun(power.StunFrames)

	if cast.CancelVictimVelocity {
		sink.SetVelocity(victim, move.Vec2{})
		sink.SuspendGravity(victim, true)
		a.victimHeld = true
		a.heldVictim = victim
	}

	out := HitOutcome{
		Attack:     a.tmpl.Name,
		Damage:     dmg,
		Total:      total,
		StunFrames: power.StunFrames,
	}
	if force := cast.FixedForce*kb.FixedScale + total*cast.VarForce*kb.VarScale; force > 0 {
		out.Knockback = a.facing.Mirror(knockbackDir(cast)).Scale(force)
		sink.ApplyImpulse(victim, out.Knockback)
	}

	if cast.SelfVelocityOnHit != nil {
		sink.SetVelocity(a.owner, a.facing.Mirror(*cast.SelfVelocityOnHit))
		if !a.selfSuspended {
			sink.SuspendGravity(a.owner, true)
			a.selfSuspended = true
		}
	}
	return out, true
}

func knockbackDir(c *move.Cast) move.Vec2 {
	if c.KnockbackDir.IsZero() {
		return move.Vec2{X: 1}
	}
	return c.KnockbackDir.Normalize()
}
