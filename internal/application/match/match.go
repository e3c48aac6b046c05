// Package match runs the fixed-order simulation tick of one fight.
package match

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/younwookim/brawl/internal/application/system"
	"github.com/younwookim/brawl/internal/domain/combo"
	"github.com/younwookim/brawl/internal/domain/input"
	"github.com/younwookim/brawl/internal/domain/move"
	"github.com/younwookim/brawl/internal/ecs"
	"github.com/younwookim/brawl/internal/infrastructure/metrics"
	"github.com/younwookim/brawl/internal/infrastructure/space"
)

// Config describes a match at its first tick
type Config struct {
	Physics  ecs.PhysicsConfig
	Fighters []ecs.FighterConfig

	// Debug panics when a hit latch survives into the next tick
	Debug bool

	// Metrics is optional
	Metrics *metrics.Combat
}

// Match owns the world of one fight and advances it tick by tick
type Match struct {
	cfg    Config
	world  *ecs.World
	space  *space.Space
	combat *system.CombatSystem
	tick   int

	// Event callbacks
	OnActivate func(id ecs.EntityID, attack string, facing move.Facing)
	OnHit      func(attacker, victim ecs.EntityID, out combo.HitOutcome)
	OnKO       func(id ecs.EntityID, stocksLeft int)
}

// New creates a match with every fighter at its spawn point
func New(cfg Config) (*Match, error) {
	if len(cfg.Fighters) == 0 {
		return nil, fmt.Errorf("match needs at least one fighter")
	}
	for _, f := range cfg.Fighters {
		if f.Moveset == nil {
			return nil, fmt.Errorf("fighter %s has no moveset", f.Name)
		}
		if err := f.Moveset.Validate(); err != nil {
			return nil, fmt.Errorf("failed to validate moveset for %s: %w", f.Name, err)
		}
	}

	m := &Match{cfg: cfg}
	m.Reset()
	return m, nil
}

// Reset puts every fighter back at its spawn point with fresh attack state
func (m *Match) Reset() {
	m.world = ecs.NewWorld()
	for _, f := range m.cfg.Fighters {
		m.world.CreateFighter(f, m.cfg.Physics.AirJumps)
	}
	m.space = space.New(m.world)
	m.combat = system.NewCombatSystem(m.world, m.space, m.cfg.Physics.Knockback)
	m.combat.OnActivate = m.activated
	m.combat.OnHit = m.hit
	m.tick = 0
}

func (m *Match) activated(id ecs.EntityID, attack string, facing move.Facing) {
	if m.cfg.Metrics != nil {
		m.cfg.Metrics.AttackActivated(attack)
	}
	if m.OnActivate != nil {
		m.OnActivate(id, attack, facing)
	}
}

func (m *Match) hit(attacker, victim ecs.EntityID, out combo.HitOutcome) {
	if m.cfg.Metrics != nil {
		m.cfg.Metrics.HitLanded(out.Attack, out.Damage)
	}
	if m.OnHit != nil {
		m.OnHit(attacker, victim, out)
	}
}

// Tick advances the match by one tick. inputs are the buttons held by each
// fighter, in fighter order; missing entries are treated as no buttons.
func (m *Match) Tick(inputs []input.Buttons) error {
	start := time.Now()
	w := m.world

	if len(inputs) > len(w.Fighters) {
		return fmt.Errorf("got %d inputs for %d fighters", len(inputs), len(w.Fighters))
	}
	if m.cfg.Debug {
		if latched := ecs.LatchedFighters(w); len(latched) > 0 {
			panic(fmt.Sprintf("tick %d: hit latch still set on %v", m.tick, latched))
		}
	}

	for i, id := range w.Fighters {
		var b input.Buttons
		if i < len(inputs) {
			b = inputs[i]
		}
		w.Input[id].Set(b)
	}

	ecs.UpdateTimers(w)
	if err := m.combat.StepAttacks(); err != nil {
		return fmt.Errorf("tick %d: %w", m.tick, err)
	}
	ecs.UpdateMovement(w, m.cfg.Physics)

	ecs.ApplyGravity(w, m.cfg.Physics)
	for _, id := range ecs.Integrate(w, m.cfg.Physics) {
		if m.cfg.Metrics != nil {
			m.cfg.Metrics.KO()
		}
		if m.OnKO != nil {
			m.OnKO(id, w.Fighter[id].Stocks)
		}
	}

	m.combat.ResolveHits(m.space.Detect())
	ecs.FinishTick(w)
	m.tick++

	if m.cfg.Metrics != nil {
		m.cfg.Metrics.ObserveTick(time.Since(start))
	}
	return nil
}

// Frame returns the number of ticks run since the last reset
func (m *Match) Frame() int {
	return m.tick
}

// World returns the match world, for drawing and inspection
func (m *Match) World() *ecs.World {
	return m.world
}

// Space returns the match collision space
func (m *Match) Space() *space.Space {
	return m.space
}

// Fighters returns the fighter IDs in input order
func (m *Match) Fighters() []ecs.EntityID {
	return m.world.Fighters
}

// Digest hashes the simulation state. Two matches fed the same inputs from
// the same config have equal digests on every tick.
func (m *Match) Digest() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 256)

	putF := func(v float64) { buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v)) }
	putI := func(v int) { buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(v))) }
	putB := func(v bool) {
		if v {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}

	putI(m.tick)
	for _, id := range m.world.Fighters {
		body := m.world.Body[id]
		mov := m.world.Movement[id]
		f := m.world.Fighter[id]

		putI(int(id))
		putF(body.Pos.X)
		putF(body.Pos.Y)
		putF(body.Vel.X)
		putF(body.Vel.Y)
		putB(body.GravitySuspended)
		putB(mov.Grounded)
		putI(mov.AirJumps)
		putI(int(f.Facing))
		putF(f.Damage)
		putI(f.Stocks)
		putI(f.Stun)
		putI(f.RecoveryLock)
		for _, held := range m.world.Input[id].Current() {
			putB(held)
		}

		if ms, ok := m.world.Moveset[id]; ok {
			for _, a := range ms.Attacks() {
				power, cast, frame := a.Cursor()
				putB(a.Active())
				putI(power)
				putI(cast)
				putI(frame)
				putI(a.Cooldown())
				putI(a.RecoverTimer())
				putF(a.ChargeDamage())
			}
		}

		_, _ = d.Write(buf)
		buf = buf[:0]
	}
	for _, id := range m.space.Live() {
		putI(int(id))
	}
	_, _ = d.Write(buf)

	return d.Sum64()
}
