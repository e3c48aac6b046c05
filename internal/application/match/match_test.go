package match

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/brawl/internal/domain/combo"
	"github.com/younwookim/brawl/internal/domain/input"
	"github.com/younwookim/brawl/internal/domain/move"
	"github.com/younwookim/brawl/internal/ecs"
	"github.com/younwookim/brawl/internal/infrastructure/metrics"
)

func testMoveset() *move.Moveset {
	return &move.Moveset{
		Name: "test",
		Attacks: []*move.Attack{{
			Name:             "side_light",
			RequiresGrounded: true,
			Strength:         move.Light,
			Class:            move.Side,
			Powers: []move.Power{{
				Casts: []move.Cast{{
					StartupFrames: 2,
					ActiveFrames:  3,
					BaseDamage:    10,
					FixedForce:    50,
					Velocity:      &move.Vec2{X: 30},
					HitRegion:     &move.HitRegion{Shapes: []move.Capsule{{Offset: move.Vec2{X: 7.2, Y: -1}, Dims: move.Vec2{X: 14.4, Y: 5}}}},
				}},
				StunFrames:     12,
				RecoveryFrames: 6,
				CooldownFrames: 4,
			}},
		}},
	}
}

func testConfig() Config {
	hurt := move.Capsule{Dims: move.Vec2{X: 14.4, Y: 16}}
	ms := testMoveset()
	return Config{
		Physics: ecs.PhysicsConfig{
			TickSeconds:    1.0 / 60,
			Gravity:        420,
			MaxFallSpeed:   160,
			FastFallSpeed:  240,
			RunSpeed:       85,
			AirSpeed:       70,
			GroundFriction: 0.25,
			AirFriction:    0.02,
			JumpSpeed:      190,
			AirJumps:       2,
			StageHalfWidth: 110,
			BlastZone:      ecs.Bounds{Min: move.Vec2{X: -240, Y: -120}, Max: move.Vec2{X: 240, Y: 220}},
			Knockback:      combo.Knockback{FixedScale: 1, VarScale: 0.05},
		},
		Fighters: []ecs.FighterConfig{
			{Name: "p1", Spawn: move.Vec2{X: 0, Y: 8}, Facing: move.FacingRight, Hurtbox: hurt, Stocks: 3, Moveset: ms},
			{Name: "p2", Spawn: move.Vec2{X: 16, Y: 8}, Facing: move.FacingLeft, Hurtbox: hurt, Stocks: 3, Moveset: ms},
		},
	}
}

func newMatch(t *testing.T, cfg Config) *Match {
	t.Helper()
	m, err := New(cfg)
	require.NoError(t, err)
	return m
}

func run(t *testing.T, m *Match, ticks int, p1 ...input.Button) {
	t.Helper()
	for i := 0; i < ticks; i++ {
		require.NoError(t, m.Tick([]input.Buttons{input.Buttons{}.With(p1...)}))
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	var sum float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
	}
	return sum
}

func TestNew_Errors(t *testing.T) {
	noMoves := testConfig()
	noMoves.Fighters[1].Moveset = nil

	badMoves := testConfig()
	badMoves.Fighters[0].Moveset = &move.Moveset{Name: "empty"}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"no fighters", Config{}},
		{"missing moveset", noMoves},
		{"invalid moveset", badMoves},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.Error(t, err)
		})
	}

	_, err := New(badMoves)
	assert.ErrorIs(t, err, move.ErrInvalidMove)
}

func TestMatch_FightersLand(t *testing.T) {
	m := newMatch(t, testConfig())
	run(t, m, 1)

	assert.Equal(t, 1, m.Frame())
	for _, id := range m.Fighters() {
		assert.True(t, m.World().Movement[id].Grounded)
	}
}

func TestMatch_SideLightLands(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := testConfig()
	cfg.Metrics = metrics.NewCombat(reg)
	m := newMatch(t, cfg)

	var hits []combo.HitOutcome
	m.OnHit = func(attacker, victim ecs.EntityID, out combo.HitOutcome) {
		hits = append(hits, out)
	}
	var activated []string
	m.OnActivate = func(id ecs.EntityID, attack string, facing move.Facing) {
		activated = append(activated, attack)
	}

	run(t, m, 1)
	run(t, m, 8, input.MoveRight, input.LightHit)

	p2 := m.Fighters()[1]
	assert.Equal(t, []string{"side_light"}, activated)
	require.Len(t, hits, 1)
	assert.Equal(t, 10.0, hits[0].Damage)
	assert.Equal(t, 10.0, m.World().Fighter[p2].Damage)
	assert.Greater(t, m.World().Body[p2].Pos.X, 16.0, "pushed away by knockback")

	assert.Equal(t, 1.0, counterValue(t, reg, "brawl_attacks_activated_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "brawl_hits_landed_total"))
	assert.Equal(t, 10.0, counterValue(t, reg, "brawl_damage_dealt_total"))
}

func TestMatch_TooManyInputs(t *testing.T) {
	m := newMatch(t, testConfig())
	err := m.Tick(make([]input.Buttons, 3))
	assert.Error(t, err)
	assert.Zero(t, m.Frame())
}

func TestMatch_KO(t *testing.T) {
	m := newMatch(t, testConfig())
	run(t, m, 1)

	p2 := m.Fighters()[1]
	body := m.World().Body[p2]
	body.Pos = move.Vec2{X: 500, Y: 8}
	m.World().Body[p2] = body

	var kos []ecs.EntityID
	var left []int
	m.OnKO = func(id ecs.EntityID, stocksLeft int) {
		kos = append(kos, id)
		left = append(left, stocksLeft)
	}
	run(t, m, 1)

	assert.Equal(t, []ecs.EntityID{p2}, kos)
	assert.Equal(t, []int{2}, left)
	assert.Equal(t, move.Vec2{X: 16, Y: 8}, m.World().Body[p2].Pos)
}

func TestMatch_DebugLatch(t *testing.T) {
	cfg := testConfig()
	cfg.Debug = true
	m := newMatch(t, cfg)
	run(t, m, 1)

	p1 := m.Fighters()[0]
	f := m.World().Fighter[p1]
	f.HitThisTick = true
	m.World().Fighter[p1] = f

	assert.Panics(t, func() { _ = m.Tick(nil) })
}

func TestMatch_Deterministic(t *testing.T) {
	script := func(tick int) []input.Buttons {
		p1 := input.Buttons{}
		p2 := input.Buttons{}
		switch {
		case tick%40 < 3:
			p1 = p1.With(input.MoveRight, input.LightHit)
		case tick%40 == 20:
			p1 = p1.With(input.Jump)
		}
		if tick%25 == 0 {
			p2 = p2.With(input.MoveLeft)
		}
		return []input.Buttons{p1, p2}
	}

	a := newMatch(t, testConfig())
	b := newMatch(t, testConfig())
	for i := 0; i < 240; i++ {
		require.NoError(t, a.Tick(script(i)))
		require.NoError(t, b.Tick(script(i)))
		require.Equal(t, a.Digest(), b.Digest(), "tick %d", i)
	}

	require.NoError(t, a.Tick([]input.Buttons{input.Buttons{}.With(input.Jump)}))
	require.NoError(t, b.Tick(nil))
	assert.NotEqual(t, a.Digest(), b.Digest())
}

func TestMatch_Reset(t *testing.T) {
	m := newMatch(t, testConfig())
	fresh := m.Digest()

	run(t, m, 1)
	run(t, m, 10, input.MoveRight, input.LightHit)
	require.NotEqual(t, fresh, m.Digest())

	m.Reset()
	assert.Zero(t, m.Frame())
	assert.Equal(t, fresh, m.Digest())
	assert.Empty(t, m.Space().Live())
}
