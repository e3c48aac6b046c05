package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/brawl/internal/domain/move"
)

const testSettings = `{
  "display": {"screenWidth": 640, "screenHeight": 360, "scale": 1, "framerate": 50, "pixelsPerUnit": 2},
  "physics": {"gravity": 400, "maxFallSpeed": 150, "fastFallSpeed": 220},
  "movement": {"runSpeed": 80, "airSpeed": 70, "groundFriction": 0.25, "airFriction": 0.02, "jumpSpeed": 180, "airJumps": 2},
  "stage": {"floorY": 0, "halfWidth": 120, "blastZone": {"minX": -300, "minY": -150, "maxX": 300, "maxY": 300}},
  "knockback": {"fixedScale": 1, "varScale": 0.05},
  "fighter": {"hurtboxWidth": 14.4, "hurtboxHeight": 16, "stocks": 3},
  "match": {
    "debug": true,
    "fighters": [
      {"name": "p1", "x": -40, "y": 8, "facing": "right", "moveset": "test"},
      {"name": "p2", "x": 40, "y": 8, "facing": "left", "moveset": "test"}
    ]
  },
  "controls": {"lightHit": ["J"], "moveLeft": ["A", "ArrowLeft"]}
}`

const testMoves = `
name: test
attacks:
  - name: side_light
    grounded: true
    strength: light
    class: side
    powers:
      - cooldown: 10
        stun: 18
        casts:
          - {startup: 2, active: 2, velocity: {x: 50, y: 0}}
          - startup: 1
            active: 4
            damage: 13
            varForce: 20
            fixedForce: 80
            velocity: {x: 100, y: 0}
            velocityAllFrames: true
            hitRegion:
              - {offset: {x: 7.2, y: -1}, w: 14.4, h: 5}
      - fixedRecovery: 2
        recovery: 18
        casts:
          - {startup: 0, active: 1}
  - name: side_heavy
    grounded: true
    strength: heavy
    class: side
    powers:
      - casts:
          - {startup: 11, active: 1, chargeFrames: 61, chargeDamagePerFrame: 0.125}
      - requiresHit: true
        cancelOnGround: true
        casts:
          - {startup: 7, active: 8, damage: 18, useChargedDamage: true, knockbackDir: {x: 3, y: 4}}
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"settings.json":   {Data: []byte(testSettings)},
		"moves/test.yaml": {Data: []byte(testMoves)},
	}
}

func TestLoader_LoadSettings(t *testing.T) {
	loader := NewFSLoader(testFS(), ".")

	cfg, err := loader.LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Display.ScreenWidth)
	assert.Equal(t, 50, cfg.Display.Framerate)
	assert.Equal(t, 400.0, cfg.Physics.Gravity)
	assert.Equal(t, 2, cfg.Movement.AirJumps)
	assert.Equal(t, -300.0, cfg.Stage.BlastZone.MinX)
	assert.Equal(t, 0.05, cfg.Knockback.VarScale)
	assert.True(t, cfg.Match.Debug)
	require.Len(t, cfg.Match.Fighters, 2)
	assert.Equal(t, "p2", cfg.Match.Fighters[1].Name)
	assert.Equal(t, "left", cfg.Match.Fighters[1].Facing)
	assert.Equal(t, 40.0, cfg.Match.Fighters[1].X)
	assert.Len(t, cfg.Controls, 2)
}

func TestLoader_LoadSettings_EnvOverride(t *testing.T) {
	t.Setenv("BRAWL_PHYSICS_GRAVITY", "980")
	t.Setenv("BRAWL_MOVEMENT_AIRJUMPS", "1")

	cfg, err := NewFSLoader(testFS(), ".").LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, 980.0, cfg.Physics.Gravity)
	assert.Equal(t, 1, cfg.Movement.AirJumps)
	assert.Equal(t, 150.0, cfg.Physics.MaxFallSpeed, "untouched keys keep file values")
}

func TestLoader_LoadSettings_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"missing", fstest.MapFS{}},
		{"malformed", fstest.MapFS{"settings.json": {Data: []byte(`{"display": `)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFSLoader(tt.fsys, ".").LoadSettings()
			assert.Error(t, err)
		})
	}
}

func TestSettings_PhysicsConfig(t *testing.T) {
	cfg, err := NewFSLoader(testFS(), ".").LoadSettings()
	require.NoError(t, err)

	phys := cfg.PhysicsConfig()
	assert.InDelta(t, 0.02, phys.TickSeconds, 1e-12)
	assert.Equal(t, 400.0, phys.Gravity)
	assert.Equal(t, 120.0, phys.StageHalfWidth)
	assert.Equal(t, move.Vec2{X: 300, Y: 300}, phys.BlastZone.Max)
	assert.Equal(t, 1.0, phys.Knockback.FixedScale)
	assert.Equal(t, move.Vec2{X: 14.4, Y: 16}, cfg.Hurtbox().Dims)
}

func TestParseFacing(t *testing.T) {
	tests := []struct {
		in   string
		want move.Facing
		ok   bool
	}{
		{"left", move.FacingLeft, true},
		{"right", move.FacingRight, true},
		{"", move.FacingRight, true},
		{"up", move.FacingRight, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFacing(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestLoader_LoadMoveset(t *testing.T) {
	ms, err := NewFSLoader(testFS(), ".").LoadMoveset("test")
	require.NoError(t, err)

	assert.Equal(t, "test", ms.Name)
	require.Len(t, ms.Attacks, 2)

	side := ms.Attacks[0]
	assert.Equal(t, "side_light", side.Name)
	assert.True(t, side.RequiresGrounded)
	assert.Equal(t, move.Light, side.Strength)
	assert.Equal(t, move.Side, side.Class)
	require.Len(t, side.Powers, 2)
	assert.Equal(t, 10, side.Powers[0].CooldownFrames)
	assert.Equal(t, 20, side.Powers[1].TotalRecovery())

	hit := side.Powers[0].Casts[1]
	require.NotNil(t, hit.HitRegion)
	assert.Equal(t, []move.Capsule{{Offset: move.Vec2{X: 7.2, Y: -1}, Dims: move.Vec2{X: 14.4, Y: 5}}}, hit.HitRegion.Shapes)
	assert.Equal(t, &move.Vec2{X: 100}, hit.Velocity)
	assert.True(t, hit.VelocityAllFrames)
	assert.Nil(t, side.Powers[0].Casts[0].HitRegion)

	heavy := ms.Attacks[1]
	assert.Equal(t, move.Heavy, heavy.Strength)
	assert.Equal(t, 61, heavy.Powers[0].Casts[0].AdditionalStartupFrames)
	assert.Equal(t, 0.125, heavy.Powers[0].Casts[0].ExtraDamagePerFrame)
	assert.True(t, heavy.Powers[1].RequiresHit)
	assert.True(t, heavy.Powers[1].CancelOnGround)
	assert.True(t, heavy.Powers[1].Casts[0].UseChargedDamage)
	assert.InDelta(t, 0.6, heavy.Powers[1].Casts[0].KnockbackDir.X, 1e-9)
	assert.InDelta(t, 0.8, heavy.Powers[1].Casts[0].KnockbackDir.Y, 1e-9)
}

func TestLoader_LoadMoveset_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown strength", "attacks:\n  - name: a\n    strength: medium\n    powers:\n      - casts: [{active: 1}]\n"},
		{"unknown class", "attacks:\n  - name: a\n    strength: light\n    class: up\n    powers:\n      - casts: [{active: 1}]\n"},
		{"no powers", "attacks:\n  - name: a\n    strength: light\n"},
		{"no casts", "attacks:\n  - name: a\n    strength: light\n    powers:\n      - cooldown: 1\n"},
		{"conflicting predicates", "attacks:\n  - name: a\n    strength: light\n    powers:\n      - {requiresHit: true, requiresNoHit: true, casts: [{active: 1}]}\n"},
		{"negative frames", "attacks:\n  - name: a\n    strength: light\n    powers:\n      - casts: [{startup: -1, active: 1}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"moves/bad.yaml": {Data: []byte(tt.yaml)}}
			_, err := NewFSLoader(fsys, ".").LoadMoveset("bad")
			assert.ErrorIs(t, err, move.ErrInvalidMove)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		fsys := fstest.MapFS{"moves/bad.yaml": {Data: []byte("attacks: [")}}
		_, err := NewFSLoader(fsys, ".").LoadMoveset("bad")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, move.ErrInvalidMove)
	})
}

func TestLoader_LoadMovesets(t *testing.T) {
	loader := NewFSLoader(testFS(), ".")
	cfg, err := loader.LoadSettings()
	require.NoError(t, err)

	sets, err := loader.LoadMovesets(cfg)
	require.NoError(t, err)
	assert.Len(t, sets, 1)
	assert.Contains(t, sets, "test")
}

func TestLoader_SandboxConfigs(t *testing.T) {
	loader := NewLoader("../../../cmd/sandbox/configs")

	cfg, err := loader.LoadSettings()
	require.NoError(t, err)
	assert.Len(t, cfg.Match.Fighters, 2)

	ms, err := loader.LoadMoveset("unarmed")
	require.NoError(t, err)

	names := make([]string, len(ms.Attacks))
	for i, a := range ms.Attacks {
		names[i] = a.Name
	}
	assert.Equal(t, []string{
		"unarmed_side_light",
		"unarmed_down_light",
		"unarmed_neutral_light",
		"unarmed_aerial_side_light",
		"unarmed_aerial_down_light",
		"unarmed_aerial_neutral_light",
		"unarmed_side_heavy",
		"unarmed_down_heavy",
		"unarmed_neutral_heavy",
		"unarmed_aerial_down_heavy",
		"unarmed_aerial_neutral_heavy",
	}, names)

	aerialDownHeavy := ms.Attacks[9]
	require.Len(t, aerialDownHeavy.Powers, 4)
	assert.True(t, aerialDownHeavy.Powers[0].Casts[2].ActiveUntilCancelled)
	assert.Equal(t, -5.0, aerialDownHeavy.Powers[3].Casts[0].HitRegion.Shapes[0].Offset.Y)
}

func TestSettings_Roster(t *testing.T) {
	loader := NewFSLoader(testFS(), ".")
	cfg, err := loader.LoadSettings()
	require.NoError(t, err)
	sets, err := loader.LoadMovesets(cfg)
	require.NoError(t, err)

	roster, err := cfg.Roster(sets)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "p1", roster[0].Name)
	assert.Equal(t, move.Vec2{X: -40, Y: 8}, roster[0].Spawn)
	assert.Equal(t, move.FacingLeft, roster[1].Facing)
	assert.Equal(t, 3, roster[1].Stocks)
	assert.Same(t, sets["test"], roster[1].Moveset)

	t.Run("unknown facing", func(t *testing.T) {
		bad := *cfg
		bad.Match.Fighters = []FighterSpawn{{Name: "x", Facing: "up", Moveset: "test"}}
		_, err := bad.Roster(sets)
		assert.Error(t, err)
	})

	t.Run("moveset not loaded", func(t *testing.T) {
		_, err := cfg.Roster(map[string]*move.Moveset{})
		assert.Error(t, err)
	})
}
