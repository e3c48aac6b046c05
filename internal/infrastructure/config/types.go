package config

import (
	"fmt"

	"github.com/younwookim/brawl/internal/domain/combo"
	"github.com/younwookim/brawl/internal/domain/move"
	"github.com/younwookim/brawl/internal/ecs"
)

// Settings is the root config for settings.json
type Settings struct {
	Display   DisplayConfig       `mapstructure:"display"`
	Physics   PhysicsSettings     `mapstructure:"physics"`
	Movement  MovementConfig      `mapstructure:"movement"`
	Stage     StageConfig         `mapstructure:"stage"`
	Knockback KnockbackConfig     `mapstructure:"knockback"`
	Fighter   FighterConfig       `mapstructure:"fighter"`
	Match     MatchConfig         `mapstructure:"match"`
	Controls  map[string][]string `mapstructure:"controls"` // button name -> ebiten key names
}

type DisplayConfig struct {
	ScreenWidth   int     `mapstructure:"screenWidth"`
	ScreenHeight  int     `mapstructure:"screenHeight"`
	Scale         int     `mapstructure:"scale"`
	Framerate     int     `mapstructure:"framerate"`
	PixelsPerUnit float64 `mapstructure:"pixelsPerUnit"`
}

type PhysicsSettings struct {
	Gravity       float64 `mapstructure:"gravity"`
	MaxFallSpeed  float64 `mapstructure:"maxFallSpeed"`
	FastFallSpeed float64 `mapstructure:"fastFallSpeed"`
}

type MovementConfig struct {
	RunSpeed       float64 `mapstructure:"runSpeed"`
	AirSpeed       float64 `mapstructure:"airSpeed"`
	GroundFriction float64 `mapstructure:"groundFriction"`
	AirFriction    float64 `mapstructure:"airFriction"`
	JumpSpeed      float64 `mapstructure:"jumpSpeed"`
	AirJumps       int     `mapstructure:"airJumps"`
}

type StageConfig struct {
	FloorY    float64    `mapstructure:"floorY"`
	HalfWidth float64    `mapstructure:"halfWidth"`
	BlastZone RectConfig `mapstructure:"blastZone"`
}

type RectConfig struct {
	MinX float64 `mapstructure:"minX"`
	MinY float64 `mapstructure:"minY"`
	MaxX float64 `mapstructure:"maxX"`
	MaxY float64 `mapstructure:"maxY"`
}

type KnockbackConfig struct {
	FixedScale float64 `mapstructure:"fixedScale"`
	VarScale   float64 `mapstructure:"varScale"`
}

type FighterConfig struct {
	HurtboxWidth  float64 `mapstructure:"hurtboxWidth"`
	HurtboxHeight float64 `mapstructure:"hurtboxHeight"`
	Stocks        int     `mapstructure:"stocks"`
}

type MatchConfig struct {
	Debug    bool           `mapstructure:"debug"`
	Fighters []FighterSpawn `mapstructure:"fighters"`
}

// FighterSpawn places one fighter at match start
type FighterSpawn struct {
	Name    string  `mapstructure:"name"`
	X       float64 `mapstructure:"x"`
	Y       float64 `mapstructure:"y"`
	Facing  string  `mapstructure:"facing"` // "left" or "right"
	Moveset string  `mapstructure:"moveset"`
}

// TickSeconds returns the duration of one simulation tick
func (s *Settings) TickSeconds() float64 {
	if s.Display.Framerate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(s.Display.Framerate)
}

// PhysicsConfig converts the settings into the per-tick physics config
func (s *Settings) PhysicsConfig() ecs.PhysicsConfig {
	return ecs.PhysicsConfig{
		TickSeconds:    s.TickSeconds(),
		Gravity:        s.Physics.Gravity,
		MaxFallSpeed:   s.Physics.MaxFallSpeed,
		FastFallSpeed:  s.Physics.FastFallSpeed,
		RunSpeed:       s.Movement.RunSpeed,
		AirSpeed:       s.Movement.AirSpeed,
		GroundFriction: s.Movement.GroundFriction,
		AirFriction:    s.Movement.AirFriction,
		JumpSpeed:      s.Movement.JumpSpeed,
		AirJumps:       s.Movement.AirJumps,
		FloorY:         s.Stage.FloorY,
		StageHalfWidth: s.Stage.HalfWidth,
		BlastZone: ecs.Bounds{
			Min: move.Vec2{X: s.Stage.BlastZone.MinX, Y: s.Stage.BlastZone.MinY},
			Max: move.Vec2{X: s.Stage.BlastZone.MaxX, Y: s.Stage.BlastZone.MaxY},
		},
		Knockback: combo.Knockback{
			FixedScale: s.Knockback.FixedScale,
			VarScale:   s.Knockback.VarScale,
		},
	}
}

// Hurtbox returns the fighter hurtbox centered on the body
func (s *Settings) Hurtbox() move.Capsule {
	return move.Capsule{Dims: move.Vec2{X: s.Fighter.HurtboxWidth, Y: s.Fighter.HurtboxHeight}}
}

// ParseFacing converts "left"/"right" into a facing
func ParseFacing(s string) (move.Facing, bool) {
	switch s {
	case "left", "Left":
		return move.FacingLeft, true
	case "right", "Right", "":
		return move.FacingRight, true
	default:
		return move.FacingRight, false
	}
}

// Roster builds the match fighters from the spawn list and loaded movesets
func (s *Settings) Roster(sets map[string]*move.Moveset) ([]ecs.FighterConfig, error) {
	out := make([]ecs.FighterConfig, 0, len(s.Match.Fighters))
	for i, f := range s.Match.Fighters {
		facing, ok := ParseFacing(f.Facing)
		if !ok {
			return nil, fmt.Errorf("fighter %d (%s): unknown facing %q", i, f.Name, f.Facing)
		}
		ms, ok := sets[f.Moveset]
		if !ok {
			return nil, fmt.Errorf("fighter %d (%s): moveset %q not loaded", i, f.Name, f.Moveset)
		}
		out = append(out, ecs.FighterConfig{
			Name:    f.Name,
			Spawn:   move.Vec2{X: f.X, Y: f.Y},
			Facing:  facing,
			Hurtbox: s.Hurtbox(),
			Stocks:  s.Fighter.Stocks,
			Moveset: ms,
		})
	}
	return out, nil
}
