package config

import (
	"fmt"

	"github.com/younwookim/brawl/internal/domain/move"
)

// MovesetFile is the root of a moves/<name>.yaml file
type MovesetFile struct {
	Name    string       `yaml:"name"`
	Attacks []AttackFile `yaml:"attacks"`
}

type AttackFile struct {
	Name              string      `yaml:"name"`
	Grounded          bool        `yaml:"grounded"`
	Strength          string      `yaml:"strength"` // light, heavy
	Class             string      `yaml:"class"`    // neutral, side, down
	AirJumpSubstitute bool        `yaml:"airJumpSubstitute"`
	Powers            []PowerFile `yaml:"powers"`
}

type PowerFile struct {
	Casts []CastFile `yaml:"casts"`

	Cooldown      int `yaml:"cooldown"`
	FixedRecovery int `yaml:"fixedRecovery"`
	Recovery      int `yaml:"recovery"`
	MinCharge     int `yaml:"minCharge"`
	Stun          int `yaml:"stun"`

	RequiresHit      bool `yaml:"requiresHit"`
	RequiresNoHit    bool `yaml:"requiresNoHit"`
	RequiresGrounded bool `yaml:"requiresGrounded"`
	RequiresAirborne bool `yaml:"requiresAirborne"`

	CancelOnHit    bool `yaml:"cancelOnHit"`
	CancelOnGround bool `yaml:"cancelOnGround"`
}

type CastFile struct {
	Startup int `yaml:"startup"`
	Active  int `yaml:"active"`

	Damage     float64 `yaml:"damage"`
	VarForce   float64 `yaml:"varForce"`
	FixedForce float64 `yaml:"fixedForce"`

	KnockbackDir      *Vec2File     `yaml:"knockbackDir"`
	Velocity          *Vec2File     `yaml:"velocity"`
	VelocityAllFrames bool          `yaml:"velocityAllFrames"`
	HitRegion         []CapsuleFile `yaml:"hitRegion"`

	SelfVelocityOnHit    *Vec2File `yaml:"selfVelocityOnHit"`
	CancelVictimVelocity bool      `yaml:"cancelVictimVelocity"`

	ChargeFrames         int     `yaml:"chargeFrames"`
	ChargeDamagePerFrame float64 `yaml:"chargeDamagePerFrame"`
	ActiveUntilCancelled bool    `yaml:"activeUntilCancelled"`
	UseChargedDamage     bool    `yaml:"useChargedDamage"`
}

type Vec2File struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type CapsuleFile struct {
	Offset Vec2File `yaml:"offset"`
	Width  float64  `yaml:"w"`
	Height float64  `yaml:"h"`
}

func (v *Vec2File) vec() *move.Vec2 {
	if v == nil {
		return nil
	}
	return &move.Vec2{X: v.X, Y: v.Y}
}

// Moveset converts the file into validated move templates
func (f *MovesetFile) Moveset() (*move.Moveset, error) {
	ms := &move.Moveset{Name: f.Name, Attacks: make([]*move.Attack, 0, len(f.Attacks))}

	for _, af := range f.Attacks {
		a, err := af.attack()
		if err != nil {
			return nil, err
		}
		ms.Attacks = append(ms.Attacks, a)
	}

	if err := ms.Validate(); err != nil {
		return nil, err
	}
	return ms, nil
}

func (af *AttackFile) attack() (*move.Attack, error) {
	a := &move.Attack{
		Name:              af.Name,
		RequiresGrounded:  af.Grounded,
		AirJumpSubstitute: af.AirJumpSubstitute,
		Powers:            make([]move.Power, len(af.Powers)),
	}

	switch af.Strength {
	case "light":
		a.Strength = move.Light
	case "heavy":
		a.Strength = move.Heavy
	default:
		return nil, fmt.Errorf("%w: %s: unknown strength %q", move.ErrInvalidMove, af.Name, af.Strength)
	}

	switch af.Class {
	case "neutral", "":
		a.Class = move.Neutral
	case "side":
		a.Class = move.Side
	case "down":
		a.Class = move.Down
	default:
		return nil, fmt.Errorf("%w: %s: unknown class %q", move.ErrInvalidMove, af.Name, af.Class)
	}

	for i, pf := range af.Powers {
		p := move.Power{
			Casts:               make([]move.Cast, len(pf.Casts)),
			CooldownFrames:      pf.Cooldown,
			FixedRecoveryFrames: pf.FixedRecovery,
			RecoveryFrames:      pf.Recovery,
			MinChargeFrames:     pf.MinCharge,
			StunFrames:          pf.Stun,
			RequiresHit:         pf.RequiresHit,
			RequiresNoHit:       pf.RequiresNoHit,
			RequiresGrounded:    pf.RequiresGrounded,
			RequiresAirborne:    pf.RequiresAirborne,
			CancelOnHit:         pf.CancelOnHit,
			CancelOnGround:      pf.CancelOnGround,
		}
		for j, cf := range pf.Casts {
			p.Casts[j] = cf.cast()
		}
		a.Powers[i] = p
	}
	return a, nil
}

func (cf *CastFile) cast() move.Cast {
	c := move.Cast{
		StartupFrames:           cf.Startup,
		ActiveFrames:            cf.Active,
		BaseDamage:              cf.Damage,
		VarForce:                cf.VarForce,
		FixedForce:              cf.FixedForce,
		Velocity:                cf.Velocity.vec(),
		VelocityAllFrames:       cf.VelocityAllFrames,
		SelfVelocityOnHit:       cf.SelfVelocityOnHit.vec(),
		CancelVictimVelocity:    cf.CancelVictimVelocity,
		AdditionalStartupFrames: cf.ChargeFrames,
		ExtraDamagePerFrame:     cf.ChargeDamagePerFrame,
		ActiveUntilCancelled:    cf.ActiveUntilCancelled,
		UseChargedDamage:        cf.UseChargedDamage,
	}
	if d := cf.KnockbackDir.vec(); d != nil {
		c.KnockbackDir = d.Normalize()
	}
	if len(cf.HitRegion) > 0 {
		shapes := make([]move.Capsule, len(cf.HitRegion))
		for i, s := range cf.HitRegion {
			shapes[i] = move.Capsule{
				Offset: move.Vec2{X: s.Offset.X, Y: s.Offset.Y},
				Dims:   move.Vec2{X: s.Width, Y: s.Height},
			}
		}
		c.HitRegion = &move.HitRegion{Shapes: shapes}
	}
	return c
}
