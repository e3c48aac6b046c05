package move

import (
	"errors"
	"fmt"
)

// ErrInvalidMove is returned for authored data that would stall or break the resolver
var ErrInvalidMove = errors.New("invalid move data")

func invalid(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidMove, path, fmt.Sprintf(format, args...))
}

// Validate checks the cast's frame data
func (c *Cast) Validate(path string) error {
	if c.StartupFrames < 0 {
		return invalid(path, "negative startup frames %d", c.StartupFrames)
	}
	if c.ActiveFrames < 0 {
		return invalid(path, "negative active frames %d", c.ActiveFrames)
	}
	if c.AdditionalStartupFrames < 0 {
		return invalid(path, "negative additional startup frames %d", c.AdditionalStartupFrames)
	}
	if c.ExtraDamagePerFrame < 0 {
		return invalid(path, "negative charge damage %g", c.ExtraDamagePerFrame)
	}
	if c.BaseDamage < 0 {
		return invalid(path, "negative base damage %g", c.BaseDamage)
	}
	if c.HitRegion != nil {
		for i, s := range c.HitRegion.Shapes {
			if s.Dims.X <= 0 || s.Dims.Y <= 0 {
				return invalid(path, "shape %d has non-positive dims", i)
			}
		}
	}
	return nil
}

// Validate checks the power and all of its casts
func (p *Power) Validate(path string) error {
	if len(p.Casts) == 0 {
		return invalid(path, "power has no casts")
	}
	if p.CooldownFrames < 0 || p.RecoveryFrames < 0 || p.FixedRecoveryFrames < 0 ||
		p.MinChargeFrames < 0 || p.StunFrames < 0 {
		return invalid(path, "negative frame count")
	}
	if p.RequiresHit && p.RequiresNoHit {
		return invalid(path, "requires both hit and no hit")
	}
	if p.RequiresGrounded && p.RequiresAirborne {
		return invalid(path, "requires both grounded and airborne")
	}
	for i := range p.Casts {
		if err := p.Casts[i].Validate(fmt.Sprintf("%s/cast[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the attack and all of its powers
func (a *Attack) Validate() error {
	if a.Name == "" {
		return invalid("attack", "missing name")
	}
	if len(a.Powers) == 0 {
		return invalid(a.Name, "attack has no powers")
	}
	if a.Strength != Light && a.Strength != Heavy {
		return invalid(a.Name, "unknown hit strength %d", a.Strength)
	}
	if a.Class != Neutral && a.Class != Side && a.Class != Down {
		return invalid(a.Name, "unknown move class %d", a.Class)
	}
	for i := range a.Powers {
		if err := a.Powers[i].Validate(fmt.Sprintf("%s/power[%d]", a.Name, i)); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks every attack and rejects duplicate names
func (m *Moveset) Validate() error {
	if len(m.Attacks) == 0 {
		return invalid(m.Name, "moveset has no attacks")
	}
	seen := make(map[string]struct{}, len(m.Attacks))
	for _, a := range m.Attacks {
		if a == nil {
			return invalid(m.Name, "nil attack")
		}
		if err := a.Validate(); err != nil {
			return err
		}
		if _, ok := seen[a.Name]; ok {
			return invalid(m.Name, "duplicate attack %q", a.Name)
		}
		seen[a.Name] = struct{}{}
	}
	return nil
}
