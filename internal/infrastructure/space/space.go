// Package space is the collision space shared by every fighter of a match.
// It implements combo.Sink on top of the ECS world and reports hit-region
// versus hurtbox overlaps once per tick.
package space

import (
	"slices"

	"github.com/younwookim/brawl/internal/domain/combo"
	"github.com/younwookim/brawl/internal/domain/move"
	"github.com/younwookim/brawl/internal/ecs"
)

// Contact is a live hit region overlapping another fighter's hurtbox
type Contact struct {
	Region combo.RegionID
	Ref    combo.RegionRef
	Victim ecs.EntityID
}

// Space holds the set of live hit regions
type Space struct {
	world *ecs.World
	live  map[combo.RegionID]struct{}
}

// New creates an empty collision space over the world
func New(w *ecs.World) *Space {
	return &Space{
		world: w,
		live:  make(map[combo.RegionID]struct{}),
	}
}

// CreateRegion adds a hit region to the space
func (s *Space) CreateRegion(id combo.RegionID) {
	s.live[id] = struct{}{}
}

// DestroyRegion removes a hit region from the space
func (s *Space) DestroyRegion(id combo.RegionID) {
	delete(s.live, id)
}

// ApplyImpulse adds to a body's velocity (unit mass)
func (s *Space) ApplyImpulse(body combo.BodyID, impulse move.Vec2) {
	id := ecs.EntityID(body)
	b, ok := s.world.Body[id]
	if !ok {
		return
	}
	b.Vel = b.Vel.Add(impulse)
	s.world.Body[id] = b
}

// SetVelocity replaces a body's velocity
func (s *Space) SetVelocity(body combo.BodyID, velocity move.Vec2) {
	id := ecs.EntityID(body)
	b, ok := s.world.Body[id]
	if !ok {
		return
	}
	b.Vel = velocity
	s.world.Body[id] = b
}

// SuspendGravity toggles gravity for a body
func (s *Space) SuspendGravity(body combo.BodyID, suspended bool) {
	id := ecs.EntityID(body)
	b, ok := s.world.Body[id]
	if !ok {
		return
	}
	b.GravitySuspended = suspended
	s.world.Body[id] = b
}

// Live returns the live region ids in ascending order
func (s *Space) Live() []combo.RegionID {
	ids := make([]combo.RegionID, 0, len(s.live))
	for id := range s.live {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Detect returns every live region touching another fighter's hurtbox.
// Each (region, victim) pair is reported once; a fighter never hits itself.
func (s *Space) Detect() []Contact {
	var contacts []Contact

	for _, id := range s.Live() {
		ref, ok := s.world.Regions.Lookup(id)
		if !ok {
			continue
		}
		owner := ecs.EntityID(ref.Owner)
		origin := s.world.Body[owner].Pos

		for _, victim := range s.world.Fighters {
			if victim == owner {
				continue
			}
			hurt := s.world.Hurtbox[victim].Shape
			at := s.world.Body[victim].Pos
			for _, shape := range ref.Shapes {
				if shape.Overlaps(origin, hurt, at) {
					contacts = append(contacts, Contact{Region: id, Ref: ref, Victim: victim})
					break
				}
			}
		}
	}

	return contacts
}

// Reset drops every live region
func (s *Space) Reset() {
	clear(s.live)
}
