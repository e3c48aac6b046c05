package combo

import "github.com/younwookim/brawl/internal/domain/move"

// RegionID is the lightweight handle a hit region carries through the
// collision space. Zero means "no region".
type RegionID uint32

// RegionRef is what a region id resolves to
type RegionRef struct {
	Owner  BodyID
	Attack int // index into the owner's moveset
	Power  int
	Cast   int
	Facing move.Facing
	Shapes []move.Capsule // already mirrored for Facing
}

// Regions is the side table from region ids to their owning cast.
// One table is shared by every fighter of a match.
type Regions struct {
	refs []RegionRef
}

// NewRegions creates an empty region table
func NewRegions() *Regions {
	return &Regions{refs: make([]RegionRef, 0, 64)}
}

// Lookup resolves a region id
func (r *Regions) Lookup(id RegionID) (RegionRef, bool) {
	if id == 0 || int(id) > len(r.refs) {
		return RegionRef{}, false
	}
	return r.refs[id-1], true
}

// Len returns the number of registered regions
func (r *Regions) Len() int {
	return len(r.refs)
}

func (r *Regions) register(ref RegionRef) RegionID {
	r.refs = append(r.refs, ref)
	return RegionID(len(r.refs))
}

// registerAttack allocates a left and right region id for every cast with a hit region
func (r *Regions) registerAttack(owner BodyID, attackIdx int, a *move.Attack) [][][2]RegionID {
	ids := make([][][2]RegionID, len(a.Powers))
	for pi := range a.Powers {
		p := &a.Powers[pi]
		ids[pi] = make([][2]RegionID, len(p.Casts))
		for ci := range p.Casts {
			region := p.Casts[ci].HitRegion
			if region == nil {
				continue
			}
			for _, f := range [...]move.Facing{move.FacingLeft, move.FacingRight} {
				ids[pi][ci][f] = r.register(RegionRef{
					Owner:  owner,
					Attack: attackIdx,
					Power:  pi,
					Cast:   ci,
					Facing: f,
					Shapes: region.ShapesFor(f),
				})
			}
		}
	}
	return ids
}
