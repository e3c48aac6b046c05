package ecs

import (
	"github.com/younwookim/brawl/internal/domain/combo"
	"github.com/younwookim/brawl/internal/domain/input"
	"github.com/younwookim/brawl/internal/domain/move"
)

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// World holds all component maps and the next entity ID
type World struct {
	nextID EntityID

	// Components
	Body     map[EntityID]Body
	Movement map[EntityID]Movement
	Fighter  map[EntityID]Fighter
	Hurtbox  map[EntityID]Hurtbox
	Input    map[EntityID]*input.Snapshot
	Moveset  map[EntityID]*combo.Moveset

	// Fighters in creation order; systems iterate this for determinism
	Fighters []EntityID

	// Regions is shared by every fighter's moveset
	Regions *combo.Regions
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:   1, // 0 is "nil"
		Body:     make(map[EntityID]Body),
		Movement: make(map[EntityID]Movement),
		Fighter:  make(map[EntityID]Fighter),
		Hurtbox:  make(map[EntityID]Hurtbox),
		Input:    make(map[EntityID]*input.Snapshot),
		Moveset:  make(map[EntityID]*combo.Moveset),
		Regions:  combo.NewRegions(),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id EntityID) {
	delete(w.Body, id)
	delete(w.Movement, id)
	delete(w.Fighter, id)
	delete(w.Hurtbox, id)
	delete(w.Input, id)
	delete(w.Moveset, id)
	for i, f := range w.Fighters {
		if f == id {
			w.Fighters = append(w.Fighters[:i], w.Fighters[i+1:]...)
			break
		}
	}
}

// Exists checks if an entity has a Body component
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Body[id]
	return ok
}

// FighterConfig holds configuration for creating a fighter
type FighterConfig struct {
	Name    string
	Spawn   move.Vec2
	Facing  move.Facing
	Hurtbox move.Capsule
	Stocks  int
	Moveset *move.Moveset
}

// CreateFighter creates a fighter entity with its own run-time moveset
func (w *World) CreateFighter(cfg FighterConfig, airJumps int) EntityID {
	id := w.NewEntity()

	w.Body[id] = Body{Pos: cfg.Spawn}
	w.Movement[id] = Movement{AirJumps: airJumps}
	w.Fighter[id] = Fighter{
		Name:   cfg.Name,
		Facing: cfg.Facing,
		Spawn:  cfg.Spawn,
		Stocks: cfg.Stocks,
	}
	w.Hurtbox[id] = Hurtbox{Shape: cfg.Hurtbox}
	w.Input[id] = &input.Snapshot{}
	if cfg.Moveset != nil {
		w.Moveset[id] = combo.NewMoveset(cfg.Moveset, combo.BodyID(id), w.Regions)
	}
	w.Fighters = append(w.Fighters, id)

	return id
}

// Attacking returns the fighter's running attack, or nil
func (w *World) Attacking(id EntityID) *combo.AttackState {
	m, ok := w.Moveset[id]
	if !ok {
		return nil
	}
	return m.Running()
}

// Target returns the hit-resolution view of a fighter
func (w *World) Target(id EntityID) combo.Target {
	return target{w: w, id: id}
}

type target struct {
	w  *World
	id EntityID
}

func (t target) Body() combo.BodyID { return combo.BodyID(t.id) }

func (t target) Latch() bool {
	f := t.w.Fighter[t.id]
	if f.HitThisTick {
		return false
	}
	f.HitThisTick = true
	t.w.Fighter[t.id] = f
	return true
}

func (t target) AddDamage(amount float64) float64 {
	f := t.w.Fighter[t.id]
	f.Damage += amount
	t.w.Fighter[t.id] = f
	return f.Damage
}

func (t target) SetStun(frames int) {
	f := t.w.Fighter[t.id]
	f.Stun = frames
	t.w.Fighter[t.id] = f
}
