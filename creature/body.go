package creature

import (
	"github.com/ezrec/critter/cpu"
	"github.com/ezrec/critter/world"
)

// Vitals are the internal state a creature can sense.
type Vitals struct {
	Health uint64 // 0 is dead.
	Hunger uint64 // Fullness; 0 is starving.
	Waste  uint64 // Undigested waste.
}

// Body is a creature's presence in the world.
//
// The position is cached; only the body itself moves its creature.
type Body struct {
	Vitals Vitals // Sensed state.

	id       world.Id
	world    *world.World
	position cpu.Point
	facing   cpu.Direction
}

var _ cpu.Body = (*Body)(nil)

// NewBody places a creature in the world.
func NewBody(id world.Id, w *world.World, at cpu.Point, facing cpu.Direction) (body *Body, err error) {
	err = w.Place(id, at)
	if err != nil {
		return
	}

	body = &Body{
		id:       id,
		world:    w,
		position: at,
		facing:   facing,
	}

	return
}

// NewBodyRandom places a creature on a random free tile.
func NewBodyRandom(id world.Id, w *world.World, facing cpu.Direction) (body *Body, err error) {
	at, err := w.PlaceRandom(id)
	if err != nil {
		return
	}

	body = &Body{
		id:       id,
		world:    w,
		position: at,
		facing:   facing,
	}

	return
}

func (b *Body) Id() world.Id           { return b.id }
func (b *Body) World() *world.World    { return b.world }
func (b *Body) Position() cpu.Point    { return b.position }
func (b *Body) Facing() cpu.Direction  { return b.facing }
func (b *Body) Face(dir cpu.Direction) { b.facing = dir }
func (b *Body) Free(at cpu.Point) bool { return b.world.Free(at) }
func (b *Body) Health() uint64         { return b.Vitals.Health }
func (b *Body) Hunger() uint64         { return b.Vitals.Hunger }
func (b *Body) Waste() uint64          { return b.Vitals.Waste }
func (b *Body) LineOfSight() uint32    { return b.world.LineOfSight(b.position, b.facing) }

// MoveTo commits a move in the world, updating the position on success.
func (b *Body) MoveTo(at cpu.Point) (ok bool) {
	ok = b.world.Move(b.id, b.position, at)
	if ok {
		b.position = at
	}
	return
}

// Leave removes the body from the world.
func (b *Body) Leave() {
	b.world.Remove(b.id)
}
