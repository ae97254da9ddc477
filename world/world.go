package world

import (
	"log"
	"math/rand"
	"strings"
	"sync"

	"github.com/ezrec/critter/cpu"
)

// Id identifies a creature in the world. Id 0 is never a creature.
type Id uint32

// World is a square grid of tiles, with at most one creature per tile.
type World struct {
	Verbose bool // Set to enable verbose logging.

	FoodRate float64 // Probability of a food spawn per respawn.
	MaxFood  int     // Cap on food tiles.
	Sight    int     // Line of sight range, in tiles.

	size     int
	mutex    sync.Mutex
	grid     []Tile
	occupant []Id
	position map[Id]cpu.Point
	rng      *rand.Rand
	food     int
	spawned  int
}

// NewWorld creates a size x size world of empty tiles.
func NewWorld(size int, rng *rand.Rand) (w *World) {
	w = &World{
		FoodRate: 0.25,
		MaxFood:  size * 3 / 4,
		Sight:    8,
		size:     size,
		grid:     make([]Tile, size*size),
		occupant: make([]Id, size*size),
		position: make(map[Id]cpu.Point),
		rng:      rng,
	}

	return
}

// Size returns the width and height of the world.
func (w *World) Size() int {
	return w.size
}

func (w *World) index(at cpu.Point) int {
	return at.Y*w.size + at.X
}

// InBounds returns true if the point is on the grid.
func (w *World) InBounds(at cpu.Point) bool {
	return at.X >= 0 && at.X < w.size && at.Y >= 0 && at.Y < w.size
}

// tile returns the terrain at a point. Outside of the grid is wall.
func (w *World) tile(at cpu.Point) Tile {
	if !w.InBounds(at) {
		return TILE_WALL
	}
	return w.grid[w.index(at)]
}

func (w *World) setTile(at cpu.Point, tile Tile) {
	index := w.index(at)
	if w.grid[index] == TILE_FOOD {
		w.food--
	}
	if tile == TILE_FOOD {
		w.food++
	}
	w.grid[index] = tile
}

func (w *World) occupantAt(at cpu.Point) Id {
	if !w.InBounds(at) {
		return 0
	}
	return w.occupant[w.index(at)]
}

func (w *World) free(at cpu.Point) bool {
	return w.tile(at).Passable() && w.occupantAt(at) == 0
}

// Tile returns the terrain at a point.
func (w *World) Tile(at cpu.Point) Tile {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.tile(at)
}

// SetTile changes the terrain at a point.
func (w *World) SetTile(at cpu.Point, tile Tile) (err error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.InBounds(at) {
		err = ErrOutOfBounds
		return
	}

	if !tile.Passable() && w.occupantAt(at) != 0 {
		err = ErrTileOccupied
		return
	}

	w.setTile(at, tile)
	return
}

// Occupant returns the creature on a tile, or 0.
func (w *World) Occupant(at cpu.Point) Id {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.occupantAt(at)
}

// Free returns true if a creature could move onto the tile.
func (w *World) Free(at cpu.Point) bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.free(at)
}

// Position returns where a creature is.
func (w *World) Position(id Id) (at cpu.Point, ok bool) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	at, ok = w.position[id]
	return
}

// Population returns the number of creatures placed in the world.
func (w *World) Population() int {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return len(w.position)
}

// Place puts a new creature on a free tile.
func (w *World) Place(id Id, at cpu.Point) (err error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.place(id, at)
}

func (w *World) place(id Id, at cpu.Point) (err error) {
	_, placed := w.position[id]

	switch {
	case id == 0:
		err = ErrIdInvalid
	case placed:
		err = ErrIdDuplicate
	case !w.InBounds(at):
		err = ErrOutOfBounds
	case !w.tile(at).Passable():
		err = ErrTileBlocked
	case w.occupantAt(at) != 0:
		err = ErrTileOccupied
	}
	if err != nil {
		return
	}

	w.occupant[w.index(at)] = id
	w.position[id] = at

	if w.Verbose {
		log.Printf("world: place %d at %v", id, at)
	}

	return
}

// PlaceRandom puts a new creature on a random free tile.
func (w *World) PlaceRandom(id Id) (at cpu.Point, err error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for range 100 {
		at = cpu.Point{X: w.rng.Intn(w.size), Y: w.rng.Intn(w.size)}
		if w.free(at) {
			err = w.place(id, at)
			return
		}
	}

	// Crowded; take the first free tile.
	for index := range w.grid {
		at = cpu.Point{X: index % w.size, Y: index / w.size}
		if w.free(at) {
			err = w.place(id, at)
			return
		}
	}

	err = ErrWorldFull
	return
}

// Move commits a creature's move from one tile to another.
//
// The move fails, changing nothing, if the creature is not at from or the
// destination is not free at the time of the commit.
func (w *World) Move(id Id, from, to cpu.Point) (ok bool) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if id == 0 || w.occupantAt(from) != id || !w.free(to) {
		return
	}

	w.occupant[w.index(from)] = 0
	w.occupant[w.index(to)] = id
	w.position[id] = to

	return true
}

// Remove takes a creature out of the world.
func (w *World) Remove(id Id) (ok bool) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	at, ok := w.position[id]
	if !ok {
		return
	}

	w.occupant[w.index(at)] = 0
	delete(w.position, id)

	if w.Verbose {
		log.Printf("world: remove %d from %v", id, at)
	}

	return
}

// LineOfSight returns the colour of the first tile or creature seen from a
// point, looking in a direction, within Sight tiles. The edge of the world
// is seen as wall. Returns COLOUR_NONE if nothing is in sight.
func (w *World) LineOfSight(from cpu.Point, dir cpu.Direction) (colour uint32) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for distance := 1; distance <= w.Sight; distance++ {
		at := from.Step(dir, distance)
		if w.occupantAt(at) != 0 {
			return COLOUR_CREATURE
		}
		colour = w.tile(at).Colour()
		if colour != COLOUR_NONE {
			return
		}
	}

	return
}

// Eat consumes the food at a point, if any.
func (w *World) Eat(at cpu.Point) (ok bool) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.tile(at) != TILE_FOOD {
		return
	}

	w.setTile(at, TILE_EMPTY)
	return true
}

// FoodCount returns the number of food tiles.
func (w *World) FoodCount() int {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.food
}

// FoodSpawned returns the number of food tiles spawned since creation.
func (w *World) FoodSpawned() int {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.spawned
}

// Scatter places up to count tiles on random empty, unoccupied points,
// returning the number placed.
func (w *World) Scatter(tile Tile, count int) (placed int) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for range count {
		if tile == TILE_FOOD && w.food >= w.MaxFood {
			break
		}
		for range 50 {
			at := cpu.Point{X: w.rng.Intn(w.size), Y: w.rng.Intn(w.size)}
			if w.tile(at) == TILE_EMPTY && w.occupantAt(at) == 0 {
				w.setTile(at, tile)
				placed++
				break
			}
		}
	}

	if tile == TILE_FOOD {
		w.spawned += placed
	}

	return
}

// RespawnFood has a FoodRate chance of placing 1 to 3 food tiles,
// never exceeding MaxFood. Returns the number placed.
func (w *World) RespawnFood() (placed int) {
	w.mutex.Lock()
	if w.food >= w.MaxFood || w.rng.Float64() > w.FoodRate {
		w.mutex.Unlock()
		return
	}
	count := 1 + w.rng.Intn(3)
	w.mutex.Unlock()

	placed = w.Scatter(TILE_FOOD, count)

	if w.Verbose && placed > 0 {
		log.Printf("world: spawned %d food", placed)
	}

	return
}

// String renders the grid, north up, as text.
func (w *World) String() string {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	var text strings.Builder
	for y := w.size - 1; y >= 0; y-- {
		for x := range w.size {
			at := cpu.Point{X: x, Y: y}
			var ch byte
			switch {
			case w.occupantAt(at) != 0:
				ch = '@'
			case w.tile(at) == TILE_WALL:
				ch = '#'
			case w.tile(at) == TILE_FOOD:
				ch = '*'
			case w.tile(at) == TILE_ROCK:
				ch = 'o'
			default:
				ch = '.'
			}
			text.WriteByte(ch)
		}
		text.WriteByte('\n')
	}
	return text.String()
}
