package world

//go:generate go tool stringer -linecomment -type=Tile

// Tile is the terrain of a grid cell. Occupancy is tracked separately.
//
// Walls and rocks are impassable, and food is eaten when stood on.
type Tile byte

const (
	TILE_EMPTY = Tile(iota) // empty
	TILE_WALL               // wall
	TILE_FOOD               // food
	TILE_ROCK               // rock
)

// Colours seen along a line of sight, as 0xRRGGBB.
const (
	COLOUR_NONE     = uint32(0x000000)
	COLOUR_WALL     = uint32(0x808080)
	COLOUR_FOOD     = uint32(0x00c000)
	COLOUR_ROCK     = uint32(0x8b5a2b)
	COLOUR_CREATURE = uint32(0xe00000)
)

// Passable returns true if a creature may stand on the tile.
func (t Tile) Passable() bool {
	return t == TILE_EMPTY || t == TILE_FOOD
}

// Colour returns the colour of the tile.
func (t Tile) Colour() uint32 {
	switch t {
	case TILE_WALL:
		return COLOUR_WALL
	case TILE_FOOD:
		return COLOUR_FOOD
	case TILE_ROCK:
		return COLOUR_ROCK
	}
	return COLOUR_NONE
}
