package cpu

// Navigator is the world collaborator that moves a creature.
type Navigator interface {
	Position() Point      // Current tile.
	Facing() Direction    // Current facing.
	Face(dir Direction)   // Turn to face dir.
	Free(at Point) bool   // True if the tile can be entered.
	MoveTo(at Point) bool // Move to the tile; false if it was taken.
}

// Senses is the read-only attribute collaborator of a creature.
type Senses interface {
	Health() uint64
	Hunger() uint64
	Waste() uint64
	LineOfSight() uint32 // Colour seen ahead, as 0xRRGGBB.
}

// Body is everything a Cpu can reach outside of its registers.
type Body interface {
	Navigator
	Senses
}
