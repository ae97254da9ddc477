package cpu

import (
	"fmt"
)

// Direction is the way a creature faces on the grid.
type Direction int

// Directions are in clockwise order, looking down on the grid.
//
//go:generate go tool stringer -linecomment -type=Direction
const (
	NORTH = Direction(0) // north
	EAST  = Direction(1) // east
	SOUTH = Direction(2) // south
	WEST  = Direction(3) // west
)

// DIRECTIONS is the number of directions.
const DIRECTIONS = 4

// Clockwise returns the direction after a 90 degree clockwise turn.
func (d Direction) Clockwise() Direction {
	return (d + 1) % DIRECTIONS
}

// CounterClockwise returns the direction after a 90 degree counter-clockwise turn.
func (d Direction) CounterClockwise() Direction {
	return (d + DIRECTIONS - 1) % DIRECTIONS
}

// Delta returns the unit step for the direction.
// North is towards positive y, east towards positive x.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case NORTH:
		dy = 1
	case SOUTH:
		dy = -1
	case EAST:
		dx = 1
	case WEST:
		dx = -1
	}
	return
}

// Point is a tile coordinate.
type Point struct {
	X int
	Y int
}

// Step returns the point count tiles away in direction d.
func (p Point) Step(d Direction, count int) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx*count, Y: p.Y + dy*count}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
