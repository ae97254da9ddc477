// Package world is the tile grid that creatures live on.
//
// The world tracks terrain and occupancy, and answers the movement and
// line of sight queries of the creatures' bodies. All methods are safe
// for concurrent use.
package world
