// Package creature binds a DNA tape, a processor and a body in the world.
package creature
