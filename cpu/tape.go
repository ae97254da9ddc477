package cpu

import (
	"slices"
)

// Tape is a creature's DNA and the offset of the next instruction.
//
// A tape has no terminator: reads past the end wrap to the start.
type Tape struct {
	Data    []byte // Instruction bytes.
	Current int    // Offset of the next instruction to fetch.
}

// NewTape creates a tape positioned at offset 0.
func NewTape(data ...byte) *Tape {
	return &Tape{Data: data}
}

// Len returns the length of the tape.
func (tp *Tape) Len() int {
	return len(tp.Data)
}

// Empty returns true if the tape holds no instructions.
func (tp *Tape) Empty() bool {
	return len(tp.Data) == 0
}

// wrap maps any offset, including negative ones, onto the tape.
func (tp *Tape) wrap(offset int) int {
	size := len(tp.Data)
	return ((offset % size) + size) % size
}

// At reads the byte at offset, wrapping circularly. The tape must not be empty.
func (tp *Tape) At(offset int) byte {
	return tp.Data[tp.wrap(offset)]
}

// Seek sets the current offset, modulo the tape length.
func (tp *Tape) Seek(offset int) {
	if tp.Empty() {
		tp.Current = 0
		return
	}
	tp.Current = tp.wrap(offset)
}

// Advance moves the current offset forward by count bytes.
func (tp *Tape) Advance(count int) {
	tp.Seek(tp.Current + count)
}

// Clamp re-clamps the current offset after the tape data changed length.
func (tp *Tape) Clamp() {
	tp.Seek(tp.Current)
}

// Clone returns an independent copy of the tape.
func (tp *Tape) Clone() *Tape {
	return &Tape{
		Data:    slices.Clone(tp.Data),
		Current: tp.Current,
	}
}
