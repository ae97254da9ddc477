package processor

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Word is the set of register word types a processor may use.
type Word interface {
	constraints.Unsigned
}

// Memory is the register file capability set of a processor.
type Memory[W Word] interface {
	A() W     // Value of register A.
	B() W     // Value of register B.
	Tmp() W   // Value of register TMP.
	SetA(W)   // Update register A.
	SetB(W)   // Update register B.
	SetTmp(W) // Update register TMP.
	Reset()   // Zero all registers.
}

// Registers is the default register file. The zero value is ready to use.
type Registers[W Word] struct {
	a   W
	b   W
	tmp W
}

var _ Memory[uint64] = (*Registers[uint64])(nil)

// NewRegisters returns registers preloaded with values.
func NewRegisters[W Word](a, b, tmp W) *Registers[W] {
	return &Registers[W]{a: a, b: b, tmp: tmp}
}

func (r *Registers[W]) A() W   { return r.a }
func (r *Registers[W]) B() W   { return r.b }
func (r *Registers[W]) Tmp() W { return r.tmp }

func (r *Registers[W]) SetA(value W)   { r.a = value }
func (r *Registers[W]) SetB(value W)   { r.b = value }
func (r *Registers[W]) SetTmp(value W) { r.tmp = value }

// Reset zeros all registers.
func (r *Registers[W]) Reset() {
	*r = Registers[W]{}
}

// String returns the registers as text.
func (r *Registers[W]) String() string {
	return fmt.Sprintf("a:%#x b:%#x tmp:%#x", uint64(r.a), uint64(r.b), uint64(r.tmp))
}
