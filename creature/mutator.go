package creature

import (
	"math/rand"
	"slices"

	"github.com/ezrec/critter/cpu"
)

// Tape length limits. Goto arguments are one byte, so longer tapes have
// unreachable tails.
const (
	MinTape = 8
	MaxTape = 256
)

// Mutator rewrites DNA between ticks. It is not safe for concurrent use.
type Mutator struct {
	Rng     *rand.Rand
	Rate    float64 // Probability of a mutation per offspring.
	MinTape int     // Shortest tape produced.
	MaxTape int     // Longest tape produced.

	instructions []cpu.Instruction
}

// NewMutator creates a mutator with the default limits.
func NewMutator(rng *rand.Rand) *Mutator {
	return &Mutator{
		Rng:          rng,
		Rate:         0.8,
		MinTape:      MinTape,
		MaxTape:      MaxTape,
		instructions: slices.Collect(cpu.Instructions()),
	}
}

// AlignedPoints returns the instruction boundaries of a tape, including 0
// and the tape length. Sizes come from the arity bits alone, so undecodable
// bytes still have a size.
func AlignedPoints(dna []byte) (points []int) {
	points = []int{0}
	for offset := 0; offset < len(dna); {
		offset += 1 + cpu.Instruction(dna[offset]).Arity()
		points = append(points, min(offset, len(dna)))
	}
	return
}

// randomCall returns a random instruction followed by random arguments.
func (m *Mutator) randomCall() []byte {
	inst := m.instructions[m.Rng.Intn(len(m.instructions))]
	code := []byte{inst.Byte()}
	for range inst.Arity() {
		code = append(code, byte(m.Rng.Intn(256)))
	}
	return code
}

// Random creates a random tape of about size bytes.
func (m *Mutator) Random(size int) (dna []byte) {
	for len(dna) < size {
		dna = append(dna, m.randomCall()...)
	}
	return m.Clamp(dna)
}

// Clamp pads a tape with `none` up to MinTape, and truncates it to MaxTape.
func (m *Mutator) Clamp(dna []byte) []byte {
	if len(dna) < m.MinTape {
		dna = slices.Clip(dna)
	}
	for len(dna) < m.MinTape {
		dna = append(dna, cpu.NONE.Byte())
	}
	if len(dna) > m.MaxTape {
		dna = dna[:m.MaxTape]
	}
	return dna
}

// Point replaces one byte. An instruction byte is replaced by another
// instruction of the same arity; an argument byte by a random value.
func (m *Mutator) Point(dna []byte) []byte {
	if len(dna) == 0 {
		return dna
	}

	dna = slices.Clone(dna)
	pos := m.Rng.Intn(len(dna))

	points := AlignedPoints(dna)
	if !slices.Contains(points, pos) {
		dna[pos] = byte(m.Rng.Intn(256))
		return dna
	}

	arity := cpu.Instruction(dna[pos]).Arity()
	var same []cpu.Instruction
	for _, inst := range m.instructions {
		if inst.Arity() == arity {
			same = append(same, inst)
		}
	}
	if len(same) > 0 {
		dna[pos] = same[m.Rng.Intn(len(same))].Byte()
	}
	return dna
}

// Insert adds a random instruction at an instruction boundary.
func (m *Mutator) Insert(dna []byte) []byte {
	code := m.randomCall()
	if len(dna)+len(code) > m.MaxTape {
		return dna
	}

	points := AlignedPoints(dna)
	pos := points[m.Rng.Intn(len(points))]
	return slices.Insert(slices.Clone(dna), pos, code...)
}

// Delete removes one instruction, with its arguments.
func (m *Mutator) Delete(dna []byte) []byte {
	points := AlignedPoints(dna)
	if len(points) < 2 {
		return dna
	}

	n := m.Rng.Intn(len(points) - 1)
	start, end := points[n], points[n+1]
	if len(dna)-(end-start) < m.MinTape {
		return dna
	}
	return slices.Delete(slices.Clone(dna), start, end)
}

// Crossover joins the head of a with the tail of b, split at instruction
// boundaries.
func (m *Mutator) Crossover(a, b []byte) []byte {
	pointsA := AlignedPoints(a)
	pointsB := AlignedPoints(b)

	if len(pointsA) < 2 || len(pointsB) < 2 {
		return m.Clamp(slices.Clone(a))
	}

	splitA := pointsA[m.Rng.Intn(len(pointsA))]
	splitB := pointsB[m.Rng.Intn(len(pointsB))]

	child := make([]byte, 0, splitA+len(b)-splitB)
	child = append(child, a[:splitA]...)
	child = append(child, b[splitB:]...)

	return m.Clamp(child)
}

// Mutate applies one random point, insert or delete mutation.
func (m *Mutator) Mutate(dna []byte) []byte {
	switch m.Rng.Intn(3) {
	case 0:
		dna = m.Point(dna)
	case 1:
		dna = m.Insert(dna)
	default:
		dna = m.Delete(dna)
	}
	return m.Clamp(dna)
}

// Offspring breeds a child tape from two parents.
func (m *Mutator) Offspring(a, b []byte) []byte {
	child := m.Crossover(a, b)
	if m.Rng.Float64() < m.Rate {
		child = m.Mutate(child)
	}
	return child
}

// Apply mutates a tape in place, re-clamping its current offset.
func (m *Mutator) Apply(tape *cpu.Tape) {
	tape.Data = m.Mutate(tape.Data)
	tape.Clamp()
}
