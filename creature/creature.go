package creature

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/ezrec/critter/cpu"
	"github.com/ezrec/critter/processor"
	"github.com/ezrec/critter/world"
)

// Word is the register width of a creature.
type Word = uint64

// Creature is one agent: its DNA, its processor and its body.
type Creature struct {
	Verbose bool // Set to enable verbose logging.

	Tape *cpu.Tape      // DNA, owned by this creature.
	Cpu  *cpu.Cpu[Word] // Processor running the tape.
	Body *Body          // Presence in the world.

	Generation int    // 0 for seed genomes, parent's + 1 for offspring.
	Age        uint64 // Ticks lived.
	Eaten      uint64 // Food eaten.
	Unknown    uint64 // Unknown opcodes hit.
}

// New creates a creature, bound to a body.
func New(dna []byte, body *Body) (c *Creature) {
	tape := cpu.NewTape(slices.Clone(dna)...)

	c = &Creature{
		Tape: tape,
		Cpu:  cpu.NewCpu[Word](tape, body),
		Body: body,
	}

	return
}

// Id returns the creature's world id.
func (c *Creature) Id() world.Id {
	return c.Body.id
}

// Alive returns true while the creature has health.
func (c *Creature) Alive() bool {
	return c.Body.Vitals.Health > 0
}

// Fitness scores the creature for selection.
func (c *Creature) Fitness() uint64 {
	return c.Age + c.Eaten*10 + c.Body.Vitals.Health
}

// Step runs one instruction of the creature's DNA.
//
// An unknown opcode is counted, and returned as a recoverable error
// matching cpu.ErrOpcodeUnknown.
func (c *Creature) Step() (err error) {
	c.Cpu.Verbose = c.Verbose

	err = c.Cpu.Step()
	if errors.Is(err, cpu.ErrOpcodeUnknown) {
		c.Unknown++
		if c.Verbose {
			log.Printf("creature %d: %v", c.Id(), err)
		}
	}

	return
}

// Reincarnate replaces the creature's DNA and restarts it with fresh vitals,
// keeping its body in place.
func (c *Creature) Reincarnate(dna []byte, generation int, vitals Vitals) {
	c.Tape.Data = slices.Clone(dna)
	c.Cpu.Reset()
	c.Body.Vitals = vitals
	c.Generation = generation
	c.Age = 0
	c.Eaten = 0
	c.Unknown = 0
}

func (c *Creature) String() string {
	return fmt.Sprintf("creature %d gen %d at %v facing %v: %v", c.Id(), c.Generation, c.Body.position, c.Body.facing, c.Cpu)
}

// Snapshot is the serializable state of a creature.
type Snapshot struct {
	Id         world.Id      `json:"id"`
	Tape       []byte        `json:"tape"`
	Current    int           `json:"current"`
	Cycle      uint64        `json:"cycle"`
	A          Word          `json:"a"`
	B          Word          `json:"b"`
	Tmp        Word          `json:"tmp"`
	Position   cpu.Point     `json:"position"`
	Facing     cpu.Direction `json:"facing"`
	Vitals     Vitals        `json:"vitals"`
	Generation int           `json:"generation"`
	Age        uint64        `json:"age"`
	Eaten      uint64        `json:"eaten"`
	Unknown    uint64        `json:"unknown"`
}

// Snapshot captures the creature's state.
func (c *Creature) Snapshot() Snapshot {
	regs := &c.Cpu.Registers
	return Snapshot{
		Id:         c.Id(),
		Tape:       slices.Clone(c.Tape.Data),
		Current:    c.Tape.Current,
		Cycle:      c.Cpu.Cycle(),
		A:          regs.A(),
		B:          regs.B(),
		Tmp:        regs.Tmp(),
		Position:   c.Body.position,
		Facing:     c.Body.facing,
		Vitals:     c.Body.Vitals,
		Generation: c.Generation,
		Age:        c.Age,
		Eaten:      c.Eaten,
		Unknown:    c.Unknown,
	}
}

// Restore places a creature from a snapshot into a world.
func Restore(snap Snapshot, w *world.World) (c *Creature, err error) {
	body, err := NewBody(snap.Id, w, snap.Position, snap.Facing)
	if err != nil {
		return
	}
	body.Vitals = snap.Vitals

	c = New(snap.Tape, body)
	c.Tape.Seek(snap.Current)
	c.Cpu.SetCycle(snap.Cycle)
	c.Cpu.Registers = *processor.NewRegisters(snap.A, snap.B, snap.Tmp)
	c.Generation = snap.Generation
	c.Age = snap.Age
	c.Eaten = snap.Eaten
	c.Unknown = snap.Unknown

	return
}
