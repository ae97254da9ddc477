package sim

import (
	"fmt"
)

// Stats are the running totals of a simulation.
type Stats struct {
	Ticks   uint64 // Ticks completed.
	Cycles  uint64 // Instructions executed, by all creatures.
	Unknown uint64 // Unknown opcodes skipped.
	Births  uint64 // Creatures spawned, including the initial population.
	Deaths  uint64 // Creatures removed.
	Eaten   uint64 // Food eaten.
	Food    uint64 // Food spawned, including the initial scatter.
	Mutated uint64 // Somatic mutations of living tapes.
}

func (s Stats) String() string {
	return fmt.Sprintf("ticks:%d cycles:%d unknown:%d births:%d deaths:%d eaten:%d food:%d mutated:%d",
		s.Ticks, s.Cycles, s.Unknown, s.Births, s.Deaths, s.Eaten, s.Food, s.Mutated)
}
