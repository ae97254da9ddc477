package processor

// Processor executes calls of one instruction set against a register memory.
//
// Execute is total over valid calls: it never fails, and it advances the
// cycle counter by exactly one per call, even when the instruction had no
// effect.
type Processor[W Word, I Instruction, A any] interface {
	Cycle() uint64     // Number of calls executed so far.
	Memory() Memory[W] // The register memory owned by the processor.
	Execute(call Call[I, A])
}
