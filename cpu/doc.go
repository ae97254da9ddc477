// Package cpu implements the creature processor and its DNA assembler.
//
// A creature's DNA is a byte tape. Each instruction byte carries a six bit
// opcode id and a two bit argument count, followed by that many argument
// bytes. The tape has no terminator: execution and argument reads wrap
// around to the start.
//
// The processor owns three registers (A, B and TMP) of any unsigned width
// and reaches the world only through the Body interface.
//
// The assembler provides a text form of the instruction set, supporting
// macros, labels, equates, and compile-time expression evaluation.
package cpu
