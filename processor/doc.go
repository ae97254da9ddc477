// Package processor defines the generic contracts shared by every
// instruction set the creatures can run.
//
// A Processor executes validated instruction Calls against a Memory of three
// registers (A, B and TMP). Registers hold any unsigned word width; the
// arithmetic of every instruction set wraps at that width. Calls can only be
// built through the arity-checked NewCall builders, so a Call whose argument
// count disagrees with its instruction cannot exist.
package processor
