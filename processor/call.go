package processor

import (
	"fmt"
	"strings"
)

// MaxArgs is the largest arity an instruction may declare.
const MaxArgs = 3

// Instruction is a member of a closed instruction set.
type Instruction interface {
	comparable
	fmt.Stringer

	// Arity returns the number of argument values the instruction consumes.
	Arity() int
}

// Call is an instruction paired with exactly Arity() arguments.
// The zero Call is not valid; use one of the NewCall builders.
type Call[I Instruction, A any] struct {
	instruction I
	args        [MaxArgs]A
	count       int
}

func newCall[I Instruction, A any](inst I, args ...A) (call Call[I, A], err error) {
	if inst.Arity() != len(args) {
		err = &ArityError{Instruction: inst, Want: inst.Arity(), Got: len(args)}
		return
	}

	call.instruction = inst
	call.count = copy(call.args[:], args)

	return
}

// NewCall0 wraps an instruction that takes no arguments.
func NewCall0[A any, I Instruction](inst I) (Call[I, A], error) {
	return newCall[I, A](inst)
}

// NewCall1 wraps an instruction that takes one argument.
func NewCall1[I Instruction, A any](inst I, arg0 A) (Call[I, A], error) {
	return newCall(inst, arg0)
}

// NewCall2 wraps an instruction that takes two arguments.
func NewCall2[I Instruction, A any](inst I, arg0, arg1 A) (Call[I, A], error) {
	return newCall(inst, arg0, arg1)
}

// NewCall3 wraps an instruction that takes three arguments.
func NewCall3[I Instruction, A any](inst I, arg0, arg1, arg2 A) (Call[I, A], error) {
	return newCall(inst, arg0, arg1, arg2)
}

func must[I Instruction, A any](call Call[I, A], err error) Call[I, A] {
	if err != nil {
		panic(err)
	}
	return call
}

// MustCall0 is NewCall0 that panics on an arity mismatch.
func MustCall0[A any, I Instruction](inst I) Call[I, A] {
	call, err := NewCall0[A](inst)
	return must(call, err)
}

// MustCall1 is NewCall1 that panics on an arity mismatch.
func MustCall1[I Instruction, A any](inst I, arg0 A) Call[I, A] {
	call, err := NewCall1(inst, arg0)
	return must(call, err)
}

// MustCall2 is NewCall2 that panics on an arity mismatch.
func MustCall2[I Instruction, A any](inst I, arg0, arg1 A) Call[I, A] {
	call, err := NewCall2(inst, arg0, arg1)
	return must(call, err)
}

// MustCall3 is NewCall3 that panics on an arity mismatch.
func MustCall3[I Instruction, A any](inst I, arg0, arg1, arg2 A) Call[I, A] {
	call, err := NewCall3(inst, arg0, arg1, arg2)
	return must(call, err)
}

// Instruction returns the called instruction.
func (call Call[I, A]) Instruction() I {
	return call.instruction
}

// Args returns the number of arguments present.
func (call Call[I, A]) Args() int {
	return call.count
}

// Arg returns argument n, and false if the slot is empty.
func (call Call[I, A]) Arg(n int) (arg A, ok bool) {
	if n < 0 || n >= call.count {
		return
	}
	return call.args[n], true
}

// String returns the call in assembler form.
func (call Call[I, A]) String() string {
	words := []string{call.instruction.String()}
	for _, arg := range call.args[:call.count] {
		words = append(words, fmt.Sprintf("%v", arg))
	}
	return strings.Join(words, " ")
}
