package cpu

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Opcode is one assembled line: an instruction and its arguments, or raw bytes.
type Opcode struct {
	LineNo int            // Source line, 0 when disassembled.
	Offset int            // Tape offset of the first byte.
	Words  []string       // Source words.
	Codes  []byte         // Encoded bytes.
	Links  map[int]string // Codes index to label, resolved at link time.
}

// String returns the opcode as a listing line.
func (op *Opcode) String() string {
	hex := make([]string, len(op.Codes))
	for n, code := range op.Codes {
		hex[n] = fmt.Sprintf("%02x", code)
	}
	return fmt.Sprintf("%04x: %-12s %v", op.Offset, strings.Join(hex, " "), strings.Join(op.Words, " "))
}

// Program is an assembled or disassembled tape.
type Program struct {
	Opcodes []Opcode
}

// Debug locates a tape offset within a program.
type Debug struct {
	*Opcode
	Index int // Byte index within the opcode.
}

// Debug returns the opcode holding the tape offset, or a nil Opcode.
func (prog *Program) Debug(offset int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if offset >= op.Offset && offset < op.Offset+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  offset - op.Offset,
			}
			break
		}
	}

	return
}

// Binary returns the tape bytes of the program.
func (prog *Program) Binary() (bins []byte) {
	for _, code := range prog.Codes() {
		bins = append(bins, code)
	}

	return
}

// Codes iterates over the tape offsets and bytes of the program.
func (prog *Program) Codes() iter.Seq2[int, byte] {
	return func(yield func(offset int, code byte) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(op.Offset+n, code) {
					return
				}
			}
		}
	}
}

// String returns the program listing.
func (prog *Program) String() string {
	var text strings.Builder
	for n := range prog.Opcodes {
		text.WriteString(prog.Opcodes[n].String())
		text.WriteString("\n")
	}
	return text.String()
}

// Disassemble lists a tape. Bytes that do not decode, and instructions
// whose arguments would run past the end of the tape, are listed as `.byte`.
func Disassemble(tape []byte) (prog *Program) {
	prog = &Program{}

	for offset := 0; offset < len(tape); {
		inst, err := Decode(tape[offset])
		size := 1 + inst.Arity()
		if err != nil || offset+size > len(tape) {
			prog.Opcodes = append(prog.Opcodes, Opcode{
				Offset: offset,
				Words:  []string{".byte", fmt.Sprintf("0x%02x", tape[offset])},
				Codes:  []byte{tape[offset]},
			})
			offset++
			continue
		}

		words := []string{inst.String()}
		for _, arg := range tape[offset+1 : offset+size] {
			words = append(words, fmt.Sprintf("%d", arg))
		}
		prog.Opcodes = append(prog.Opcodes, Opcode{
			Offset: offset,
			Words:  words,
			Codes:  slices.Clone(tape[offset : offset+size]),
		})
		offset += size
	}

	return
}
