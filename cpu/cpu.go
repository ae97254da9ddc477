package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/critter/processor"
)

// Call is a validated creature instruction with its byte arguments.
type Call = processor.Call[Instruction, byte]

var _cpu_defines = map[string]string{
	"NORTH":    fmt.Sprintf("%d", NORTH),
	"EAST":     fmt.Sprintf("%d", EAST),
	"SOUTH":    fmt.Sprintf("%d", SOUTH),
	"WEST":     fmt.Sprintf("%d", WEST),
	"MAX_ARGS": fmt.Sprintf("%d", processor.MaxArgs),
}

// Cpu is the processor for a single creature.
//
// The registers are owned by the Cpu, while the tape and the body are
// borrowed from the creature that runs it.
type Cpu[W processor.Word] struct {
	Verbose bool // Set to enable verbose logging.

	Registers processor.Registers[W] // Register file.
	Tape      *Tape                  // DNA being executed.
	Body      Body                   // World collaborator.

	cycle  uint64 // Executed instruction count.
	jumped bool   // Set when the last call moved the tape offset.
}

var _ processor.Processor[uint64, Instruction, byte] = (*Cpu[uint64])(nil)

// NewCpu creates a new processor for a tape and body.
func NewCpu[W processor.Word](tape *Tape, body Body) (cpu *Cpu[W]) {
	cpu = &Cpu[W]{
		Tape: tape,
		Body: body,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu[W]) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Cycle returns the number of instructions executed.
func (cpu *Cpu[W]) Cycle() uint64 {
	return cpu.cycle
}

// SetCycle restores the cycle counter from a snapshot.
func (cpu *Cpu[W]) SetCycle(cycle uint64) {
	cpu.cycle = cycle
}

// Memory returns the register file.
func (cpu *Cpu[W]) Memory() processor.Memory[W] {
	return &cpu.Registers
}

// Reset clears the registers, the cycle counter and the tape offset.
func (cpu *Cpu[W]) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers.Reset()
	cpu.cycle = 0
	cpu.jumped = false
	if cpu.Tape != nil {
		cpu.Tape.Seek(0)
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu[W]) String() (text string) {
	text = fmt.Sprintf("cycle:%d %v", cpu.cycle, &cpu.Registers)
	if cpu.Tape != nil {
		text += fmt.Sprintf(" ip:%d/%d", cpu.Tape.Current, cpu.Tape.Len())
	}
	return
}

// FetchCall decodes the instruction at the current tape offset, with its
// arguments read circularly. Nothing is modified.
func (cpu *Cpu[W]) FetchCall() (call Call, err error) {
	tape := cpu.Tape
	if tape == nil || tape.Empty() {
		err = ErrTapeEmpty
		return
	}

	offset := tape.Current
	inst, err := Decode(tape.At(offset))
	if err != nil {
		err = &ErrOffset{Offset: tape.wrap(offset), Err: err}
		return
	}

	var args [processor.MaxArgs]byte
	for n := range inst.Arity() {
		args[n] = tape.At(offset + 1 + n)
	}

	switch inst.Arity() {
	case 0:
		call, err = processor.NewCall0[byte](inst)
	case 1:
		call, err = processor.NewCall1(inst, args[0])
	case 2:
		call, err = processor.NewCall2(inst, args[0], args[1])
	case 3:
		call, err = processor.NewCall3(inst, args[0], args[1], args[2])
	}

	return
}

// Step runs one fetch, decode and execute pass of the tape.
//
// An unknown opcode aborts the step with an error matching ErrOpcodeUnknown,
// and leaves the cycle count, registers, tape and body untouched.
func (cpu *Cpu[W]) Step() (err error) {
	call, err := cpu.FetchCall()
	if err != nil {
		if cpu.Verbose {
			log.Printf("cpu: %v", err)
		}
		return
	}

	cpu.Execute(call)

	if !(call.Instruction().Jumps() && cpu.jumped) {
		cpu.Tape.Advance(1 + call.Args())
	}

	return
}

// Execute executes a single instruction call.
//
// Every call costs one cycle, including no-ops and blocked movement.
func (cpu *Cpu[W]) Execute(call Call) {
	if cpu.Verbose {
		log.Printf("cpu: %v: %v", cpu, call)
	}

	cpu.cycle++
	cpu.jumped = false

	regs := &cpu.Registers
	body := cpu.Body
	arg0, _ := call.Arg(0)
	arg1, _ := call.Arg(1)
	arg2, _ := call.Arg(2)

	switch inst := call.Instruction(); inst {
	case NONE:
		// pass
	case MOVE:
		if body != nil {
			cpu.move(1)
		}
	case JUMP:
		if body != nil {
			cpu.move(2)
		}
	case ROTATE_CW:
		if body != nil {
			body.Face(body.Facing().Clockwise())
		}
	case ROTATE_CCW:
		if body != nil {
			body.Face(body.Facing().CounterClockwise())
		}
	case CLEAR_A:
		regs.SetA(0)
	case CLEAR_B:
		regs.SetB(0)
	case GOTO:
		cpu.jump(arg0)
	case GOTO_COND_A_GT_B:
		if regs.A() > regs.B() {
			cpu.jump(arg0)
		}
	case GOTO_COND_EQ:
		if regs.A() == regs.B() {
			cpu.jump(arg0)
		}
	case SWAP_AB:
		a, b := regs.A(), regs.B()
		regs.SetA(b)
		regs.SetB(a)
	case COPY_A_TMP:
		regs.SetTmp(regs.A())
	case LOAD_TMP_A:
		regs.SetA(regs.Tmp())
		regs.SetTmp(0)
	case LOAD_TMP_B:
		regs.SetB(regs.Tmp())
		regs.SetTmp(0)
	case STORE_A_TMP:
		regs.SetTmp(regs.A())
		regs.SetA(0)
	case STORE_B_TMP:
		regs.SetTmp(regs.B())
		regs.SetB(0)
	case SET_AB:
		regs.SetA(W(arg0))
		regs.SetB(W(arg1))
	case SET_AB_TMP:
		regs.SetA(W(arg0))
		regs.SetB(W(arg1))
		regs.SetTmp(W(arg2))
	case STORE_HEALTH_TMP:
		regs.SetTmp(cpu.sense(Senses.Health))
	case STORE_HUNGER_TMP:
		regs.SetTmp(cpu.sense(Senses.Hunger))
	case STORE_WASTE_TMP:
		regs.SetTmp(cpu.sense(Senses.Waste))
	case STORE_LOSC_TMP:
		regs.SetTmp(cpu.sense(func(s Senses) uint64 { return uint64(s.LineOfSight()) }))
	case UADD:
		regs.SetA(regs.A() + W(arg0))
	case IADD:
		// Sign extend, then wrap at the word width.
		regs.SetA(regs.A() + W(int64(int8(arg0))))
	case BIT_AND_B:
		regs.SetA(regs.A() & regs.B())
	case BIT_AND:
		regs.SetA(regs.A() & W(arg0))
	case BIT_OR_B:
		regs.SetA(regs.A() | regs.B())
	case BIT_OR:
		regs.SetA(regs.A() | W(arg0))
	case BIT_XOR_B:
		regs.SetA(regs.A() ^ regs.B())
	case BIT_XOR:
		regs.SetA(regs.A() ^ W(arg0))
	default:
		if cpu.Verbose {
			log.Printf("cpu: %v", ErrInstructionInvalid)
		}
	}
}

// jump sets the tape offset to target, modulo the tape length.
func (cpu *Cpu[W]) jump(target byte) {
	if cpu.Tape == nil || cpu.Tape.Empty() {
		return
	}
	cpu.Tape.Seek(int(target))
	cpu.jumped = true
}

// move steps up to count tiles forward, stopping before the first
// tile that is not free.
func (cpu *Cpu[W]) move(count int) (moved int) {
	body := cpu.Body
	for moved < count {
		next := body.Position().Step(body.Facing(), 1)
		if !body.Free(next) || !body.MoveTo(next) {
			break
		}
		moved++
	}
	return
}

// sense reads a body attribute, truncated to the word width.
func (cpu *Cpu[W]) sense(attr func(Senses) uint64) W {
	if cpu.Body == nil {
		return 0
	}
	return W(attr(cpu.Body))
}
