package cpu

import (
	"fmt"
	"iter"
	"slices"
)

// Instruction is a creature DNA instruction. Its value is its byte encoding.
//
// The most significant six bits are the opcode id and the least significant
// two bits are the argument count (0, 1, 2 or 3). Two instructions may share
// an id when they differ in argument count, such as `and.b` and `and`.
type Instruction byte

// ARG_MASK selects the argument count bits of an instruction byte.
const ARG_MASK = 0b000000_11

// Instruction set.
const (
	// Movement
	NONE       = Instruction(0b000000_00) // Do nothing this tick.
	MOVE       = Instruction(0b000001_00) // Move forward 1 tile (will not move if blocked).
	JUMP       = Instruction(0b000010_00) // Move forward 2 tiles (only 1 if the 2nd is blocked).
	ROTATE_CW  = Instruction(0b000011_00) // Rotate clockwise (looking down).
	ROTATE_CCW = Instruction(0b000100_00) // Rotate counter-clockwise (looking down).

	// Logic
	CLEAR_A          = Instruction(0b000101_00) // A = 0
	CLEAR_B          = Instruction(0b000110_00) // B = 0
	GOTO             = Instruction(0b000111_01) // Jump to tape offset arg0 (modulo tape length).
	GOTO_COND_A_GT_B = Instruction(0b001000_01) // Jump to arg0 if A > B.
	GOTO_COND_EQ     = Instruction(0b001001_01) // Jump to arg0 if A == B.
	SWAP_AB          = Instruction(0b001010_00) // Swap A and B.
	COPY_A_TMP       = Instruction(0b001011_00) // TMP = A
	LOAD_TMP_A       = Instruction(0b001100_00) // A = TMP, TMP = 0
	LOAD_TMP_B       = Instruction(0b001101_00) // B = TMP, TMP = 0

	// Creature
	STORE_HEALTH_TMP = Instruction(0b001110_00) // TMP = health
	STORE_HUNGER_TMP = Instruction(0b001111_00) // TMP = hunger
	STORE_LOSC_TMP   = Instruction(0b010000_00) // TMP = line of sight colour (0xRRGGBB)
	STORE_WASTE_TMP  = Instruction(0b010110_00) // TMP = waste

	// Math
	UADD      = Instruction(0b010001_01) // A += arg0 as unsigned byte.
	IADD      = Instruction(0b010010_01) // A += arg0 as signed byte.
	BIT_AND_B = Instruction(0b010011_00) // A &= B
	BIT_AND   = Instruction(0b010011_01) // A &= arg0
	BIT_OR_B  = Instruction(0b010100_00) // A |= B
	BIT_OR    = Instruction(0b010100_01) // A |= arg0
	BIT_XOR_B = Instruction(0b010101_00) // A ^= B
	BIT_XOR   = Instruction(0b010101_01) // A ^= arg0

	// Register transfer
	STORE_A_TMP = Instruction(0b010111_00) // TMP = A, A = 0
	STORE_B_TMP = Instruction(0b011000_00) // TMP = B, B = 0
	SET_AB      = Instruction(0b011001_10) // A = arg0, B = arg1
	SET_AB_TMP  = Instruction(0b011010_11) // A = arg0, B = arg1, TMP = arg2
)

//go:generate go tool stringer -linecomment -type=Group

// Group is the family an instruction belongs to.
type Group int

const (
	GROUP_MOVEMENT = Group(iota) // movement
	GROUP_LOGIC                  // logic
	GROUP_CREATURE               // creature
	GROUP_MATH                   // math
)

type opInfo struct {
	name     string // Go-style name
	mnemonic string // Assembler mnemonic
	group    Group
}

var _opTable = map[Instruction]opInfo{
	NONE:       {"None", "none", GROUP_MOVEMENT},
	MOVE:       {"Move", "move", GROUP_MOVEMENT},
	JUMP:       {"Jump", "jump", GROUP_MOVEMENT},
	ROTATE_CW:  {"RotateCW", "rotcw", GROUP_MOVEMENT},
	ROTATE_CCW: {"RotateCCW", "rotccw", GROUP_MOVEMENT},

	CLEAR_A:          {"ClearA", "clra", GROUP_LOGIC},
	CLEAR_B:          {"ClearB", "clrb", GROUP_LOGIC},
	GOTO:             {"Goto", "goto", GROUP_LOGIC},
	GOTO_COND_A_GT_B: {"GotoCondAGtB", "goto.gt", GROUP_LOGIC},
	GOTO_COND_EQ:     {"GotoCondEq", "goto.eq", GROUP_LOGIC},
	SWAP_AB:          {"SwapAB", "swap", GROUP_LOGIC},
	COPY_A_TMP:       {"CopyATmp", "copy.a", GROUP_LOGIC},
	LOAD_TMP_A:       {"LoadTmpA", "load.a", GROUP_LOGIC},
	LOAD_TMP_B:       {"LoadTmpB", "load.b", GROUP_LOGIC},
	STORE_A_TMP:      {"StoreATmp", "store.a", GROUP_LOGIC},
	STORE_B_TMP:      {"StoreBTmp", "store.b", GROUP_LOGIC},
	SET_AB:           {"SetAB", "set.ab", GROUP_LOGIC},
	SET_AB_TMP:       {"SetABTmp", "set.abt", GROUP_LOGIC},

	STORE_HEALTH_TMP: {"StoreHealthTmp", "health", GROUP_CREATURE},
	STORE_HUNGER_TMP: {"StoreHungerTmp", "hunger", GROUP_CREATURE},
	STORE_LOSC_TMP:   {"StoreLOSCTmp", "losc", GROUP_CREATURE},
	STORE_WASTE_TMP:  {"StoreWasteTmp", "waste", GROUP_CREATURE},

	UADD:      {"UAdd", "uadd", GROUP_MATH},
	IADD:      {"IAdd", "iadd", GROUP_MATH},
	BIT_AND_B: {"BitAndB", "and.b", GROUP_MATH},
	BIT_AND:   {"BitAnd", "and", GROUP_MATH},
	BIT_OR_B:  {"BitOrB", "or.b", GROUP_MATH},
	BIT_OR:    {"BitOr", "or", GROUP_MATH},
	BIT_XOR_B: {"BitXorB", "xor.b", GROUP_MATH},
	BIT_XOR:   {"BitXor", "xor", GROUP_MATH},
}

var _mnemonicTable = func() map[string]Instruction {
	table := make(map[string]Instruction, len(_opTable))
	for inst, info := range _opTable {
		table[info.mnemonic] = inst
	}
	return table
}()

// Decode converts a tape byte into an instruction.
func Decode(b byte) (inst Instruction, err error) {
	inst = Instruction(b)
	if !inst.Valid() {
		err = ErrOpcode(b)
	}
	return
}

// LookupMnemonic finds the instruction for an assembler mnemonic.
func LookupMnemonic(mnemonic string) (inst Instruction, ok bool) {
	inst, ok = _mnemonicTable[mnemonic]
	return
}

// Instructions iterates over the instruction set in encoding order.
func Instructions() iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		insts := make([]Instruction, 0, len(_opTable))
		for inst := range _opTable {
			insts = append(insts, inst)
		}
		slices.Sort(insts)
		for _, inst := range insts {
			if !yield(inst) {
				return
			}
		}
	}
}

// Valid returns true if the byte value is assigned to an instruction.
func (inst Instruction) Valid() bool {
	_, ok := _opTable[inst]
	return ok
}

// Byte returns the encoded instruction.
func (inst Instruction) Byte() byte {
	return byte(inst)
}

// Id returns the opcode id, without the argument count.
func (inst Instruction) Id() byte {
	return byte(inst) >> 2
}

// Arity returns the number of argument bytes that follow the instruction.
// It is derived from the encoding alone, so it is defined for any byte.
func (inst Instruction) Arity() int {
	return int(inst & ARG_MASK)
}

// Jumps returns true if the instruction may move the tape offset.
func (inst Instruction) Jumps() bool {
	return inst == GOTO || inst == GOTO_COND_A_GT_B || inst == GOTO_COND_EQ
}

// Group returns the instruction family.
func (inst Instruction) Group() Group {
	return _opTable[inst].group
}

// Name returns the Go-style name of the instruction.
func (inst Instruction) Name() string {
	info, ok := _opTable[inst]
	if !ok {
		return fmt.Sprintf("Instruction(0x%02x)", byte(inst))
	}
	return info.name
}

// String returns the assembler mnemonic of the instruction.
func (inst Instruction) String() string {
	info, ok := _opTable[inst]
	if !ok {
		return fmt.Sprintf(".byte 0x%02x", byte(inst))
	}
	return info.mnemonic
}
