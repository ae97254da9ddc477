package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opEqual(t *testing.T, expected, opcodes []Opcode) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(opcodes))
	if len(expected) == len(opcodes) {
		for n := range len(expected) {
			assert.Equal(expected[n], opcodes[n])
		}
	}
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))
	assert.Equal("0", asm.Equate["LINENO"])
}

func TestAssemblerBasic(t *testing.T) {
	asm := &Assembler{}

	program := []string{
		"start:",
		"  uadd 1     ; add one",
		"  iadd -1",
		"  set.abt 1 2 'a'",
		"  goto start",
		"  .byte 0xff 3",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	expected := []Opcode{
		{2, 0, []string{"uadd", "1"}, []byte{0x45, 1}, nil},
		{3, 2, []string{"iadd", "-1"}, []byte{0x49, 0xff}, nil},
		{4, 4, []string{"set.abt", "1", "2", "97"}, []byte{0x6b, 1, 2, 97}, nil},
		{5, 8, []string{"goto", "start"}, []byte{0x1d, 0}, map[int]string{1: "start"}},
		{6, 10, []string{".byte", "0xff", "3"}, []byte{0xff, 3}, nil},
	}

	opEqual(t, expected, prog.Opcodes)

	assert.Equal(t,
		[]byte{0x45, 0x01, 0x49, 0xff, 0x6b, 0x01, 0x02, 0x61, 0x1d, 0x00, 0xff, 0x03},
		prog.Binary())
}

func TestAssemblerLabel(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		"goto.gt END",
		"LOOP: move",
		"AGAIN: ALSO: rotcw",
		"",
		"goto LOOP",
		"END: goto AGAIN",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	assert.Equal(map[string]int{"LOOP": 2, "AGAIN": 3, "ALSO": 3, "END": 6}, asm.Label)
	assert.Equal([]byte{0x21, 6, 0x04, 0x0c, 0x1d, 2, 0x1d, 3}, prog.Binary())
}

func TestAssemblerEqu(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("WEST", "3")
	program := []string{
		".equ STEP 4",
		"uadd STEP",
		"uadd $(STEP * 2 + LINENO)",
		".equ DOUBLE $(STEP + STEP)",
		"set.ab DOUBLE WEST",
		"and $(~STEP)",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	assert.Equal([]byte{0x45, 4, 0x45, 11, 0x66, 8, 3, 0x4d, 0xfb}, prog.Binary())
	assert.Equal([]string{"uadd", "11"}, prog.Opcodes[1].Words)
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		".macro SPIN v",
		"@top: uadd v",
		"goto @top",
		".endm",
		"SPIN 3",
		"SPIN 5",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	assert.Equal([]byte{0x45, 3, 0x1d, 0, 0x45, 5, 0x1d, 4}, prog.Binary())
	assert.Equal(2, prog.Opcodes[0].LineNo)
	assert.Equal(3, prog.Opcodes[3].LineNo)
	assert.Equal(0, asm.Label["SPIN_1_top"])
	assert.Equal(4, asm.Label["SPIN_2_top"])
}

func TestAssemblerErrSyntax(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		source string
		lineno int
		err    error
	}{
		{"missing", "none\nuadd", 2, ErrOpcodeValueMissing},
		{"extra", "uadd 1 2", 1, ErrOpcodeExtraArgs},
		{"extra-none", "move 1", 1, ErrOpcodeExtraArgs},
		{"invalid", "frob", 1, ErrInstructionInvalid},
		{"range-hi", "uadd 256", 1, ErrValueRange},
		{"range-lo", "iadd -129", 1, ErrValueRange},
		{"number", "uadd 1x", 1, ErrParseNumber("1x")},
		{"label-missing", "none\ngoto nowhere", 2, ErrLabelMissing("nowhere")},
		{"equ-syntax", ".equ A", 1, ErrEquateSyntax},
		{"equ-dup", ".equ A 1\n.equ A 2", 2, ErrEquateDuplicate},
		{"label-dup", "x: none\nx: none", 2, ErrLabelDuplicate},
		{"macro-nesting", ".macro M\n.macro N", 2, ErrMacroNesting},
		{"macro-syntax", ".macro", 1, ErrMacroSyntax},
		{"macro-dup", ".macro M\n.endm\n.macro M", 3, ErrMacroDuplicate},
		{"macro-args", ".macro M a\nuadd a\n.endm\nM", 4, ErrMacroSyntax},
		{"macro-body", ".macro M a\nuadd a a\n.endm\nM 1", 4, ErrOpcodeExtraArgs},
		{"endm", ".endm", 1, ErrMacroLonelyEndm},
		{"lonely", ".macro M\nnone", 2, ErrMacroLonely},
		{"byte-empty", ".byte", 1, ErrOpcodeValueMissing},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.source))
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}

func TestAssemblerErrExpression(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("uadd $(1 +)"))

	var expr ErrParseExpression
	assert.ErrorAs(err, &expr)
	assert.Equal(ErrParseExpression("1 +"), expr)

	_, err = asm.Parse(strings.NewReader(`uadd $("x")`))
	assert.ErrorAs(err, &expr)
}

func TestAssemblerLabelRange(t *testing.T) {
	assert := assert.New(t)

	program := []string{"goto FAR"}
	for range 300 {
		program = append(program, "none")
	}
	program = append(program, "FAR: none")

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.ErrorIs(err, ErrValueRange)

	var offset *ErrOffset
	if assert.ErrorAs(err, &offset) {
		assert.Equal(302, offset.Offset)
	}
}

func TestAssemblerRoundTrip(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"set.ab 2 3",
		"none",
		"uadd 1",
		"goto.eq 9",
		"set.abt 0 255 128",
		"goto 0",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	bin := prog.Binary()
	listing := Disassemble(bin)

	var words []string
	for n, op := range listing.Opcodes {
		assert.Equal(prog.Opcodes[n].Offset, op.Offset)
		assert.Equal(prog.Opcodes[n].Codes, op.Codes)
		words = append(words, strings.Join(op.Words, " "))
	}
	assert.Equal(program, words)

	again, err := asm.Parse(strings.NewReader(strings.Join(words, "\n")))
	require.NoError(t, err)
	assert.Equal(bin, again.Binary())
}
