package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Offset: 0, Words: []string{"uadd", "1"}, Codes: []byte{byte(UADD), 1}},
			{LineNo: 2, Offset: 2, Words: []string{".byte", "0xff"}, Codes: []byte{0xff}},
			{LineNo: 3, Offset: 3, Words: []string{"set.abt", "1", "2", "3"}, Codes: []byte{byte(SET_AB_TMP), 1, 2, 3}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	table := []struct {
		offset int
		lineno int
		index  int
	}{
		{0, 1, 0},
		{1, 1, 1},
		{2, 2, 0},
		{3, 3, 0},
		{6, 3, 3},
	}

	for _, entry := range table {
		dbg := prog.Debug(entry.offset)
		if assert.NotNil(dbg.Opcode, entry.offset) {
			assert.Equal(entry.lineno, dbg.LineNo, entry.offset)
			assert.Equal(entry.index, dbg.Index, entry.offset)
		}
	}
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	assert.Nil(prog.Debug(7).Opcode)
	assert.Nil(prog.Debug(-1).Opcode)

	empty := &Program{}
	assert.Nil(empty.Debug(0).Opcode)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	assert.Equal([]byte{0x45, 1, 0xff, 0x6b, 1, 2, 3}, prog.Binary())

	offsets := []int{}
	for offset := range prog.Codes() {
		offsets = append(offsets, offset)
	}
	assert.Equal([]int{0, 1, 2, 3, 4, 5, 6}, offsets)

	assert.Nil((&Program{}).Binary())
}

func TestProgram_String(t *testing.T) {
	assert := assert.New(t)

	expected := "0000: 45 01        uadd 1\n" +
		"0002: ff           .byte 0xff\n" +
		"0003: 6b 01 02 03  set.abt 1 2 3\n"
	assert.Equal(expected, testProgram().String())
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	prog := Disassemble([]byte{byte(UADD), 1, 0xff, byte(SET_AB_TMP), 1, 2, 3})
	assert.Equal(testProgram().String(), prog.String())
	for _, op := range prog.Opcodes {
		assert.Equal(0, op.LineNo)
	}

	// Arguments that would run past the end of the tape.
	prog = Disassemble([]byte{byte(NONE), byte(SET_AB), 7})
	if assert.Equal(3, len(prog.Opcodes)) {
		assert.Equal([]string{"none"}, prog.Opcodes[0].Words)
		assert.Equal([]string{".byte", "0x66"}, prog.Opcodes[1].Words)
		assert.Equal([]string{".byte", "0x07"}, prog.Opcodes[2].Words)
	}

	assert.Empty(Disassemble(nil).Opcodes)
}
