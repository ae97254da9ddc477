package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters(t *testing.T) {
	assert := assert.New(t)

	var mem Memory[uint16] = &Registers[uint16]{}
	assert.Equal(uint16(0), mem.A())
	assert.Equal(uint16(0), mem.B())
	assert.Equal(uint16(0), mem.Tmp())

	mem.SetA(1)
	mem.SetB(0xffff)
	mem.SetTmp(3)
	assert.Equal(uint16(1), mem.A())
	assert.Equal(uint16(0xffff), mem.B())
	assert.Equal(uint16(3), mem.Tmp())

	mem.Reset()
	assert.Equal(uint16(0), mem.A())
	assert.Equal(uint16(0), mem.B())
	assert.Equal(uint16(0), mem.Tmp())
}

func TestRegisters_String(t *testing.T) {
	assert := assert.New(t)

	regs := NewRegisters[uint8](0x10, 0, 0xff)
	assert.Equal("a:0x10 b:0x0 tmp:0xff", regs.String())
}
