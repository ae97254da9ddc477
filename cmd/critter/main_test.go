package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/critter/cpu"
	"github.com/ezrec/critter/store"
)

func TestOpcodeTree(t *testing.T) {
	assert := assert.New(t)

	text := opcodeTree().String()
	assert.Contains(text, "movement")
	assert.Contains(text, "[0b000001=0x04] [0] Move (move)")
	assert.Contains(text, "[0b000111=0x1D] [1] Goto (goto)")
	assert.Contains(text, "[0b011010=0x6B] [3] SetABTmp (set.abt)")
}

func execute(t *testing.T, args ...string) string {
	cmd := rootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())

	return out.String()
}

func TestAsmDisasm(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "spin.dna")
	bin := filepath.Join(dir, "spin.bin")

	require.NoError(t, os.WriteFile(src, []byte("top: rotcw\n goto top\n"), 0o644))

	execute(t, "asm", src, "-o", bin)

	data, err := os.ReadFile(bin)
	require.NoError(t, err)
	assert.Equal(t, []byte{cpu.ROTATE_CW.Byte(), cpu.GOTO.Byte(), 0}, data)

	listing := execute(t, "disasm", bin)
	assert.Contains(t, listing, "rotcw")
	assert.Contains(t, listing, "goto")
}

func TestDefines(t *testing.T) {
	text := execute(t, "defines")
	lines := strings.Split(strings.TrimSpace(text), "\n")
	assert.True(t, strings.HasPrefix(lines[0], ".equ COLOUR_CREATURE"))
	assert.Contains(t, text, ".equ NORTH")
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	config := filepath.Join(dir, "run.star")
	db := filepath.Join(dir, "db")

	require.NoError(t, os.WriteFile(config, []byte(`
size = 8
population = 3
workers = 2
dna = ["loop: move\n rotcw\n goto loop"]
`), 0o644))

	text := execute(t, "run", "-c", config, "-n", "4", "--db", db)
	assert.Contains(text, "ticks:4 ")

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	ticks, err := st.Ticks()
	require.NoError(t, err)
	assert.Equal([]uint64{1, 2, 3, 4}, ticks)
}

func TestRun_Keep(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "keep.star")
	db := filepath.Join(dir, "db")

	require.NoError(t, os.WriteFile(config, []byte(`
size = 8
population = 2
dna = ["rotcw"]
`), 0o644))

	execute(t, "run", "-c", config, "-n", "5", "--db", db, "--keep", "2")

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	ticks, err := st.Ticks()
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 5}, ticks)
}

func TestLang(t *testing.T) {
	text := execute(t, "--lang", "en-US", "opcodes")
	assert.Contains(t, text, "Move (move)")

	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--lang", "not a language", "opcodes"})
	assert.Error(t, cmd.Execute())
}
