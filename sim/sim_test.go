package sim

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/critter/cpu"
	"github.com/ezrec/critter/creature"
)

func testConfig(dna ...string) Config {
	config := DefaultConfig()
	config.Size = 16
	config.Population = 8
	config.Workers = 4
	config.Rocks = 0
	config.MaxFood = 0
	config.FoodRate = 0
	config.Dna = dna
	return config
}

// immortal disables all health damage.
func immortal(sim *Simulation) {
	sim.Metabolism.StarveDamage = 0
	sim.Metabolism.WasteDamage = 0
}

func TestNewSimulation(t *testing.T) {
	assert := assert.New(t)

	sim, err := NewSimulation(testConfig("move"))
	require.NoError(t, err)

	assert.Equal(8, sim.Population())
	assert.Equal(8, sim.World.Population())
	assert.Equal(uint64(8), sim.Stats.Births)

	var ids []int
	for c := range sim.Creatures() {
		ids = append(ids, int(c.Id()))
		assert.Equal(creature.MinTape, c.Tape.Len())
		assert.Equal(cpu.MOVE.Byte(), c.Tape.Data[0])
		assert.Equal(sim.Metabolism.MaxHealth, c.Body.Vitals.Health)
	}
	assert.Equal([]int{1, 2, 3, 4, 5, 6, 7, 8}, ids)

	c, ok := sim.Creature(3)
	assert.True(ok)
	assert.Equal(3, int(c.Id()))

	_, ok = sim.Creature(99)
	assert.False(ok)
}

func TestNewSimulation_Random(t *testing.T) {
	sim, err := NewSimulation(testConfig())
	require.NoError(t, err)

	for c := range sim.Creatures() {
		assert.GreaterOrEqual(t, c.Tape.Len(), creature.MinTape)
		assert.LessOrEqual(t, c.Tape.Len(), creature.MaxTape)
	}
}

func TestNewSimulation_DnaError(t *testing.T) {
	_, err := NewSimulation(testConfig("move", "fly"))

	var ed *ErrDna
	require.ErrorAs(t, err, &ed)
	assert.Equal(t, 1, ed.Index)
	assert.ErrorIs(t, err, cpu.ErrInstructionInvalid)
}

func TestSimulation_AssembleTooLong(t *testing.T) {
	assert := assert.New(t)

	sim, err := NewSimulation(testConfig("move"))
	require.NoError(t, err)

	fits := strings.Repeat("none\n", creature.MaxTape-4) + "set.abt 1 2 3\n"
	dna, err := sim.Assemble(fits)
	require.NoError(t, err)
	assert.Len(dna, creature.MaxTape)
	assert.Equal([]byte{cpu.SET_AB_TMP.Byte(), 1, 2, 3}, dna[creature.MaxTape-4:])

	long := strings.Repeat("none\n", creature.MaxTape-1) + "set.abt 1 2 3\n"
	_, err = sim.Assemble(long)
	var eo *cpu.ErrOffset
	require.ErrorAs(t, err, &eo)
	assert.Equal(creature.MaxTape+3, eo.Offset)
	assert.ErrorIs(err, cpu.ErrValueRange)

	_, err = NewSimulation(testConfig("move", long))
	var ed *ErrDna
	require.ErrorAs(t, err, &ed)
	assert.Equal(1, ed.Index)
	assert.ErrorIs(err, cpu.ErrValueRange)
}

func TestSimulation_Defines(t *testing.T) {
	assert := assert.New(t)

	sim, err := NewSimulation(testConfig("move"))
	require.NoError(t, err)

	defines := map[string]string{}
	for k, v := range sim.Defines() {
		defines[k] = v
	}

	assert.Equal("256", defines["MAX_TAPE"])
	assert.Equal("100", defines["MAX_HEALTH"])
	assert.Equal("0", defines["NORTH"])
	assert.Equal("3", defines["WEST"])

	dna, err := sim.Assemble("uadd MAX_HEALTH\niadd $(-WEST)\n")
	require.NoError(t, err)
	assert.Equal([]byte{cpu.UADD.Byte(), 100, cpu.IADD.Byte(), 0xfd}, dna[:4])
}

func TestSimulation_TickCycles(t *testing.T) {
	assert := assert.New(t)

	src := `
loop: move
      rotcw
      health
      losc
      goto loop
`
	sim, err := NewSimulation(testConfig(src))
	require.NoError(t, err)
	immortal(sim)

	const ticks = 25
	require.NoError(t, sim.Run(context.Background(), ticks))

	assert.Equal(8, sim.Population())
	for c := range sim.Creatures() {
		assert.Equal(uint64(ticks), c.Cpu.Cycle(), c.String())
		assert.Equal(uint64(ticks), c.Age)
	}
	assert.Equal(uint64(ticks), sim.Stats.Ticks)
	assert.Equal(uint64(ticks*8), sim.Stats.Cycles)
	assert.Equal(uint64(0), sim.Stats.Unknown)
	assert.Equal(uint64(0), sim.Stats.Deaths)
}

func TestSimulation_TickUnknown(t *testing.T) {
	assert := assert.New(t)

	sim, err := NewSimulation(testConfig(".byte 0xfc"))
	require.NoError(t, err)
	immortal(sim)

	require.NoError(t, sim.Run(context.Background(), 5))

	for c := range sim.Creatures() {
		assert.Equal(uint64(0), c.Cpu.Cycle())
		assert.Equal(uint64(5), c.Unknown)
		assert.Equal(0, c.Tape.Current)
	}
	assert.Equal(uint64(0), sim.Stats.Cycles)
	assert.Equal(uint64(5*8), sim.Stats.Unknown)
}

func TestSimulation_Evolve(t *testing.T) {
	assert := assert.New(t)

	sim, err := NewSimulation(testConfig("rotcw"))
	require.NoError(t, err)

	c, ok := sim.Creature(1)
	require.True(t, ok)
	c.Body.Vitals.Health = 0

	require.NoError(t, sim.Tick(context.Background()))

	_, ok = sim.Creature(1)
	assert.False(ok)
	assert.Equal(8, sim.Population())
	assert.Equal(8, sim.World.Population())
	assert.Equal(uint64(1), sim.Stats.Deaths)
	assert.Equal(uint64(9), sim.Stats.Births)

	child, ok := sim.Creature(9)
	require.True(t, ok)
	assert.Equal(1, child.Generation)
	assert.Equal(uint64(0), child.Cpu.Cycle())
}

func TestSimulation_Cancel(t *testing.T) {
	sim, err := NewSimulation(testConfig("move"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = sim.Tick(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(0), sim.Stats.Ticks)
}

func TestSimulation_Restore(t *testing.T) {
	assert := assert.New(t)

	config := testConfig("move\nrotccw\nuadd 3")
	sim, err := NewSimulation(config)
	require.NoError(t, err)
	immortal(sim)
	require.NoError(t, sim.Run(context.Background(), 4))

	snaps := sim.Snapshots()
	assert.Len(snaps, 8)

	config.Population = 0
	other, err := NewSimulation(config)
	require.NoError(t, err)
	require.NoError(t, other.Restore(snaps))

	assert.Equal(snaps, other.Snapshots())
	assert.Equal(8, other.World.Population())

	c, err := other.Spawn([]byte{cpu.MOVE.Byte()}, 0)
	require.NoError(t, err)
	assert.Equal(9, int(c.Id()))
}

func TestSimulation_Somatic(t *testing.T) {
	assert := assert.New(t)

	config := testConfig("loop: move\nrotcw\nuadd 1\ngoto loop")
	config.SomaticRate = 1
	sim, err := NewSimulation(config)
	require.NoError(t, err)
	immortal(sim)

	require.NoError(t, sim.Run(context.Background(), 3))

	assert.Equal(uint64(3*8), sim.Stats.Mutated)
	for c := range sim.Creatures() {
		assert.GreaterOrEqual(c.Tape.Len(), creature.MinTape)
		assert.LessOrEqual(c.Tape.Len(), creature.MaxTape)
		assert.Less(c.Tape.Current, c.Tape.Len())
	}

	config.SomaticRate = 0
	still, err := NewSimulation(config)
	require.NoError(t, err)
	immortal(still)
	require.NoError(t, still.Run(context.Background(), 3))
	assert.Equal(uint64(0), still.Stats.Mutated)
}

func TestSimulation_Food(t *testing.T) {
	assert := assert.New(t)

	config := testConfig("rotcw")
	config.MaxFood = 10
	sim, err := NewSimulation(config)
	require.NoError(t, err)

	assert.Equal(uint64(5), sim.Stats.Food)

	sim.World.FoodRate = 1
	require.NoError(t, sim.Tick(context.Background()))
	assert.Equal(uint64(sim.World.FoodSpawned()), sim.Stats.Food)
	assert.Greater(sim.Stats.Food, uint64(5))
}
