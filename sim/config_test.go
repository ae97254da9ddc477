package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	src := `
def _area(n):
    return n * n

size = 8
population = _area(2)
workers = 2
seed = 7
food_rate = 0.5
mutation_rate = 0
somatic_rate = 0.125
max_food = 10
rocks = 3
ticks = 50
word_bits = 64
dna = ["move", """
loop: rotcw
      goto loop
"""]
print("loaded")
`
	config, err := LoadConfig("test.star", src)
	require.NoError(t, err)

	assert.Equal(8, config.Size)
	assert.Equal(4, config.Population)
	assert.Equal(2, config.Workers)
	assert.Equal(int64(7), config.Seed)
	assert.Equal(0.5, config.FoodRate)
	assert.Equal(0.0, config.MutationRate)
	assert.Equal(0.125, config.SomaticRate)
	assert.Equal(10, config.MaxFood)
	assert.Equal(3, config.Rocks)
	assert.Equal(50, config.Ticks)
	assert.Len(config.Dna, 2)
	assert.Equal("move", config.Dna[0])
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("empty.star", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfig_SingleDna(t *testing.T) {
	config, err := LoadConfig("one.star", `dna = "move"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"move"}, config.Dna)
}

func TestLoadConfig_Error(t *testing.T) {
	table := [...]struct {
		src string
		key string
		err error
	}{
		{"colour = 3", "colour", ErrConfigUnknown},
		{"word_bits = 32", "word_bits", ErrConfigWordBits},
		{`size = "big"`, "size", ErrConfigType},
		{"size = 0", "size", ErrConfigRange},
		{"food_rate = 2.0", "food_rate", ErrConfigRange},
		{"mutation_rate = None", "mutation_rate", ErrConfigType},
		{"somatic_rate = -0.5", "somatic_rate", ErrConfigRange},
		{"dna = [1, 2]", "dna", ErrConfigType},
		{"size = 2\npopulation = 5", "population", ErrConfigRange},
	}

	for _, entry := range table {
		_, err := LoadConfig("bad.star", entry.src)
		var ec *ErrConfig
		if assert.ErrorAs(t, err, &ec, entry.src) {
			assert.Equal(t, entry.key, ec.Key, entry.src)
		}
		assert.ErrorIs(t, err, entry.err, entry.src)
	}
}

func TestLoadConfig_Syntax(t *testing.T) {
	_, err := LoadConfig("syntax.star", "size = (")
	assert.Error(t, err)
}
