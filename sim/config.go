package sim

import (
	"log"
	"math"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Config is the simulation configuration.
//
// A config file is a Starlark script whose globals name the fields:
//
//	size = 32
//	population = 16
//	dna = ["""
//	loop: move
//	      goto loop
//	"""]
type Config struct {
	Size         int      // Width and height of the world.
	Population   int      // Creatures at the start.
	Workers      int      // Creatures stepped in parallel.
	Seed         int64    // Random seed.
	FoodRate     float64  // Probability of a food spawn per tick.
	MaxFood      int      // Cap on food tiles.
	Rocks        int      // Rocks scattered at the start.
	MutationRate float64  // Probability of mutating an offspring.
	SomaticRate  float64  // Probability of mutating a living creature's tape per tick.
	Ticks        int      // Ticks to run.
	Dna          []string // Seed genomes, as assembler source.
}

// DefaultConfig returns the configuration used for unset fields.
func DefaultConfig() Config {
	return Config{
		Size:         32,
		Population:   16,
		Workers:      4,
		Seed:         1,
		FoodRate:     0.25,
		MaxFood:      24,
		Rocks:        8,
		MutationRate: 0.8,
		Ticks:        1000,
	}
}

func configInt(key string, value starlark.Value, low, high int64) (v int64, err error) {
	i, ok := value.(starlark.Int)
	if !ok {
		err = &ErrConfig{Key: key, Err: ErrConfigType}
		return
	}
	v, ok = i.Int64()
	if !ok || v < low || v > high {
		err = &ErrConfig{Key: key, Err: ErrConfigRange}
		return
	}
	return
}

func configFloat(key string, value starlark.Value) (v float64, err error) {
	v, ok := starlark.AsFloat(value)
	if !ok {
		err = &ErrConfig{Key: key, Err: ErrConfigType}
		return
	}
	if v < 0 || v > 1 {
		err = &ErrConfig{Key: key, Err: ErrConfigRange}
		return
	}
	return
}

func configStrings(key string, value starlark.Value) (v []string, err error) {
	if str, ok := starlark.AsString(value); ok {
		v = []string{str}
		return
	}

	iterable, ok := value.(starlark.Iterable)
	if !ok {
		err = &ErrConfig{Key: key, Err: ErrConfigType}
		return
	}

	it := iterable.Iterate()
	defer it.Done()

	var item starlark.Value
	for it.Next(&item) {
		str, ok := starlark.AsString(item)
		if !ok {
			err = &ErrConfig{Key: key, Err: ErrConfigType}
			return
		}
		v = append(v, str)
	}
	return
}

// LoadConfig executes a Starlark config script. src may be nil, a string,
// a []byte or an io.Reader; if nil, filename is read.
func LoadConfig(filename string, src any) (config Config, err error) {
	config = DefaultConfig()

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("config: %v", msg)
		},
	}
	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, nil)
	if err != nil {
		return
	}

	for key, value := range globals {
		var v int64
		switch key {
		case "size":
			v, err = configInt(key, value, 1, 4096)
			config.Size = int(v)
		case "population":
			v, err = configInt(key, value, 0, math.MaxInt32)
			config.Population = int(v)
		case "workers":
			v, err = configInt(key, value, 1, 1024)
			config.Workers = int(v)
		case "seed":
			config.Seed, err = configInt(key, value, math.MinInt64, math.MaxInt64)
		case "max_food":
			v, err = configInt(key, value, 0, math.MaxInt32)
			config.MaxFood = int(v)
		case "rocks":
			v, err = configInt(key, value, 0, math.MaxInt32)
			config.Rocks = int(v)
		case "ticks":
			v, err = configInt(key, value, 0, math.MaxInt32)
			config.Ticks = int(v)
		case "word_bits":
			v, err = configInt(key, value, 0, 1024)
			if err == nil && v != 64 {
				err = &ErrConfig{Key: key, Err: ErrConfigWordBits}
			}
		case "food_rate":
			config.FoodRate, err = configFloat(key, value)
		case "mutation_rate":
			config.MutationRate, err = configFloat(key, value)
		case "dna":
			config.Dna, err = configStrings(key, value)
		default:
			// Starlark helpers may be defined with a leading underscore.
			if len(key) > 0 && key[0] == '_' {
				continue
			}
			if _, ok := value.(*starlark.Function); ok {
				continue
			}
			err = &ErrConfig{Key: key, Err: ErrConfigUnknown}
		}
		if err != nil {
			return
		}
	}

	if config.Population > config.Size*config.Size {
		err = &ErrConfig{Key: "population", Err: ErrConfigRange}
		return
	}

	return
}
