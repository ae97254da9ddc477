package sim

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/critter/cpu"
	"github.com/ezrec/critter/creature"
	"github.com/ezrec/critter/internal"
	"github.com/ezrec/critter/world"
)

// TOURNAMENT is the number of candidates drawn when picking a parent.
const TOURNAMENT = 3

// RANDOM_TAPE is the size of a random seed genome.
const RANDOM_TAPE = 32

var _sim_defines = map[string]string{
	"MIN_TAPE":        fmt.Sprintf("%v", creature.MinTape),
	"MAX_TAPE":        fmt.Sprintf("%v", creature.MaxTape),
	"COLOUR_NONE":     fmt.Sprintf("%v", world.COLOUR_NONE),
	"COLOUR_WALL":     fmt.Sprintf("%v", world.COLOUR_WALL),
	"COLOUR_FOOD":     fmt.Sprintf("%v", world.COLOUR_FOOD),
	"COLOUR_ROCK":     fmt.Sprintf("%v", world.COLOUR_ROCK),
	"COLOUR_CREATURE": fmt.Sprintf("%v", world.COLOUR_CREATURE),
}

// Simulation is an arena of creatures sharing a world.
type Simulation struct {
	Verbose bool // If set, enables verbose logging.

	Config     Config              // Configuration the simulation was built from.
	World      *world.World        // Shared world.
	Mutator    *creature.Mutator   // Offspring DNA generator.
	Metabolism creature.Metabolism // Per-tick upkeep.
	Stats      Stats               // Running totals.

	creatures map[world.Id]*creature.Creature
	genomes   [][]byte
	nextId    world.Id
	rng       *rand.Rand
}

// NewSimulation creates a world from a configuration, and populates it.
func NewSimulation(config Config) (sim *Simulation, err error) {
	sim = &Simulation{
		Config:     config,
		World:      world.NewWorld(config.Size, rand.New(rand.NewSource(config.Seed))),
		Mutator:    creature.NewMutator(rand.New(rand.NewSource(config.Seed + 1))),
		Metabolism: creature.DefaultMetabolism,
		creatures:  make(map[world.Id]*creature.Creature),
		nextId:     1,
		rng:        rand.New(rand.NewSource(config.Seed + 2)),
	}

	sim.World.FoodRate = config.FoodRate
	sim.World.MaxFood = config.MaxFood
	sim.Mutator.Rate = config.MutationRate

	sim.World.Scatter(world.TILE_ROCK, config.Rocks)
	sim.World.Scatter(world.TILE_FOOD, config.MaxFood/2)
	sim.Stats.Food = uint64(sim.World.FoodSpawned())

	for n, src := range config.Dna {
		var dna []byte
		dna, err = sim.Assemble(src)
		if err != nil {
			err = &ErrDna{Index: n, Err: err}
			return
		}
		sim.genomes = append(sim.genomes, dna)
	}

	for n := range config.Population {
		var dna []byte
		if len(sim.genomes) > 0 {
			dna = sim.genomes[n%len(sim.genomes)]
		} else {
			dna = sim.Mutator.Random(RANDOM_TAPE)
		}
		_, err = sim.Spawn(dna, 0)
		if err != nil {
			return
		}
	}

	return
}

// Defines returns an iterator over the assembler predefines.
func (sim *Simulation) Defines() iter.Seq2[string, string] {
	metabolism := map[string]string{
		"MAX_HEALTH": fmt.Sprintf("%v", sim.Metabolism.MaxHealth),
		"MAX_HUNGER": fmt.Sprintf("%v", sim.Metabolism.MaxHunger),
		"MAX_WASTE":  fmt.Sprintf("%v", sim.Metabolism.MaxWaste),
	}

	return internal.IterSeq2Concat(maps.All(_sim_defines),
		maps.All(metabolism),
		cpu.NewCpu[creature.Word](nil, nil).Defines(),
	)
}

// Assemble converts assembler source to a tape, with the simulation's
// predefines available. Short tapes are padded to the mutator's MinTape,
// and tapes longer than its MaxTape are rejected.
func (sim *Simulation) Assemble(src string) (dna []byte, err error) {
	asm := &cpu.Assembler{Verbose: sim.Verbose}
	for equ, value := range sim.Defines() {
		asm.Predefine(equ, value)
	}

	prog, err := asm.Parse(strings.NewReader(src))
	if err != nil {
		return
	}

	bin := prog.Binary()
	if len(bin) > sim.Mutator.MaxTape {
		err = &cpu.ErrOffset{Offset: len(bin), Err: cpu.ErrValueRange}
		return
	}

	dna = sim.Mutator.Clamp(bin)

	return
}

// Spawn places a new creature with the given DNA on a random free tile.
func (sim *Simulation) Spawn(dna []byte, generation int) (c *creature.Creature, err error) {
	id := sim.nextId

	facing := cpu.Direction(sim.rng.Intn(cpu.DIRECTIONS))
	body, err := creature.NewBodyRandom(id, sim.World, facing)
	if err != nil {
		return
	}
	body.Vitals = sim.Metabolism.Birth()

	sim.nextId++

	c = creature.New(dna, body)
	c.Verbose = sim.Verbose
	c.Generation = generation
	sim.creatures[id] = c
	sim.Stats.Births++

	if sim.Verbose {
		log.Printf("sim: spawn %v", c)
	}

	return
}

// Creature returns a creature by id.
func (sim *Simulation) Creature(id world.Id) (c *creature.Creature, ok bool) {
	c, ok = sim.creatures[id]
	return
}

// Population returns the number of living creatures.
func (sim *Simulation) Population() int {
	return len(sim.creatures)
}

// Creatures iterates over the creatures in id order.
func (sim *Simulation) Creatures() iter.Seq[*creature.Creature] {
	return func(yield func(*creature.Creature) bool) {
		for _, id := range slices.Sorted(maps.Keys(sim.creatures)) {
			if !yield(sim.creatures[id]) {
				return
			}
		}
	}
}

// step runs one instruction for every creature, with at most
// Config.Workers creatures in flight. Each creature is owned by a single
// goroutine for the duration of the step.
func (sim *Simulation) step(ctx context.Context) (err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, sim.Config.Workers))

	for c := range sim.Creatures() {
		g.Go(func() (err error) {
			err = ctx.Err()
			if err != nil {
				return
			}
			err = c.Step()
			if errors.Is(err, cpu.ErrOpcodeUnknown) || errors.Is(err, cpu.ErrTapeEmpty) {
				err = nil
			}
			if err != nil {
				err = &ErrCreature{Id: c.Id(), Err: err}
			}
			return
		})
	}

	err = g.Wait()

	return
}

// totals returns the summed cycle and unknown opcode counters of all
// creatures.
func (sim *Simulation) totals() (cycles, unknown uint64) {
	for c := range sim.Creatures() {
		cycles += c.Cpu.Cycle()
		unknown += c.Unknown
	}
	return
}

// Tick runs one simulation tick: every creature executes one instruction,
// then bodies are upkept, living tapes may mutate at Config.SomaticRate,
// food respawns, and the dead are replaced by offspring of the fit.
func (sim *Simulation) Tick(ctx context.Context) (err error) {
	cycles, unknown := sim.totals()

	err = sim.step(ctx)
	if err != nil {
		return
	}

	afterCycles, afterUnknown := sim.totals()
	sim.Stats.Cycles += afterCycles - cycles
	sim.Stats.Unknown += afterUnknown - unknown

	var dead []*creature.Creature
	for c := range sim.Creatures() {
		if sim.Metabolism.Apply(c) {
			sim.Stats.Eaten++
		}
		if !c.Alive() {
			dead = append(dead, c)
			continue
		}
		if sim.Config.SomaticRate > 0 && sim.rng.Float64() < sim.Config.SomaticRate {
			sim.Mutator.Apply(c.Tape)
			sim.Stats.Mutated++
		}
	}

	for _, c := range dead {
		if sim.Verbose {
			log.Printf("sim: death %v", c)
		}
		c.Body.Leave()
		delete(sim.creatures, c.Id())
		sim.Stats.Deaths++
	}

	sim.World.RespawnFood()
	sim.Stats.Food = uint64(sim.World.FoodSpawned())

	err = sim.Evolve()
	if err != nil {
		return
	}

	sim.Stats.Ticks++

	if sim.Verbose {
		log.Printf("sim: %v population:%d", sim.Stats, sim.Population())
	}

	return
}

// Run runs ticks until the count is reached or the context is done.
func (sim *Simulation) Run(ctx context.Context, ticks int) (err error) {
	for range ticks {
		err = sim.Tick(ctx)
		if err != nil {
			return
		}
	}
	return
}

// fittest returns the fitter half of the population, fittest first.
func (sim *Simulation) fittest() (pool []*creature.Creature) {
	pool = slices.Collect(sim.Creatures())
	slices.SortStableFunc(pool, func(a, b *creature.Creature) int {
		return cmp.Compare(b.Fitness(), a.Fitness())
	})
	return pool[:(len(pool)+1)/2]
}

// tournament picks the fittest of TOURNAMENT random candidates.
func (sim *Simulation) tournament(pool []*creature.Creature) (best *creature.Creature) {
	for range TOURNAMENT {
		c := pool[sim.rng.Intn(len(pool))]
		if best == nil || c.Fitness() > best.Fitness() {
			best = c
		}
	}
	return
}

// Evolve refills the population up to Config.Population. Offspring are
// bred from tournament winners of the fitter half. If nobody survives,
// the seed genomes (or random ones) are used instead.
func (sim *Simulation) Evolve() (err error) {
	missing := sim.Config.Population - sim.Population()
	if missing <= 0 {
		return
	}

	pool := sim.fittest()

	for n := range missing {
		var dna []byte
		var generation int

		switch {
		case len(pool) > 0:
			a, b := sim.tournament(pool), sim.tournament(pool)
			dna = sim.Mutator.Offspring(a.Tape.Data, b.Tape.Data)
			generation = max(a.Generation, b.Generation) + 1
		case len(sim.genomes) > 0:
			dna = sim.Mutator.Mutate(slices.Clone(sim.genomes[n%len(sim.genomes)]))
		default:
			dna = sim.Mutator.Random(RANDOM_TAPE)
		}

		_, err = sim.Spawn(dna, generation)
		if errors.Is(err, world.ErrWorldFull) {
			err = nil
			break
		}
		if err != nil {
			return
		}
	}

	return
}

// Snapshots captures every creature, in id order.
func (sim *Simulation) Snapshots() (snaps []creature.Snapshot) {
	for c := range sim.Creatures() {
		snaps = append(snaps, c.Snapshot())
	}
	return
}

// Restore replaces the population with snapshotted creatures.
func (sim *Simulation) Restore(snaps []creature.Snapshot) (err error) {
	for _, c := range sim.creatures {
		c.Body.Leave()
	}
	clear(sim.creatures)

	for _, snap := range snaps {
		var c *creature.Creature
		c, err = creature.Restore(snap, sim.World)
		if err != nil {
			return
		}
		c.Verbose = sim.Verbose
		sim.creatures[snap.Id] = c
		sim.nextId = max(sim.nextId, snap.Id+1)
	}

	return
}
