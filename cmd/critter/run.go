package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ezrec/critter/sim"
	"github.com/ezrec/critter/store"
)

type runOptions struct {
	config  string
	ticks   int
	db      string
	resume  bool
	keep    int
	world   bool
	verbose bool
}

// simulate runs a simulation, snapshotting every tick to st if set.
// When keep is positive, only the latest keep ticks stay in the store.
func simulate(ctx context.Context, s *sim.Simulation, st *store.Store, ticks int, keep int) (err error) {
	for range ticks {
		err = s.Tick(ctx)
		if err != nil {
			return
		}

		if st == nil {
			continue
		}

		tick := s.Stats.Ticks
		err = st.SaveTick(tick, s.Snapshots())
		if err != nil {
			return
		}

		if keep > 0 && tick > uint64(keep) {
			err = st.DeleteTick(tick - uint64(keep))
			if err != nil {
				return
			}
		}
	}

	return
}

// resume restores the population of the latest stored tick.
func resume(s *sim.Simulation, st *store.Store) (err error) {
	ticks, err := st.Ticks()
	if err != nil || len(ticks) == 0 {
		return
	}

	last := slices.Max(ticks)
	snaps, err := st.LoadTick(last)
	if err != nil {
		return
	}

	err = s.Restore(snaps)
	if err != nil {
		return
	}
	s.Stats.Ticks = last

	log.Printf("critter: resumed at tick %d, population %d", last, s.Population())

	return
}

func runSimulation(cmd *cobra.Command, opts *runOptions) (err error) {
	config := sim.DefaultConfig()
	if opts.config != "" {
		config, err = sim.LoadConfig(opts.config, nil)
		if err != nil {
			return
		}
	}
	if cmd.Flags().Changed("ticks") {
		config.Ticks = opts.ticks
	}

	s, err := sim.NewSimulation(config)
	if err != nil {
		return
	}
	s.Verbose = opts.verbose
	s.World.Verbose = opts.verbose

	var st *store.Store
	if opts.db != "" {
		st, err = store.Open(opts.db)
		if err != nil {
			return
		}
		defer st.Close()
		st.Verbose = opts.verbose

		if opts.resume {
			err = resume(s, st)
			if err != nil {
				return
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = simulate(ctx, s, st, config.Ticks, opts.keep)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%v population:%d\n", s.Stats, s.Population())
	if opts.world {
		fmt.Fprint(out, s.World.String())
	}

	return
}

func runCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "Starlark config file")
	cmd.Flags().IntVarP(&opts.ticks, "ticks", "n", 0, "Ticks to run (overrides the config)")
	cmd.Flags().StringVar(&opts.db, "db", "", "LevelDB directory for per-tick snapshots")
	cmd.Flags().BoolVar(&opts.resume, "resume", false, "Resume from the latest tick in --db")
	cmd.Flags().IntVar(&opts.keep, "keep", 0, "Ticks to keep in --db (0 keeps all)")
	cmd.Flags().BoolVarP(&opts.world, "world", "w", false, "Print the world after the run")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose mode")

	return cmd
}
