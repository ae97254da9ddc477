package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/critter/cpu"
	"github.com/ezrec/critter/sim"
)

// assemble converts a source file to a tape, with the simulation predefines.
func assemble(filename string, verbose bool) (prog *cpu.Program, err error) {
	inf, err := os.Open(filename)
	if err != nil {
		return
	}
	defer inf.Close()

	s, err := sim.NewSimulation(sim.Config{Size: 1})
	if err != nil {
		return
	}

	asm := &cpu.Assembler{Verbose: verbose}
	for equ, value := range s.Defines() {
		asm.Predefine(equ, value)
	}

	prog, err = asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", filename, err)
		return
	}

	return
}

func asmCmd() *cobra.Command {
	var output string
	var listing bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "asm FILE",
		Short: "Assemble a DNA source file to a binary tape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			prog, err := assemble(args[0], verbose)
			if err != nil {
				return
			}

			if listing {
				fmt.Fprint(cmd.ErrOrStderr(), prog.String())
			}

			var ouf io.Writer = cmd.OutOrStdout()
			if output != "-" {
				var file *os.File
				file, err = os.Create(output)
				if err != nil {
					return
				}
				defer file.Close()
				ouf = file
			}

			_, err = ouf.Write(prog.Binary())
			return
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "Binary tape output")
	cmd.Flags().BoolVarP(&listing, "listing", "l", false, "Print a listing to stderr")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")

	return cmd
}

func disasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm FILE",
		Short: "List a binary tape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return
			}

			fmt.Fprint(cmd.OutOrStdout(), cpu.Disassemble(data).String())
			return
		},
	}
}
