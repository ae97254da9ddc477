package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/ezrec/critter/cpu"
	"github.com/ezrec/critter/internal"
	"github.com/ezrec/critter/sim"
)

// opcodeTree lists the instruction set, grouped by family.
func opcodeTree() treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue("instructions")

	groups := map[cpu.Group]treeprint.Tree{}
	for inst := range cpu.Instructions() {
		branch, ok := groups[inst.Group()]
		if !ok {
			branch = tree.AddBranch(inst.Group().String())
			groups[inst.Group()] = branch
		}
		branch.AddNode(fmt.Sprintf("[0b%06b=0x%02X] [%d] %v (%v)",
			inst.Id(), inst.Byte(), inst.Arity(), inst.Name(), inst))
	}

	return tree
}

func opcodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "opcodes",
		Short: "List the instruction set",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), opcodeTree().String())
		},
	}
}

func definesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defines",
		Short: "List the assembler predefines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := sim.NewSimulation(sim.Config{Size: 1})
			if err != nil {
				return
			}
			for equ, value := range internal.IterSeq2Sorted(s.Defines()) {
				fmt.Fprintf(cmd.OutOrStdout(), ".equ %-16s %v\n", equ, value)
			}
			return
		},
	}
}
