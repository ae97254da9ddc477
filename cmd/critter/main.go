// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command critter assembles creature DNA and runs simulations.
package main

import (
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/ezrec/critter/translate"
)

func rootCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "critter",
		Short: "DNA bytecode creatures",
		Long: `critter assembles and lists creature DNA tapes, and runs
simulations of creatures evolving in a shared world.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			if lang == "" {
				return
			}
			tag, err := language.Parse(lang)
			if err != nil {
				return
			}
			translate.SetLanguage(tag)
			return
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	// Error sentinels are formatted at startup in the host locale; --lang
	// applies to messages formatted after flag parsing.
	cmd.PersistentFlags().StringVar(&lang, "lang", "", "Language tag for messages, such as en-US (default: host locale)")

	cmd.AddCommand(
		opcodesCmd(),
		definesCmd(),
		asmCmd(),
		disasmCmd(),
		runCmd(),
	)

	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatalf("critter: %v", err)
	}
}
