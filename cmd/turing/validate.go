package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [machine]...",
	Short: "Check transition tables for consistency",
	Long:  `Crawls each table from its start state and reports shadowed rules, unreachable states and dead ends. Without arguments every catalog machine is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if len(names) == 0 {
			for _, p := range app.Programs.List() {
				names = append(names, p.Name)
			}
		}

		var failed []error
		for _, name := range names {
			p, err := app.Programs.Get(name)
			if err != nil {
				failed = append(failed, err)
				continue
			}
			if err := validator.ValidateTable(p.Table.Rules(), p.Start); err != nil {
				failed = append(failed, fmt.Errorf("%s: %w", name, err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", name)
		}
		return errors.Join(failed...)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
