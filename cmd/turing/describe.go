package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/presentation/tui"
)

var describeCmd = &cobra.Command{
	Use:   "describe <machine>",
	Short: "Show the transition table of a machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := app.Programs.Get(args[0])
		if err != nil {
			return err
		}

		sheet := tui.RuleSheet(p.Name, p.Description, p.Table.Rules())
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Fprint(cmd.OutOrStdout(), sheet)
			return nil
		}

		rendered, err := tui.NewRenderer()(sheet)
		if err != nil {
			return fmt.Errorf("failed to render rules: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("raw", false, "Print the markdown source instead of rendering it")
}
