package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <machine>",
	Short: "Export the state diagram of a machine",
	Long:  `Outputs a Mermaid flowchart (graph LR) with one edge per transition rule.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := app.Programs.Get(args[0])
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if runID, _ := cmd.Flags().GetString("run"); runID != "" {
			rec, err := app.Store.Load(cmd.Context(), runID)
			if err != nil {
				return fmt.Errorf("failed to load run %s: %w", runID, err)
			}
			overlay = &graph.GraphOverlay{CurrentState: rec.State}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(p.Table.Rules(), p.Start, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("run", "", "Highlight the current state of a stored run")
}
