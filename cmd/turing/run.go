package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <machine>",
	Short: "Run a machine from the catalog",
	Long: `Builds the machine on the given tape and runs it until it halts, gets stuck
or uses up its step budget. With --trace every configuration is printed; with
--step the run waits for Enter before each transition (q quits).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		opts := cli.RunOptions{Machine: args[0]}
		opts.Tape, _ = flags.GetString("tape")
		opts.Head, _ = flags.GetInt("head")
		opts.MaxSteps, _ = flags.GetInt("max-steps")
		opts.Trace, _ = flags.GetBool("trace")
		opts.Interactive, _ = flags.GetBool("step")
		opts.Save, _ = flags.GetBool("save")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		_, err := cli.Execute(ctx, app, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("tape", "", "Initial tape, '_' for blank cells (default: the machine's example)")
	runCmd.Flags().Int("head", -1, "Initial head index (default: the machine's choice)")
	runCmd.Flags().Int("max-steps", 0, "Step budget for this run (default: run.max_steps)")
	runCmd.Flags().BoolP("trace", "t", false, "Print every configuration")
	runCmd.Flags().BoolP("step", "s", false, "Wait for Enter before each step")
	runCmd.Flags().Bool("save", false, "Store the final configuration as a run")
}
