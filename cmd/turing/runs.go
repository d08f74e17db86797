package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage stored runs",
	Long:  `List, inspect, resume and remove runs kept in the configured run store.`,
}

var runsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := app.Runs.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No stored runs found.")
			return nil
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), "- "+id)
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print a stored run as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := app.Runs.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load run '%s': %w", args[0], err)
		}
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var runsStepCmd = &cobra.Command{
	Use:   "step <run-id>",
	Short: "Resume a stored run for a number of steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("n")
		if n < 1 {
			return errors.New("--n must be at least 1")
		}
		rec, err := app.Runs.Advance(cmd.Context(), args[0], n)
		if rec != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  step %d  state %s  head %d  %s\n", rec.ID, rec.Steps, rec.State, rec.Head, rec.Tape)
		}
		return err
	},
}

var runsRmCmd = &cobra.Command{
	Use:   "rm <run-id>...",
	Short: "Remove one or more runs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var errs []error
		for _, id := range args {
			if err := app.Runs.Delete(cmd.Context(), id); err != nil {
				errs = append(errs, fmt.Errorf("failed to remove '%s': %w", id, err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed run '%s'\n", id)
		}
		return errors.Join(errs...)
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsLsCmd, runsShowCmd, runsStepCmd, runsRmCmd)
	runsStepCmd.Flags().Int("n", 1, "Number of steps to apply")
}
