package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheikh-saqib/household-payoff-planner/internal/cli"
	"github.com/sheikh-saqib/household-payoff-planner/internal/schedule"
)

var progressCmd = &cobra.Command{
	Use:   "progress <plan.toml>",
	Short: "Paid-to-date figures and per-goal progress",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgress,
}

func init() {
	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, args []string) error {
	snap, err := loadPlan(args[0])
	if err != nil {
		return err
	}

	rows := schedule.Build(snap.Plan, snap.Goals, snap.Payments)
	progress := schedule.Summarize(snap.Plan, snap.Goals, snap.Payments, rows)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderProgress(snap.Plan.Name, progress))
	return nil
}
