package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheikh-saqib/household-payoff-planner/internal/cli"
	"github.com/sheikh-saqib/household-payoff-planner/internal/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <plan.toml>",
	Short: "Month-by-month allocation of the budget across goals",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	snap, err := loadPlan(args[0])
	if err != nil {
		return err
	}

	rows := schedule.Build(snap.Plan, snap.Goals, snap.Payments)
	complete := schedule.MonthStatuses(rows, snap.Goals, snap.Payments)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderSchedule(snap.Plan.Name, snap.Goals, rows, complete))
	return nil
}
