package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sheikh-saqib/household-payoff-planner/internal/planfile"
)

var flagBudget string

var rootCmd = &cobra.Command{
	Use:          "planctl",
	Short:        "Household payoff planner CLI",
	Long:         "Preview debt payoff and savings schedules from a TOML plan file.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagBudget, "budget", "b", "", "Override the monthly budget (what-if preview)")
}

// loadPlan reads the plan file and applies the --budget override.
func loadPlan(path string) (planfile.Snapshot, error) {
	snap, err := planfile.Load(path)
	if err != nil {
		return planfile.Snapshot{}, err
	}
	if flagBudget != "" {
		budget, err := decimal.NewFromString(flagBudget)
		if err != nil {
			return planfile.Snapshot{}, fmt.Errorf("--budget %q: %w", flagBudget, err)
		}
		snap.Plan.MonthlyBudget = budget
	}
	return snap, nil
}
