package schedule

import (
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
)

func debt(id string, amount int64, priority int) models.Goal {
	return models.Goal{ID: id, Name: id, Type: models.GoalDebt, Amount: decimal.NewFromInt(amount), Priority: priority}
}

func savings(id string, amount int64) models.Goal {
	return models.Goal{ID: id, Name: id, Type: models.GoalSavings, Amount: decimal.NewFromInt(amount)}
}

func paid(goalID, month string, amount int64) models.PaymentRecord {
	return models.PaymentRecord{GoalID: goalID, MonthKey: month, AmountPaid: decimal.NewFromInt(amount)}
}

func planWithBudget(budget string, start string) models.Plan {
	return models.Plan{
		ID:            "plan-1",
		MonthlyBudget: decimal.RequireFromString(budget),
		StartMonth:    models.MustParseMonth(start),
	}
}

// strs flattens decimals to their canonical strings so comparisons ignore
// internal exponent differences.
func strs(m map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v.String()
	}
	return out
}
