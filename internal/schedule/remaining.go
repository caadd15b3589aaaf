package schedule

import (
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
)

// RemainingBalances returns each goal's amount minus everything paid toward it,
// floored at zero. Payments for unknown goals are ignored.
func RemainingBalances(goals []models.Goal, payments []models.PaymentRecord) map[string]decimal.Decimal {
	remaining := make(map[string]decimal.Decimal, len(goals))
	for _, g := range goals {
		remaining[g.ID] = g.Amount
	}

	for _, p := range payments {
		balance, ok := remaining[p.GoalID]
		if !ok {
			continue
		}
		remaining[p.GoalID] = floorZero(balance.Sub(p.AmountPaid))
	}
	return remaining
}

// PaidToDate sums AmountPaid per known goal.
func PaidToDate(goals []models.Goal, payments []models.PaymentRecord) map[string]decimal.Decimal {
	paid := make(map[string]decimal.Decimal, len(goals))
	for _, g := range goals {
		paid[g.ID] = decimal.Zero
	}
	for _, p := range payments {
		if total, ok := paid[p.GoalID]; ok {
			paid[p.GoalID] = total.Add(p.AmountPaid)
		}
	}
	return paid
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
