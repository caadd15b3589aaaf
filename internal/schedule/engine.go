// Package schedule projects how a shared monthly budget is spread across a
// household's debts and savings goals.
//
// Build is a pure function of its arguments. It never touches storage and
// keeps no state between calls, so identical snapshots always produce
// identical schedules.
package schedule

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
)

// MonthCap bounds the projection. A plan still unfinished after this many
// months is returned as is.
const MonthCap = 120

var (
	savingsReserveRate = decimal.RequireFromString("0.25")
	savingsReserveCap  = decimal.NewFromInt(500)
)

// Build projects the plan forward from its start month, one row per month,
// until every goal is settled or MonthCap rows exist.
//
// Each month at most one debt is funded: the lowest-priority-number debt
// that still has a balance. While any savings goal is open, the debt payment
// leaves min(25% of budget, 500) for savings. Whatever is left is split
// evenly over the open savings goals, the first of them taking the
// remainder of the floor division.
func Build(plan models.Plan, goals []models.Goal, payments []models.PaymentRecord) []models.AllocationRow {
	remaining := RemainingBalances(goals, payments)
	rows := make([]models.AllocationRow, 0)

	if len(goals) == 0 || !plan.MonthlyBudget.IsPositive() {
		return rows
	}

	debts, savings := partition(goals)
	month := plan.StartMonth

	for len(rows) < MonthCap {
		if settled(goals, remaining) {
			break
		}

		alloc := allocateMonth(plan.MonthlyBudget, goals, debts, savings, remaining)
		for _, g := range goals {
			remaining[g.ID] = floorZero(remaining[g.ID].Sub(alloc[g.ID]))
		}

		rows = append(rows, models.AllocationRow{
			MonthKey:   month.String(),
			Allocation: alloc,
			Remaining:  snapshot(goals, remaining),
		})
		month = month.Next()
	}

	return rows
}

func allocateMonth(budget decimal.Decimal, goals, debts, savings []models.Goal, remaining map[string]decimal.Decimal) map[string]decimal.Decimal {
	alloc := make(map[string]decimal.Decimal, len(goals))
	for _, g := range goals {
		alloc[g.ID] = decimal.Zero
	}

	openSavings := open(savings, remaining)
	leftover := budget

	if debt, ok := firstOpen(debts, remaining); ok {
		reserve := decimal.Zero
		if len(openSavings) > 0 {
			reserve = decimal.Min(leftover.Mul(savingsReserveRate), savingsReserveCap)
		}

		pay := decimal.Min(remaining[debt.ID], leftover.Sub(reserve)).Round(0)
		// Rounding up must not overpay the debt or the month.
		pay = decimal.Max(decimal.Zero, decimal.Min(pay, remaining[debt.ID], leftover))

		alloc[debt.ID] = pay
		leftover = leftover.Sub(pay)
	}

	if n := len(openSavings); n > 0 {
		count := decimal.NewFromInt(int64(n))
		share := leftover.Div(count).Floor()
		extra := leftover.Sub(share.Mul(count))

		for i, g := range openSavings {
			give := share
			if i == 0 {
				give = give.Add(extra)
			}
			alloc[g.ID] = decimal.Min(remaining[g.ID], give)
		}
	}

	return alloc
}

// partition splits goals into debts ordered by priority and savings in input
// order. Equal priorities keep input order.
func partition(goals []models.Goal) (debts, savings []models.Goal) {
	for _, g := range goals {
		switch {
		case g.IsDebt():
			debts = append(debts, g)
		case g.IsSavings():
			savings = append(savings, g)
		}
	}
	sort.SliceStable(debts, func(i, j int) bool {
		return debts[i].Priority < debts[j].Priority
	})
	return debts, savings
}

func firstOpen(goals []models.Goal, remaining map[string]decimal.Decimal) (models.Goal, bool) {
	for _, g := range goals {
		if remaining[g.ID].IsPositive() {
			return g, true
		}
	}
	return models.Goal{}, false
}

func open(goals []models.Goal, remaining map[string]decimal.Decimal) []models.Goal {
	var active []models.Goal
	for _, g := range goals {
		if remaining[g.ID].IsPositive() {
			active = append(active, g)
		}
	}
	return active
}

func settled(goals []models.Goal, remaining map[string]decimal.Decimal) bool {
	for _, g := range goals {
		if remaining[g.ID].IsPositive() {
			return false
		}
	}
	return true
}

func snapshot(goals []models.Goal, remaining map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(goals))
	for _, g := range goals {
		out[g.ID] = remaining[g.ID]
	}
	return out
}
