package schedule

import (
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
)

// GoalProgress is how far a single goal has come.
type GoalProgress struct {
	GoalID    string          `json:"goal_id"`
	Name      string          `json:"name"`
	Type      models.GoalType `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
	Percent   int             `json:"percent"`
}

// Progress is the household-level overview of a plan.
type Progress struct {
	TotalGoal      decimal.Decimal `json:"total_goal"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	OverallPercent int             `json:"overall_percent"`
	Goals          []GoalProgress  `json:"goals"`
	ScheduleMonths int             `json:"schedule_months"`
	MonthsLeft     int             `json:"months_left"`
	MonthsNeeded   int             `json:"months_needed"`
	EndsBy         string          `json:"ends_by,omitempty"`
	CapReached     bool            `json:"cap_reached"`
	OnTrack        bool            `json:"on_track"`
}

var hundred = decimal.NewFromInt(100)

// Summarize rolls payments and a schedule built from the same snapshot into
// a Progress overview.
func Summarize(plan models.Plan, goals []models.Goal, payments []models.PaymentRecord, rows []models.AllocationRow) Progress {
	paid := PaidToDate(goals, payments)
	remaining := RemainingBalances(goals, payments)

	p := Progress{
		TotalGoal:      decimal.Zero,
		TotalPaid:      decimal.Zero,
		TotalRemaining: decimal.Zero,
		Goals:          make([]GoalProgress, 0, len(goals)),
		ScheduleMonths: len(rows),
	}

	for _, g := range goals {
		p.TotalGoal = p.TotalGoal.Add(g.Amount)
		p.TotalPaid = p.TotalPaid.Add(paid[g.ID])
		p.TotalRemaining = p.TotalRemaining.Add(remaining[g.ID])
		p.Goals = append(p.Goals, GoalProgress{
			GoalID:    g.ID,
			Name:      g.Name,
			Type:      g.Type,
			Amount:    g.Amount,
			Paid:      paid[g.ID],
			Remaining: remaining[g.ID],
			Percent:   percent(paid[g.ID], g.Amount),
		})
	}
	p.OverallPercent = percent(p.TotalPaid, p.TotalGoal)
	p.MonthsNeeded = MonthsNeeded(p.TotalGoal, plan.MonthlyBudget)

	idx := indexPayments(payments)
	for _, row := range rows {
		if !monthFunded(row, goals, idx) {
			p.MonthsLeft++
		}
	}

	if len(rows) > 0 {
		p.EndsBy = rows[len(rows)-1].MonthKey
	}
	p.CapReached = CapReached(rows)
	p.OnTrack = !p.CapReached && endsInTime(plan, p.EndsBy)

	return p
}

// MonthsNeeded is the rough estimate ceil(total / budget) shown while a
// household edits its budget. Zero when the budget is not positive.
func MonthsNeeded(total, budget decimal.Decimal) int {
	if !budget.IsPositive() || !total.IsPositive() {
		return 0
	}
	return int(total.Div(budget).Ceil().IntPart())
}

// CapReached reports whether the projection ran into MonthCap with balances
// still open.
func CapReached(rows []models.AllocationRow) bool {
	return len(rows) == MonthCap && !settledRow(rows[len(rows)-1])
}

// MonthStatuses reports, per row, whether every goal funded that month has a
// checked payment for it.
func MonthStatuses(rows []models.AllocationRow, goals []models.Goal, payments []models.PaymentRecord) []bool {
	idx := indexPayments(payments)
	out := make([]bool, len(rows))
	for i, row := range rows {
		out[i] = monthChecked(row, goals, idx)
	}
	return out
}

type paymentKey struct {
	goalID   string
	monthKey string
}

func indexPayments(payments []models.PaymentRecord) map[paymentKey]models.PaymentRecord {
	idx := make(map[paymentKey]models.PaymentRecord, len(payments))
	for _, p := range payments {
		idx[paymentKey{goalID: p.GoalID, monthKey: p.MonthKey}] = p
	}
	return idx
}

func monthChecked(row models.AllocationRow, goals []models.Goal, idx map[paymentKey]models.PaymentRecord) bool {
	for _, g := range goals {
		if !row.Allocation[g.ID].IsPositive() {
			continue
		}
		p, ok := idx[paymentKey{goalID: g.ID, monthKey: row.MonthKey}]
		if !ok || !p.IsChecked {
			return false
		}
	}
	return true
}

// monthFunded is the looser test behind MonthsLeft: the amount paid covers
// the allocation, whether or not the box was ticked.
func monthFunded(row models.AllocationRow, goals []models.Goal, idx map[paymentKey]models.PaymentRecord) bool {
	for _, g := range goals {
		scheduled := row.Allocation[g.ID]
		if !scheduled.IsPositive() {
			continue
		}
		p, ok := idx[paymentKey{goalID: g.ID, monthKey: row.MonthKey}]
		if !ok || p.AmountPaid.LessThan(scheduled) {
			return false
		}
	}
	return true
}

func settledRow(row models.AllocationRow) bool {
	for _, balance := range row.Remaining {
		if balance.IsPositive() {
			return false
		}
	}
	return true
}

func endsInTime(plan models.Plan, endsBy string) bool {
	if endsBy == "" || plan.EndMonth.IsZero() {
		return true
	}
	last, err := models.ParseMonth(endsBy)
	if err != nil {
		return false
	}
	return !plan.EndMonth.Before(last)
}

func percent(part, whole decimal.Decimal) int {
	if !whole.IsPositive() {
		return 0
	}
	pct := part.Div(whole).Mul(hundred).Round(0)
	if pct.GreaterThan(hundred) {
		return 100
	}
	return int(pct.IntPart())
}
