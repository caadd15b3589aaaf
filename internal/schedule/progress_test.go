package schedule

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
)

func checked(goalID, month string, amount int64) models.PaymentRecord {
	p := paid(goalID, month, amount)
	p.ScheduledAmount = p.AmountPaid
	p.IsChecked = true
	return p
}

func TestSummarize(t *testing.T) {
	plan := planWithBudget("1000", "2024-01")
	plan.EndMonth = models.MustParseMonth("2024-06")
	goals := []models.Goal{debt("card", 2000, 1), savings("fund", 600)}
	payments := []models.PaymentRecord{
		checked("card", "2024-01", 750),
		checked("fund", "2024-01", 250),
	}
	rows := Build(plan, goals, payments)
	require.Len(t, rows, 2)

	p := Summarize(plan, goals, payments, rows)

	assert.Equal(t, "2600", p.TotalGoal.String())
	assert.Equal(t, "1000", p.TotalPaid.String())
	assert.Equal(t, "1600", p.TotalRemaining.String())
	assert.Equal(t, 38, p.OverallPercent)
	assert.Equal(t, 2, p.ScheduleMonths)
	assert.Equal(t, 1, p.MonthsLeft)
	assert.Equal(t, 3, p.MonthsNeeded)
	assert.Equal(t, "2024-02", p.EndsBy)
	assert.False(t, p.CapReached)
	assert.True(t, p.OnTrack)

	require.Len(t, p.Goals, 2)
	assert.Equal(t, "card", p.Goals[0].GoalID)
	assert.Equal(t, "750", p.Goals[0].Paid.String())
	assert.Equal(t, "1250", p.Goals[0].Remaining.String())
	assert.Equal(t, 38, p.Goals[0].Percent)
	assert.Equal(t, 42, p.Goals[1].Percent)
}

func TestSummarizeOffTrackWhenPastEndMonth(t *testing.T) {
	plan := planWithBudget("1000", "2024-01")
	plan.EndMonth = models.MustParseMonth("2024-02")
	goals := []models.Goal{debt("card", 2000, 1), savings("fund", 600)}
	rows := Build(plan, goals, nil)

	p := Summarize(plan, goals, nil, rows)

	assert.Equal(t, "2024-03", p.EndsBy)
	assert.False(t, p.OnTrack)
}

func TestSummarizeCapReached(t *testing.T) {
	plan := planWithBudget("100", "2024-01")
	plan.EndMonth = models.MustParseMonth("2099-12")
	goals := []models.Goal{debt("mortgage", 500000, 1)}
	rows := Build(plan, goals, nil)

	p := Summarize(plan, goals, nil, rows)

	assert.True(t, p.CapReached)
	assert.False(t, p.OnTrack)
	assert.Equal(t, MonthCap, p.MonthsLeft)
}

func TestSummarizeEmptyPlan(t *testing.T) {
	plan := planWithBudget("1000", "2024-01")

	p := Summarize(plan, nil, nil, nil)

	assert.True(t, p.TotalGoal.IsZero())
	assert.Equal(t, 0, p.OverallPercent)
	assert.Empty(t, p.Goals)
	assert.Equal(t, "", p.EndsBy)
	assert.True(t, p.OnTrack)
}

func TestSummarizeCapsPercentAtHundred(t *testing.T) {
	plan := planWithBudget("100", "2024-01")
	goals := []models.Goal{savings("fund", 100)}
	payments := []models.PaymentRecord{paid("fund", "2024-01", 150)}

	p := Summarize(plan, goals, payments, Build(plan, goals, payments))

	assert.Equal(t, 100, p.Goals[0].Percent)
	assert.Equal(t, 100, p.OverallPercent)
	assert.True(t, p.TotalRemaining.IsZero())
}

func TestMonthsNeeded(t *testing.T) {
	tests := []struct {
		total, budget string
		want          int
	}{
		{"2600", "1000", 3},
		{"2000", "1000", 2},
		{"1", "1000", 1},
		{"0", "1000", 0},
		{"2600", "0", 0},
		{"2600", "-10", 0},
	}
	for _, tt := range tests {
		got := MonthsNeeded(decimal.RequireFromString(tt.total), decimal.RequireFromString(tt.budget))
		assert.Equal(t, tt.want, got, "MonthsNeeded(%s, %s)", tt.total, tt.budget)
	}
}

func TestMonthStatusesNeedCheckedPaymentForFundedGoals(t *testing.T) {
	goals := []models.Goal{debt("card", 2000, 1), savings("fund", 600)}
	rows := []models.AllocationRow{{
		MonthKey: "2024-03",
		Allocation: map[string]decimal.Decimal{
			"card": decimal.NewFromInt(500),
			"fund": decimal.Zero,
		},
	}}

	assert.Equal(t, []bool{false}, MonthStatuses(rows, goals, nil))

	partial := paid("card", "2024-03", 200)
	partial.IsPartial = true
	assert.Equal(t, []bool{false}, MonthStatuses(rows, goals, []models.PaymentRecord{partial}))

	assert.Equal(t, []bool{false}, MonthStatuses(rows, goals, []models.PaymentRecord{checked("card", "2024-02", 500)}))

	// Goals with nothing scheduled that month do not need a payment.
	assert.Equal(t, []bool{true}, MonthStatuses(rows, goals, []models.PaymentRecord{checked("card", "2024-03", 500)}))
}

func TestMonthStatuses(t *testing.T) {
	plan := planWithBudget("1000", "2024-01")
	goals := []models.Goal{debt("card", 2000, 1), savings("fund", 600)}
	rows := Build(plan, goals, nil)
	payments := []models.PaymentRecord{
		checked("card", "2024-01", 750),
		checked("fund", "2024-01", 250),
		checked("card", "2024-02", 750),
	}

	assert.Equal(t, []bool{true, false, false}, MonthStatuses(rows, goals, payments))
}
