package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
	"github.com/sheikh-saqib/household-payoff-planner/internal/schedule"
)

func TestScheduleView(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	ctx := context.Background()
	plan, debt, fund := debtAndSavings(t, p)

	view, err := p.Schedule(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, view.Months, 2)
	assert.Equal(t, plan.ID, view.Plan.ID)
	assert.Len(t, view.Goals, 2)
	assert.False(t, view.CapReached)

	first := view.Months[0]
	assert.Equal(t, "2026-01", first.MonthKey)
	assert.Equal(t, "750", first.Allocation[debt.ID].String())
	assert.Equal(t, "250", first.Allocation[fund.ID].String())
	assert.Equal(t, "1000", first.Total.String())
	assert.False(t, first.Complete)

	second := view.Months[1]
	assert.Equal(t, "2026-02", second.MonthKey)
	assert.Equal(t, "600", second.Total.String())
}

func TestScheduleViewMarksCheckedMonth(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	ctx := context.Background()
	plan := mustCreatePlan(t, p, "100")
	debt := mustAddGoal(t, p, plan.ID, newGoal("Card", models.GoalDebt, "300"))

	_, err := p.CheckPayment(ctx, plan.ID, debt.ID, "2026-01", true)
	require.NoError(t, err)

	view, err := p.Schedule(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, view.Months, 2)
	assert.True(t, view.Months[0].Complete)
	assert.False(t, view.Months[1].Complete)
}

func TestScheduleViewCapReached(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	plan := mustCreatePlan(t, p, "10")
	mustAddGoal(t, p, plan.ID, newGoal("Mortgage", models.GoalDebt, "100000"))

	view, err := p.Schedule(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Len(t, view.Months, schedule.MonthCap)
	assert.True(t, view.CapReached)
}

func TestScheduleViewEmptyPlan(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	plan := mustCreatePlan(t, p, "1000")

	view, err := p.Schedule(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.NotNil(t, view.Months)
	assert.Empty(t, view.Months)

	_, err = p.Schedule(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrPlanNotFound)
}

func TestProgress(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	ctx := context.Background()
	plan, debt, _ := debtAndSavings(t, p)

	_, err := p.CheckPayment(ctx, plan.ID, debt.ID, "2026-01", true)
	require.NoError(t, err)

	progress, err := p.Progress(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "1600", progress.TotalGoal.String())
	assert.Equal(t, "750", progress.TotalPaid.String())
	assert.Equal(t, "850", progress.TotalRemaining.String())
	assert.Equal(t, 47, progress.OverallPercent)
	assert.Equal(t, 2, progress.MonthsNeeded)
	require.Len(t, progress.Goals, 2)
	assert.Equal(t, 75, progress.Goals[0].Percent)
	assert.True(t, progress.OnTrack)

	_, err = p.Progress(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrPlanNotFound)
}
