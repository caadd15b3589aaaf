package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
)

func seedPlan(t *testing.T, s *MemoryPlanStore, id string, created time.Time) models.Plan {
	t.Helper()
	plan := models.Plan{
		ID:            id,
		HouseholdID:   "hh-1",
		Name:          id,
		MonthlyBudget: decimal.NewFromInt(1000),
		StartMonth:    models.MustParseMonth("2024-01"),
		EndMonth:      models.MustParseMonth("2024-12"),
		Status:        models.PlanActive,
		CreatedAt:     created,
	}
	require.NoError(t, s.CreatePlan(context.Background(), plan))
	return plan
}

func goal(id, planID string, priority int) models.Goal {
	return models.Goal{ID: id, PlanID: planID, Name: id, Type: models.GoalDebt, Amount: decimal.NewFromInt(100), Priority: priority}
}

func TestPlanLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPlanStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedPlan(t, s, "old", now)
	latest := seedPlan(t, s, "new", now.Add(time.Hour))
	assert.Error(t, s.CreatePlan(ctx, latest), "duplicate plan IDs must be rejected")

	active, err := s.ActivePlan(ctx, "hh-1")
	require.NoError(t, err)
	assert.Equal(t, "new", active.ID)

	_, err = s.ActivePlan(ctx, "hh-2")
	assert.ErrorIs(t, err, models.ErrNoActivePlan)

	latest.Status = models.PlanArchived
	require.NoError(t, s.UpdatePlan(ctx, latest))

	archived, err := s.ListPlans(ctx, "hh-1", models.PlanArchived)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, "new", archived[0].ID)

	_, err = s.GetPlan(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrPlanNotFound)
	assert.ErrorIs(t, s.UpdatePlan(ctx, models.Plan{ID: "missing"}), models.ErrPlanNotFound)
}

func TestListGoalsOrdersByPriorityThenInsertion(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPlanStore()
	seedPlan(t, s, "p", time.Now())

	require.NoError(t, s.SaveGoal(ctx, goal("c", "p", 2)))
	require.NoError(t, s.SaveGoal(ctx, goal("a", "p", 1)))
	require.NoError(t, s.SaveGoal(ctx, goal("b", "p", 2)))
	// Re-saving keeps the original insertion slot.
	require.NoError(t, s.SaveGoal(ctx, goal("c", "p", 2)))

	goals, err := s.ListGoals(ctx, "p")
	require.NoError(t, err)

	var ids []string
	for _, g := range goals {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []string{"a", "c", "b"}, ids)

	assert.ErrorIs(t, s.SaveGoal(ctx, goal("x", "missing", 1)), models.ErrPlanNotFound)
}

func TestSavePaymentUpsertsPerGoalAndMonth(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPlanStore()
	seedPlan(t, s, "p", time.Now())
	require.NoError(t, s.SaveGoal(ctx, goal("g", "p", 1)))

	first := models.PaymentRecord{ID: "1", PlanID: "p", GoalID: "g", MonthKey: "2024-01", AmountPaid: decimal.NewFromInt(40)}
	second := first
	second.AmountPaid = decimal.NewFromInt(100)
	second.IsChecked = true

	require.NoError(t, s.SavePayment(ctx, first))
	require.NoError(t, s.SavePayment(ctx, second))

	payments, err := s.ListPayments(ctx, "p")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.True(t, payments[0].IsChecked)

	got, ok, err := s.GetPayment(ctx, "g", "2024-01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "100", got.AmountPaid.String())

	_, ok, err = s.GetPayment(ctx, "g", "2024-02")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, s.SavePayment(ctx, models.PaymentRecord{GoalID: "missing"}), models.ErrGoalNotFound)
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPlanStore()
	seedPlan(t, s, "p", time.Now())
	require.NoError(t, s.SaveGoal(ctx, goal("g1", "p", 1)))
	require.NoError(t, s.SaveGoal(ctx, goal("g2", "p", 2)))
	for _, id := range []string{"g1", "g2"} {
		require.NoError(t, s.SavePayment(ctx, models.PaymentRecord{PlanID: "p", GoalID: id, MonthKey: "2024-01"}))
	}

	require.NoError(t, s.DeleteGoal(ctx, "g1"))
	payments, err := s.ListPayments(ctx, "p")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "g2", payments[0].GoalID)
	assert.ErrorIs(t, s.DeleteGoal(ctx, "g1"), models.ErrGoalNotFound)

	require.NoError(t, s.DeletePlan(ctx, "p"))
	goals, err := s.ListGoals(ctx, "p")
	require.NoError(t, err)
	assert.Empty(t, goals)
	payments, err = s.ListPayments(ctx, "p")
	require.NoError(t, err)
	assert.Empty(t, payments)
	assert.ErrorIs(t, s.DeletePlan(ctx, "p"), models.ErrPlanNotFound)
}

func TestConcurrentPaymentWrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPlanStore()
	seedPlan(t, s, "p", time.Now())
	require.NoError(t, s.SaveGoal(ctx, goal("g", "p", 1)))

	months := []string{"2024-01", "2024-02", "2024-03", "2024-04"}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.SavePayment(ctx, models.PaymentRecord{PlanID: "p", GoalID: "g", MonthKey: months[i%len(months)]})
		}(i)
	}
	wg.Wait()

	payments, err := s.ListPayments(ctx, "p")
	require.NoError(t, err)
	assert.Len(t, payments, len(months))
}
