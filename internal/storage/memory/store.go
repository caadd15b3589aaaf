package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	interfaces "github.com/sheikh-saqib/household-payoff-planner/internal/interfaces"
	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
)

// MemoryPlanStore is an in-memory implementation of interfaces.PlanStore.
// It is safe for concurrent use and hands out copies, never its own records.
type MemoryPlanStore struct {
	mu       sync.RWMutex
	plans    map[string]models.Plan
	goals    map[string]models.Goal
	goalSeq  map[string]int // insertion order, breaks priority ties
	nextSeq  int
	payments map[paymentKey]models.PaymentRecord
}

type paymentKey struct {
	goalID   string
	monthKey string
}

// NewMemoryPlanStore creates an empty store.
func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{
		plans:    make(map[string]models.Plan),
		goals:    make(map[string]models.Goal),
		goalSeq:  make(map[string]int),
		payments: make(map[paymentKey]models.PaymentRecord),
	}
}

func (m *MemoryPlanStore) CreatePlan(ctx context.Context, plan models.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.plans[plan.ID]; exists {
		return fmt.Errorf("plan %s already exists", plan.ID)
	}
	m.plans[plan.ID] = plan
	return nil
}

func (m *MemoryPlanStore) GetPlan(ctx context.Context, planID string) (models.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plan, ok := m.plans[planID]
	if !ok {
		return models.Plan{}, models.ErrPlanNotFound
	}
	return plan, nil
}

// ActivePlan returns the most recently created active plan of the household.
func (m *MemoryPlanStore) ActivePlan(ctx context.Context, householdID string) (models.Plan, error) {
	plans, err := m.ListPlans(ctx, householdID, models.PlanActive)
	if err != nil {
		return models.Plan{}, err
	}
	if len(plans) == 0 {
		return models.Plan{}, models.ErrNoActivePlan
	}
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].CreatedAt.After(plans[j].CreatedAt)
	})
	return plans[0], nil
}

// ListPlans returns the household's plans in the given status, oldest first.
func (m *MemoryPlanStore) ListPlans(ctx context.Context, householdID string, status models.PlanStatus) ([]models.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []models.Plan
	for _, p := range m.plans {
		if p.HouseholdID == householdID && p.Status == status {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MemoryPlanStore) UpdatePlan(ctx context.Context, plan models.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plans[plan.ID]; !ok {
		return models.ErrPlanNotFound
	}
	m.plans[plan.ID] = plan
	return nil
}

// DeletePlan removes the plan together with its goals and payments.
func (m *MemoryPlanStore) DeletePlan(ctx context.Context, planID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plans[planID]; !ok {
		return models.ErrPlanNotFound
	}
	for key, p := range m.payments {
		if p.PlanID == planID {
			delete(m.payments, key)
		}
	}
	for id, g := range m.goals {
		if g.PlanID == planID {
			delete(m.goals, id)
			delete(m.goalSeq, id)
		}
	}
	delete(m.plans, planID)
	return nil
}

// SaveGoal inserts or replaces a goal. Replacing keeps its original position.
func (m *MemoryPlanStore) SaveGoal(ctx context.Context, goal models.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plans[goal.PlanID]; !ok {
		return models.ErrPlanNotFound
	}
	if _, exists := m.goalSeq[goal.ID]; !exists {
		m.nextSeq++
		m.goalSeq[goal.ID] = m.nextSeq
	}
	m.goals[goal.ID] = goal
	return nil
}

func (m *MemoryPlanStore) GetGoal(ctx context.Context, goalID string) (models.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	goal, ok := m.goals[goalID]
	if !ok {
		return models.Goal{}, models.ErrGoalNotFound
	}
	return goal, nil
}

// DeleteGoal removes the goal and every payment logged against it.
func (m *MemoryPlanStore) DeleteGoal(ctx context.Context, goalID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.goals[goalID]; !ok {
		return models.ErrGoalNotFound
	}
	for key := range m.payments {
		if key.goalID == goalID {
			delete(m.payments, key)
		}
	}
	delete(m.goals, goalID)
	delete(m.goalSeq, goalID)
	return nil
}

// ListGoals returns the plan's goals by ascending priority, then insertion order.
func (m *MemoryPlanStore) ListGoals(ctx context.Context, planID string) ([]models.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []models.Goal
	for _, g := range m.goals {
		if g.PlanID == planID {
			result = append(result, g)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Priority != result[j].Priority {
			return result[i].Priority < result[j].Priority
		}
		return m.goalSeq[result[i].ID] < m.goalSeq[result[j].ID]
	})
	return result, nil
}

// SavePayment upserts the record for its (goal, month) pair.
func (m *MemoryPlanStore) SavePayment(ctx context.Context, payment models.PaymentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.goals[payment.GoalID]; !ok {
		return models.ErrGoalNotFound
	}
	m.payments[paymentKey{goalID: payment.GoalID, monthKey: payment.MonthKey}] = payment
	return nil
}

func (m *MemoryPlanStore) GetPayment(ctx context.Context, goalID, monthKey string) (models.PaymentRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.payments[paymentKey{goalID: goalID, monthKey: monthKey}]
	return p, ok, nil
}

// ListPayments returns the plan's payments ordered by month then goal.
func (m *MemoryPlanStore) ListPayments(ctx context.Context, planID string) ([]models.PaymentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []models.PaymentRecord
	for _, p := range m.payments {
		if p.PlanID == planID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].MonthKey != result[j].MonthKey {
			return result[i].MonthKey < result[j].MonthKey
		}
		return result[i].GoalID < result[j].GoalID
	})
	return result, nil
}

// Compile-time check: ensure MemoryPlanStore implements PlanStore interface
var _ interfaces.PlanStore = (*MemoryPlanStore)(nil)
