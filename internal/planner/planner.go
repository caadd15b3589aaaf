// Package planner is the service layer around the schedule engine: plan and
// goal lifecycle, payment logging, and completion events.
package planner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/household-payoff-planner/internal/interfaces"
	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
)

// Planner is the household-facing service. It owns plan and goal edits,
// payment logging and the read models built from the schedule engine.
type Planner struct {
	store     interfaces.PlanStore
	publisher interfaces.EventPublisher
	logger    *zap.Logger

	now   func() time.Time
	newID func() string

	muMap map[string]*sync.Mutex // one lock per plan (or household, for creation)
	mapMu sync.Mutex             // protects muMap
}

func NewPlanner(store interfaces.PlanStore, publisher interfaces.EventPublisher, logger *zap.Logger) *Planner {
	return &Planner{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		muMap:     make(map[string]*sync.Mutex),
	}
}

func (p *Planner) getLock(key string) *sync.Mutex {
	p.mapMu.Lock()
	defer p.mapMu.Unlock()

	if _, exists := p.muMap[key]; !exists {
		p.muMap[key] = &sync.Mutex{}
	}
	return p.muMap[key]
}

// NewPlan is the input for CreatePlan.
type NewPlan struct {
	HouseholdID   string          `json:"household_id"`
	Name          string          `json:"name"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	StartMonth    models.Month    `json:"start_month"`
	EndMonth      models.Month    `json:"end_month"`
}

// PlanUpdate carries the plan fields to change; nil fields are left alone.
type PlanUpdate struct {
	Name          *string          `json:"name,omitempty"`
	MonthlyBudget *decimal.Decimal `json:"monthly_budget,omitempty"`
	StartMonth    *models.Month    `json:"start_month,omitempty"`
	EndMonth      *models.Month    `json:"end_month,omitempty"`
}

// NewGoal is the input for AddGoal. A nil Priority places a debt after the
// debts already in the plan.
type NewGoal struct {
	Name     string          `json:"name"`
	Type     models.GoalType `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	Priority *int            `json:"priority,omitempty"`
}

// GoalUpdate carries the goal fields to change; nil fields are left alone.
type GoalUpdate struct {
	Name     *string          `json:"name,omitempty"`
	Type     *models.GoalType `json:"type,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Priority *int             `json:"priority,omitempty"`
}

// PlanDetails is a plan together with its goals in schedule order.
type PlanDetails struct {
	Plan  models.Plan   `json:"plan"`
	Goals []models.Goal `json:"goals"`
}

func (p *Planner) CreatePlan(ctx context.Context, in NewPlan) (models.Plan, error) {
	lock := p.getLock("household:" + in.HouseholdID)
	lock.Lock()
	defer lock.Unlock()

	plan := models.Plan{
		ID:            p.newID(),
		HouseholdID:   in.HouseholdID,
		Name:          in.Name,
		MonthlyBudget: in.MonthlyBudget,
		StartMonth:    in.StartMonth,
		EndMonth:      in.EndMonth,
		Status:        models.PlanActive,
		CreatedAt:     p.now().UTC(),
	}
	if err := plan.Validate(); err != nil {
		return models.Plan{}, err
	}

	_, err := p.store.ActivePlan(ctx, in.HouseholdID)
	switch {
	case err == nil:
		return models.Plan{}, models.ErrActivePlanExists
	case !errors.Is(err, models.ErrNoActivePlan):
		return models.Plan{}, fmt.Errorf("looking up active plan: %w", err)
	}

	if err := p.store.CreatePlan(ctx, plan); err != nil {
		return models.Plan{}, fmt.Errorf("creating plan: %w", err)
	}
	p.logger.Info("plan created",
		zap.String("plan_id", plan.ID),
		zap.String("household_id", plan.HouseholdID),
		zap.Stringer("monthly_budget", plan.MonthlyBudget),
	)
	return plan, nil
}

// ActivePlan returns the household's current plan and its goals.
func (p *Planner) ActivePlan(ctx context.Context, householdID string) (PlanDetails, error) {
	if householdID == "" {
		return PlanDetails{}, fmt.Errorf("%w: household_id", models.ErrMissingField)
	}
	plan, err := p.store.ActivePlan(ctx, householdID)
	if err != nil {
		return PlanDetails{}, err
	}
	goals, err := p.store.ListGoals(ctx, plan.ID)
	if err != nil {
		return PlanDetails{}, fmt.Errorf("listing goals: %w", err)
	}
	return PlanDetails{Plan: plan, Goals: nonNil(goals)}, nil
}

func (p *Planner) UpdatePlan(ctx context.Context, planID string, in PlanUpdate) (models.Plan, error) {
	lock := p.getLock(planID)
	lock.Lock()
	defer lock.Unlock()

	plan, err := p.writablePlan(ctx, planID)
	if err != nil {
		return models.Plan{}, err
	}
	if in.Name != nil {
		plan.Name = *in.Name
	}
	if in.MonthlyBudget != nil {
		plan.MonthlyBudget = *in.MonthlyBudget
	}
	if in.StartMonth != nil {
		plan.StartMonth = *in.StartMonth
	}
	if in.EndMonth != nil {
		plan.EndMonth = *in.EndMonth
	}
	if err := plan.Validate(); err != nil {
		return models.Plan{}, err
	}
	if err := p.store.UpdatePlan(ctx, plan); err != nil {
		return models.Plan{}, fmt.Errorf("updating plan: %w", err)
	}
	p.logger.Info("plan updated", zap.String("plan_id", plan.ID))
	return plan, nil
}

// ArchivePlan closes the plan. Its goals and payments are kept so it shows
// up under PreviousPlans.
func (p *Planner) ArchivePlan(ctx context.Context, planID string) (models.Plan, error) {
	lock := p.getLock(planID)
	lock.Lock()
	defer lock.Unlock()

	plan, err := p.writablePlan(ctx, planID)
	if err != nil {
		return models.Plan{}, err
	}
	completed := p.now().UTC()
	plan.Status = models.PlanArchived
	plan.CompletedAt = &completed
	if err := p.store.UpdatePlan(ctx, plan); err != nil {
		return models.Plan{}, fmt.Errorf("archiving plan: %w", err)
	}
	p.logger.Info("plan archived", zap.String("plan_id", plan.ID))
	return plan, nil
}

// PreviousPlans lists the household's archived plans, most recently
// completed first.
func (p *Planner) PreviousPlans(ctx context.Context, householdID string) ([]PlanDetails, error) {
	if householdID == "" {
		return nil, fmt.Errorf("%w: household_id", models.ErrMissingField)
	}
	plans, err := p.store.ListPlans(ctx, householdID, models.PlanArchived)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	sort.SliceStable(plans, func(i, j int) bool {
		return completedAt(plans[i]).After(completedAt(plans[j]))
	})

	result := make([]PlanDetails, 0, len(plans))
	for _, plan := range plans {
		goals, err := p.store.ListGoals(ctx, plan.ID)
		if err != nil {
			return nil, fmt.Errorf("listing goals for plan %s: %w", plan.ID, err)
		}
		result = append(result, PlanDetails{Plan: plan, Goals: nonNil(goals)})
	}
	return result, nil
}

// DeleteArchivedPlan removes an archived plan with its goals and payments.
// Active plans must be archived first.
func (p *Planner) DeleteArchivedPlan(ctx context.Context, planID string) error {
	lock := p.getLock(planID)
	lock.Lock()
	defer lock.Unlock()

	plan, err := p.store.GetPlan(ctx, planID)
	if err != nil {
		return err
	}
	if plan.Status != models.PlanArchived {
		return models.ErrPlanNotArchived
	}
	if err := p.store.DeletePlan(ctx, planID); err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	p.logger.Info("plan deleted", zap.String("plan_id", planID))
	return nil
}

func (p *Planner) AddGoal(ctx context.Context, planID string, in NewGoal) (models.Goal, error) {
	lock := p.getLock(planID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := p.writablePlan(ctx, planID); err != nil {
		return models.Goal{}, err
	}

	now := p.now().UTC()
	goal := models.Goal{
		ID:        p.newID(),
		PlanID:    planID,
		Name:      in.Name,
		Type:      in.Type,
		Amount:    in.Amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := goal.Validate(); err != nil {
		return models.Goal{}, err
	}

	if in.Priority != nil {
		goal.Priority = *in.Priority
	} else {
		existing, err := p.store.ListGoals(ctx, planID)
		if err != nil {
			return models.Goal{}, fmt.Errorf("listing goals: %w", err)
		}
		goal.Priority = countDebts(existing) + 1
	}

	if err := p.store.SaveGoal(ctx, goal); err != nil {
		return models.Goal{}, fmt.Errorf("saving goal: %w", err)
	}
	p.logger.Info("goal added",
		zap.String("plan_id", planID),
		zap.String("goal_id", goal.ID),
		zap.String("type", string(goal.Type)),
		zap.Int("priority", goal.Priority),
	)
	return goal, nil
}

func (p *Planner) UpdateGoal(ctx context.Context, goalID string, in GoalUpdate) (models.Goal, error) {
	goal, err := p.store.GetGoal(ctx, goalID)
	if err != nil {
		return models.Goal{}, err
	}

	lock := p.getLock(goal.PlanID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := p.writablePlan(ctx, goal.PlanID); err != nil {
		return models.Goal{}, err
	}
	// re-read under the plan lock
	if goal, err = p.store.GetGoal(ctx, goalID); err != nil {
		return models.Goal{}, err
	}
	if in.Name != nil {
		goal.Name = *in.Name
	}
	if in.Type != nil {
		goal.Type = *in.Type
	}
	if in.Amount != nil {
		goal.Amount = *in.Amount
	}
	if in.Priority != nil {
		goal.Priority = *in.Priority
	}
	if err := goal.Validate(); err != nil {
		return models.Goal{}, err
	}
	goal.UpdatedAt = p.now().UTC()

	if err := p.store.SaveGoal(ctx, goal); err != nil {
		return models.Goal{}, fmt.Errorf("saving goal: %w", err)
	}
	p.logger.Info("goal updated", zap.String("plan_id", goal.PlanID), zap.String("goal_id", goal.ID))
	return goal, nil
}

// RemoveGoal deletes the goal and its payment history.
func (p *Planner) RemoveGoal(ctx context.Context, goalID string) error {
	goal, err := p.store.GetGoal(ctx, goalID)
	if err != nil {
		return err
	}

	lock := p.getLock(goal.PlanID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := p.writablePlan(ctx, goal.PlanID); err != nil {
		return err
	}
	if err := p.store.DeleteGoal(ctx, goalID); err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	p.logger.Info("goal removed", zap.String("plan_id", goal.PlanID), zap.String("goal_id", goalID))
	return nil
}

// writablePlan loads a plan and refuses archived ones.
func (p *Planner) writablePlan(ctx context.Context, planID string) (models.Plan, error) {
	plan, err := p.store.GetPlan(ctx, planID)
	if err != nil {
		return models.Plan{}, err
	}
	if plan.Status == models.PlanArchived {
		return models.Plan{}, models.ErrPlanArchived
	}
	return plan, nil
}

// snapshot is everything the schedule engine needs for one plan.
type snapshot struct {
	plan     models.Plan
	goals    []models.Goal
	payments []models.PaymentRecord
}

func (p *Planner) load(ctx context.Context, planID string) (snapshot, error) {
	plan, err := p.store.GetPlan(ctx, planID)
	if err != nil {
		return snapshot{}, err
	}
	goals, err := p.store.ListGoals(ctx, planID)
	if err != nil {
		return snapshot{}, fmt.Errorf("listing goals: %w", err)
	}
	payments, err := p.store.ListPayments(ctx, planID)
	if err != nil {
		return snapshot{}, fmt.Errorf("listing payments: %w", err)
	}
	return snapshot{plan: plan, goals: nonNil(goals), payments: payments}, nil
}

func countDebts(goals []models.Goal) int {
	n := 0
	for _, g := range goals {
		if g.IsDebt() {
			n++
		}
	}
	return n
}

func completedAt(plan models.Plan) time.Time {
	if plan.CompletedAt == nil {
		return time.Time{}
	}
	return *plan.CompletedAt
}

func nonNil(goals []models.Goal) []models.Goal {
	if goals == nil {
		return []models.Goal{}
	}
	return goals
}
