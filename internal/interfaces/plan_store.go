package interfaces

import (
	"context"

	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
)

// PlanStore persists plans, their goals and the payments logged against them.
type PlanStore interface {
	CreatePlan(ctx context.Context, plan models.Plan) error
	GetPlan(ctx context.Context, planID string) (models.Plan, error)
	ActivePlan(ctx context.Context, householdID string) (models.Plan, error)
	ListPlans(ctx context.Context, householdID string, status models.PlanStatus) ([]models.Plan, error)
	UpdatePlan(ctx context.Context, plan models.Plan) error
	DeletePlan(ctx context.Context, planID string) error

	SaveGoal(ctx context.Context, goal models.Goal) error
	GetGoal(ctx context.Context, goalID string) (models.Goal, error)
	DeleteGoal(ctx context.Context, goalID string) error
	ListGoals(ctx context.Context, planID string) ([]models.Goal, error)

	SavePayment(ctx context.Context, payment models.PaymentRecord) error
	GetPayment(ctx context.Context, goalID, monthKey string) (models.PaymentRecord, bool, error)
	ListPayments(ctx context.Context, planID string) ([]models.PaymentRecord, error)
}
