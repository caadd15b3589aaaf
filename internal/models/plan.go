package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PlanStatus is the lifecycle state of a plan.
type PlanStatus string

const (
	PlanActive   PlanStatus = "active"
	PlanArchived PlanStatus = "archived"
)

// Plan is a household's shared monthly budget and its start month.
// EndMonth is the target the household picked; the schedule does not use it.
type Plan struct {
	ID            string          `json:"id"`
	HouseholdID   string          `json:"household_id"`
	Name          string          `json:"name"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	StartMonth    Month           `json:"start_month"`
	EndMonth      Month           `json:"end_month"`
	Status        PlanStatus      `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

// Validate checks the fields a new or edited plan must carry.
func (p Plan) Validate() error {
	if p.HouseholdID == "" {
		return fmt.Errorf("%w: household_id", ErrMissingField)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingField)
	}
	if p.MonthlyBudget.Cmp(decimal.Zero) <= 0 {
		return fmt.Errorf("monthly budget: %w", ErrInvalidAmount)
	}
	if p.StartMonth.IsZero() {
		return fmt.Errorf("%w: start_month", ErrMissingField)
	}
	if p.EndMonth.IsZero() {
		return fmt.Errorf("%w: end_month", ErrMissingField)
	}
	if p.EndMonth.Before(p.StartMonth) {
		return fmt.Errorf("%w: end month %s is before start month %s", ErrInvalidMonth, p.EndMonth, p.StartMonth)
	}
	return nil
}
