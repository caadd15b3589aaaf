package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// GoalType separates debts from savings targets.
type GoalType string

const (
	GoalDebt    GoalType = "debt"
	GoalSavings GoalType = "savings"
)

// Goal is a debt to retire or a savings target to fund.
// Priority only orders debts; lower is paid first.
type Goal struct {
	ID        string          `json:"id"`
	PlanID    string          `json:"plan_id"`
	Name      string          `json:"name"`
	Type      GoalType        `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Priority  int             `json:"priority"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (g Goal) IsDebt() bool    { return g.Type == GoalDebt }
func (g Goal) IsSavings() bool { return g.Type == GoalSavings }

// Validate checks the fields a goal must carry before it is stored.
func (g Goal) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingField)
	}
	if g.Type != GoalDebt && g.Type != GoalSavings {
		return fmt.Errorf("%w: %q", ErrInvalidGoalType, g.Type)
	}
	if g.Amount.Cmp(decimal.Zero) <= 0 {
		return fmt.Errorf("goal amount: %w", ErrInvalidAmount)
	}
	return nil
}
