package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is what the household actually paid toward a goal in a month.
// There is at most one record per (goal, month); saving again replaces it.
type PaymentRecord struct {
	ID              string          `json:"id"`
	PlanID          string          `json:"plan_id"`
	GoalID          string          `json:"goal_id"`
	MonthKey        string          `json:"month_key"`
	ScheduledAmount decimal.Decimal `json:"scheduled_amount"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	IsChecked       bool            `json:"is_checked"`
	IsPartial       bool            `json:"is_partial"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
