package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const TopicPaymentRecorded = "payment_recorded"

type PaymentRecorded struct {
	PlanID     string          `json:"plan_id"`
	GoalID     string          `json:"goal_id"`
	MonthKey   string          `json:"month_key"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	IsChecked  bool            `json:"is_checked"`
	IsPartial  bool            `json:"is_partial"`
	OccurredAt time.Time       `json:"occurred_at"`
}
