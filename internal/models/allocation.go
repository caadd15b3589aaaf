package models

import "github.com/shopspring/decimal"

// AllocationRow is one projected month of the schedule.
type AllocationRow struct {
	MonthKey   string                     `json:"month_key"`
	Allocation map[string]decimal.Decimal `json:"allocation"` // goal ID -> amount funded this month
	Remaining  map[string]decimal.Decimal `json:"remaining"`  // goal ID -> balance left after this month
}

// Total sums the month's allocations.
func (r AllocationRow) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range r.Allocation {
		total = total.Add(amount)
	}
	return total
}
