package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPlanValidate(t *testing.T) {
	valid := Plan{
		HouseholdID:   "hh-1",
		Name:          "2026 Family Plan",
		MonthlyBudget: decimal.NewFromInt(2500),
		StartMonth:    MustParseMonth("2026-01"),
		EndMonth:      MustParseMonth("2027-12"),
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *Plan)
		want   error
	}{
		{"no name", func(p *Plan) { p.Name = "" }, ErrMissingField},
		{"no household", func(p *Plan) { p.HouseholdID = "" }, ErrMissingField},
		{"zero budget", func(p *Plan) { p.MonthlyBudget = decimal.Zero }, ErrInvalidAmount},
		{"negative budget", func(p *Plan) { p.MonthlyBudget = decimal.NewFromInt(-1) }, ErrInvalidAmount},
		{"no start", func(p *Plan) { p.StartMonth = Month{} }, ErrMissingField},
		{"no end", func(p *Plan) { p.EndMonth = Month{} }, ErrMissingField},
		{"end before start", func(p *Plan) { p.EndMonth = MustParseMonth("2025-12") }, ErrInvalidMonth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), tt.want)
		})
	}
}

func TestGoalValidate(t *testing.T) {
	g := Goal{Name: "Visa", Type: GoalDebt, Amount: decimal.NewFromInt(4000)}
	assert.NoError(t, g.Validate())

	g.Type = "loan"
	assert.ErrorIs(t, g.Validate(), ErrInvalidGoalType)

	g.Type = GoalSavings
	g.Amount = decimal.Zero
	assert.ErrorIs(t, g.Validate(), ErrInvalidAmount)

	g.Amount = decimal.NewFromInt(10)
	g.Name = ""
	assert.ErrorIs(t, g.Validate(), ErrMissingField)
}
