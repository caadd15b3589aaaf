// Package planfile reads a plan snapshot (budget, goals and logged payments)
// from a TOML file so schedules can be previewed without a server.
package planfile

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
)

// File mirrors the TOML layout:
//
//	name = "Debt free by winter"
//	monthly_budget = 1000
//	start_month = "2026-01"
//	end_month = "2026-12"
//
//	[[goals]]
//	id = "card"
//	name = "Credit card"
//	type = "debt"
//	amount = 2000
//
//	[[payments]]
//	goal = "card"
//	month = "2026-01"
//	amount = 750
type File struct {
	Name          string         `toml:"name"`
	MonthlyBudget Money          `toml:"monthly_budget"`
	StartMonth    models.Month   `toml:"start_month"`
	EndMonth      models.Month   `toml:"end_month"`
	Goals         []GoalEntry    `toml:"goals"`
	Payments      []PaymentEntry `toml:"payments"`
}

// GoalEntry is one [[goals]] table. Priority defaults to the number of debts
// listed before it plus one; ID defaults to "goal-N".
type GoalEntry struct {
	ID       string          `toml:"id"`
	Name     string          `toml:"name"`
	Type     models.GoalType `toml:"type"`
	Amount   Money           `toml:"amount"`
	Priority *int            `toml:"priority"`
}

// PaymentEntry is one [[payments]] table. Checked defaults to true.
type PaymentEntry struct {
	Goal    string `toml:"goal"`
	Month   string `toml:"month"`
	Amount  Money  `toml:"amount"`
	Checked *bool  `toml:"checked"`
}

// Money accepts TOML integers, floats or strings.
type Money struct {
	decimal.Decimal
}

func (m *Money) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case int64:
		m.Decimal = decimal.NewFromInt(val)
	case float64:
		m.Decimal = decimal.NewFromFloat(val)
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return fmt.Errorf("amount %q: %w", val, err)
		}
		m.Decimal = d
	default:
		return fmt.Errorf("amount: unsupported value %v (%T)", v, v)
	}
	return nil
}

// Snapshot is a loaded file converted to the engine's inputs.
type Snapshot struct {
	Plan     models.Plan
	Goals    []models.Goal
	Payments []models.PaymentRecord
}

// Load reads and validates the plan file at path.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading plan file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML plan data. Unknown keys are rejected so typos do not
// silently drop a goal or payment.
func Parse(data []byte) (Snapshot, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parsing plan file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Snapshot{}, fmt.Errorf("parsing plan file: unknown keys %s", strings.Join(keys, ", "))
	}
	return f.Snapshot()
}

// Snapshot converts the file into validated models.
func (f File) Snapshot() (Snapshot, error) {
	if f.StartMonth.IsZero() {
		return Snapshot{}, fmt.Errorf("%w: start_month", models.ErrMissingField)
	}
	if !f.EndMonth.IsZero() && f.EndMonth.Before(f.StartMonth) {
		return Snapshot{}, fmt.Errorf("%w: end month %s is before start month %s", models.ErrInvalidMonth, f.EndMonth, f.StartMonth)
	}

	plan := models.Plan{
		ID:            "local",
		HouseholdID:   "local",
		Name:          f.Name,
		MonthlyBudget: f.MonthlyBudget.Decimal,
		StartMonth:    f.StartMonth,
		EndMonth:      f.EndMonth,
		Status:        models.PlanActive,
	}

	goals := make([]models.Goal, 0, len(f.Goals))
	seen := make(map[string]bool, len(f.Goals))
	debts := 0
	for i, entry := range f.Goals {
		g := models.Goal{
			ID:     entry.ID,
			PlanID: plan.ID,
			Name:   entry.Name,
			Type:   entry.Type,
			Amount: entry.Amount.Decimal,
		}
		if g.ID == "" {
			g.ID = fmt.Sprintf("goal-%d", i+1)
		}
		if seen[g.ID] {
			return Snapshot{}, fmt.Errorf("goal %q is listed twice", g.ID)
		}
		seen[g.ID] = true
		if err := g.Validate(); err != nil {
			return Snapshot{}, fmt.Errorf("goal %q: %w", g.ID, err)
		}

		if entry.Priority != nil {
			g.Priority = *entry.Priority
		} else {
			g.Priority = debts + 1
		}
		if g.IsDebt() {
			debts++
		}
		goals = append(goals, g)
	}

	payments := make([]models.PaymentRecord, 0, len(f.Payments))
	for i, entry := range f.Payments {
		if !seen[entry.Goal] {
			return Snapshot{}, fmt.Errorf("payment %d: %w: %q", i+1, models.ErrGoalNotFound, entry.Goal)
		}
		if _, err := models.ParseMonth(entry.Month); err != nil {
			return Snapshot{}, fmt.Errorf("payment %d: %w", i+1, err)
		}
		if entry.Amount.IsNegative() {
			return Snapshot{}, fmt.Errorf("payment %d: %w", i+1, models.ErrNegativePayment)
		}
		checked := true
		if entry.Checked != nil {
			checked = *entry.Checked
		}
		payments = append(payments, models.PaymentRecord{
			ID:         fmt.Sprintf("payment-%d", i+1),
			PlanID:     plan.ID,
			GoalID:     entry.Goal,
			MonthKey:   entry.Month,
			AmountPaid: entry.Amount.Decimal,
			IsChecked:  checked,
		})
	}

	return Snapshot{Plan: plan, Goals: goals, Payments: payments}, nil
}
