package planfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
)

const sample = `
name = "Debt free by winter"
monthly_budget = 1000
start_month = "2024-01"
end_month = "2024-12"

[[goals]]
id = "card"
name = "Credit card"
type = "debt"
amount = 2000

[[goals]]
id = "fund"
name = "Emergency fund"
type = "savings"
amount = "600.50"

[[goals]]
name = "Car loan"
type = "debt"
amount = 4500.25
priority = 0

[[payments]]
goal = "card"
month = "2024-01"
amount = 750

[[payments]]
goal = "fund"
month = "2024-01"
amount = 100
checked = false
`

func TestParse(t *testing.T) {
	snap, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "Debt free by winter", snap.Plan.Name)
	assert.Equal(t, "1000", snap.Plan.MonthlyBudget.String())
	assert.Equal(t, "2024-01", snap.Plan.StartMonth.String())
	assert.Equal(t, "2024-12", snap.Plan.EndMonth.String())

	require.Len(t, snap.Goals, 3)
	assert.Equal(t, "card", snap.Goals[0].ID)
	assert.Equal(t, 1, snap.Goals[0].Priority)
	assert.Equal(t, models.GoalSavings, snap.Goals[1].Type)
	assert.Equal(t, "600.5", snap.Goals[1].Amount.String())
	assert.Equal(t, 2, snap.Goals[1].Priority)
	assert.Equal(t, "goal-3", snap.Goals[2].ID)
	assert.Equal(t, "4500.25", snap.Goals[2].Amount.String())
	assert.Equal(t, 0, snap.Goals[2].Priority)

	require.Len(t, snap.Payments, 2)
	assert.Equal(t, "card", snap.Payments[0].GoalID)
	assert.Equal(t, "750", snap.Payments[0].AmountPaid.String())
	assert.True(t, snap.Payments[0].IsChecked)
	assert.False(t, snap.Payments[1].IsChecked)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	snap, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, snap.Goals, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing start month",
			data:    `monthly_budget = 100`,
			wantErr: models.ErrMissingField,
		},
		{
			name:    "bad month",
			data:    `start_month = "2024-13"`,
			wantMsg: "parsing plan file",
		},
		{
			name: "end before start",
			data: `start_month = "2024-05"
end_month = "2024-01"`,
			wantErr: models.ErrInvalidMonth,
		},
		{
			name: "unknown key",
			data: `start_month = "2024-01"
monthly_budjet = 100`,
			wantMsg: "monthly_budjet",
		},
		{
			name: "bad goal type",
			data: `start_month = "2024-01"
[[goals]]
name = "x"
type = "loan"
amount = 1`,
			wantErr: models.ErrInvalidGoalType,
		},
		{
			name: "duplicate goal id",
			data: `start_month = "2024-01"
[[goals]]
id = "a"
name = "x"
type = "debt"
amount = 1
[[goals]]
id = "a"
name = "y"
type = "debt"
amount = 1`,
			wantMsg: "listed twice",
		},
		{
			name: "payment for unknown goal",
			data: `start_month = "2024-01"
[[payments]]
goal = "ghost"
month = "2024-01"
amount = 5`,
			wantErr: models.ErrGoalNotFound,
		},
		{
			name: "negative payment",
			data: `start_month = "2024-01"
[[goals]]
id = "a"
name = "x"
type = "debt"
amount = 1
[[payments]]
goal = "a"
month = "2024-01"
amount = -5`,
			wantErr: models.ErrNegativePayment,
		},
		{
			name:    "unparseable amount",
			data:    `monthly_budget = "lots"`,
			wantMsg: "lots",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
