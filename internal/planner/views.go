package planner

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/household-payoff-planner/internal/metrics"
	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
	"github.com/sheikh-saqib/household-payoff-planner/internal/schedule"
)

// ScheduleMonth is a projected month with its total and checked-off state.
type ScheduleMonth struct {
	models.AllocationRow
	Total    decimal.Decimal `json:"total"`
	Complete bool            `json:"complete"`
}

// ScheduleView is the month-by-month table shown to the household.
type ScheduleView struct {
	Plan       models.Plan     `json:"plan"`
	Goals      []models.Goal   `json:"goals"`
	Months     []ScheduleMonth `json:"months"`
	CapReached bool            `json:"cap_reached"`
}

// Schedule projects the plan from its current snapshot.
func (p *Planner) Schedule(ctx context.Context, planID string) (ScheduleView, error) {
	snap, err := p.load(ctx, planID)
	if err != nil {
		return ScheduleView{}, err
	}
	rows := p.build(snap)

	statuses := schedule.MonthStatuses(rows, snap.goals, snap.payments)
	months := make([]ScheduleMonth, len(rows))
	for i, row := range rows {
		months[i] = ScheduleMonth{AllocationRow: row, Total: row.Total(), Complete: statuses[i]}
	}

	return ScheduleView{
		Plan:       snap.plan,
		Goals:      snap.goals,
		Months:     months,
		CapReached: schedule.CapReached(rows),
	}, nil
}

// Progress summarizes paid-to-date figures against the projected schedule.
func (p *Planner) Progress(ctx context.Context, planID string) (schedule.Progress, error) {
	snap, err := p.load(ctx, planID)
	if err != nil {
		return schedule.Progress{}, err
	}
	return schedule.Summarize(snap.plan, snap.goals, snap.payments, p.build(snap)), nil
}

func (p *Planner) build(snap snapshot) []models.AllocationRow {
	rows := schedule.Build(snap.plan, snap.goals, snap.payments)

	metrics.SchedulesBuilt.Inc()
	metrics.ScheduleMonths.Observe(float64(len(rows)))
	if schedule.CapReached(rows) {
		metrics.SchedulesCapped.Inc()
		p.logger.Warn("schedule reached month cap",
			zap.String("plan_id", snap.plan.ID),
			zap.Int("rows", len(rows)),
		)
	} else {
		p.logger.Debug("schedule built",
			zap.String("plan_id", snap.plan.ID),
			zap.Int("rows", len(rows)),
		)
	}
	return rows
}
