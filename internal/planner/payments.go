package planner

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/household-payoff-planner/internal/metrics"
	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
	"github.com/sheikh-saqib/household-payoff-planner/internal/models/events"
	"github.com/sheikh-saqib/household-payoff-planner/internal/schedule"
)

// CheckPayment ticks (or unticks) a goal for a month. A ticked box records
// the scheduled amount as paid, an unticked one records zero.
func (p *Planner) CheckPayment(ctx context.Context, planID, goalID, monthKey string, checked bool) (models.PaymentRecord, error) {
	return p.recordPayment(ctx, planID, goalID, monthKey, func(scheduled decimal.Decimal) models.PaymentRecord {
		rec := models.PaymentRecord{AmountPaid: decimal.Zero, IsChecked: checked}
		if checked {
			rec.AmountPaid = scheduled
		}
		return rec
	})
}

// RecordPartialPayment logs an arbitrary amount for a goal and month. The
// month counts as checked once the amount reaches the scheduled allocation.
func (p *Planner) RecordPartialPayment(ctx context.Context, planID, goalID, monthKey string, amount decimal.Decimal) (models.PaymentRecord, error) {
	if amount.IsNegative() {
		return models.PaymentRecord{}, models.ErrNegativePayment
	}
	return p.recordPayment(ctx, planID, goalID, monthKey, func(scheduled decimal.Decimal) models.PaymentRecord {
		return models.PaymentRecord{
			AmountPaid: amount,
			IsChecked:  amount.GreaterThanOrEqual(scheduled),
			IsPartial:  amount.IsPositive() && amount.LessThan(scheduled),
		}
	})
}

// paymentOutcome is what a saved payment changed, gathered under the plan
// lock and published after it is released.
type paymentOutcome struct {
	record        models.PaymentRecord
	completedGoal *models.Goal
	planCompleted bool
}

func (p *Planner) recordPayment(ctx context.Context, planID, goalID, monthKey string, fill func(scheduled decimal.Decimal) models.PaymentRecord) (models.PaymentRecord, error) {
	if _, err := models.ParseMonth(monthKey); err != nil {
		return models.PaymentRecord{}, err
	}

	out, err := p.savePayment(ctx, planID, goalID, monthKey, fill)
	if err != nil {
		return models.PaymentRecord{}, err
	}

	metrics.PaymentsRecorded.WithLabelValues(paymentKind(out.record)).Inc()
	p.logger.Info("payment recorded",
		zap.String("plan_id", planID),
		zap.String("goal_id", goalID),
		zap.String("month_key", monthKey),
		zap.Stringer("scheduled", out.record.ScheduledAmount),
		zap.Stringer("paid", out.record.AmountPaid),
		zap.Bool("checked", out.record.IsChecked),
	)
	p.publishOutcome(ctx, out)
	return out.record, nil
}

func (p *Planner) savePayment(ctx context.Context, planID, goalID, monthKey string, fill func(scheduled decimal.Decimal) models.PaymentRecord) (paymentOutcome, error) {
	lock := p.getLock(planID)
	lock.Lock()
	defer lock.Unlock()

	snap, err := p.load(ctx, planID)
	if err != nil {
		return paymentOutcome{}, err
	}
	if snap.plan.Status == models.PlanArchived {
		return paymentOutcome{}, models.ErrPlanArchived
	}
	goal, ok := findGoal(snap.goals, goalID)
	if !ok {
		return paymentOutcome{}, models.ErrGoalNotFound
	}

	existing, hasExisting, err := p.store.GetPayment(ctx, goalID, monthKey)
	if err != nil {
		return paymentOutcome{}, err
	}
	others := withoutPayment(snap.payments, goalID, monthKey)
	scheduled := scheduledAmount(schedule.Build(snap.plan, snap.goals, others), goalID, monthKey)

	now := p.now().UTC()
	rec := fill(scheduled)
	rec.PlanID = planID
	rec.GoalID = goalID
	rec.MonthKey = monthKey
	rec.ScheduledAmount = scheduled
	rec.UpdatedAt = now
	if hasExisting {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.ID = p.newID()
		rec.CreatedAt = now
	}

	if err := p.store.SavePayment(ctx, rec); err != nil {
		return paymentOutcome{}, err
	}

	before := schedule.RemainingBalances(snap.goals, snap.payments)
	after := schedule.RemainingBalances(snap.goals, append(others, rec))

	out := paymentOutcome{record: rec}
	if before[goalID].IsPositive() && after[goalID].IsZero() {
		out.completedGoal = &goal
		out.planCompleted = allSettled(after)
	}
	return out, nil
}

// publishOutcome emits the events for a saved payment. Publishing failures
// are logged; the payment itself is already stored.
func (p *Planner) publishOutcome(ctx context.Context, out paymentOutcome) {
	now := p.now().UTC()
	rec := out.record

	p.publish(ctx, events.TopicPaymentRecorded, rec.PlanID, events.PaymentRecorded{
		PlanID:     rec.PlanID,
		GoalID:     rec.GoalID,
		MonthKey:   rec.MonthKey,
		AmountPaid: rec.AmountPaid,
		IsChecked:  rec.IsChecked,
		IsPartial:  rec.IsPartial,
		OccurredAt: now,
	})

	if out.completedGoal == nil {
		return
	}
	metrics.GoalsCompleted.Inc()
	p.logger.Info("goal completed",
		zap.String("plan_id", rec.PlanID),
		zap.String("goal_id", out.completedGoal.ID),
	)
	p.publish(ctx, events.TopicGoalCompleted, rec.PlanID, events.GoalCompleted{
		PlanID:     rec.PlanID,
		GoalID:     out.completedGoal.ID,
		GoalName:   out.completedGoal.Name,
		OccurredAt: now,
	})

	if out.planCompleted {
		p.logger.Info("plan completed", zap.String("plan_id", rec.PlanID))
		p.publish(ctx, events.TopicPlanCompleted, rec.PlanID, events.PlanCompleted{
			PlanID:     rec.PlanID,
			OccurredAt: now,
		})
	}
}

func (p *Planner) publish(ctx context.Context, topic, key string, event any) {
	if err := p.publisher.Publish(ctx, topic, key, event); err != nil {
		p.logger.Warn("publishing event failed",
			zap.String("topic", topic),
			zap.String("plan_id", key),
			zap.Error(err),
		)
	}
}

// withoutPayment drops the record for (goalID, monthKey) from payments.
func withoutPayment(payments []models.PaymentRecord, goalID, monthKey string) []models.PaymentRecord {
	others := make([]models.PaymentRecord, 0, len(payments))
	for _, rec := range payments {
		if rec.GoalID == goalID && rec.MonthKey == monthKey {
			continue
		}
		others = append(others, rec)
	}
	return others
}

// scheduledAmount is the allocation for the goal in the given month, or zero
// when the schedule does not reach that month.
func scheduledAmount(rows []models.AllocationRow, goalID, monthKey string) decimal.Decimal {
	for _, row := range rows {
		if row.MonthKey == monthKey {
			return row.Allocation[goalID]
		}
	}
	return decimal.Zero
}

func findGoal(goals []models.Goal, goalID string) (models.Goal, bool) {
	for _, g := range goals {
		if g.ID == goalID {
			return g, true
		}
	}
	return models.Goal{}, false
}

func allSettled(remaining map[string]decimal.Decimal) bool {
	for _, balance := range remaining {
		if balance.IsPositive() {
			return false
		}
	}
	return true
}

func paymentKind(rec models.PaymentRecord) string {
	switch {
	case rec.IsPartial:
		return "partial"
	case rec.IsChecked:
		return "checked"
	default:
		return "unchecked"
	}
}
