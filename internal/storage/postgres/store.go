package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	interfaces "github.com/sheikh-saqib/household-payoff-planner/internal/interfaces" // interface PlanStore
	"github.com/sheikh-saqib/household-payoff-planner/internal/models"
)

const uniqueViolation = "23505"

type PostgresPlanStore struct {
	db *sql.DB
}

// Open connects with lib/pq and makes sure the schema exists.
func Open(ctx context.Context, dsn string) (*PostgresPlanStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return NewPostgresPlanStore(db), nil
}

func NewPostgresPlanStore(db *sql.DB) *PostgresPlanStore {
	return &PostgresPlanStore{
		db: db,
	}
}

func (p *PostgresPlanStore) Close() error {
	return p.db.Close()
}

func (p *PostgresPlanStore) CreatePlan(ctx context.Context, plan models.Plan) error {
	const query = `INSERT INTO plans (id, household_id, name, monthly_budget, start_month, end_month, status, created_at, completed_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err := p.db.ExecContext(ctx, query, plan.ID, plan.HouseholdID, plan.Name, plan.MonthlyBudget,
		plan.StartMonth.String(), plan.EndMonth.String(), string(plan.Status), plan.CreatedAt, plan.CompletedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("plan %s already exists", plan.ID)
	}
	return err
}

const planColumns = `id, household_id, name, monthly_budget, start_month, end_month, status, created_at, completed_at`

func (p *PostgresPlanStore) GetPlan(ctx context.Context, planID string) (models.Plan, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id = $1`, planID)
	plan, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Plan{}, models.ErrPlanNotFound
	}
	return plan, err
}

func (p *PostgresPlanStore) ActivePlan(ctx context.Context, householdID string) (models.Plan, error) {
	const query = `SELECT ` + planColumns + ` FROM plans
	WHERE household_id = $1 AND status = 'active'
	ORDER BY created_at DESC LIMIT 1`

	plan, err := scanPlan(p.db.QueryRowContext(ctx, query, householdID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Plan{}, models.ErrNoActivePlan
	}
	return plan, err
}

func (p *PostgresPlanStore) ListPlans(ctx context.Context, householdID string, status models.PlanStatus) ([]models.Plan, error) {
	const query = `SELECT ` + planColumns + ` FROM plans
	WHERE household_id = $1 AND status = $2
	ORDER BY created_at, id`

	rows, err := p.db.QueryContext(ctx, query, householdID, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

func (p *PostgresPlanStore) UpdatePlan(ctx context.Context, plan models.Plan) error {
	const query = `UPDATE plans SET name = $2, monthly_budget = $3, start_month = $4, end_month = $5,
	status = $6, completed_at = $7 WHERE id = $1`

	res, err := p.db.ExecContext(ctx, query, plan.ID, plan.Name, plan.MonthlyBudget,
		plan.StartMonth.String(), plan.EndMonth.String(), string(plan.Status), plan.CompletedAt)
	if err != nil {
		return err
	}
	return expectRow(res, models.ErrPlanNotFound)
}

// DeletePlan removes payments, goals and the plan in one transaction.
func (p *PostgresPlanStore) DeletePlan(ctx context.Context, planID string) (err error) {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = dbTx.Rollback()
		}
	}()

	if _, err = dbTx.ExecContext(ctx, `DELETE FROM payments WHERE plan_id = $1`, planID); err != nil {
		return err
	}
	if _, err = dbTx.ExecContext(ctx, `DELETE FROM goals WHERE plan_id = $1`, planID); err != nil {
		return err
	}

	res, err := dbTx.ExecContext(ctx, `DELETE FROM plans WHERE id = $1`, planID)
	if err != nil {
		return err
	}
	if err = expectRow(res, models.ErrPlanNotFound); err != nil {
		return err
	}
	return dbTx.Commit()
}

func (p *PostgresPlanStore) SaveGoal(ctx context.Context, goal models.Goal) error {
	const query = `INSERT INTO goals (id, plan_id, name, type, amount, priority, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, type = EXCLUDED.type,
	amount = EXCLUDED.amount, priority = EXCLUDED.priority, updated_at = EXCLUDED.updated_at`

	_, err := p.db.ExecContext(ctx, query, goal.ID, goal.PlanID, goal.Name, string(goal.Type),
		goal.Amount, goal.Priority, goal.CreatedAt, goal.UpdatedAt)
	if isForeignKeyViolation(err) {
		return models.ErrPlanNotFound
	}
	return err
}

const goalColumns = `id, plan_id, name, type, amount, priority, created_at, updated_at`

func (p *PostgresPlanStore) GetGoal(ctx context.Context, goalID string) (models.Goal, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1`, goalID)
	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Goal{}, models.ErrGoalNotFound
	}
	return goal, err
}

func (p *PostgresPlanStore) DeleteGoal(ctx context.Context, goalID string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, goalID)
	if err != nil {
		return err
	}
	return expectRow(res, models.ErrGoalNotFound)
}

func (p *PostgresPlanStore) ListGoals(ctx context.Context, planID string) ([]models.Goal, error) {
	const query = `SELECT ` + goalColumns + ` FROM goals WHERE plan_id = $1 ORDER BY priority, seq`

	rows, err := p.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return goals, nil
}

func (p *PostgresPlanStore) SavePayment(ctx context.Context, payment models.PaymentRecord) error {
	const query = `INSERT INTO payments (id, plan_id, goal_id, month_key, scheduled_amount, amount_paid,
	is_checked, is_partial, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	ON CONFLICT (goal_id, month_key) DO UPDATE SET scheduled_amount = EXCLUDED.scheduled_amount,
	amount_paid = EXCLUDED.amount_paid, is_checked = EXCLUDED.is_checked,
	is_partial = EXCLUDED.is_partial, updated_at = EXCLUDED.updated_at`

	_, err := p.db.ExecContext(ctx, query, payment.ID, payment.PlanID, payment.GoalID, payment.MonthKey,
		payment.ScheduledAmount, payment.AmountPaid, payment.IsChecked, payment.IsPartial,
		payment.CreatedAt, payment.UpdatedAt)
	if isForeignKeyViolation(err) {
		return models.ErrGoalNotFound
	}
	return err
}

const paymentColumns = `id, plan_id, goal_id, month_key, scheduled_amount, amount_paid, is_checked, is_partial, created_at, updated_at`

func (p *PostgresPlanStore) GetPayment(ctx context.Context, goalID, monthKey string) (models.PaymentRecord, bool, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE goal_id = $1 AND month_key = $2`

	payment, err := scanPayment(p.db.QueryRowContext(ctx, query, goalID, monthKey))
	if errors.Is(err, sql.ErrNoRows) {
		return models.PaymentRecord{}, false, nil
	}
	if err != nil {
		return models.PaymentRecord{}, false, err
	}
	return payment, true, nil
}

func (p *PostgresPlanStore) ListPayments(ctx context.Context, planID string) ([]models.PaymentRecord, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE plan_id = $1 ORDER BY month_key, goal_id`

	rows, err := p.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.PaymentRecord
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(row scanner) (models.Plan, error) {
	var (
		plan       models.Plan
		start, end string
		status     string
		completed  sql.NullTime
	)
	err := row.Scan(&plan.ID, &plan.HouseholdID, &plan.Name, &plan.MonthlyBudget,
		&start, &end, &status, &plan.CreatedAt, &completed)
	if err != nil {
		return models.Plan{}, err
	}

	if plan.StartMonth, err = models.ParseMonth(start); err != nil {
		return models.Plan{}, fmt.Errorf("plan %s start month: %w", plan.ID, err)
	}
	if plan.EndMonth, err = models.ParseMonth(end); err != nil {
		return models.Plan{}, fmt.Errorf("plan %s end month: %w", plan.ID, err)
	}
	plan.Status = models.PlanStatus(status)
	if completed.Valid {
		t := completed.Time
		plan.CompletedAt = &t
	}
	return plan, nil
}

func scanGoal(row scanner) (models.Goal, error) {
	var (
		goal     models.Goal
		goalType string
	)
	err := row.Scan(&goal.ID, &goal.PlanID, &goal.Name, &goalType, &goal.Amount,
		&goal.Priority, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return models.Goal{}, err
	}
	goal.Type = models.GoalType(goalType)
	return goal, nil
}

func scanPayment(row scanner) (models.PaymentRecord, error) {
	var payment models.PaymentRecord
	err := row.Scan(&payment.ID, &payment.PlanID, &payment.GoalID, &payment.MonthKey,
		&payment.ScheduledAmount, &payment.AmountPaid, &payment.IsChecked, &payment.IsPartial,
		&payment.CreatedAt, &payment.UpdatedAt)
	return payment, err
}

func expectRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Class() == "23" && pqErr.Code.Name() == "foreign_key_violation"
}

var _ interfaces.PlanStore = (*PostgresPlanStore)(nil)
