package postgres

const schemaSQL = `
CREATE TABLE IF NOT EXISTS plans (
    id              TEXT PRIMARY KEY,
    household_id    TEXT NOT NULL,
    name            TEXT NOT NULL,
    monthly_budget  NUMERIC NOT NULL CHECK (monthly_budget >= 0),
    start_month     TEXT NOT NULL,
    end_month       TEXT NOT NULL,
    status          TEXT NOT NULL DEFAULT 'active',
    created_at      TIMESTAMPTZ NOT NULL,
    completed_at    TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS goals (
    seq             BIGSERIAL,
    id              TEXT PRIMARY KEY,
    plan_id         TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
    name            TEXT NOT NULL,
    type            TEXT NOT NULL CHECK (type IN ('debt', 'savings')),
    amount          NUMERIC NOT NULL CHECK (amount > 0),
    priority        INTEGER NOT NULL DEFAULT 0,
    created_at      TIMESTAMPTZ NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS payments (
    id               TEXT PRIMARY KEY,
    plan_id          TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
    goal_id          TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
    month_key        TEXT NOT NULL,
    scheduled_amount NUMERIC NOT NULL DEFAULT 0,
    amount_paid      NUMERIC NOT NULL DEFAULT 0 CHECK (amount_paid >= 0),
    is_checked       BOOLEAN NOT NULL DEFAULT FALSE,
    is_partial       BOOLEAN NOT NULL DEFAULT FALSE,
    created_at       TIMESTAMPTZ NOT NULL,
    updated_at       TIMESTAMPTZ NOT NULL,
    UNIQUE (goal_id, month_key)
);

CREATE INDEX IF NOT EXISTS idx_plans_household ON plans(household_id, status);
CREATE INDEX IF NOT EXISTS idx_goals_plan ON goals(plan_id);
CREATE INDEX IF NOT EXISTS idx_payments_plan ON payments(plan_id);
`
