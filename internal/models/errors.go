package models

import "errors"

var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrNoActivePlan     = errors.New("no active plan")
	ErrActivePlanExists = errors.New("household already has an active plan")
	ErrPlanNotArchived  = errors.New("plan is not archived")
	ErrPlanArchived     = errors.New("plan is archived")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidGoalType  = errors.New("goal type must be debt or savings")
	ErrNegativePayment  = errors.New("amount paid cannot be negative")
)
