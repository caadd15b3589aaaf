package events

import "time"

const (
	TopicGoalCompleted = "goal_completed"
	TopicPlanCompleted = "plan_completed"
)

// GoalCompleted fires when the payments logged for a goal cover its amount.
type GoalCompleted struct {
	PlanID     string    `json:"plan_id"`
	GoalID     string    `json:"goal_id"`
	GoalName   string    `json:"goal_name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PlanCompleted fires when the last goal of a plan completes.
type PlanCompleted struct {
	PlanID     string    `json:"plan_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
