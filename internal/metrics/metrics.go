package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SchedulesBuilt counts schedule projections served.
	SchedulesBuilt = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_schedules_built_total",
			Help: "Total number of payoff schedules built",
		},
	)

	// ScheduleMonths observes how many months each projection needed.
	ScheduleMonths = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "planner_schedule_months",
			Help:    "Length of built payoff schedules in months",
			Buckets: []float64{1, 3, 6, 12, 24, 36, 60, 90, 120},
		},
	)

	// SchedulesCapped counts projections that hit the month cap.
	SchedulesCapped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_schedules_capped_total",
			Help: "Total number of schedules that reached the month cap unfinished",
		},
	)

	// PaymentsRecorded counts logged payments by kind (checked, unchecked, partial).
	PaymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_payments_recorded_total",
			Help: "Total number of payments recorded",
		},
		[]string{"kind"},
	)

	// GoalsCompleted counts goals that were fully paid.
	GoalsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_goals_completed_total",
			Help: "Total number of goals fully paid off or funded",
		},
	)

	// RequestDuration measures HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"route", "status"},
	)
)
