package models

import "time"

type RecoveryWindow struct {
	MinHours int `json:"min_hours"`
	MaxHours int `json:"max_hours"`
}

// Step is one ordered item of a recovery plan. Completed is the only field
// that changes after the plan is generated.
type Step struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Completed bool   `json:"completed"`
}

// RecoveryPlan is derived deterministically from a CheckIn and is never
// regenerated once it exists for a day.
type RecoveryPlan struct {
	Window              RecoveryWindow `json:"window"`
	WindowLabel         string         `json:"window_label"`
	HydrationGoalLiters float64        `json:"hydration_goal_liters"`
	SymptomLabels       []string       `json:"symptom_labels"`
	LevelLabel          string         `json:"level_label"`
	Steps               []Step         `json:"steps"`
	MicroAction         string         `json:"micro_action"`
}

// PlanCompletion records that a day's plan was finished. Set at most once to
// Completed=true; the counts are snapshotted at completion time.
type PlanCompletion struct {
	DayID          string    `json:"day_id"`
	Completed      bool      `json:"completed"`
	CompletedAt    time.Time `json:"completed_at"`
	StepsCompleted int       `json:"steps_completed"`
	TotalSteps     int       `json:"total_steps"`
}

// DaySummary is the read-only per-day projection consumed by history
// analytics.
type DaySummary struct {
	DayID          string `json:"day_id"`
	PlanCompleted  bool   `json:"plan_completed"`
	StepsCompleted int    `json:"steps_completed"`
	TotalSteps     int    `json:"total_steps"`
	Severity       string `json:"severity"`
}
