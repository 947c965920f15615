// Package remote talks to the durable per-user day store. Every operation is
// fallible; callers degrade to the local cache rather than surface failures.
package remote

import (
	"context"
	"time"

	"github.com/rowanherne/morrow/internal/models"
)

// DayRecord is the per-day document as the sync server returns it.
type DayRecord struct {
	DayID          string               `json:"day_id"`
	CheckIn        *models.CheckIn      `json:"check_in,omitempty"`
	Plan           *models.RecoveryPlan `json:"plan,omitempty"`
	PlanCompleted  bool                 `json:"plan_completed"`
	CompletedAt    *time.Time           `json:"completed_at,omitempty"`
	StepsCompleted int                  `json:"steps_completed"`
	TotalSteps     int                  `json:"total_steps"`
}

// Client is the device-side view of the remote store. Identity is bound into
// the client; a signed-out session simply has no client. Writes are
// merge-writes on the server: they never clobber unrelated document fields.
type Client interface {
	FetchDay(ctx context.Context, dayID string) (DayRecord, bool, error)
	SaveCheckInWithPlan(ctx context.Context, checkIn models.CheckIn, plan models.RecoveryPlan) error
	SaveCompletion(ctx context.Context, dayID string, stepsCompleted int, totalSteps int) error
	FetchDaySummaries(ctx context.Context, lastDays int) ([]models.DaySummary, error)
}
