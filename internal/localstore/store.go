// Package localstore is the on-device per-day cache. It is the always-writable
// fallback authority when no identity is signed in or the sync server is
// unreachable. Entries are keyed <kind>:<dayID>, last write wins, and a read
// on a day with no prior write reports absence instead of an error.
package localstore

import "github.com/rowanherne/morrow/internal/models"

const (
	KindCheckIn    = "checkin"
	KindPlan       = "plan"
	KindSteps      = "steps"
	KindCompletion = "completion"
)

// CacheKey builds the storage key for a record kind on a calendar day.
func CacheKey(kind string, dayID string) string {
	return kind + ":" + dayID
}

type Store interface {
	FindCheckIn(dayID string) (models.CheckIn, bool, error)
	SaveCheckIn(checkIn models.CheckIn) error

	FindPlan(dayID string) (models.RecoveryPlan, bool, error)
	SavePlan(dayID string, plan models.RecoveryPlan) error

	FindStepStates(dayID string) (map[string]bool, bool, error)
	SaveStepStates(dayID string, states map[string]bool) error
	SetStepState(dayID string, stepID string, completed bool) error

	FindCompletion(dayID string) (models.PlanCompletion, bool, error)
	SaveCompletion(completion models.PlanCompletion) error
}
