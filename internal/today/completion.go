package today

import (
	"context"
	"fmt"

	"github.com/rowanherne/morrow/internal/history"
	"github.com/rowanherne/morrow/internal/models"
)

// MarkTodayPlanCompleted records today's plan as finished. The local write is
// the operation of record and is awaited before returning; the remote write
// runs in the background and its failure never reaches the caller. Repeat
// calls are no-ops in effect: the day stays completed and the original
// completion time is kept.
func (coordinator *Coordinator) MarkTodayPlanCompleted(ctx context.Context, stepsCompleted int, totalSteps int, stepIDs []string) error {
	dayID := coordinator.TodayID()

	completion := models.PlanCompletion{
		DayID:          dayID,
		Completed:      true,
		CompletedAt:    coordinator.clock(),
		StepsCompleted: stepsCompleted,
		TotalSteps:     totalSteps,
	}
	if existing, found, err := coordinator.local.FindCompletion(dayID); err != nil {
		return err
	} else if found && existing.Completed {
		completion.CompletedAt = existing.CompletedAt
	}

	if err := coordinator.local.SaveCompletion(completion); err != nil {
		return fmt.Errorf("save completion: %w", err)
	}
	if len(stepIDs) > 0 {
		states := make(map[string]bool, len(stepIDs))
		for _, stepID := range stepIDs {
			states[stepID] = true
		}
		if err := coordinator.local.SaveStepStates(dayID, states); err != nil {
			return fmt.Errorf("save step states: %w", err)
		}
	}

	coordinator.backgroundRemoteWrite("save completion", func(writeCtx context.Context) error {
		return coordinator.remote.SaveCompletion(writeCtx, dayID, stepsCompleted, totalSteps)
	})
	return nil
}

// ToggleStep flips one step in the local per-day map. Step-level progress is
// a local-only affordance; only whole-plan completion syncs across devices.
func (coordinator *Coordinator) ToggleStep(dayID string, stepID string, completed bool) error {
	return coordinator.local.SetStepState(dayID, stepID, completed)
}

// StreakStats is derived from the remote day-summary history.
type StreakStats struct {
	Streak            int
	CompletedInWindow int
	WindowDays        int
}

// maxHistoryDays bounds the summary fetch to what the streak cap can use.
const maxHistoryDays = 365

// LoadStreakStats computes streak and rolling completion count. Without an
// identity there is no cross-day history; a remote failure degrades to empty
// stats rather than an error, matching the rest of the remote contract.
func (coordinator *Coordinator) LoadStreakStats(ctx context.Context, windowDays int) (StreakStats, error) {
	stats := StreakStats{WindowDays: windowDays}
	if coordinator.remote == nil {
		return stats, nil
	}

	summaries, err := coordinator.remote.FetchDaySummaries(ctx, maxHistoryDays)
	if err != nil {
		coordinator.logger.Warn("day summary fetch failed", "error", err)
		return stats, nil
	}

	todayID := coordinator.TodayID()
	stats.Streak = history.CalculateStreak(summaries, todayID)
	stats.CompletedInWindow = history.CountCompletedInLastDays(summaries, todayID, windowDays)
	return stats, nil
}
