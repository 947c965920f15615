// Package history computes streaks and rolling completion counts over
// bounded day-summary history.
package history

import (
	"github.com/rowanherne/morrow/internal/day"
	"github.com/rowanherne/morrow/internal/models"
)

// maxStreakDays caps the backward walk. Defensive only; a real streak that
// long is out of range for the bounded history the server returns.
const maxStreakDays = 365

// CalculateStreak walks backward day by day from today and counts contiguous
// completed days. The first missing or incomplete day ends the streak; gaps
// are never skipped.
func CalculateStreak(summaries []models.DaySummary, todayID string) int {
	byDay := indexByDay(summaries)

	streak := 0
	current := todayID
	for streak < maxStreakDays {
		summary, exists := byDay[current]
		if !exists || !summary.PlanCompleted {
			break
		}
		streak++

		previous, err := day.Previous(current)
		if err != nil {
			break
		}
		current = previous
	}
	return streak
}

// CountCompletedInLastDays counts completed days inside the inclusive window
// of the last n days, regardless of contiguity.
func CountCompletedInLastDays(summaries []models.DaySummary, todayID string, lastDays int) int {
	if lastDays <= 0 {
		return 0
	}
	today, err := day.Parse(todayID)
	if err != nil {
		return 0
	}
	windowStart := today.AddDate(0, 0, -(lastDays - 1))

	count := 0
	for _, summary := range summaries {
		if !summary.PlanCompleted {
			continue
		}
		summaryDay, err := day.Parse(summary.DayID)
		if err != nil {
			continue
		}
		if summaryDay.Before(windowStart) || summaryDay.After(today) {
			continue
		}
		count++
	}
	return count
}

func indexByDay(summaries []models.DaySummary) map[string]models.DaySummary {
	byDay := make(map[string]models.DaySummary, len(summaries))
	for _, summary := range summaries {
		byDay[summary.DayID] = summary
	}
	return byDay
}
