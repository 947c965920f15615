package today

import (
	"context"
	"fmt"

	"github.com/rowanherne/morrow/internal/models"
	"github.com/rowanherne/morrow/internal/planner"
)

// RecordCheckIn creates today's check-in and derives its plan. A check-in is
// created once per day; a duplicate submission returns the existing state
// unchanged. The local writes are awaited; the remote write is best-effort.
func (coordinator *Coordinator) RecordCheckIn(ctx context.Context, severity string, symptoms []string, drankLastNight *bool, drinkingToday *bool) (LoadedTodayState, error) {
	dayID := coordinator.TodayID()

	if _, found, err := coordinator.local.FindCheckIn(dayID); err != nil {
		return LoadedTodayState{}, err
	} else if found {
		state, _, err := coordinator.loadLocalState(dayID)
		return state, err
	}

	if !models.ValidSeverity(severity) {
		return LoadedTodayState{}, ErrInvalidSeverity
	}

	checkIn := models.CheckIn{
		DayID:          dayID,
		Severity:       severity,
		Symptoms:       models.NormalizeSymptoms(symptoms),
		DrankLastNight: drankLastNight,
		DrinkingToday:  drinkingToday,
		CreatedAt:      coordinator.clock(),
	}
	plan := planner.Generate(checkIn)

	if err := coordinator.local.SaveCheckIn(checkIn); err != nil {
		return LoadedTodayState{}, fmt.Errorf("save check-in: %w", err)
	}
	if err := coordinator.local.SavePlan(dayID, plan); err != nil {
		return LoadedTodayState{}, fmt.Errorf("save plan: %w", err)
	}

	coordinator.backgroundRemoteWrite("save check-in with plan", func(writeCtx context.Context) error {
		return coordinator.remote.SaveCheckInWithPlan(writeCtx, checkIn, plan)
	})

	return LoadedTodayState{
		DayID:      dayID,
		CheckIn:    checkIn,
		Plan:       plan,
		TotalSteps: len(plan.Steps),
		Source:     SourceLocal,
	}, nil
}

// UpdateAlcoholFlags updates the only mutable check-in fields. The plan is
// left exactly as generated; plans are never regenerated once they exist.
func (coordinator *Coordinator) UpdateAlcoholFlags(ctx context.Context, drankLastNight *bool, drinkingToday *bool) error {
	dayID := coordinator.TodayID()

	checkIn, found, err := coordinator.local.FindCheckIn(dayID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNoCheckInToday
	}

	if drankLastNight != nil {
		checkIn.DrankLastNight = drankLastNight
	}
	if drinkingToday != nil {
		checkIn.DrinkingToday = drinkingToday
	}
	if err := coordinator.local.SaveCheckIn(checkIn); err != nil {
		return fmt.Errorf("save check-in: %w", err)
	}

	plan, havePlan, err := coordinator.local.FindPlan(dayID)
	if err != nil {
		return err
	}
	if havePlan {
		coordinator.backgroundRemoteWrite("save check-in with plan", func(writeCtx context.Context) error {
			return coordinator.remote.SaveCheckInWithPlan(writeCtx, checkIn, plan)
		})
	}
	return nil
}
