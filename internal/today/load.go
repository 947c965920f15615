package today

import (
	"context"
	"time"

	"github.com/rowanherne/morrow/internal/models"
	"github.com/rowanherne/morrow/internal/planner"
	"github.com/rowanherne/morrow/internal/remote"
)

// LoadedTodayState is the canonical view of today. Source reports which store
// won the read for diagnostics only; it never changes behavior.
type LoadedTodayState struct {
	DayID          string
	CheckIn        models.CheckIn
	Plan           models.RecoveryPlan
	PlanCompleted  bool
	CompletedAt    *time.Time
	StepsCompleted int
	TotalSteps     int
	Source         string
}

// LoadTodayState resolves today's canonical state. The remote store wins when
// an identity is present, it is reachable and it already holds a plan;
// otherwise the local cache carries the day, generating a plan on demand.
// found=false means no check-in exists anywhere yet and the caller should
// route to the check-in flow.
func (coordinator *Coordinator) LoadTodayState(ctx context.Context) (LoadedTodayState, bool, error) {
	dayID := coordinator.TodayID()

	if coordinator.remote != nil {
		record, found, err := coordinator.remote.FetchDay(ctx, dayID)
		switch {
		case err != nil:
			coordinator.logger.Warn("remote day fetch failed, using local cache", "day", dayID, "error", err)
		case found && record.CheckIn != nil && record.Plan != nil:
			state, err := coordinator.buildRemoteState(dayID, record)
			if err != nil {
				return LoadedTodayState{}, false, err
			}
			coordinator.fillLocalCache(state)
			return state, true, nil
		}
	}

	return coordinator.loadLocalState(dayID)
}

// buildRemoteState merges the remote document with local per-step and
// completion state. Completion is effective when either source reports it; a
// completed day presents every step as done.
func (coordinator *Coordinator) buildRemoteState(dayID string, record remote.DayRecord) (LoadedTodayState, error) {
	localStates, _, err := coordinator.local.FindStepStates(dayID)
	if err != nil {
		return LoadedTodayState{}, err
	}
	localCompletion, haveLocalCompletion, err := coordinator.local.FindCompletion(dayID)
	if err != nil {
		return LoadedTodayState{}, err
	}

	completedLocally := haveLocalCompletion && localCompletion.Completed
	completed := record.PlanCompleted || completedLocally

	plan := *record.Plan
	plan.Steps = applyStepStates(record.Plan.Steps, localStates, completed)

	state := LoadedTodayState{
		DayID:         dayID,
		CheckIn:       *record.CheckIn,
		Plan:          plan,
		PlanCompleted: completed,
		Source:        SourceRemote,
	}

	switch {
	case record.PlanCompleted:
		state.CompletedAt = record.CompletedAt
		state.StepsCompleted = record.StepsCompleted
		state.TotalSteps = record.TotalSteps
		if state.TotalSteps == 0 {
			state.StepsCompleted = len(plan.Steps)
			state.TotalSteps = len(plan.Steps)
		}
	case completedLocally:
		completedAt := localCompletion.CompletedAt
		state.CompletedAt = &completedAt
		state.StepsCompleted = localCompletion.StepsCompleted
		state.TotalSteps = localCompletion.TotalSteps
	default:
		state.StepsCompleted = countCompletedSteps(plan.Steps)
		state.TotalSteps = len(plan.Steps)
	}

	return state, nil
}

// fillLocalCache writes the merged remote state back into the cache so a
// later offline session sees identical state. Cache-fill failures do not fail
// the load; the state was already resolved.
func (coordinator *Coordinator) fillLocalCache(state LoadedTodayState) {
	if err := coordinator.local.SaveCheckIn(state.CheckIn); err != nil {
		coordinator.logger.Warn("cache-fill check-in failed", "day", state.DayID, "error", err)
	}
	if err := coordinator.local.SavePlan(state.DayID, pristinePlan(state.Plan)); err != nil {
		coordinator.logger.Warn("cache-fill plan failed", "day", state.DayID, "error", err)
	}
	if err := coordinator.local.SaveStepStates(state.DayID, stepStatesOf(state.Plan.Steps)); err != nil {
		coordinator.logger.Warn("cache-fill step states failed", "day", state.DayID, "error", err)
	}
	if state.PlanCompleted {
		completedAt := coordinator.clock()
		if state.CompletedAt != nil {
			completedAt = *state.CompletedAt
		}
		completion := models.PlanCompletion{
			DayID:          state.DayID,
			Completed:      true,
			CompletedAt:    completedAt,
			StepsCompleted: state.StepsCompleted,
			TotalSteps:     state.TotalSteps,
		}
		if err := coordinator.local.SaveCompletion(completion); err != nil {
			coordinator.logger.Warn("cache-fill completion failed", "day", state.DayID, "error", err)
		}
	}
}

func (coordinator *Coordinator) loadLocalState(dayID string) (LoadedTodayState, bool, error) {
	checkIn, found, err := coordinator.local.FindCheckIn(dayID)
	if err != nil {
		return LoadedTodayState{}, false, err
	}
	if !found {
		return LoadedTodayState{}, false, nil
	}

	plan, havePlan, err := coordinator.local.FindPlan(dayID)
	if err != nil {
		return LoadedTodayState{}, false, err
	}
	if !havePlan {
		plan = planner.Generate(checkIn)
		if err := coordinator.local.SavePlan(dayID, plan); err != nil {
			coordinator.logger.Warn("cache generated plan failed", "day", dayID, "error", err)
		}
	}

	localStates, _, err := coordinator.local.FindStepStates(dayID)
	if err != nil {
		return LoadedTodayState{}, false, err
	}
	completion, haveCompletion, err := coordinator.local.FindCompletion(dayID)
	if err != nil {
		return LoadedTodayState{}, false, err
	}

	completed := haveCompletion && completion.Completed
	plan.Steps = applyStepStates(plan.Steps, localStates, completed)

	state := LoadedTodayState{
		DayID:         dayID,
		CheckIn:       checkIn,
		Plan:          plan,
		PlanCompleted: completed,
		Source:        SourceLocal,
	}
	if completed {
		completedAt := completion.CompletedAt
		state.CompletedAt = &completedAt
		state.StepsCompleted = completion.StepsCompleted
		state.TotalSteps = completion.TotalSteps
	} else {
		state.StepsCompleted = countCompletedSteps(plan.Steps)
		state.TotalSteps = len(plan.Steps)
	}
	return state, true, nil
}

// applyStepStates applies the local per-step map onto a plan's steps by step
// id. Map entries for ids the plan no longer has are dropped silently: the
// plan's step list is authoritative. forceCompleted marks everything done
// regardless of the map, so a finished day never shows outstanding steps.
func applyStepStates(steps []models.Step, localStates map[string]bool, forceCompleted bool) []models.Step {
	applied := make([]models.Step, len(steps))
	copy(applied, steps)
	for index := range applied {
		if forceCompleted {
			applied[index].Completed = true
			continue
		}
		if completed, tracked := localStates[applied[index].ID]; tracked {
			applied[index].Completed = completed
		}
	}
	return applied
}

func stepStatesOf(steps []models.Step) map[string]bool {
	states := make(map[string]bool, len(steps))
	for _, step := range steps {
		states[step.ID] = step.Completed
	}
	return states
}

func countCompletedSteps(steps []models.Step) int {
	count := 0
	for _, step := range steps {
		if step.Completed {
			count++
		}
	}
	return count
}

func pristinePlan(plan models.RecoveryPlan) models.RecoveryPlan {
	cleared := plan
	cleared.Steps = make([]models.Step, len(plan.Steps))
	copy(cleared.Steps, plan.Steps)
	for index := range cleared.Steps {
		cleared.Steps[index].Completed = false
	}
	return cleared
}
