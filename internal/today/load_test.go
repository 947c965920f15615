package today

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rowanherne/morrow/internal/models"
	"github.com/rowanherne/morrow/internal/planner"
	"github.com/rowanherne/morrow/internal/remote"
)

func seededCheckIn() models.CheckIn {
	return models.CheckIn{
		DayID:     testDayID,
		Severity:  models.SeverityModerate,
		Symptoms:  []string{models.SymptomHeadache},
		CreatedAt: fixedClock(),
	}
}

func remoteRecordWithPlan(planCompleted bool) remote.DayRecord {
	checkIn := seededCheckIn()
	plan := planner.Generate(checkIn)
	record := remote.DayRecord{
		DayID:         testDayID,
		CheckIn:       &checkIn,
		Plan:          &plan,
		PlanCompleted: planCompleted,
	}
	if planCompleted {
		completedAt := fixedClock().Add(-2 * time.Hour)
		record.CompletedAt = &completedAt
		record.StepsCompleted = len(plan.Steps)
		record.TotalSteps = len(plan.Steps)
	}
	return record
}

func TestLoadTodayStateNotFoundWithoutAnyCheckIn(t *testing.T) {
	t.Parallel()

	coordinator := newTestCoordinator(newMemoryStore(), nil)
	_, found, err := coordinator.LoadTodayState(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected not-found for an empty day")
	}
}

func TestLoadTodayStateFallsBackToLocalWhenRemoteFails(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	checkIn := seededCheckIn()
	store.checkIns[testDayID] = checkIn

	client := &stubRemoteClient{fetchErr: errors.New("network down")}
	coordinator := newTestCoordinator(store, client)

	state, found, err := coordinator.LoadTodayState(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected state from local fallback")
	}
	if state.Source != SourceLocal {
		t.Fatalf("expected source local, got %q", state.Source)
	}

	direct := planner.Generate(checkIn)
	if !reflect.DeepEqual(state.Plan.Steps, direct.Steps) {
		t.Fatalf("expected steps matching direct generator output\nwant %#v\ngot  %#v", direct.Steps, state.Plan.Steps)
	}
}

func TestLoadTodayStateGeneratesAndCachesPlanOnDemand(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.checkIns[testDayID] = seededCheckIn()
	coordinator := newTestCoordinator(store, nil)

	first, found, err := coordinator.LoadTodayState(context.Background())
	if err != nil || !found {
		t.Fatalf("expected generated state, got found=%v err=%v", found, err)
	}
	if _, cached := store.plans[testDayID]; !cached {
		t.Fatal("expected generated plan to be cached")
	}

	second, _, err := coordinator.LoadTodayState(context.Background())
	if err != nil {
		t.Fatalf("unexpected error on repeat load: %v", err)
	}
	if !reflect.DeepEqual(first.Plan, second.Plan) {
		t.Fatalf("expected identical plan content on repeat load\nfirst  %#v\nsecond %#v", first.Plan, second.Plan)
	}
}

func TestLoadTodayStateRemoteWinsAndAppliesLocalStepMap(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	record := remoteRecordWithPlan(false)
	if len(record.Plan.Steps) < 3 {
		t.Fatalf("test needs at least 3 plan steps, got %d", len(record.Plan.Steps))
	}
	first := record.Plan.Steps[0].ID
	second := record.Plan.Steps[1].ID
	store.stepStates[testDayID] = map[string]bool{first: true, second: true, "retired_step": true}

	client := &stubRemoteClient{record: record, hasRecord: true}
	coordinator := newTestCoordinator(store, client)

	state, found, err := coordinator.LoadTodayState(context.Background())
	if err != nil || !found {
		t.Fatalf("expected remote state, got found=%v err=%v", found, err)
	}
	if state.Source != SourceRemote {
		t.Fatalf("expected source remote, got %q", state.Source)
	}
	if state.PlanCompleted {
		t.Fatal("expected overall plan incomplete")
	}

	for _, step := range state.Plan.Steps {
		wantCompleted := step.ID == first || step.ID == second
		if step.Completed != wantCompleted {
			t.Fatalf("step %q completed=%v, want %v", step.ID, step.Completed, wantCompleted)
		}
	}
	if state.StepsCompleted != 2 || state.TotalSteps != len(record.Plan.Steps) {
		t.Fatalf("expected 2/%d steps, got %d/%d", len(record.Plan.Steps), state.StepsCompleted, state.TotalSteps)
	}
}

func TestLoadTodayStateRemoteCompletionForcesAllSteps(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.stepStates[testDayID] = map[string]bool{} // nothing done locally

	client := &stubRemoteClient{record: remoteRecordWithPlan(true), hasRecord: true}
	coordinator := newTestCoordinator(store, client)

	state, found, err := coordinator.LoadTodayState(context.Background())
	if err != nil || !found {
		t.Fatalf("expected remote state, got found=%v err=%v", found, err)
	}
	if !state.PlanCompleted {
		t.Fatal("expected plan completed")
	}
	for _, step := range state.Plan.Steps {
		if !step.Completed {
			t.Fatalf("expected every step forced complete, step %q is not", step.ID)
		}
	}
}

func TestLoadTodayStateLocalCompletionForcesRemotePlan(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	record := remoteRecordWithPlan(false)
	completedAt := fixedClock().Add(-time.Hour)
	store.completions[testDayID] = models.PlanCompletion{
		DayID:          testDayID,
		Completed:      true,
		CompletedAt:    completedAt,
		StepsCompleted: len(record.Plan.Steps),
		TotalSteps:     len(record.Plan.Steps),
	}

	client := &stubRemoteClient{record: record, hasRecord: true}
	coordinator := newTestCoordinator(store, client)

	state, _, err := coordinator.LoadTodayState(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.PlanCompleted {
		t.Fatal("expected effective completion from local record")
	}
	if state.CompletedAt == nil || !state.CompletedAt.Equal(completedAt) {
		t.Fatalf("expected local completion time %v, got %v", completedAt, state.CompletedAt)
	}
	for _, step := range state.Plan.Steps {
		if !step.Completed {
			t.Fatalf("expected step %q forced complete", step.ID)
		}
	}
}

func TestLoadTodayStateFillsLocalCacheFromRemote(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	client := &stubRemoteClient{record: remoteRecordWithPlan(true), hasRecord: true}
	coordinator := newTestCoordinator(store, client)

	if _, _, err := coordinator.LoadTodayState(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, cached := store.checkIns[testDayID]; !cached {
		t.Fatal("expected check-in cache-filled")
	}
	if _, cached := store.plans[testDayID]; !cached {
		t.Fatal("expected plan cache-filled")
	}
	if _, cached := store.stepStates[testDayID]; !cached {
		t.Fatal("expected step states cache-filled")
	}
	completion, cached := store.completions[testDayID]
	if !cached || !completion.Completed {
		t.Fatalf("expected completion cache-filled, got %#v", completion)
	}

	// A follow-up offline session must resolve to the same view.
	offline := newTestCoordinator(store, nil)
	state, found, err := offline.LoadTodayState(context.Background())
	if err != nil || !found {
		t.Fatalf("expected offline state after cache-fill, got found=%v err=%v", found, err)
	}
	if !state.PlanCompleted || state.Source != SourceLocal {
		t.Fatalf("expected completed local state, got completed=%v source=%q", state.PlanCompleted, state.Source)
	}
}

func TestLoadTodayStateRemoteWithoutPlanFallsThrough(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.checkIns[testDayID] = seededCheckIn()

	// Remote reachable but holds no plan yet: the normal on-demand path.
	checkIn := seededCheckIn()
	client := &stubRemoteClient{
		record:    remote.DayRecord{DayID: testDayID, CheckIn: &checkIn},
		hasRecord: true,
	}
	coordinator := newTestCoordinator(store, client)

	state, found, err := coordinator.LoadTodayState(context.Background())
	if err != nil || !found {
		t.Fatalf("expected local state, got found=%v err=%v", found, err)
	}
	if state.Source != SourceLocal {
		t.Fatalf("expected source local when remote has no plan, got %q", state.Source)
	}
}

func TestLoadStreakStatsUsesRemoteSummaries(t *testing.T) {
	t.Parallel()

	client := &stubRemoteClient{summaries: []models.DaySummary{
		{DayID: "2026-03-14", PlanCompleted: true},
		{DayID: "2026-03-13", PlanCompleted: true},
		{DayID: "2026-03-12", PlanCompleted: true},
		{DayID: "2026-03-11", PlanCompleted: false},
		{DayID: "2026-03-09", PlanCompleted: true},
	}}
	coordinator := newTestCoordinator(newMemoryStore(), client)

	stats, err := coordinator.LoadStreakStats(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Streak != 3 {
		t.Fatalf("expected streak 3, got %d", stats.Streak)
	}
	if stats.CompletedInWindow != 4 {
		t.Fatalf("expected 4 completed in window, got %d", stats.CompletedInWindow)
	}
}

func TestLoadStreakStatsDegradesOnRemoteFailure(t *testing.T) {
	t.Parallel()

	client := &stubRemoteClient{summariesErr: errors.New("network down")}
	coordinator := newTestCoordinator(newMemoryStore(), client)

	stats, err := coordinator.LoadStreakStats(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected degraded stats without error, got %v", err)
	}
	if stats.Streak != 0 || stats.CompletedInWindow != 0 {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
}
