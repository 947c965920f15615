package today

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rowanherne/morrow/internal/models"
	"github.com/rowanherne/morrow/internal/remote"
)

// memoryStore implements localstore.Store in memory for coordinator tests.
type memoryStore struct {
	mu          sync.Mutex
	checkIns    map[string]models.CheckIn
	plans       map[string]models.RecoveryPlan
	stepStates  map[string]map[string]bool
	completions map[string]models.PlanCompletion
	failWrites  bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		checkIns:    make(map[string]models.CheckIn),
		plans:       make(map[string]models.RecoveryPlan),
		stepStates:  make(map[string]map[string]bool),
		completions: make(map[string]models.PlanCompletion),
	}
}

var errStoreWrite = errors.New("cache write refused")

func (store *memoryStore) FindCheckIn(dayID string) (models.CheckIn, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	checkIn, found := store.checkIns[dayID]
	return checkIn, found, nil
}

func (store *memoryStore) SaveCheckIn(checkIn models.CheckIn) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failWrites {
		return errStoreWrite
	}
	store.checkIns[checkIn.DayID] = checkIn
	return nil
}

func (store *memoryStore) FindPlan(dayID string) (models.RecoveryPlan, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	plan, found := store.plans[dayID]
	return plan, found, nil
}

func (store *memoryStore) SavePlan(dayID string, plan models.RecoveryPlan) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failWrites {
		return errStoreWrite
	}
	store.plans[dayID] = plan
	return nil
}

func (store *memoryStore) FindStepStates(dayID string) (map[string]bool, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	states, found := store.stepStates[dayID]
	if !found {
		return nil, false, nil
	}
	cloned := make(map[string]bool, len(states))
	for stepID, completed := range states {
		cloned[stepID] = completed
	}
	return cloned, true, nil
}

func (store *memoryStore) SaveStepStates(dayID string, states map[string]bool) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failWrites {
		return errStoreWrite
	}
	cloned := make(map[string]bool, len(states))
	for stepID, completed := range states {
		cloned[stepID] = completed
	}
	store.stepStates[dayID] = cloned
	return nil
}

func (store *memoryStore) SetStepState(dayID string, stepID string, completed bool) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failWrites {
		return errStoreWrite
	}
	states, found := store.stepStates[dayID]
	if !found {
		states = make(map[string]bool)
		store.stepStates[dayID] = states
	}
	states[stepID] = completed
	return nil
}

func (store *memoryStore) FindCompletion(dayID string) (models.PlanCompletion, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	completion, found := store.completions[dayID]
	return completion, found, nil
}

func (store *memoryStore) SaveCompletion(completion models.PlanCompletion) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failWrites {
		return errStoreWrite
	}
	store.completions[completion.DayID] = completion
	return nil
}

// stubRemoteClient implements remote.Client. Background writes run on
// goroutines, so every field access is behind the mutex.
type stubRemoteClient struct {
	mu sync.Mutex

	record    remote.DayRecord
	hasRecord bool
	fetchErr  error

	summaries    []models.DaySummary
	summariesErr error

	saveCompletionErr error

	fetchCalls          int
	savedCheckIns       []models.CheckIn
	savedCompletions    []stubCompletionCall
	summariesFetchCalls int
}

type stubCompletionCall struct {
	DayID          string
	StepsCompleted int
	TotalSteps     int
}

func (stub *stubRemoteClient) FetchDay(context.Context, string) (remote.DayRecord, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.fetchCalls++
	if stub.fetchErr != nil {
		return remote.DayRecord{}, false, stub.fetchErr
	}
	return stub.record, stub.hasRecord, nil
}

func (stub *stubRemoteClient) SaveCheckInWithPlan(_ context.Context, checkIn models.CheckIn, _ models.RecoveryPlan) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.savedCheckIns = append(stub.savedCheckIns, checkIn)
	return nil
}

func (stub *stubRemoteClient) SaveCompletion(_ context.Context, dayID string, stepsCompleted int, totalSteps int) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.saveCompletionErr != nil {
		return stub.saveCompletionErr
	}
	stub.savedCompletions = append(stub.savedCompletions, stubCompletionCall{
		DayID:          dayID,
		StepsCompleted: stepsCompleted,
		TotalSteps:     totalSteps,
	})
	return nil
}

func (stub *stubRemoteClient) FetchDaySummaries(context.Context, int) ([]models.DaySummary, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.summariesFetchCalls++
	if stub.summariesErr != nil {
		return nil, stub.summariesErr
	}
	return stub.summaries, nil
}

func (stub *stubRemoteClient) completionCalls() []stubCompletionCall {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	calls := make([]stubCompletionCall, len(stub.savedCompletions))
	copy(calls, stub.savedCompletions)
	return calls
}

func (stub *stubRemoteClient) checkInCalls() []models.CheckIn {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	calls := make([]models.CheckIn, len(stub.savedCheckIns))
	copy(calls, stub.savedCheckIns)
	return calls
}

const testDayID = "2026-03-14"

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
}

func newTestCoordinator(store *memoryStore, client remote.Client) *Coordinator {
	return NewCoordinator(store, client, fixedClock, time.UTC, nil)
}
