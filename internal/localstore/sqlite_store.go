package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rowanherne/morrow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type CacheEntry struct {
	Key       string `gorm:"primaryKey"`
	Kind      string `gorm:"not null;index"`
	DayID     string `gorm:"not null;index"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (CacheEntry) TableName() string {
	return "cache_entries"
}

// SQLiteStore persists the cache in an embedded sqlite database.
type SQLiteStore struct {
	database *gorm.DB
}

// Open creates or opens the cache database at the given path.
func Open(cachePath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=5000", cachePath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open cache sqlite: %w", err)
	}
	return NewSQLiteStore(database)
}

// NewSQLiteStore wraps an already-open gorm handle.
func NewSQLiteStore(database *gorm.DB) (*SQLiteStore, error) {
	if err := database.AutoMigrate(&CacheEntry{}); err != nil {
		return nil, fmt.Errorf("migrate cache schema: %w", err)
	}
	return &SQLiteStore{database: database}, nil
}

func (store *SQLiteStore) FindCheckIn(dayID string) (models.CheckIn, bool, error) {
	checkIn := models.CheckIn{}
	found, err := store.load(KindCheckIn, dayID, &checkIn)
	if err != nil || !found {
		return models.CheckIn{}, false, err
	}
	return checkIn, true, nil
}

func (store *SQLiteStore) SaveCheckIn(checkIn models.CheckIn) error {
	return store.save(KindCheckIn, checkIn.DayID, checkIn)
}

func (store *SQLiteStore) FindPlan(dayID string) (models.RecoveryPlan, bool, error) {
	plan := models.RecoveryPlan{}
	found, err := store.load(KindPlan, dayID, &plan)
	if err != nil || !found {
		return models.RecoveryPlan{}, false, err
	}
	return plan, true, nil
}

func (store *SQLiteStore) SavePlan(dayID string, plan models.RecoveryPlan) error {
	return store.save(KindPlan, dayID, plan)
}

func (store *SQLiteStore) FindStepStates(dayID string) (map[string]bool, bool, error) {
	states := make(map[string]bool)
	found, err := store.load(KindSteps, dayID, &states)
	if err != nil || !found {
		return nil, false, err
	}
	return states, true, nil
}

func (store *SQLiteStore) SaveStepStates(dayID string, states map[string]bool) error {
	if states == nil {
		states = make(map[string]bool)
	}
	return store.save(KindSteps, dayID, states)
}

func (store *SQLiteStore) SetStepState(dayID string, stepID string, completed bool) error {
	states, found, err := store.FindStepStates(dayID)
	if err != nil {
		return err
	}
	if !found {
		states = make(map[string]bool)
	}
	states[stepID] = completed
	return store.SaveStepStates(dayID, states)
}

func (store *SQLiteStore) FindCompletion(dayID string) (models.PlanCompletion, bool, error) {
	completion := models.PlanCompletion{}
	found, err := store.load(KindCompletion, dayID, &completion)
	if err != nil || !found {
		return models.PlanCompletion{}, false, err
	}
	return completion, true, nil
}

func (store *SQLiteStore) SaveCompletion(completion models.PlanCompletion) error {
	return store.save(KindCompletion, completion.DayID, completion)
}

func (store *SQLiteStore) load(kind string, dayID string, target any) (bool, error) {
	entry := CacheEntry{}
	result := store.database.
		Where("key = ?", CacheKey(kind, dayID)).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	if err := json.Unmarshal(entry.Value, target); err != nil {
		return false, fmt.Errorf("decode cached %s for %s: %w", kind, dayID, err)
	}
	return true, nil
}

func (store *SQLiteStore) save(kind string, dayID string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s for %s: %w", kind, dayID, err)
	}
	entry := CacheEntry{
		Key:   CacheKey(kind, dayID),
		Kind:  kind,
		DayID: dayID,
		Value: encoded,
	}
	return store.database.
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry).Error
}
