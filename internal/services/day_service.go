package services

import (
	"errors"
	"time"

	"github.com/rowanherne/morrow/internal/day"
	"github.com/rowanherne/morrow/internal/models"
)

var (
	ErrInvalidDayID            = errors.New("invalid day id")
	ErrInvalidSeverity         = errors.New("invalid severity")
	ErrInvalidSymptom          = errors.New("invalid symptom")
	ErrInvalidCompletionCounts = errors.New("invalid completion counts")
)

type DayDocumentRepository interface {
	FindByUserAndDay(userID uint, dayID string) (models.DayDocument, bool, error)
	ListRecentByUser(userID uint, limit int) ([]models.DayDocument, error)
	UpsertCheckInWithPlan(userID uint, dayID string, checkIn models.CheckIn, plan models.RecoveryPlan) (models.DayDocument, error)
	UpsertCompletion(userID uint, dayID string, stepsCompleted int, totalSteps int, completedAt time.Time) (models.DayDocument, error)
}

// DayService validates incoming day writes before they reach storage.
// Writes for one day never touch fields owned by the other write path,
// so a check-in sync and a completion sync can land in either order.
type DayService struct {
	days DayDocumentRepository
}

func NewDayService(days DayDocumentRepository) *DayService {
	return &DayService{days: days}
}

func (service *DayService) GetDay(userID uint, dayID string) (models.DayDocument, bool, error) {
	if _, err := day.Parse(dayID); err != nil {
		return models.DayDocument{}, false, ErrInvalidDayID
	}
	return service.days.FindByUserAndDay(userID, dayID)
}

func (service *DayService) SaveCheckInWithPlan(userID uint, dayID string, checkIn models.CheckIn, plan models.RecoveryPlan) (models.DayDocument, error) {
	if _, err := day.Parse(dayID); err != nil {
		return models.DayDocument{}, ErrInvalidDayID
	}
	if !models.ValidSeverity(checkIn.Severity) {
		return models.DayDocument{}, ErrInvalidSeverity
	}
	for _, symptom := range checkIn.Symptoms {
		if !models.ValidSymptom(symptom) {
			return models.DayDocument{}, ErrInvalidSymptom
		}
	}

	checkIn.DayID = dayID
	checkIn.Symptoms = models.NormalizeSymptoms(checkIn.Symptoms)
	if checkIn.CreatedAt.IsZero() {
		checkIn.CreatedAt = time.Now()
	}
	return service.days.UpsertCheckInWithPlan(userID, dayID, checkIn, plan)
}

func (service *DayService) SaveCompletion(userID uint, dayID string, stepsCompleted int, totalSteps int, completedAt time.Time) (models.DayDocument, error) {
	if _, err := day.Parse(dayID); err != nil {
		return models.DayDocument{}, ErrInvalidDayID
	}
	if stepsCompleted < 0 || totalSteps < 0 || stepsCompleted > totalSteps {
		return models.DayDocument{}, ErrInvalidCompletionCounts
	}
	if completedAt.IsZero() {
		completedAt = time.Now()
	}
	return service.days.UpsertCompletion(userID, dayID, stepsCompleted, totalSteps, completedAt)
}
