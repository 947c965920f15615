package db

import (
	"time"

	"github.com/rowanherne/morrow/internal/models"
	"gorm.io/gorm"
)

type DayDocumentRepository struct {
	database *gorm.DB
}

func NewDayDocumentRepository(database *gorm.DB) *DayDocumentRepository {
	return &DayDocumentRepository{database: database}
}

func (repo *DayDocumentRepository) FindByUserAndDay(userID uint, dayID string) (models.DayDocument, bool, error) {
	document := models.DayDocument{}
	result := repo.database.
		Where("user_id = ? AND day_id = ?", userID, dayID).
		Limit(1).
		Find(&document)
	if result.Error != nil {
		return models.DayDocument{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DayDocument{}, false, nil
	}
	return document, true, nil
}

func (repo *DayDocumentRepository) ListRecentByUser(userID uint, limit int) ([]models.DayDocument, error) {
	documents := make([]models.DayDocument, 0)
	query := repo.database.
		Where("user_id = ?", userID).
		Order("day_id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

// UpsertCheckInWithPlan merge-writes the check-in and plan columns. The
// completion columns of an existing document are left untouched.
func (repo *DayDocumentRepository) UpsertCheckInWithPlan(userID uint, dayID string, checkIn models.CheckIn, plan models.RecoveryPlan) (models.DayDocument, error) {
	document, found, err := repo.FindByUserAndDay(userID, dayID)
	if err != nil {
		return models.DayDocument{}, err
	}

	if found {
		document.CheckIn = &checkIn
		document.Plan = &plan
		if err := repo.database.Model(&document).
			Select("check_in", "plan").
			Updates(&document).Error; err != nil {
			return models.DayDocument{}, err
		}
		return document, nil
	}

	document = models.DayDocument{
		UserID:  userID,
		DayID:   dayID,
		CheckIn: &checkIn,
		Plan:    &plan,
	}
	if err := repo.database.Create(&document).Error; err != nil {
		return models.DayDocument{}, err
	}
	return document, nil
}

// UpsertCompletion merge-writes the completion columns. Completion is set at
// most once: a document already completed keeps its original record and the
// repeat write reports success.
func (repo *DayDocumentRepository) UpsertCompletion(userID uint, dayID string, stepsCompleted int, totalSteps int, completedAt time.Time) (models.DayDocument, error) {
	document, found, err := repo.FindByUserAndDay(userID, dayID)
	if err != nil {
		return models.DayDocument{}, err
	}

	if found && document.PlanCompleted {
		return document, nil
	}

	if found {
		document.PlanCompleted = true
		document.CompletedAt = &completedAt
		document.StepsCompleted = stepsCompleted
		document.TotalSteps = totalSteps
		if err := repo.database.Model(&document).
			Select("plan_completed", "completed_at", "steps_completed", "total_steps").
			Updates(&document).Error; err != nil {
			return models.DayDocument{}, err
		}
		return document, nil
	}

	// Completion can arrive before the check-in sync lands; keep the write.
	document = models.DayDocument{
		UserID:         userID,
		DayID:          dayID,
		PlanCompleted:  true,
		CompletedAt:    &completedAt,
		StepsCompleted: stepsCompleted,
		TotalSteps:     totalSteps,
	}
	if err := repo.database.Create(&document).Error; err != nil {
		return models.DayDocument{}, err
	}
	return document, nil
}
