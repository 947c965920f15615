package models

import "time"

// DayDocument is the durable per-user per-day record kept by the sync server.
// Writes against it are merge-writes: check-in/plan updates never touch the
// completion columns and completion updates never touch the check-in columns.
type DayDocument struct {
	ID             uint          `gorm:"primaryKey"`
	UserID         uint          `gorm:"not null;uniqueIndex:uidx_user_day"`
	DayID          string        `gorm:"not null;uniqueIndex:uidx_user_day"`
	CheckIn        *CheckIn      `gorm:"serializer:json"`
	Plan           *RecoveryPlan `gorm:"serializer:json"`
	PlanCompleted  bool          `gorm:"not null;default:false"`
	CompletedAt    *time.Time
	StepsCompleted int `gorm:"not null;default:0"`
	TotalSteps     int `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Summary projects the document into the shape history analytics consume.
func (document DayDocument) Summary() DaySummary {
	severity := ""
	if document.CheckIn != nil {
		severity = document.CheckIn.Severity
	}
	return DaySummary{
		DayID:          document.DayID,
		PlanCompleted:  document.PlanCompleted,
		StepsCompleted: document.StepsCompleted,
		TotalSteps:     document.TotalSteps,
		Severity:       severity,
	}
}
