package services

import (
	"time"

	"github.com/rowanherne/morrow/internal/day"
	"github.com/rowanherne/morrow/internal/models"
)

const (
	minSummaryWindowDays = 1
	maxSummaryWindowDays = 365
)

// SummaryService builds the per-day completion summaries that drive streak
// and adherence figures on the device.
type SummaryService struct {
	days     DayDocumentRepository
	clock    day.Clock
	location *time.Location
}

func NewSummaryService(days DayDocumentRepository, clock day.Clock, location *time.Location) *SummaryService {
	if clock == nil {
		clock = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	return &SummaryService{days: days, clock: clock, location: location}
}

// BuildRecentSummaries returns summaries for documents within the last
// windowDays calendar days, newest first. The window is inclusive of today
// and clamped to at most a year.
func (service *SummaryService) BuildRecentSummaries(userID uint, windowDays int) ([]models.DaySummary, error) {
	if windowDays < minSummaryWindowDays {
		windowDays = minSummaryWindowDays
	}
	if windowDays > maxSummaryWindowDays {
		windowDays = maxSummaryWindowDays
	}

	todayID := day.ID(service.clock(), service.location)
	windowStart, err := day.Shift(todayID, -(windowDays - 1))
	if err != nil {
		return nil, err
	}

	documents, err := service.days.ListRecentByUser(userID, windowDays)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.DaySummary, 0, len(documents))
	for _, document := range documents {
		if document.DayID < windowStart || document.DayID > todayID {
			continue
		}
		summaries = append(summaries, document.Summary())
	}
	return summaries, nil
}
