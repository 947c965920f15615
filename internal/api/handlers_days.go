package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rowanherne/morrow/internal/models"
	"github.com/rowanherne/morrow/internal/services"
)

type dayRecordResponse struct {
	DayID          string               `json:"day_id"`
	CheckIn        *models.CheckIn      `json:"check_in,omitempty"`
	Plan           *models.RecoveryPlan `json:"plan,omitempty"`
	PlanCompleted  bool                 `json:"plan_completed"`
	CompletedAt    *time.Time           `json:"completed_at,omitempty"`
	StepsCompleted int                  `json:"steps_completed"`
	TotalSteps     int                  `json:"total_steps"`
}

type checkInWithPlanRequest struct {
	CheckIn models.CheckIn      `json:"check_in"`
	Plan    models.RecoveryPlan `json:"plan"`
}

type completionRequest struct {
	StepsCompleted int `json:"steps_completed"`
	TotalSteps     int `json:"total_steps"`
}

func dayRecordFromDocument(document models.DayDocument) dayRecordResponse {
	return dayRecordResponse{
		DayID:          document.DayID,
		CheckIn:        document.CheckIn,
		Plan:           document.Plan,
		PlanCompleted:  document.PlanCompleted,
		CompletedAt:    document.CompletedAt,
		StepsCompleted: document.StepsCompleted,
		TotalSteps:     document.TotalSteps,
	}
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	document, found, err := handler.dayService.GetDay(user.ID, c.Params("date"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidDayID) {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		handler.logger.Error("day lookup failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "day lookup failed")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "day not found")
	}
	return c.JSON(dayRecordFromDocument(document))
}

func (handler *Handler) PutCheckIn(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var request checkInWithPlanRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	document, err := handler.dayService.SaveCheckInWithPlan(user.ID, c.Params("date"), request.CheckIn, request.Plan)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDayID):
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		case errors.Is(err, services.ErrInvalidSeverity):
			return apiError(c, fiber.StatusBadRequest, "invalid severity")
		case errors.Is(err, services.ErrInvalidSymptom):
			return apiError(c, fiber.StatusBadRequest, "invalid symptom")
		default:
			handler.logger.Error("check-in upsert failed", "error", err)
			return apiError(c, fiber.StatusInternalServerError, "check-in save failed")
		}
	}
	return c.JSON(dayRecordFromDocument(document))
}

func (handler *Handler) PutCompletion(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var request completionRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	document, err := handler.dayService.SaveCompletion(user.ID, c.Params("date"), request.StepsCompleted, request.TotalSteps, time.Now().In(handler.location))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDayID):
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		case errors.Is(err, services.ErrInvalidCompletionCounts):
			return apiError(c, fiber.StatusBadRequest, "invalid completion counts")
		default:
			handler.logger.Error("completion upsert failed", "error", err)
			return apiError(c, fiber.StatusInternalServerError, "completion save failed")
		}
	}
	return c.JSON(dayRecordFromDocument(document))
}
