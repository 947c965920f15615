package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rowanherne/morrow/internal/models"
)

const defaultSummaryWindowDays = 30

type summariesResponse struct {
	Summaries []models.DaySummary `json:"summaries"`
}

func (handler *Handler) GetSummaries(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	windowDays := c.QueryInt("days", defaultSummaryWindowDays)
	summaries, err := handler.summaryService.BuildRecentSummaries(user.ID, windowDays)
	if err != nil {
		handler.logger.Error("summary build failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "summary build failed")
	}
	if summaries == nil {
		summaries = []models.DaySummary{}
	}
	return c.JSON(summariesResponse{Summaries: summaries})
}
