package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rowanherne/morrow/internal/db"
	"github.com/rowanherne/morrow/internal/services"
	"gorm.io/gorm"
)

const defaultAuthTokenTTL = 30 * 24 * time.Hour

type Handler struct {
	db             *gorm.DB
	secretKey      []byte
	location       *time.Location
	logger         *slog.Logger
	tokenTTL       time.Duration
	repositories   *db.Repositories
	authService    *services.AuthService
	dayService     *services.DayService
	summaryService *services.SummaryService
}

func NewHandler(database *gorm.DB, secretKey []byte, location *time.Location, logger *slog.Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}

	handler := &Handler{
		db:        database,
		secretKey: secretKey,
		location:  location,
		logger:    logger,
		tokenTTL:  defaultAuthTokenTTL,
	}
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.dayService = services.NewDayService(handler.repositories.Days)
	handler.summaryService = services.NewSummaryService(handler.repositories.Days, time.Now, location)
	return handler
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
