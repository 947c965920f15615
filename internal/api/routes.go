package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/recover", handler.Recover)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("/:date", handler.GetDay)
	days.Put("/:date/checkin", handler.PutCheckIn)
	days.Put("/:date/completion", handler.PutCompletion)

	api.Get("/summaries", handler.AuthRequired, handler.GetSummaries)
}
