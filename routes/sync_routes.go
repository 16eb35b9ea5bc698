package routes

import (
	"github.com/anjiri1684/college_review/handlers"
	"github.com/anjiri1684/college_review/middleware"
	"github.com/gofiber/fiber/v2"
)

func SyncRoutes(app *fiber.App, h *handlers.Handler, secret string) {
	api := app.Group("/api/v1")

	sync := api.Group("/sync", middleware.Protected(secret))
	sync.Post("/pull", h.PullReviews)
	sync.Get("/outbox", h.ListOutbox)
	sync.Post("/flush", h.FlushOutbox)
}
