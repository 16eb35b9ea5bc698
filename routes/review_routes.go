package routes

import (
	"github.com/anjiri1684/college_review/handlers"
	"github.com/anjiri1684/college_review/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App, h *handlers.Handler, secret string) {
	api := app.Group("/api/v1")

	reviews := api.Group("/reviews")
	reviews.Get("", h.ListReviews)
	reviews.Post("", middleware.Protected(secret), h.SubmitReview)
	reviews.Delete("/:id", middleware.Protected(secret), h.DeleteReview)

	api.Get("/stats", h.GetStats)
}
