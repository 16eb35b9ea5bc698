package routes

import (
	"github.com/anjiri1684/college_review/handlers"
	"github.com/anjiri1684/college_review/middleware"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App, h *handlers.Handler, secret string) {
	api := app.Group("/api/v1")

	api.Get("/colleges", h.ListColleges)
	api.Post("/colleges/import", middleware.Protected(secret), middleware.NonGuestRequired(), h.ImportColleges)
	api.Get("/categories", h.ListCategories)
}
