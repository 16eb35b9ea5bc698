package routes

import (
	"github.com/anjiri1684/college_review/handlers"
	"github.com/anjiri1684/college_review/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App, h *handlers.Handler, secret string) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected(secret))
	profile.Get("", h.GetProfile)
	profile.Put("", h.UpdateProfile)
}
