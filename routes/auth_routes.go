package routes

import (
	"github.com/anjiri1684/college_review/handlers"
	"github.com/anjiri1684/college_review/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, h *handlers.Handler, secret string) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/guest", h.LoginGuest)
	auth.Post("/logout", middleware.Protected(secret), h.Logout)
	auth.Delete("/account", middleware.Protected(secret), h.DeleteAccount)
}
