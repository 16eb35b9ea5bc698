package handlers

import (
	"log"

	"github.com/anjiri1684/college_review/middleware"
	"github.com/anjiri1684/college_review/models"
	"github.com/anjiri1684/college_review/utils"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)

	profile, found, err := h.Sync.GetUserProfile(c.UserContext(), session.UserID)
	if err != nil {
		log.Printf("🔥 Failed to fetch profile for %s: %v", session.UserID, err)
		return utils.ResponseError(c, fiber.StatusBadGateway, "Could not load profile")
	}

	return utils.ResponseSuccess(c, fiber.StatusOK, fiber.Map{
		"profile": profile,
		"exists":  found,
		"email":   session.Email,
	})
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var req models.ProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return utils.ResponseError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	profile, err := h.Sync.SaveUserProfile(c.UserContext(), middleware.CurrentSession(c).UserID, req)
	if err != nil {
		return commandError(c, err)
	}
	return utils.ResponseSuccess(c, fiber.StatusOK, profile)
}
