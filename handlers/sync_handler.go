package handlers

import (
	"github.com/anjiri1684/college_review/utils"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) PullReviews(c *fiber.Ctx) error {
	n, err := h.Sync.PullAll(c.UserContext())
	if err != nil {
		return utils.ResponseError(c, fiber.StatusBadGateway, "Could not sync reviews, showing cached data")
	}
	return utils.ResponseSuccess(c, fiber.StatusOK, fiber.Map{"pulled": n})
}

func (h *Handler) ListOutbox(c *fiber.Ctx) error {
	entries, err := h.Sync.Outbox(c.UserContext())
	if err != nil {
		return commandError(c, err)
	}
	return utils.ResponseSuccess(c, fiber.StatusOK, entries)
}

func (h *Handler) FlushOutbox(c *fiber.Ctx) error {
	result, err := h.Sync.FlushOutbox(c.UserContext())
	if err != nil {
		return commandError(c, err)
	}
	return utils.ResponseSuccess(c, fiber.StatusOK, result)
}
