package handlers

import (
	"github.com/anjiri1684/college_review/middleware"
	"github.com/anjiri1684/college_review/models"
	"github.com/anjiri1684/college_review/services"
	"github.com/anjiri1684/college_review/utils"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListReviews(c *fiber.Ctx) error {
	reviews, err := h.Sync.Reviews(c.UserContext(), c.Query("college"))
	if err != nil {
		return commandError(c, err)
	}
	return utils.ResponseSuccess(c, fiber.StatusOK, reviews)
}

// SubmitReview answers with the terminal ReviewState of the command so a
// client can show it as is.
func (h *Handler) SubmitReview(c *fiber.Ctx) error {
	var input models.ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ResponseError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	review, err := h.Sync.Submit(c.UserContext(), middleware.CurrentSession(c), input)
	if err != nil {
		status, msg := errorStatus(err)
		return c.Status(status).JSON(fiber.Map{
			"status":  "error",
			"message": msg,
			"data": fiber.Map{
				"state": models.ReviewState{Status: models.ReviewError, Message: msg},
			},
		})
	}

	return utils.ResponseSuccess(c, fiber.StatusCreated, fiber.Map{
		"state":  models.ReviewState{Status: models.ReviewSuccess},
		"review": review,
	})
}

func (h *Handler) DeleteReview(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Sync.DeleteByID(c.UserContext(), middleware.CurrentSession(c), id); err != nil {
		return commandError(c, err)
	}
	return utils.ResponseSuccess(c, fiber.StatusOK, fiber.Map{"id": id})
}

// GetStats returns the per-college summary, by review count unless
// sort=rating is given.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	stats, err := h.Sync.Stats(c.UserContext())
	if err != nil {
		return commandError(c, err)
	}

	switch c.Query("sort", "count") {
	case "count":
	case "rating":
		stats = services.SortByRating(stats)
	default:
		return utils.ResponseError(c, fiber.StatusBadRequest, "sort must be count or rating")
	}
	return utils.ResponseSuccess(c, fiber.StatusOK, stats)
}
