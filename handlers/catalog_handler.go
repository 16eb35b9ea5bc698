package handlers

import (
	"log"

	"github.com/anjiri1684/college_review/utils"
	"github.com/gofiber/fiber/v2"
)

// ListColleges always answers 200. When the ledger cannot be read the list is
// empty and "error" says so.
func (h *Handler) ListColleges(c *fiber.Ctx) error {
	names, err := h.Sync.GetInstitutions(c.UserContext())
	if err != nil {
		return c.JSON(fiber.Map{
			"status": "success",
			"data":   names,
			"error":  "Could not load colleges",
		})
	}
	return utils.ResponseSuccess(c, fiber.StatusOK, names)
}

func (h *Handler) ImportColleges(c *fiber.Ctx) error {
	n, err := h.Sync.ImportColleges(c.UserContext())
	if err != nil {
		log.Printf("🔥 College import failed: %v", err)
		return utils.ResponseError(c, fiber.StatusBadGateway, "Could not import colleges")
	}
	return utils.ResponseSuccess(c, fiber.StatusCreated, fiber.Map{"imported": n})
}

func (h *Handler) ListCategories(c *fiber.Ctx) error {
	list, err := h.Sync.GetCategories()
	if err != nil {
		return c.JSON(fiber.Map{
			"status": "success",
			"data":   list,
			"error":  "Could not load categories",
		})
	}
	return utils.ResponseSuccess(c, fiber.StatusOK, list)
}
