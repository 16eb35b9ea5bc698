package utils

import "github.com/gofiber/fiber/v2"

func ResponseError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": msg,
		"data":    nil,
	})
}

func ResponseSuccess(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}
