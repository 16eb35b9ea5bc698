package handlers

import (
	"errors"
	"log"

	"github.com/anjiri1684/college_review/services"
	"github.com/anjiri1684/college_review/utils"
	"github.com/anjiri1684/college_review/websocket"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	Sync     *services.SyncService
	Identity *services.IdentityService
	Hub      *websocket.Hub
}

func New(sync *services.SyncService, identity *services.IdentityService, hub *websocket.Hub) *Handler {
	return &Handler{Sync: sync, Identity: identity, Hub: hub}
}

// errorStatus maps a service error to the HTTP status and the message shown
// to the user. Errors that are not command errors become a generic 500.
func errorStatus(err error) (int, string) {
	var cmdErr *services.CommandError
	if !errors.As(err, &cmdErr) {
		return fiber.StatusInternalServerError, "Something went wrong, please try again"
	}

	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusUnauthorized, cmdErr.Message
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden, cmdErr.Message
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, cmdErr.Message
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict, cmdErr.Message
	default:
		return fiber.StatusBadRequest, cmdErr.Message
	}
}

func commandError(c *fiber.Ctx, err error) error {
	status, msg := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("🔥 %s %s: %v", c.Method(), c.Path(), err)
	}
	return utils.ResponseError(c, status, msg)
}
