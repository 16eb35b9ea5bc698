package handlers

import (
	"github.com/anjiri1684/college_review/middleware"
	"github.com/anjiri1684/college_review/models"
	"github.com/anjiri1684/college_review/utils"
	"github.com/gofiber/fiber/v2"
)

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var creds models.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return utils.ResponseError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	account, err := h.Identity.SignUp(c.UserContext(), creds)
	if err != nil {
		return commandError(c, err)
	}
	return h.respondWithToken(c, fiber.StatusCreated, account)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var creds models.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return utils.ResponseError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	account, err := h.Identity.SignIn(c.UserContext(), creds)
	if err != nil {
		return commandError(c, err)
	}
	return h.respondWithToken(c, fiber.StatusOK, account)
}

func (h *Handler) LoginGuest(c *fiber.Ctx) error {
	account, err := h.Identity.SignInGuest(c.UserContext())
	if err != nil {
		return commandError(c, err)
	}
	return h.respondWithToken(c, fiber.StatusCreated, account)
}

// Logout is stateless; the client drops its token.
func (h *Handler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "success", "message": "Signed out"})
}

func (h *Handler) DeleteAccount(c *fiber.Ctx) error {
	var req DeleteAccountRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.ResponseError(c, fiber.StatusBadRequest, "Cannot parse JSON")
		}
	}

	if err := h.Identity.DeleteAccount(c.UserContext(), middleware.CurrentSession(c), req.Password); err != nil {
		return commandError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Account deleted"})
}

func (h *Handler) respondWithToken(c *fiber.Ctx, status int, account models.Account) error {
	token, err := h.Identity.IssueToken(account)
	if err != nil {
		return commandError(c, err)
	}
	return utils.ResponseSuccess(c, status, fiber.Map{
		"token": token,
		"user":  account,
	})
}
