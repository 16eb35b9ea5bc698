package middleware

import (
	"strings"

	"github.com/anjiri1684/college_review/models"
	"github.com/anjiri1684/college_review/services"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

const sessionKey = "session"

// Protected verifies the bearer token and stores the caller's session in
// Locals for CurrentSession.
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:     []byte(secret),
		SigningMethod:  "HS256",
		ErrorHandler:   jwtError,
		SuccessHandler: loadSession,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.EqualFold(err.Error(), "Missing or malformed JWT") {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

func loadSession(c *fiber.Ctx) error {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return jwtError(c, fiber.ErrUnauthorized)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwtError(c, fiber.ErrUnauthorized)
	}

	session, err := services.SessionFromClaims(claims)
	if err != nil {
		return jwtError(c, err)
	}
	c.Locals(sessionKey, session)
	return c.Next()
}

// CurrentSession returns the session stored by Protected, or nil.
func CurrentSession(c *fiber.Ctx) *models.Session {
	session, _ := c.Locals(sessionKey).(*models.Session)
	return session
}

// NonGuestRequired rejects anonymous sessions.
func NonGuestRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := CurrentSession(c)
		if session == nil || session.IsAnonymous {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "error",
				"message": "Forbidden: sign in with an account to continue",
			})
		}
		return c.Next()
	}
}
