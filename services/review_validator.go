package services

import (
	"strings"

	"github.com/anjiri1684/college_review/models"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateSubmission checks whether the session may post the review. It does
// no I/O, so a rejected review never touches either store.
func ValidateSubmission(session *models.Session, input models.ReviewInput) error {
	if session == nil || session.UserID == "" {
		return newCommandError(ErrUnauthorized, "User not logged in")
	}
	if session.IsAnonymous {
		return newCommandError(ErrUnauthorized, "Guests cannot submit reviews. Please sign in.")
	}

	if strings.TrimSpace(input.CollegeName) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.Category) == "" {
		return newCommandError(ErrValidation, "Please fill in all fields")
	}

	if input.Rating == 0 {
		return newCommandError(ErrValidation, "Please add a rating")
	}

	if err := validate.Struct(input); err != nil {
		return newCommandError(ErrValidation, "Rating must be between 0 and 5")
	}
	return nil
}
