package services

import (
	"testing"

	"github.com/anjiri1684/college_review/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateSubmission(t *testing.T) {
	cases := []struct {
		name    string
		input   models.ReviewInput
		message string
	}{
		{"whitespace only", models.ReviewInput{CollegeName: " ", Category: " ", Description: " ", Rating: 3}, "Please fill in all fields"},
		{"blank fields before rating", models.ReviewInput{CollegeName: "IIT Bombay", Rating: 0}, "Please fill in all fields"},
		{"negative rating", models.ReviewInput{CollegeName: "IIT Bombay", Category: "Food", Description: "ok", Rating: -1}, "Rating must be between 0 and 5"},
		{"upper bound", models.ReviewInput{CollegeName: "IIT Bombay", Category: "Food", Description: "ok", Rating: 5}, ""},
		{"half stars", models.ReviewInput{CollegeName: "IIT Bombay", Category: "Food", Description: "ok", Rating: 0.5}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSubmission(member, tc.input)
			if tc.message == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrValidation)
			assert.EqualError(t, err, tc.message)
		})
	}
}
