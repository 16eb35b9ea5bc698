package models

type ReviewStatus string

const (
	ReviewIdle    ReviewStatus = "idle"
	ReviewLoading ReviewStatus = "loading"
	ReviewSuccess ReviewStatus = "success"
	ReviewError   ReviewStatus = "error"
)

// ReviewState is the terminal state of a review command as shown to the user.
type ReviewState struct {
	Status  ReviewStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}
