package models

import "time"

const (
	ReviewUpserted = "review.upserted"
	ReviewDeleted  = "review.deleted"
)

// ReviewEvent is emitted once a review change has reached the remote ledger.
type ReviewEvent struct {
	Type       string                 `json:"type"`
	ReviewID   string                 `json:"review_id"`
	Review     map[string]interface{} `json:"review,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}
