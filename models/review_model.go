package models

// Review is one college review as cached on this node. The same shape is
// mirrored to the remote "reviews" collection.
type Review struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	UserID      string  `gorm:"size:128;not null;index" json:"user_id"`
	UserEmail   string  `gorm:"size:255;not null" json:"user_email"`
	UserName    string  `gorm:"size:255" json:"user_name"`
	CollegeName string  `gorm:"size:255;not null" json:"college_name"`
	Category    string  `gorm:"size:255;not null;default:''" json:"category"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Rating      float64 `gorm:"not null;default:0" json:"rating"`
	Timestamp   int64   `gorm:"not null;index" json:"timestamp"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewInput is what a user fills in on the create screen.
type ReviewInput struct {
	CollegeName string  `json:"college_name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
}

// Document returns the remote ledger body for the review.
func (r Review) Document() map[string]interface{} {
	return map[string]interface{}{
		"id":          r.ID,
		"userId":      r.UserID,
		"userEmail":   r.UserEmail,
		"userName":    r.UserName,
		"collegeName": r.CollegeName,
		"category":    r.Category,
		"description": r.Description,
		"rating":      r.Rating,
		"timestamp":   r.Timestamp,
	}
}
