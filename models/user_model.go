package models

import "time"

const (
	StatusStudying  = "Studying"
	StatusPassedOut = "Passed Out"
)

// UserProfile lives in the remote "users" collection, keyed by the account id.
type UserProfile struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Account is the identity provider's record. Guests have no email or password.
type Account struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	Email        *string `gorm:"size:255;unique" json:"email,omitempty"`
	PasswordHash string  `gorm:"not null;default:''" json:"-"`
	IsAnonymous  bool    `gorm:"not null;default:false" json:"is_anonymous"`
	Provider     string  `gorm:"size:20;not null;default:'password'" json:"provider"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is the identity context a command runs under.
type Session struct {
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	IsAnonymous bool     `json:"is_anonymous"`
	Providers   []string `json:"providers"`
}

// ProfileUpdate lists the profile keys to overwrite; nil keys are kept.
type ProfileUpdate struct {
	Name   *string `json:"name" validate:"omitempty,max=100"`
	Status *string `json:"status" validate:"omitempty,max=50"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
