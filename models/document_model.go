package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	CollectionReviews  = "reviews"
	CollectionColleges = "colleges"
	CollectionUsers    = "users"
)

// Document is one entry of a remote collection.
type Document struct {
	Collection string            `gorm:"primaryKey;size:64" json:"collection"`
	ID         string            `gorm:"primaryKey;size:128" json:"id"`
	Data       datatypes.JSONMap `json:"data"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Document) TableName() string {
	return "documents"
}
