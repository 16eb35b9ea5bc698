package database

import (
	"context"
	"errors"
	"time"

	"github.com/anjiri1684/college_review/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrDocumentNotFound = errors.New("document not found")

// Ledger is the authoritative document store shared by every device. Each
// collection holds free-form JSON documents addressed by id.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) List(ctx context.Context, collection string) ([]models.Document, error) {
	var docs []models.Document
	err := l.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("id asc").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (l *Ledger) Get(ctx context.Context, collection, id string) (*models.Document, error) {
	var doc models.Document
	err := l.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Set creates or replaces the whole document.
func (l *Ledger) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	doc := models.Document{Collection: collection, ID: id, Data: datatypes.JSONMap(data)}
	return l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
}

// Merge overwrites the given keys and keeps every other key of an existing
// document. A missing document is created.
func (l *Ledger) Merge(ctx context.Context, collection, id string, data map[string]interface{}) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc models.Document
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND id = ?", collection, id).
			First(&doc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.Document{
				Collection: collection,
				ID:         id,
				Data:       datatypes.JSONMap(data),
			}).Error
		}
		if err != nil {
			return err
		}

		merged := datatypes.JSONMap{}
		for k, v := range doc.Data {
			merged[k] = v
		}
		for k, v := range data {
			merged[k] = v
		}

		return tx.Model(&models.Document{}).
			Where("collection = ? AND id = ?", collection, id).
			Updates(map[string]any{"data": merged, "updated_at": time.Now()}).Error
	})
}

// Delete removes the document. Deleting a missing document is not an error.
func (l *Ledger) Delete(ctx context.Context, collection, id string) error {
	return l.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&models.Document{}).Error
}

// AddBatch stores every body under a generated id in one transaction.
func (l *Ledger) AddBatch(ctx context.Context, collection string, bodies []map[string]interface{}) (int, error) {
	if len(bodies) == 0 {
		return 0, nil
	}

	docs := make([]models.Document, 0, len(bodies))
	for _, body := range bodies {
		docs = append(docs, models.Document{
			Collection: collection,
			ID:         uuid.NewString(),
			Data:       datatypes.JSONMap(body),
		})
	}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&docs, 100).Error
	})
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}
