// internal/store/sql.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// documentRow is the single relational table backing SQLStore. The document
// body lives in one JSON column; collection plus doc id form the key.
type documentRow struct {
	Collection string         `gorm:"primaryKey;size:64"`
	DocID      string         `gorm:"primaryKey;size:128;column:doc_id"`
	Data       datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (documentRow) TableName() string {
	return "documents"
}

// SQLStore implements DocumentStore on a relational database with a JSON
// document column. In production it runs on Postgres (jsonb); the tests run
// it on SQLite, which GORM's JSON datatype supports transparently.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var row documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read document %s/%s: %w", collection, id, err)
	}
	return decodeRow(&row), nil
}

func (s *SQLStore) Set(ctx context.Context, collection, id string, doc Document) error {
	data, err := json.Marshal(NormalizeDocument(doc))
	if err != nil {
		return fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
	}

	row := documentRow{
		Collection: collection,
		DocID:      id,
		Data:       datatypes.JSON(data),
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLStore) Update(ctx context.Context, collection, id string, fields Document) error {
	if len(fields) == 0 {
		return nil
	}

	// Read-merge-write inside one transaction. Concurrent writers to the same
	// document resolve last-write-wins per field; the like-toggle path holds
	// its own keyed lock on top of this.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row documentRow
		err := tx.Where("collection = ? AND doc_id = ?", collection, id).First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read document %s/%s: %w", collection, id, err)
		}

		doc := decodeRow(&row)
		for k, v := range NormalizeDocument(fields) {
			doc[k] = v
		}

		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
		}

		return tx.Model(&documentRow{}).
			Where("collection = ? AND doc_id = ?", collection, id).
			Updates(map[string]interface{}{"data": datatypes.JSON(data)}).Error
	})
}

func (s *SQLStore) Delete(ctx context.Context, collection, id string) error {
	result := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		Delete(&documentRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Query(ctx context.Context, collection string, conds ...Condition) ([]Document, error) {
	query := s.db.WithContext(ctx).Where("collection = ?", collection)

	// String equality is pushed into SQL through the JSON column; everything
	// else is applied in memory after the scan so both backends agree on
	// numeric comparison semantics.
	var inMemory []Condition
	for _, cond := range conds {
		if cond.Op == OpEq {
			if str, ok := cond.Value.(string); ok {
				query = query.Where(datatypes.JSONQuery("data").Equals(str, cond.Field))
				continue
			}
		}
		inMemory = append(inMemory, cond)
	}

	var rows []documentRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(rows))
	for i := range rows {
		doc := decodeRow(&rows[i])
		if matchesInMemory(doc, inMemory) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (s *SQLStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// decodeRow unmarshals the JSON column back into a structured document. A
// row whose body no longer parses is passed through raw instead of failing
// the read; this trades strictness for availability and is the one place
// corruption is deliberately swallowed.
func decodeRow(row *documentRow) Document {
	var doc Document
	if err := json.Unmarshal(row.Data, &doc); err != nil {
		logrus.WithFields(logrus.Fields{
			"collection": row.Collection,
			"doc_id":     row.DocID,
		}).WithError(err).Warn("Undecodable document body, passing through raw")
		return Document{"raw": string(row.Data)}
	}
	return doc
}
