package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/kanban-api/internal/models"
	"gorm.io/gorm"
)

// GormStore keeps each collection as one row of the documents table.
type GormStore struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewGormStore returns a store backed by db. The documents table must
// already be migrated.
func NewGormStore(db *gorm.DB, logger *logrus.Logger) *GormStore {
	return &GormStore{db: db, logger: logger}
}

func (s *GormStore) Load(ctx context.Context, c Collection, dst any) error {
	var doc models.Document
	err := s.db.WithContext(ctx).Where("collection = ?", c.Name).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.write(ctx, c, emptyDocument); err != nil {
			return err
		}
		return reset(dst)
	}
	if err != nil {
		s.entry(c).WithError(err).Error("failed to read collection")
		return fmt.Errorf("read %s: %w", c.Name, err)
	}

	if err := decode(c, []byte(doc.Body), dst); err != nil {
		s.entry(c).WithError(err).Warn("collection document is unreadable, resetting to empty")
		if err := s.write(ctx, c, emptyDocument); err != nil {
			return err
		}
		return reset(dst)
	}
	return nil
}

func (s *GormStore) Save(ctx context.Context, c Collection, records any) error {
	data, err := encode(records)
	if err != nil {
		s.entry(c).WithError(err).Error("failed to encode collection")
		return fmt.Errorf("encode %s: %w", c.Name, err)
	}
	return s.write(ctx, c, data)
}

func (s *GormStore) write(ctx context.Context, c Collection, data []byte) error {
	doc := models.Document{
		Collection: c.Name,
		Body:       string(data),
	}
	if err := s.db.WithContext(ctx).Save(&doc).Error; err != nil {
		s.entry(c).WithError(err).Error("failed to write collection")
		return fmt.Errorf("write %s: %w", c.Name, err)
	}
	return nil
}

func (s *GormStore) entry(c Collection) *logrus.Entry {
	return s.logger.WithFields(logrus.Fields{
		"component":  "storage",
		"backend":    "gorm",
		"collection": c.Name,
	})
}
