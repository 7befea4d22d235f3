// Package baselines persists the last-observed text per tracked item, either
// as flat files keyed by URL hash or as columns on the tracker row.
package baselines

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pagewatch/config"
	"pagewatch/lib/models"
)

type Store interface {
	// Read returns the stored baseline and whether one exists.
	Read(item *models.TrackedItem) (content string, found bool, err error)
	// Write overwrites the baseline. changed marks the write as a detected
	// change, which only affects the database backend's change timestamp.
	Write(ctx context.Context, item *models.TrackedItem, content string, changed bool) error
	// Touch records a successful no-change check. No-op for files.
	Touch(ctx context.Context, item *models.TrackedItem) error
}

// Stores selects the backend for an item. This is the single dispatch point
// on the item's source tag; everything downstream is backend-agnostic.
type Stores struct {
	file *FileStore
	db   *DBStore
}

func NewStores(lc fx.Lifecycle, log *zap.Logger, cfg *config.Config, db *gorm.DB) *Stores {
	return &Stores{
		file: &FileStore{log: log, dir: cfg.BaselinesDir},
		db:   &DBStore{log: log, db: db},
	}
}

func (s *Stores) For(item *models.TrackedItem) Store {
	if item.Source == models.SourceDatabase {
		return s.db
	}
	return s.file
}
