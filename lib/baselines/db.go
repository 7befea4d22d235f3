package baselines

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pagewatch/lib/models"
)

var errNoDatabase = errors.New("tracker database is not configured")

// DBStore persists baselines on the tracker row itself: content, content
// hash, last-checked timestamp and, on detected changes, a last-change
// timestamp.
type DBStore struct {
	log *zap.Logger
	db  *gorm.DB
}

// Read never hits the database: database-backed descriptors already carry the
// baseline inline.
func (s *DBStore) Read(item *models.TrackedItem) (string, bool, error) {
	if item.InlineBaseline == nil {
		return "", false, nil
	}
	return *item.InlineBaseline, true, nil
}

func (s *DBStore) Write(ctx context.Context, item *models.TrackedItem, content string, changed bool) error {
	if s.db == nil {
		return errNoDatabase
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"baseline_content": content,
		"baseline_hash":    models.DigestContent(content),
		"last_checked_at":  now,
	}
	if changed {
		updates["last_change_at"] = now
	}

	tx := s.db.WithContext(ctx).
		Model(&models.TrackedURL{}).
		Where("id = ?", item.ID).
		Updates(updates)
	return tx.Error
}

func (s *DBStore) Touch(ctx context.Context, item *models.TrackedItem) error {
	if s.db == nil {
		return errNoDatabase
	}

	tx := s.db.WithContext(ctx).
		Model(&models.TrackedURL{}).
		Where("id = ?", item.ID).
		Update("last_checked_at", time.Now().UTC())
	return tx.Error
}
